package http

import (
	"damai-site/pkg/logger"
	"damai-site/pkg/middleware"
	"damai-site/pkg/response"
	"damai-site/services/content/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUseCase usecase.AdminUseCase
	logger       *logger.Logger
}

func NewAdminHandler(adminUseCase usecase.AdminUseCase, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
		logger:       logger,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// Login godoc
// @Summary      Admin login
// @Description  Exchange username and password for a bearer session token
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	admin, session, err := h.adminUseCase.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, h.logger, "log in", err)
		return
	}

	response.Success(c, gin.H{
		"admin":   admin,
		"session": session,
	})
}

// Logout godoc
// @Summary      Admin logout
// @Description  Revoke the current session token
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /admin/logout [post]
func (h *AdminHandler) Logout(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		response.Unauthorized(c, "No session")
		return
	}

	if err := h.adminUseCase.Logout(c.Request.Context(), claims); err != nil {
		writeError(c, h.logger, "log out", err)
		return
	}

	response.Success(c, nil)
}

// ChangePassword godoc
// @Summary      Change admin password
// @Description  Requires the current password; the new one must be at least 8 characters
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ChangePasswordRequest true "Passwords"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /admin-posts/change-password [post]
func (h *AdminHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	adminID := c.GetString(middleware.ContextAdminID)
	if err := h.adminUseCase.ChangePassword(c.Request.Context(), adminID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(c, h.logger, "change password", err)
		return
	}

	response.Success(c, nil)
}
