package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"damai-site/pkg/jwt"
	"damai-site/pkg/logger"
	"damai-site/pkg/middleware"
	"damai-site/services/content/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	mockUseCase := new(MockAdminUseCase)
	handler := NewAdminHandler(mockUseCase, logger.NewNop())

	router := setupTestRouter()
	router.POST("/admin/login", handler.Login)

	session := &jwt.Session{Token: "tok", ID: "jti-1", AdminID: "admin-1", ExpiresAt: time.Now().Add(time.Hour)}
	mockUseCase.On("Login", "director", "secret-pass").
		Return(&entity.Admin{ID: "admin-1", Username: "director", PasswordHash: "hash"}, session, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/login", strings.NewReader(`{"username":"director","password":"secret-pass"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	data := string(decode(t, w).Data)
	assert.Contains(t, data, `"token":"tok"`)
	assert.NotContains(t, data, "hash")
	assert.NotContains(t, data, "jti-1")
}

func TestLogin_BadCredentials(t *testing.T) {
	mockUseCase := new(MockAdminUseCase)
	handler := NewAdminHandler(mockUseCase, logger.NewNop())

	router := setupTestRouter()
	router.POST("/admin/login", handler.Login)

	mockUseCase.On("Login", "director", "nope").
		Return(nil, nil, fmt.Errorf("%w: invalid credentials", entity.ErrAuth))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/login", strings.NewReader(`{"username":"director","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/admin/login", strings.NewReader(`{"username":"director"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout(t *testing.T) {
	mockUseCase := new(MockAdminUseCase)
	handler := NewAdminHandler(mockUseCase, logger.NewNop())

	claims := &jwt.Claims{AdminID: "admin-1"}
	router := setupTestRouter()
	router.POST("/admin/logout", func(c *gin.Context) {
		c.Set(middleware.ContextClaims, claims)
		handler.Logout(c)
	})
	router.POST("/admin/logout-anon", handler.Logout)

	mockUseCase.On("Logout", claims).Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/logout", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/admin/logout-anon", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	mockUseCase.AssertExpectations(t)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	mockUseCase := new(MockAdminUseCase)
	handler := NewAdminHandler(mockUseCase, logger.NewNop())

	router := setupTestRouter()
	router.POST("/admin-posts/change-password", asAdmin("admin-1", handler.ChangePassword))

	mockUseCase.On("ChangePassword", "admin-1", "wrong", "new-password").
		Return(fmt.Errorf("%w: current password is incorrect", entity.ErrAuth))
	mockUseCase.On("ChangePassword", "admin-1", "right", "new-password").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin-posts/change-password",
		strings.NewReader(`{"current_password":"wrong","new_password":"new-password"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/admin-posts/change-password",
		strings.NewReader(`{"current_password":"right","new_password":"new-password"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	mockUseCase.AssertNumberOfCalls(t, "ChangePassword", 2)
	mockUseCase.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}
