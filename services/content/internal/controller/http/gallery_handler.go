package http

import (
	"damai-site/pkg/carousel"
	"damai-site/pkg/galleryview"
	"damai-site/pkg/logger"
	"damai-site/pkg/middleware"
	"damai-site/pkg/response"
	"damai-site/services/content/internal/entity"
	"damai-site/services/content/internal/usecase"

	"github.com/gin-gonic/gin"
)

type GalleryHandler struct {
	galleryUseCase usecase.GalleryUseCase
	logger         *logger.Logger
}

func NewGalleryHandler(galleryUseCase usecase.GalleryUseCase, logger *logger.Logger) *GalleryHandler {
	return &GalleryHandler{
		galleryUseCase: galleryUseCase,
		logger:         logger,
	}
}

type CreateImageRequest struct {
	Caption string `form:"caption"`
}

type UpdateCaptionRequest struct {
	ID      string `json:"id" binding:"required"`
	Caption string `json:"caption"`
}

type CarouselQuery struct {
	Index    int    `form:"index" binding:"omitempty,min=0"`
	Enlarged bool   `form:"enlarged"`
	Key      string `form:"key" binding:"omitempty,oneof=Escape ArrowLeft ArrowRight"`
}

type CarouselView struct {
	Current *entity.GalleryImage `json:"current,omitempty"`
	Index   int                  `json:"index"`
	Total   int                  `json:"total"`
	Counter string               `json:"counter"`
	Prev    int                  `json:"prev"`
	Next    int                  `json:"next"`
	Overlay *OverlayView         `json:"overlay,omitempty"`
}

type OverlayView struct {
	URL            string `json:"url"`
	Caption        string `json:"caption,omitempty"`
	Index          int    `json:"index"`
	ShowNavigation bool   `json:"show_navigation"`
}

// ListImages godoc
// @Summary      List gallery images
// @Description  All gallery images in ascending display order
// @Tags         gallery
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /gallery-images [get]
func (h *GalleryHandler) ListImages(c *gin.Context) {
	images, err := h.galleryUseCase.ListImages(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "list gallery images", err)
		return
	}

	response.Success(c, images)
}

// CreateImage godoc
// @Summary      Add a gallery image
// @Description  Uploads the image and appends it after the last display order
// @Tags         gallery
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        caption formData string false "Caption"
// @Param        image formData file true "Image file"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      413  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /gallery-images [post]
func (h *GalleryHandler) CreateImage(c *gin.Context) {
	var req CreateImageRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	image, closeImage, err := formUpload(c, "image")
	if err != nil {
		writeError(c, h.logger, "read upload", err)
		return
	}
	defer closeImage()

	adminID := c.GetString(middleware.ContextAdminID)
	created, err := h.galleryUseCase.CreateImage(c.Request.Context(), adminID, req.Caption, image)
	if err != nil {
		writeError(c, h.logger, "create gallery image", err)
		return
	}

	response.Success(c, created)
}

// UpdateCaption godoc
// @Summary      Edit a caption
// @Tags         gallery
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateCaptionRequest true "Caption change"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /gallery-images [put]
func (h *GalleryHandler) UpdateCaption(c *gin.Context) {
	var req UpdateCaptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	image, err := h.galleryUseCase.UpdateCaption(c.Request.Context(), req.ID, req.Caption)
	if err != nil {
		writeError(c, h.logger, "update caption", err)
		return
	}

	response.Success(c, image)
}

// DeleteImage godoc
// @Summary      Delete a gallery image
// @Description  Removes the row, then the stored image best-effort
// @Tags         gallery
// @Produce      json
// @Security     BearerAuth
// @Param        id query string true "Image ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /gallery-images [delete]
func (h *GalleryHandler) DeleteImage(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		response.BadRequest(c, "id is required")
		return
	}

	if err := h.galleryUseCase.DeleteImage(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, "delete gallery image", err)
		return
	}

	response.Success(c, nil)
}

// Carousel godoc
// @Summary      Gallery carousel state
// @Description  Resolves the carousel at "index" (out of range falls back to 0), optionally with the overlay open and a key applied to it
// @Tags         gallery
// @Produce      json
// @Param        index query int false "Carousel index"
// @Param        enlarged query bool false "Overlay open"
// @Param        key query string false "Key pressed in the overlay" Enums(Escape, ArrowLeft, ArrowRight)
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /gallery-images/carousel [get]
func (h *GalleryHandler) Carousel(c *gin.Context) {
	var query CarouselQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	images, err := h.galleryUseCase.ListImages(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "list gallery images", err)
		return
	}

	views := make([]galleryview.Image, len(images))
	for i, img := range images {
		views[i] = galleryview.Image{ID: img.ID, URL: img.ImageURL, Caption: img.Caption}
	}
	state := galleryview.New(views)
	state.JumpTo(query.Index)
	if query.Enlarged && state.Enlarge() && query.Key != "" {
		state.HandleKey(carousel.Key(query.Key))
	}

	view := CarouselView{
		Index:   state.Index(),
		Total:   state.Len(),
		Counter: state.Counter(),
		Prev:    carousel.Prev(state.Index(), state.Len()),
		Next:    carousel.Next(state.Index(), state.Len()),
	}
	if state.Len() > 0 {
		view.Current = images[state.Index()]
	}
	if overlay, open := state.Overlay(); open {
		view.Overlay = &OverlayView{
			URL:            overlay.URL,
			Caption:        overlay.Caption,
			Index:          overlay.Index,
			ShowNavigation: overlay.ShowNavigation,
		}
	}

	response.Success(c, view)
}
