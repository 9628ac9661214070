package http

import (
	"strings"
	"time"

	"damai-site/pkg/carousel"
	"damai-site/pkg/feedview"
	"damai-site/pkg/logger"
	"damai-site/pkg/middleware"
	"damai-site/pkg/response"
	"damai-site/services/content/internal/entity"
	"damai-site/services/content/internal/usecase"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedUseCase usecase.FeedUseCase
	logger      *logger.Logger
	now         func() time.Time
}

func NewFeedHandler(feedUseCase usecase.FeedUseCase, logger *logger.Logger) *FeedHandler {
	return &FeedHandler{
		feedUseCase: feedUseCase,
		logger:      logger,
		now:         time.Now,
	}
}

type CreatePostRequest struct {
	Content   string `json:"content" form:"content"`
	MediaType string `json:"media_type" form:"media_type" binding:"omitempty,mediatype"`
}

type UpdatePostRequest struct {
	ID          string `json:"id" form:"id" binding:"required"`
	Content     string `json:"content" form:"content"`
	MediaType   string `json:"media_type" form:"media_type" binding:"omitempty,mediatype"`
	RemoveMedia bool   `json:"remove_media" form:"remove_media"`
}

type DeletePostRequest struct {
	ID string `json:"id" binding:"required"`
}

type FeedQuery struct {
	Visible  int    `form:"visible" binding:"omitempty,min=0"`
	Expanded string `form:"expanded"`
	Enlarged string `form:"enlarged"`
	Key      string `form:"key" binding:"omitempty,oneof=Escape ArrowLeft ArrowRight"`
}

type FeedItemView struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	NeedsToggle  bool      `json:"needs_toggle"`
	Expanded     bool      `json:"expanded"`
	MediaURL     string    `json:"media_url,omitempty"`
	MediaType    string    `json:"media_type,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	RelativeTime string    `json:"relative_time"`
}

type LightboxView struct {
	PostID         string `json:"post_id"`
	URL            string `json:"url"`
	Type           string `json:"type"`
	Index          int    `json:"index"`
	Total          int    `json:"total"`
	ShowNavigation bool   `json:"show_navigation"`
}

type FeedView struct {
	Items        []FeedItemView `json:"items"`
	VisibleCount int            `json:"visible_count"`
	Total        int            `json:"total"`
	HasMore      bool           `json:"has_more"`
	Lightbox     *LightboxView  `json:"lightbox,omitempty"`
}

type PostDetailView struct {
	*entity.Update
	Preview      string `json:"preview"`
	RelativeTime string `json:"relative_time"`
}

// CreatePost godoc
// @Summary      Create an update
// @Description  Create a feed post from JSON, or from multipart form data with an optional "media" file
// @Tags         admin-posts
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        content formData string false "Post text"
// @Param        media_type formData string false "image or video; derived from the file when omitted" Enums(image, video)
// @Param        media formData file false "Image or video"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      413  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /admin-posts/create [post]
func (h *FeedHandler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	media, closeMedia, err := formUpload(c, "media")
	if err != nil {
		writeError(c, h.logger, "read upload", err)
		return
	}
	defer closeMedia()

	adminID := c.GetString(middleware.ContextAdminID)
	post, err := h.feedUseCase.CreatePost(c.Request.Context(), adminID, usecase.PostInput{
		Content:   req.Content,
		MediaType: entity.MediaType(req.MediaType),
		Media:     media,
	})
	if err != nil {
		writeError(c, h.logger, "create post", err)
		return
	}

	response.Success(c, post)
}

// UpdatePost godoc
// @Summary      Edit an update
// @Description  Replace content, and optionally replace or remove media. Last write wins.
// @Tags         admin-posts
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id formData string true "Post ID"
// @Param        content formData string false "Post text"
// @Param        media_type formData string false "image or video" Enums(image, video)
// @Param        remove_media formData bool false "Drop existing media"
// @Param        media formData file false "Replacement media"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      413  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /admin-posts/update [put]
func (h *FeedHandler) UpdatePost(c *gin.Context) {
	var req UpdatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	media, closeMedia, err := formUpload(c, "media")
	if err != nil {
		writeError(c, h.logger, "read upload", err)
		return
	}
	defer closeMedia()

	post, err := h.feedUseCase.UpdatePost(c.Request.Context(), req.ID, usecase.PostInput{
		Content:     req.Content,
		MediaType:   entity.MediaType(req.MediaType),
		Media:       media,
		RemoveMedia: req.RemoveMedia,
	})
	if err != nil {
		writeError(c, h.logger, "update post", err)
		return
	}

	response.Success(c, post)
}

// DeletePost godoc
// @Summary      Delete an update
// @Description  Removes the post, then its media best-effort. Deleting twice returns 404.
// @Tags         admin-posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body DeletePostRequest true "Post to delete"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin-posts [delete]
func (h *FeedHandler) DeletePost(c *gin.Context) {
	var req DeletePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.feedUseCase.DeletePost(c.Request.Context(), req.ID); err != nil {
		writeError(c, h.logger, "delete post", err)
		return
	}

	response.Success(c, nil)
}

// ListPosts godoc
// @Summary      List updates
// @Description  All updates, newest first
// @Tags         updates
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /updates [get]
func (h *FeedHandler) ListPosts(c *gin.Context) {
	posts, err := h.feedUseCase.ListPosts(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "list posts", err)
		return
	}

	response.Success(c, posts)
}

// GetPost godoc
// @Summary      Get an update
// @Description  Single post with a preview for page metadata
// @Tags         updates
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /updates/{id} [get]
func (h *FeedHandler) GetPost(c *gin.Context) {
	post, err := h.feedUseCase.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, "get post", err)
		return
	}

	response.Success(c, PostDetailView{
		Update:       post,
		Preview:      feedview.Preview(post.Content),
		RelativeTime: feedview.RelativeTime(post.CreatedAt, h.now()),
	})
}

// Feed godoc
// @Summary      Windowed feed
// @Description  Renders the public feed: the first "visible" posts (rounded up to pages of 3), with "expanded" post ids shown in full and an optional lightbox on "enlarged", moved by "key"
// @Tags         updates
// @Produce      json
// @Param        visible query int false "Posts revealed so far"
// @Param        expanded query string false "Comma-separated expanded post ids"
// @Param        enlarged query string false "Post id shown in the lightbox"
// @Param        key query string false "Key pressed in the lightbox" Enums(Escape, ArrowLeft, ArrowRight)
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /updates/feed [get]
func (h *FeedHandler) Feed(c *gin.Context) {
	var query FeedQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	posts, err := h.feedUseCase.ListPosts(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "list posts", err)
		return
	}

	state := feedview.New(toFeedItems(posts))
	for state.VisibleCount() < query.Visible && state.HasMore() {
		state.LoadMore()
	}
	for _, id := range splitIDs(query.Expanded) {
		if !state.IsExpanded(id) {
			state.ToggleExpanded(id)
		}
	}
	if query.Enlarged != "" && state.Enlarge(query.Enlarged) && query.Key != "" {
		state.HandleKey(carousel.Key(query.Key))
	}

	now := h.now()
	byID := make(map[string]*entity.Update, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}

	visible := state.Visible()
	view := FeedView{
		Items:        make([]FeedItemView, 0, len(visible)),
		VisibleCount: len(visible),
		Total:        len(posts),
		HasMore:      state.HasMore(),
	}
	for _, item := range visible {
		rendered := state.Render(item)
		createdAt := byID[item.ID].CreatedAt
		view.Items = append(view.Items, FeedItemView{
			ID:           item.ID,
			Text:         rendered.Text,
			NeedsToggle:  rendered.NeedsToggle,
			Expanded:     rendered.Expanded,
			MediaURL:     item.MediaURL,
			MediaType:    item.MediaType,
			CreatedAt:    createdAt,
			RelativeTime: feedview.RelativeTime(createdAt, now),
		})
	}
	if box, open := state.Lightbox(); open {
		view.Lightbox = &LightboxView{
			PostID:         box.PostID,
			URL:            box.URL,
			Type:           box.Type,
			Index:          box.Index,
			Total:          box.Total,
			ShowNavigation: box.ShowNavigation,
		}
	}

	response.Success(c, view)
}

func toFeedItems(posts []*entity.Update) []feedview.Item {
	items := make([]feedview.Item, len(posts))
	for i, p := range posts {
		items[i] = feedview.Item{
			ID:        p.ID,
			Content:   p.Content,
			MediaURL:  p.MediaURL,
			MediaType: string(p.MediaType),
		}
	}
	return items
}

func splitIDs(raw string) []string {
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
