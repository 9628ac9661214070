package app

import (
	"net/http"
	"time"

	"damai-site/pkg/config"
	"damai-site/pkg/logger"
	"damai-site/pkg/middleware"
	"damai-site/pkg/response"
	contentHTTP "damai-site/services/content/internal/controller/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Feed    *contentHTTP.FeedHandler
	Gallery *contentHTTP.GalleryHandler
	Admin   *contentHTTP.AdminHandler
}

// NewRouter mounts the public site API. Every content mutation sits behind
// auth; reads are public.
func NewRouter(cfg *config.Config, log *logger.Logger, h Handlers, auth gin.HandlerFunc, redisClient *redis.Client) *gin.Engine {
	contentHTTP.RegisterValidators()

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.New(corsConfig(cfg.CORSAllowOrigins)))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.NoMethod(response.MethodNotAllowed)
	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Not found")
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("")
	api.Use(middleware.RateLimitMiddleware(redisClient, cfg.RateLimitPerMin, time.Minute))
	api.Use(middleware.BodyLimit(cfg.MaxUploadBytes()))

	{
		api.GET("/updates", h.Feed.ListPosts)
		api.GET("/updates/feed", h.Feed.Feed)
		api.GET("/updates/:id", h.Feed.GetPost)
		api.GET("/gallery-images", h.Gallery.ListImages)
		api.GET("/gallery-images/carousel", h.Gallery.Carousel)
		api.POST("/admin/login", h.Admin.Login)
	}

	admin := api.Group("")
	admin.Use(auth)
	{
		admin.POST("/admin/logout", h.Admin.Logout)
		admin.POST("/admin-posts/create", h.Feed.CreatePost)
		admin.PUT("/admin-posts/update", h.Feed.UpdatePost)
		admin.DELETE("/admin-posts", h.Feed.DeletePost)
		admin.POST("/admin-posts/change-password", h.Admin.ChangePassword)
		admin.POST("/gallery-images", h.Gallery.CreateImage)
		admin.PUT("/gallery-images", h.Gallery.UpdateCaption)
		admin.DELETE("/gallery-images", h.Gallery.DeleteImage)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization", "X-Client-Info", "Apikey"},
		MaxAge:       12 * time.Hour,
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
