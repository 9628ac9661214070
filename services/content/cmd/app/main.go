package main

import (
	"damai-site/pkg/config"
	app "damai-site/services/content/internal/app"
)

// @title           Damai Site Content API
// @version         1.0
// @description     Updates feed and gallery for the Pusat Jagaan Warga Tua Damai website
// @termsOfService  http://swagger.io/terms/

// @contact.name   Site Admin
// @contact.email  admin@damai.example.org

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token from /admin/login.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		panic(err)
	}

	if err := application.Run(); err != nil {
		panic(err)
	}

	application.Wait()

	if err := application.Shutdown(); err != nil {
		panic(err)
	}
}
