package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"damai-site/pkg/config"
	"damai-site/pkg/database"
	"damai-site/pkg/logger"
	"damai-site/pkg/s3"
	"damai-site/services/content/internal/entity"
	"damai-site/services/content/internal/repo/persistent"
	"damai-site/services/content/internal/usecase"

	"gorm.io/gorm"
)

var sampleUpdates = []string{
	"Meal drive today",
	"Thank you to everyone who joined our Hari Raya open house. The residents loved the ketupat and the singing.",
	"We are looking for volunteers for the Saturday morning exercise session. Please contact the office if you can help.",
}

func main() {
	var (
		username   = flag.String("username", getEnv("SEED_ADMIN_USERNAME", "admin"), "admin username")
		password   = flag.String("password", os.Getenv("SEED_ADMIN_PASSWORD"), "admin password (or SEED_ADMIN_PASSWORD)")
		samples    = flag.Bool("samples", false, "insert sample updates")
		galleryDir = flag.String("gallery-dir", "", "upload every image in this directory to the gallery")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	defer log.Sync()

	db, err := database.Open(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}
	if cfg.DBDriver == "sqlite" {
		if err := persistent.AutoMigrate(db); err != nil {
			panic(err)
		}
	}

	ctx := context.Background()
	admin, err := ensureAdmin(ctx, db, log, *username, *password)
	if err != nil {
		log.Error("Failed to seed admin: %v", err)
		panic(err)
	}

	if *samples {
		if err := seedUpdates(ctx, db, log, admin.ID); err != nil {
			log.Error("Failed to seed updates: %v", err)
			panic(err)
		}
	}

	if *galleryDir != "" {
		s3Client, err := s3.NewClient(cfg)
		if err != nil {
			log.Error("Failed to create S3 client: %v", err)
			panic(err)
		}
		if err := seedGallery(ctx, db, s3Client, log, admin.ID, *galleryDir); err != nil {
			log.Error("Failed to seed gallery: %v", err)
			panic(err)
		}
	}

	log.Info("Database seeded successfully!")
}

func ensureAdmin(ctx context.Context, db *gorm.DB, log *logger.Logger, username, password string) (*entity.Admin, error) {
	adminRepo := persistent.NewAdminRepository(db)

	existing, err := adminRepo.GetByUsername(ctx, username)
	if err == nil {
		log.Info("Admin %s already exists, leaving password unchanged", username)
		return existing, nil
	}
	if !errors.Is(err, entity.ErrNotFound) {
		return nil, err
	}

	// Sessions are not issued here, so the admin usecase runs without jwt.
	admins := usecase.NewAdminUseCase(adminRepo, nil, nil, log)
	admin, err := admins.CreateAdmin(ctx, username, password)
	if err != nil {
		return nil, err
	}
	log.Info("Created admin %s (%s)", admin.Username, admin.ID)
	return admin, nil
}

func seedUpdates(ctx context.Context, db *gorm.DB, log *logger.Logger, adminID string) error {
	feed := usecase.NewFeedUseCase(persistent.NewUpdateRepository(db), persistent.NewAdminRepository(db), nil, nil, nil, log)
	for _, content := range sampleUpdates {
		post, err := feed.CreatePost(ctx, adminID, usecase.PostInput{Content: content})
		if err != nil {
			return err
		}
		log.Info("Created update %s", post.ID)
	}
	return nil
}

func seedGallery(ctx context.Context, db *gorm.DB, store usecase.MediaStore, log *logger.Logger, adminID, dir string) error {
	gallery := usecase.NewGalleryUseCase(persistent.NewGalleryRepository(db), persistent.NewAdminRepository(db), store, nil, nil, log)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		contentType := mime.TypeByExtension(filepath.Ext(entry.Name()))
		if !strings.HasPrefix(contentType, "image/") {
			log.Warn("Skipping %s: not an image", entry.Name())
			continue
		}

		f, err := os.Open(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		caption := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		image, err := gallery.CreateImage(ctx, adminID, caption, &usecase.MediaUpload{
			Filename:    entry.Name(),
			ContentType: contentType,
			Body:        f,
		})
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", entry.Name(), err)
		}
		log.Info("Uploaded %s as gallery image #%d", entry.Name(), image.DisplayOrder)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
