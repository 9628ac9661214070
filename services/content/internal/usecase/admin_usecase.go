package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"damai-site/pkg/jwt"
	"damai-site/pkg/logger"
	"damai-site/services/content/internal/entity"
	"damai-site/services/content/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt only hashes the first 72 bytes and rejects anything longer.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

type AdminUseCase interface {
	CreateAdmin(ctx context.Context, username, password string) (*entity.Admin, error)
	Login(ctx context.Context, username, password string) (*entity.Admin, *jwt.Session, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	ChangePassword(ctx context.Context, adminID, currentPassword, newPassword string) error
}

type adminUseCase struct {
	adminRepo  persistent.AdminRepository
	jwtService *jwt.Service
	revoker    *jwt.Revoker
	logger     *logger.Logger
}

func NewAdminUseCase(
	adminRepo persistent.AdminRepository,
	jwtService *jwt.Service,
	revoker *jwt.Revoker,
	logger *logger.Logger,
) AdminUseCase {
	return &adminUseCase{
		adminRepo:  adminRepo,
		jwtService: jwtService,
		revoker:    revoker,
		logger:     logger,
	}
}

func (uc *adminUseCase) CreateAdmin(ctx context.Context, username, password string) (*entity.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", entity.ErrValidation)
	}
	if err := checkPasswordLength("password", password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &entity.Admin{Username: username, PasswordHash: string(hash)}
	if err := uc.adminRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}

func (uc *adminUseCase) Login(ctx context.Context, username, password string) (*entity.Admin, *jwt.Session, error) {
	admin, err := uc.adminRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, entity.ErrNotFound) {
		return nil, nil, fmt.Errorf("%w: invalid credentials", entity.ErrAuth)
	}
	if err != nil {
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, nil, fmt.Errorf("%w: invalid credentials", entity.ErrAuth)
	}

	session, err := uc.jwtService.IssueSession(admin.ID, admin.Username)
	if err != nil {
		uc.logger.Error("Failed to issue session: %v", err)
		return nil, nil, fmt.Errorf("failed to issue session: %w", err)
	}

	uc.logger.Info("Admin %s logged in", admin.Username)
	return admin, session, nil
}

func (uc *adminUseCase) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return fmt.Errorf("%w: no session", entity.ErrAuth)
	}
	return uc.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

func (uc *adminUseCase) ChangePassword(ctx context.Context, adminID, currentPassword, newPassword string) error {
	if err := checkPasswordLength("new password", newPassword); err != nil {
		return err
	}

	admin, err := uc.adminRepo.GetByID(ctx, adminID)
	if errors.Is(err, entity.ErrNotFound) {
		return fmt.Errorf("%w: unknown admin", entity.ErrAuth)
	}
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("%w: current password is incorrect", entity.ErrAuth)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return uc.adminRepo.UpdatePasswordHash(ctx, adminID, string(hash))
}

func checkPasswordLength(field, password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: %s must be at least %d characters", entity.ErrValidation, field, MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: %s must be at most %d bytes", entity.ErrValidation, field, MaxPasswordLength)
	}
	return nil
}
