// internal/domain/staff/service.go
package staff

import (
	"context"
	"fmt"

	"github.com/winston-coffee/ordering-backend/internal/config"
	"github.com/winston-coffee/ordering-backend/internal/pkg/apperrors"
	"github.com/winston-coffee/ordering-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// Service handles staff authentication
type Service struct {
	db        *gorm.DB
	jwt       *auth.JWTManager
	passwords *auth.PasswordManager
}

// NewService creates a new staff service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:        db,
		jwt:       auth.NewJWTManager(cfg),
		passwords: auth.NewPasswordManager(cfg),
	}
}

// LoginRequest represents a staff login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token
type LoginResponse struct {
	Token string `json:"token"`
	Staff Staff  `json:"staff"`
}

// Login verifies credentials and issues an access token
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	var account Staff
	err := s.db.WithContext(ctx).
		Where("username = ? AND is_active = ?", req.Username, true).
		First(&account).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.Validation("invalid username or password")
		}
		return nil, apperrors.Fetch("failed to look up staff account", err)
	}

	if err := s.passwords.VerifyPassword(req.Password, account.PasswordHash); err != nil {
		return nil, apperrors.Validation("invalid username or password")
	}

	token, err := s.jwt.GenerateToken(account.ID, account.Username, account.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResponse{Token: token, Staff: account}, nil
}

// Create adds a staff account; used by seeding and the admin surface
func (s *Service) Create(ctx context.Context, username, password, role string) (*Staff, error) {
	hash, err := s.passwords.HashPassword(password)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	account := Staff{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(&account).Error; err != nil {
		return nil, apperrors.Persistence("failed to create staff account", err)
	}
	return &account, nil
}
