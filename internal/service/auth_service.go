package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"vocab-service/internal/config"
	"vocab-service/internal/event"
	"vocab-service/internal/middleware"
	"vocab-service/internal/models"
	"vocab-service/internal/repository"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	Repo      *repository.UserRepository
	cfg       config.AuthConfig
	publisher *event.Publisher
}

func NewAuthService(repo *repository.UserRepository, cfg config.AuthConfig, publisher *event.Publisher) *AuthService {
	return &AuthService{Repo: repo, cfg: cfg, publisher: publisher}
}

// Register creates an account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if existing, err := s.Repo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrUserExists
	} else if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	if existing, err := s.Repo.FindByUsername(ctx, username); err == nil && existing != nil {
		return nil, ErrUserExists
	} else if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publisher.Publish(event.UserRegistered, map[string]string{"user_id": user.ID, "username": username})
	return user, nil
}

// Login verifies credentials and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !user.IsActive {
		return "", nil, ErrUserInactive
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := middleware.GenerateToken(s.cfg.JWTSecret, user.ID, user.Role, s.cfg.TokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	if err := s.Repo.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		// Login still succeeds if the timestamp write fails.
		log.Printf("update last login for %s: %v", user.ID, err)
	}
	return token, user, nil
}

// Profile returns the account for an authenticated user id.
func (s *AuthService) Profile(ctx context.Context, userID string) (*models.User, error) {
	return s.Repo.FindByID(ctx, userID)
}
