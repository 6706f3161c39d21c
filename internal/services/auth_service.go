package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yukikurage/project-tracker-api/internal/metrics"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/utils"
)

// AuthService validates credentials and manages bearer tokens.
type AuthService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Authenticate verifies credentials and returns the account with its token.
// An unknown email and a wrong password produce the same error.
func (s *AuthService) Authenticate(ctx context.Context, input LoginInput) (*models.User, string, error) {
	account, err := s.userRepo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	user, err := s.checkPassword(ctx, account.Username, input.Password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	now := s.now()
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, "", fmt.Errorf("failed to record login: %w", err)
	}
	user.LastLogin = &now

	return user, token, nil
}

// checkPassword verifies a password against the account the handle names.
func (s *AuthService) checkPassword(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// IssueToken returns the account's live token, minting one if none exists.
// When two requests race to mint, the unique binding keeps the first and the
// loser returns it.
func (s *AuthService) IssueToken(ctx context.Context, userID uint64) (string, error) {
	existing, err := s.tokenRepo.FindByUserID(ctx, userID)
	if err == nil {
		return existing.Key, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to find token: %w", err)
	}

	key, err := utils.GenerateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	token := &models.AuthToken{Key: key, UserID: userID}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		if !errors.Is(err, repository.ErrDuplicate) {
			return "", fmt.Errorf("failed to create token: %w", err)
		}

		winner, ferr := s.tokenRepo.FindByUserID(ctx, userID)
		if ferr != nil {
			return "", fmt.Errorf("failed to reload token: %w", ferr)
		}
		return winner.Key, nil
	}

	metrics.RecordTokenIssued()
	s.logger.Info("token issued", zap.Uint64("user_id", userID))
	return key, nil
}

// ResolveToken returns the active account bound to a bearer key.
func (s *AuthService) ResolveToken(ctx context.Context, key string) (*models.User, error) {
	token, err := s.tokenRepo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to find token: %w", err)
	}

	if !token.User.IsActive {
		return nil, ErrInvalidToken
	}

	return &token.User, nil
}

// Revoke deletes the account's live token.
func (s *AuthService) Revoke(ctx context.Context, userID uint64) error {
	if err := s.tokenRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
