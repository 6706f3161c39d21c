package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/metrics"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/utils"
)

// IdentityService provisions accounts with collision-free handles.
type IdentityService struct {
	userRepo repository.UserRepository
	validate *validator.Validate
	logger   *zap.Logger
	hashCost int
}

// NewIdentityService creates a new IdentityService.
func NewIdentityService(userRepo repository.UserRepository, logger *zap.Logger) *IdentityService {
	return &IdentityService{
		userRepo: userRepo,
		validate: validator.New(),
		logger:   logger,
		hashCost: bcrypt.DefaultCost,
	}
}

// ProvisionInput represents the required information to create an account.
type ProvisionInput struct {
	FullName string
	Email    string
	Password string
}

// Provision creates an account whose handle is derived from the full name.
//
// Candidates are tried in order (base, base1, base2, ...). The unique index on
// users.username decides races between concurrent signups; a loser moves on
// to the next suffix, at most MaxHandleConflicts times.
func (s *IdentityService) Provision(ctx context.Context, input ProvisionInput) (*models.User, error) {
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, ErrFullNameRequired
	}
	email := normalizeEmail(input.Email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, ErrInvalidEmail
	}
	if input.Password == "" {
		return nil, ErrPasswordRequired
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateAccount
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	firstName, lastName := utils.SplitFullName(fullName)
	base := utils.HandleBase(fullName)

	conflicts := 0
	for n := 0; ; n++ {
		candidate := utils.HandleCandidate(base, n)

		taken, err := s.userRepo.UsernameExists(ctx, candidate)
		if err != nil {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if taken {
			metrics.RecordHandleCollision("lookup")
			continue
		}

		user := &models.User{
			Username:     candidate,
			FirstName:    firstName,
			LastName:     lastName,
			Email:        email,
			PasswordHash: string(hashedPassword),
			IsActive:     true,
		}

		err = s.userRepo.Create(ctx, user)
		if err == nil {
			metrics.RecordAccountProvisioned()
			s.logger.Info("account provisioned",
				zap.Uint64("user_id", user.ID),
				zap.String("username", user.Username),
			)
			return user, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		// The conflicting row may be a concurrent signup with the same email
		if _, ferr := s.userRepo.FindByEmail(ctx, email); ferr == nil {
			return nil, ErrDuplicateAccount
		}

		conflicts++
		metrics.RecordHandleCollision("insert")
		s.logger.Warn("handle claimed concurrently, retrying",
			zap.String("username", candidate),
			zap.Int("conflicts", conflicts),
		)
		if conflicts >= constants.MaxHandleConflicts {
			return nil, ErrHandleExhausted
		}
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
