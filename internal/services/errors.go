package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/project-tracker-api/internal/access"
)

var (
	// ErrValidation marks malformed or missing input rejected before any write.
	ErrValidation = errors.New("validation failed")

	ErrFullNameRequired = fmt.Errorf("%w: full name is required", ErrValidation)
	ErrInvalidEmail     = fmt.Errorf("%w: email is invalid", ErrValidation)
	ErrPasswordRequired = fmt.Errorf("%w: password is required", ErrValidation)
	ErrNameRequired     = fmt.Errorf("%w: name is required", ErrValidation)
	ErrNameEmpty        = fmt.Errorf("%w: name cannot be empty", ErrValidation)

	ErrDuplicateAccount   = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")

	// ErrNotFound covers absent, soft-deleted, and foreign records alike.
	ErrNotFound = access.ErrNotFound

	ErrHandleExhausted      = errors.New("could not allocate a unique handle")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)
