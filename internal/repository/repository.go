package repository

import (
	"context"
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
)

// UserRepository defines the interface for account data access
type UserRepository interface {
	// Create inserts a user; a taken username or email yields ErrDuplicate
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by login handle
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// FindByEmail finds a user by email, ignoring case
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// UsernameExists reports whether a handle has ever been assigned
	UsernameExists(ctx context.Context, username string) (bool, error)

	// TouchLastLogin stamps the last successful authentication
	TouchLastLogin(ctx context.Context, id uint64, at time.Time) error
}

// TokenRepository defines the interface for bearer token data access
type TokenRepository interface {
	// Create persists a binding; a second token for the same user yields ErrDuplicate
	Create(ctx context.Context, token *models.AuthToken) error

	// FindByUserID finds the live token of a user
	FindByUserID(ctx context.Context, userID uint64) (*models.AuthToken, error)

	// FindByKey finds a token and preloads its user
	FindByKey(ctx context.Context, key string) (*models.AuthToken, error)

	// DeleteByUserID revokes the live token of a user
	DeleteByUserID(ctx context.Context, userID uint64) error
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	UserID uint64
	// Terms must all match name or description
	Terms []string
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(ctx context.Context, project *models.Project) error

	// FindByID finds a project by ID, soft-deleted or not
	FindByID(ctx context.Context, id uint64) (*models.Project, error)

	// List retrieves live projects matching the filter
	List(ctx context.Context, filter ProjectFilter) ([]models.Project, error)

	// UpdateDetails overwrites name and description
	UpdateDetails(ctx context.Context, id uint64, name, description string) error

	// IncrementViews atomically adds one to the view counter
	IncrementViews(ctx context.Context, id uint64) error

	// SoftDelete flags a project as deleted
	SoftDelete(ctx context.Context, id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ProjectID uint64
	// Terms match if any of them appears in code, name or description
	Terms []string
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// CreateSequenced stamps the next sequence code of the task's project and
	// inserts the task in one transaction
	CreateSequenced(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID, soft-deleted or not
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// List retrieves live tasks matching the filter
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// UpdateDetails overwrites name and description
	UpdateDetails(ctx context.Context, id uint64, name, description string) error

	// IncrementViews atomically adds one to the view counter
	IncrementViews(ctx context.Context, id uint64) error

	// SoftDelete flags a task as deleted
	SoftDelete(ctx context.Context, id uint64) error
}
