package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/project-tracker-api/internal/access"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/utils"
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	logger      *zap.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		logger:      logger,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	OwnerID     uint64
	Name        string
	Description string
}

// UpdateProjectInput represents a partial project edit
type UpdateProjectInput struct {
	Name        *string
	Description *string
}

// ProjectDetail is a project with its live tasks
type ProjectDetail struct {
	Project *models.Project
	Tasks   []models.Task
}

// CreateProject creates a project and derives its initials from the name
func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}

	project := &models.Project{
		Name:        input.Name,
		Initials:    utils.Initials(input.Name),
		Description: input.Description,
		UserID:      input.OwnerID,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Debug("project created",
		zap.Uint64("project_id", project.ID),
		zap.Uint64("user_id", project.UserID),
	)
	return project, nil
}

// ListProjects returns the owner's live projects. An empty query ranks by
// views then recency; a search ranks by recency alone and requires every
// term to appear in the name or description.
func (s *ProjectService) ListProjects(ctx context.Context, ownerID uint64, query string) ([]models.Project, error) {
	projects, err := s.projectRepo.List(ctx, repository.ProjectFilter{
		UserID: ownerID,
		Terms:  repository.SplitQuery(query),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject records a view and returns the project with its live tasks,
// filtered by query the same way task listings are
func (s *ProjectService) GetProject(ctx context.Context, ownerID, projectID uint64, query string) (*ProjectDetail, error) {
	if _, err := s.loadOwned(ctx, ownerID, projectID, access.RequireLive()); err != nil {
		return nil, err
	}

	if err := s.projectRepo.IncrementViews(ctx, projectID); err != nil {
		return nil, fmt.Errorf("failed to record project view: %w", err)
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload project: %w", err)
	}

	tasks, err := s.taskRepo.List(ctx, repository.TaskFilter{
		ProjectID: projectID,
		Terms:     repository.SplitQuery(query),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list project tasks: %w", err)
	}

	return &ProjectDetail{Project: project, Tasks: tasks}, nil
}

// UpdateProject edits name and/or description. Initials are never recomputed.
//
// Unlike every other project operation the lookup here does not skip
// soft-deleted projects.
// TODO: confirm with product whether edits to deleted projects should be NotFound.
func (s *ProjectService) UpdateProject(ctx context.Context, ownerID, projectID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.loadOwned(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrNameEmpty
		}
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}

	if err := s.projectRepo.UpdateDetails(ctx, project.ID, project.Name, project.Description); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	if project.Deleted {
		s.logger.Warn("soft-deleted project edited", zap.Uint64("project_id", project.ID))
	}

	return s.projectRepo.FindByID(ctx, project.ID)
}

// DeleteProject soft-deletes a project; deleting it again still succeeds
func (s *ProjectService) DeleteProject(ctx context.Context, ownerID, projectID uint64) error {
	project, err := s.loadOwned(ctx, ownerID, projectID)
	if err != nil {
		return err
	}

	if project.Deleted {
		return nil
	}

	if err := s.projectRepo.SoftDelete(ctx, project.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// loadOwned fetches a project and scopes it to the owner
func (s *ProjectService) loadOwned(ctx context.Context, ownerID, projectID uint64, opts ...access.Option) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if err := access.Scope(ownerID, project, opts...); err != nil {
		return nil, err
	}

	return project, nil
}
