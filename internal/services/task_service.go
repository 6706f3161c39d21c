package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/project-tracker-api/internal/access"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/metrics"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
)

const sequenceRetryDelay = 10 * time.Millisecond

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	logger      *zap.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, logger *zap.Logger) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	OwnerID     uint64
	ProjectID   uint64
	Name        string
	Description string
}

// UpdateTaskInput represents a partial task edit; status and code are not editable here
type UpdateTaskInput struct {
	Name        *string
	Description *string
}

// CreateTask creates a task under one of the owner's live projects and stamps
// it with the project's next sequence code
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}

	if _, err := s.loadProject(ctx, input.OwnerID, input.ProjectID); err != nil {
		return nil, err
	}

	var task *models.Task
	backoff := retry.WithMaxRetries(constants.MaxSequenceRetries, retry.NewConstant(sequenceRetryDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		task = &models.Task{
			Name:        input.Name,
			Description: input.Description,
			Status:      models.TaskStatusPending,
			UserID:      input.OwnerID,
			ProjectID:   input.ProjectID,
		}

		err := s.taskRepo.CreateSequenced(ctx, task)
		if errors.Is(err, repository.ErrDuplicate) {
			metrics.RecordSequenceConflict()
			s.logger.Warn("sequence code taken, retrying", zap.Uint64("project_id", input.ProjectID))
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	metrics.RecordTaskSequenced()
	return task, nil
}

// GetTask records a view and returns the task
func (s *TaskService) GetTask(ctx context.Context, ownerID, taskID uint64) (*models.Task, error) {
	if _, err := s.loadOwned(ctx, ownerID, taskID); err != nil {
		return nil, err
	}

	if err := s.taskRepo.IncrementViews(ctx, taskID); err != nil {
		return nil, fmt.Errorf("failed to record task view: %w", err)
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}
	return task, nil
}

// ListTasks returns live tasks of one of the owner's live projects, ranked by
// views then recency. A task matches a query if any term appears in its code,
// name, or description.
func (s *TaskService) ListTasks(ctx context.Context, ownerID, projectID uint64, query string) ([]models.Task, error) {
	if _, err := s.loadProject(ctx, ownerID, projectID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.List(ctx, repository.TaskFilter{
		ProjectID: projectID,
		Terms:     repository.SplitQuery(query),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask edits name and/or description of a live task
func (s *TaskService) UpdateTask(ctx context.Context, ownerID, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.loadOwned(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrNameEmpty
		}
		task.Name = *input.Name
	}
	if input.Description != nil {
		task.Description = *input.Description
	}

	if err := s.taskRepo.UpdateDetails(ctx, task.ID, task.Name, task.Description); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(ctx, task.ID)
}

// DeleteTask soft-deletes a task; deleting it again still succeeds
func (s *TaskService) DeleteTask(ctx context.Context, ownerID, taskID uint64) error {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return err
	}
	if err := access.Scope(ownerID, task); err != nil {
		return err
	}

	if task.Deleted {
		return nil
	}

	if err := s.taskRepo.SoftDelete(ctx, task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// loadOwned fetches a live task scoped to the owner
func (s *TaskService) loadOwned(ctx context.Context, ownerID, taskID uint64) (*models.Task, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := access.Scope(ownerID, task, access.RequireLive()); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) findTask(ctx context.Context, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// loadProject fetches a live project scoped to the owner
func (s *TaskService) loadProject(ctx context.Context, ownerID, projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if err := access.Scope(ownerID, project, access.RequireLive()); err != nil {
		return nil, err
	}
	return project, nil
}
