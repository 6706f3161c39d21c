package repository

import (
	"context"
	"strings"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// CreateSequenced assigns the task the next ordinal of its project and inserts it.
//
// Bumping the project's counter row first takes that row's write lock, so
// concurrent creators in the same project queue behind each other. The
// counter is reconciled with the highest stored ordinal so it can never hand
// out a used number, and the (project_id, seq) unique index rejects anything
// that slips through.
func (r *GormTaskRepository) CreateSequenced(ctx context.Context, task *models.Task) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Project{}).
			Where("id = ?", task.ProjectID).
			UpdateColumn("task_sequence", gorm.Expr("task_sequence + ?", 1)).Error; err != nil {
			return err
		}

		var project models.Project
		if err := tx.Select("id", "initials", "task_sequence").First(&project, task.ProjectID).Error; err != nil {
			return err
		}

		var maxSeq uint64
		if err := tx.Model(&models.Task{}).
			Where("project_id = ?", task.ProjectID).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&maxSeq).Error; err != nil {
			return err
		}

		next := project.TaskSequence
		if maxSeq >= next {
			next = maxSeq + 1
			if err := tx.Model(&models.Project{}).
				Where("id = ?", task.ProjectID).
				UpdateColumn("task_sequence", next).Error; err != nil {
				return err
			}
		}

		task.Seq = next
		task.Code = models.SequenceCode(project.Initials, next)

		return tx.Create(task).Error
	})
	return translate(err)
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves live tasks of one project, always ranked by views then recency
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	tasks := []models.Task{}

	query := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("project_id = ? AND deleted = ?", filter.ProjectID, false)

	if len(filter.Terms) > 0 {
		clauses := make([]string, 0, len(filter.Terms))
		args := make([]interface{}, 0, len(filter.Terms)*3)
		for _, term := range filter.Terms {
			pattern := containsPattern(term)
			clauses = append(clauses,
				"LOWER(code) LIKE ? ESCAPE '"+likeEscape+"' OR LOWER(name) LIKE ? ESCAPE '"+likeEscape+"' OR LOWER(description) LIKE ? ESCAPE '"+likeEscape+"'",
			)
			args = append(args, pattern, pattern, pattern)
		}
		query = query.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}

	if err := query.
		Order("view_count DESC").
		Order("created_at DESC").
		Order("id DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// UpdateDetails overwrites name and description; status and code stay as they are
func (r *GormTaskRepository) UpdateDetails(ctx context.Context, id uint64, name, description string) error {
	return r.db.WithContext(ctx).
		Model(&models.Task{ID: id}).
		Updates(map[string]interface{}{
			"name":        name,
			"description": description,
		}).Error
}

// IncrementViews atomically adds one to the view counter
func (r *GormTaskRepository) IncrementViews(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

// SoftDelete flags a task as deleted
func (r *GormTaskRepository) SoftDelete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).
		Model(&models.Task{ID: id}).
		Update("deleted", true).Error
}
