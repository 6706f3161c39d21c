package repository

import (
	"context"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves live projects of one owner. Without search terms the result
// is ranked by views; a search orders by recency only.
func (r *GormProjectRepository) List(ctx context.Context, filter ProjectFilter) ([]models.Project, error) {
	projects := []models.Project{}

	query := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("user_id = ? AND deleted = ?", filter.UserID, false)

	for _, term := range filter.Terms {
		pattern := containsPattern(term)
		query = query.Where(
			"(LOWER(name) LIKE ? ESCAPE '"+likeEscape+"' OR LOWER(description) LIKE ? ESCAPE '"+likeEscape+"')",
			pattern, pattern,
		)
	}

	if len(filter.Terms) > 0 {
		query = query.Order("created_at DESC").Order("id DESC")
	} else {
		query = query.Order("view_count DESC").Order("created_at DESC").Order("id DESC")
	}

	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}

	return projects, nil
}

// UpdateDetails overwrites name and description, leaving initials untouched
func (r *GormProjectRepository) UpdateDetails(ctx context.Context, id uint64, name, description string) error {
	return r.db.WithContext(ctx).
		Model(&models.Project{ID: id}).
		Updates(map[string]interface{}{
			"name":        name,
			"description": description,
		}).Error
}

// IncrementViews atomically adds one to the view counter
func (r *GormProjectRepository) IncrementViews(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

// SoftDelete flags a project as deleted
func (r *GormProjectRepository) SoftDelete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).
		Model(&models.Project{ID: id}).
		Update("deleted", true).Error
}
