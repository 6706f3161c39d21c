package repository

import (
	"context"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormTokenRepository is a GORM implementation of TokenRepository
type GormTokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &GormTokenRepository{db: db}
}

// Create persists a token binding
func (r *GormTokenRepository) Create(ctx context.Context, token *models.AuthToken) error {
	return translate(r.db.WithContext(ctx).Create(token).Error)
}

// FindByUserID finds the live token of a user
func (r *GormTokenRepository) FindByUserID(ctx context.Context, userID uint64) (*models.AuthToken, error) {
	var token models.AuthToken
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// FindByKey finds a token and its user
func (r *GormTokenRepository) FindByKey(ctx context.Context, key string) (*models.AuthToken, error) {
	// A zero-valued struct condition would match every row
	if key == "" {
		return nil, gorm.ErrRecordNotFound
	}

	var token models.AuthToken
	if err := r.db.WithContext(ctx).Preload("User").Where(&models.AuthToken{Key: key}).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// DeleteByUserID revokes the live token of a user
func (r *GormTokenRepository) DeleteByUserID(ctx context.Context, userID uint64) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.AuthToken{}).Error
}
