package repository

import (
	"context"

	"shareit/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByItem(ctx context.Context, itemID uint) ([]models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) ListByItem(ctx context.Context, itemID uint) ([]models.Comment, error) {
	comments := make([]models.Comment, 0)
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_date asc").
		Find(&comments).Error
	return comments, err
}
