package repository

import (
	"context"
	"errors"

	"shareit/internal/models"

	"gorm.io/gorm"
)

// ItemRepository defines interface for item operations
type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id uint) (*models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]*models.Item, error)
	Search(ctx context.Context, text string, limit, offset int) ([]*models.Item, error)
}

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) GetByID(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("item", id)
		}
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) Update(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *itemRepository) ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]*models.Item, error) {
	var items []*models.Item
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id asc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, err
}

// Search matches the text against item names, and against descriptions of
// items currently available for booking.
func (r *itemRepository) Search(ctx context.Context, text string, limit, offset int) ([]*models.Item, error) {
	pattern := "%" + text + "%"
	items := make([]*models.Item, 0)
	err := r.db.WithContext(ctx).
		Where("lower(name) LIKE lower(?) OR (lower(description) LIKE lower(?) AND available)", pattern, pattern).
		Order("id asc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, err
}
