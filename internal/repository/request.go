package repository

import (
	"context"
	"errors"

	"shareit/internal/models"

	"gorm.io/gorm"
)

// RequestRepository defines interface for item request operations
type RequestRepository interface {
	Create(ctx context.Context, request *models.ItemRequest) error
	GetByID(ctx context.Context, id uint) (*models.ItemRequest, error)
	ListByRequestor(ctx context.Context, requestorID uint) ([]*models.ItemRequest, error)
	ListOthers(ctx context.Context, requestorID uint, limit, offset int) ([]*models.ItemRequest, error)
}

type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new RequestRepository
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, request *models.ItemRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *requestRepository) GetByID(ctx context.Context, id uint) (*models.ItemRequest, error) {
	var request models.ItemRequest
	err := r.db.WithContext(ctx).Preload("Items").First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("request", id)
		}
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) ListByRequestor(ctx context.Context, requestorID uint) ([]*models.ItemRequest, error) {
	var requests []*models.ItemRequest
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("requestor_id = ?", requestorID).
		Order("created desc").
		Find(&requests).Error
	return requests, err
}

// ListOthers returns requests from every user except the given one, ordered
// by creation time, paged.
func (r *requestRepository) ListOthers(ctx context.Context, requestorID uint, limit, offset int) ([]*models.ItemRequest, error) {
	var requests []*models.ItemRequest
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("requestor_id <> ?", requestorID).
		Order("created asc").
		Limit(limit).Offset(offset).
		Find(&requests).Error
	return requests, err
}
