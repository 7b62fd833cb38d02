package repository

import (
	"context"

	"github.com/blindbox-labs/backend/internal/entity"
	"github.com/blindbox-labs/backend/pkg/xcontext"
)

type PrizeRepository interface {
	Create(ctx context.Context, data *entity.Prize) error
	GetByID(ctx context.Context, id string) (*entity.Prize, error)

	// GetByBoxID returns a box's prize table in its persisted catalog
	// order, which the draw depends on being stable.
	GetByBoxID(ctx context.Context, boxID string) ([]entity.Prize, error)
}

type prizeRepository struct{}

func NewPrizeRepository() *prizeRepository {
	return &prizeRepository{}
}

func (r *prizeRepository) Create(ctx context.Context, data *entity.Prize) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *prizeRepository) GetByID(ctx context.Context, id string) (*entity.Prize, error) {
	var record entity.Prize
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *prizeRepository) GetByBoxID(ctx context.Context, boxID string) ([]entity.Prize, error) {
	var records []entity.Prize
	err := xcontext.DB(ctx).
		Where("box_id=?", boxID).
		Order("catalog_order ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
