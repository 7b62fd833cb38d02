package repository

import (
	"context"

	"github.com/blindbox-labs/backend/internal/entity"
	"github.com/blindbox-labs/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GetListBoxFilter struct {
	Status entity.BoxStatus
	Offset int
	Limit  int
}

type BoxRepository interface {
	Create(ctx context.Context, data *entity.Box) error
	GetByID(ctx context.Context, id string) (*entity.Box, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Box, error)
	GetList(ctx context.Context, filter GetListBoxFilter) ([]entity.Box, error)
	GetTopBySales(ctx context.Context, limit int) ([]entity.Box, error)
	UpdateByID(ctx context.Context, id string, data *entity.Box) error

	// DecrementStock removes quantity units of stock and records them as
	// sales in one guarded statement. It fails with gorm.ErrRecordNotFound
	// when the remaining stock is not enough (or the box does not exist).
	DecrementStock(ctx context.Context, boxID string, quantity int) error
}

type boxRepository struct{}

func NewBoxRepository() *boxRepository {
	return &boxRepository{}
}

func (r *boxRepository) Create(ctx context.Context, data *entity.Box) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *boxRepository) GetByID(ctx context.Context, id string) (*entity.Box, error) {
	var record entity.Box
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *boxRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Box, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []entity.Box
	if err := xcontext.DB(ctx).Find(&records, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *boxRepository) GetList(ctx context.Context, filter GetListBoxFilter) ([]entity.Box, error) {
	tx := xcontext.DB(ctx).Model(&entity.Box{})
	if filter.Status != "" {
		tx = tx.Where("status=?", filter.Status)
	}

	if filter.Limit > 0 {
		tx = tx.Offset(filter.Offset).Limit(filter.Limit)
	}

	var records []entity.Box
	if err := tx.Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *boxRepository) GetTopBySales(ctx context.Context, limit int) ([]entity.Box, error) {
	var records []entity.Box
	err := xcontext.DB(ctx).
		Where("status=?", entity.BoxStatusActive).
		Order("sales DESC").Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *boxRepository) UpdateByID(ctx context.Context, id string, data *entity.Box) error {
	updateMap := map[string]any{}
	if data.Name != "" {
		updateMap["name"] = data.Name
	}

	if data.Description != "" {
		updateMap["description"] = data.Description
	}

	if data.ImageURL != "" {
		updateMap["image_url"] = data.ImageURL
	}

	if !data.Price.IsZero() {
		updateMap["price"] = data.Price
	}

	if data.Stock > 0 {
		updateMap["stock"] = data.Stock
	}

	if data.Status != "" {
		updateMap["status"] = data.Status
	}

	return xcontext.DB(ctx).Model(&entity.Box{}).Where("id=?", id).Updates(updateMap).Error
}

func (r *boxRepository) DecrementStock(ctx context.Context, boxID string, quantity int) error {
	tx := xcontext.DB(ctx).Model(&entity.Box{}).
		Where("id=? AND stock >= ?", boxID, quantity).
		Updates(map[string]any{
			"stock": gorm.Expr("stock - ?", quantity),
			"sales": gorm.Expr("sales + ?", quantity),
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
