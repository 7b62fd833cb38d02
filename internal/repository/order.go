package repository

import (
	"context"
	"time"

	"github.com/blindbox-labs/backend/internal/entity"
	"github.com/blindbox-labs/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GetListOrderFilter struct {
	UserID string
	BoxID  string
	Status entity.OrderStatus
	Begin  time.Time
	End    time.Time

	Offset int
	Limit  int
}

type OrderRepository interface {
	Create(ctx context.Context, data *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetList(ctx context.Context, filter GetListOrderFilter) ([]entity.Order, error)
	Count(ctx context.Context, filter GetListOrderFilter) (int64, error)
}

type orderRepository struct{}

func NewOrderRepository() *orderRepository {
	return &orderRepository{}
}

func (r *orderRepository) Create(ctx context.Context, data *entity.Order) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var record entity.Order
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func applyOrderFilter(tx *gorm.DB, filter GetListOrderFilter) *gorm.DB {
	if filter.UserID != "" {
		tx = tx.Where("user_id=?", filter.UserID)
	}

	if filter.BoxID != "" {
		tx = tx.Where("box_id=?", filter.BoxID)
	}

	if filter.Status != "" {
		tx = tx.Where("status=?", filter.Status)
	}

	if !filter.Begin.IsZero() {
		tx = tx.Where("created_at >= ?", filter.Begin)
	}

	if !filter.End.IsZero() {
		tx = tx.Where("created_at <= ?", filter.End)
	}

	return tx
}

func (r *orderRepository) GetList(ctx context.Context, filter GetListOrderFilter) ([]entity.Order, error) {
	tx := applyOrderFilter(xcontext.DB(ctx).Model(&entity.Order{}), filter)
	if filter.Limit > 0 {
		tx = tx.Offset(filter.Offset).Limit(filter.Limit)
	}

	var records []entity.Order
	if err := tx.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *orderRepository) Count(ctx context.Context, filter GetListOrderFilter) (int64, error) {
	var count int64
	tx := applyOrderFilter(xcontext.DB(ctx).Model(&entity.Order{}), filter)
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
