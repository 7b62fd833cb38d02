package repository

import (
	"context"
	"time"

	"github.com/blindbox-labs/backend/internal/entity"
	"github.com/blindbox-labs/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GetListWonPrizeFilter struct {
	UserID  string
	BoxID   string
	OrderID string
	Rarity  entity.PrizeRarity
	Begin   time.Time
	End     time.Time

	Offset int
	Limit  int
}

type WonPrizeRepository interface {
	Create(ctx context.Context, data *entity.WonPrize) error
	GetList(ctx context.Context, filter GetListWonPrizeFilter) ([]entity.WonPrize, error)
	Count(ctx context.Context, filter GetListWonPrizeFilter) (int64, error)
}

type wonPrizeRepository struct{}

func NewWonPrizeRepository() *wonPrizeRepository {
	return &wonPrizeRepository{}
}

func (r *wonPrizeRepository) Create(ctx context.Context, data *entity.WonPrize) error {
	return xcontext.DB(ctx).Create(data).Error
}

func applyWonPrizeFilter(tx *gorm.DB, filter GetListWonPrizeFilter) *gorm.DB {
	if filter.UserID != "" {
		tx = tx.Where("user_id=?", filter.UserID)
	}

	if filter.BoxID != "" {
		tx = tx.Where("box_id=?", filter.BoxID)
	}

	if filter.OrderID != "" {
		tx = tx.Where("order_id=?", filter.OrderID)
	}

	if filter.Rarity != "" {
		tx = tx.Where("prize_rarity=?", filter.Rarity)
	}

	if !filter.Begin.IsZero() {
		tx = tx.Where("obtained_at >= ?", filter.Begin)
	}

	if !filter.End.IsZero() {
		tx = tx.Where("obtained_at <= ?", filter.End)
	}

	return tx
}

func (r *wonPrizeRepository) GetList(
	ctx context.Context, filter GetListWonPrizeFilter,
) ([]entity.WonPrize, error) {
	tx := applyWonPrizeFilter(xcontext.DB(ctx).Model(&entity.WonPrize{}), filter)
	if filter.Limit > 0 {
		tx = tx.Offset(filter.Offset).Limit(filter.Limit)
	}

	var records []entity.WonPrize
	if err := tx.Order("obtained_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *wonPrizeRepository) Count(
	ctx context.Context, filter GetListWonPrizeFilter,
) (int64, error) {
	var count int64
	tx := applyWonPrizeFilter(xcontext.DB(ctx).Model(&entity.WonPrize{}), filter)
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
