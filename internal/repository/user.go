package repository

import (
	"context"
	"errors"

	"github.com/blindbox-labs/backend/internal/entity"
	"github.com/blindbox-labs/backend/pkg/xcontext"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// ApplyBalanceDelta is the single balance mutation entrypoint. It fails
	// with gorm.ErrRecordNotFound when the delta would push the balance
	// below zero (or the user does not exist).
	ApplyBalanceDelta(ctx context.Context, userID string, delta decimal.Decimal) error
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) ApplyBalanceDelta(
	ctx context.Context, userID string, delta decimal.Decimal,
) error {
	// The floor check and the mutation are one statement, so two concurrent
	// deltas against the same user cannot both pass the check.
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=? AND balance + ? >= 0", userID, delta).
		Update("balance", gorm.Expr("balance + ?", delta))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of rows effected is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
