package domain

import (
	"context"
	"errors"
	"time"

	"github.com/blindbox-labs/backend/internal/entity"
	"github.com/blindbox-labs/backend/internal/model"
	"github.com/blindbox-labs/backend/internal/repository"
	"github.com/blindbox-labs/backend/pkg/crypto"
	"github.com/blindbox-labs/backend/pkg/errorx"
	"github.com/blindbox-labs/backend/pkg/idutil"
	"github.com/blindbox-labs/backend/pkg/xcontext"
	"github.com/blindbox-labs/backend/pkg/xredis"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseDomain interface {
	BuyBox(context.Context, *model.BuyBoxRequest) (*model.BuyBoxResponse, error)
}

type purchaseDomain struct {
	userRepo     repository.UserRepository
	boxRepo      repository.BoxRepository
	prizeRepo    repository.PrizeRepository
	orderRepo    repository.OrderRepository
	wonPrizeRepo repository.WonPrizeRepository
	redisClient  xredis.Client

	// roll returns a uniform value in [0, 1). Injected so tests can feed a
	// deterministic sequence of draws.
	roll func() float64
}

func NewPurchaseDomain(
	userRepo repository.UserRepository,
	boxRepo repository.BoxRepository,
	prizeRepo repository.PrizeRepository,
	orderRepo repository.OrderRepository,
	wonPrizeRepo repository.WonPrizeRepository,
	redisClient xredis.Client,
) *purchaseDomain {
	return &purchaseDomain{
		userRepo:     userRepo,
		boxRepo:      boxRepo,
		prizeRepo:    prizeRepo,
		orderRepo:    orderRepo,
		wonPrizeRepo: wonPrizeRepo,
		redisClient:  redisClient,
		roll:         crypto.RandFloat,
	}
}

func (d *purchaseDomain) BuyBox(
	ctx context.Context, req *model.BuyBoxRequest,
) (*model.BuyBoxResponse, error) {
	maxQuantity := xcontext.Configs(ctx).Shop.MaxQuantityPerOrder
	if req.Quantity < 1 || req.Quantity > maxQuantity {
		return nil, errorx.New(errorx.BadRequest,
			"Quantity must be between 1 and %d", maxQuantity)
	}

	userID := xcontext.RequestUserID(ctx)
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if user.Status != entity.UserStatusEnabled {
		return nil, errorx.New(errorx.PermissionDenied, "User is disabled")
	}

	box, err := d.boxRepo.GetByID(ctx, req.BoxID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found box")
		}

		xcontext.Logger(ctx).Errorf("Cannot get box: %v", err)
		return nil, errorx.Unknown
	}

	if box.Status != entity.BoxStatusActive {
		return nil, errorx.New(errorx.Unavailable, "Box is not available for purchase")
	}

	if box.Stock < req.Quantity {
		return nil, errorx.New(errorx.InsufficientStock,
			"Insufficient stock, only %d remaining", box.Stock)
	}

	totalAmount := box.Price.Mul(decimal.NewFromInt(int64(req.Quantity)))
	if user.Balance.LessThan(totalAmount) {
		return nil, errorx.New(errorx.InsufficientBalance,
			"Insufficient balance, required %s but only %s available",
			totalAmount, user.Balance)
	}

	prizes, err := d.prizeRepo.GetByBoxID(ctx, req.BoxID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get prizes of box: %v", err)
		return nil, errorx.Unknown
	}

	if len(prizes) == 0 {
		return nil, errorx.New(errorx.EmptyPrizeTable, "Box has no prize table configured")
	}

	// All mutations below commit or roll back as one unit: a failed ledger
	// write must never leave stock or balance changed.
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.boxRepo.DecrementStock(ctx, box.ID, req.Quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Another purchase consumed the stock between our read and the
			// guarded update. Re-read so the message reports what is left
			// now, not the stale pre-transaction value.
			currentBox, berr := d.boxRepo.GetByID(ctx, box.ID)
			if berr != nil {
				xcontext.Logger(ctx).Errorf("Cannot get box after failed decrement: %v", berr)
				return nil, errorx.Unknown
			}

			return nil, errorx.New(errorx.InsufficientStock,
				"Insufficient stock, only %d remaining", currentBox.Stock)
		}

		xcontext.Logger(ctx).Errorf("Cannot decrement stock: %v", err)
		return nil, errorx.Unknown
	}

	err = d.userRepo.ApplyBalanceDelta(ctx, userID, totalAmount.Neg())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same stale-read hazard as the stock guard above.
			currentUser, uerr := d.userRepo.GetByID(ctx, userID)
			if uerr != nil {
				xcontext.Logger(ctx).Errorf("Cannot get user after failed debit: %v", uerr)
				return nil, errorx.Unknown
			}

			return nil, errorx.New(errorx.InsufficientBalance,
				"Insufficient balance, required %s but only %s available",
				totalAmount, currentUser.Balance)
		}

		xcontext.Logger(ctx).Errorf("Cannot apply balance delta: %v", err)
		return nil, errorx.Unknown
	}

	currentBox, err := d.boxRepo.GetByID(ctx, box.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get box after decrement: %v", err)
		return nil, errorx.Unknown
	}

	if currentBox.Stock < 0 {
		// The guarded update makes this impossible; seeing it means the
		// serialization discipline is broken somewhere.
		xcontext.Logger(ctx).Errorf(
			"Invariant violation: negative stock %d of box %s", currentBox.Stock, box.ID)
		return nil, errorx.Unknown
	}

	order := &entity.Order{
		Base:        entity.Base{ID: uuid.NewString()},
		OrderNumber: idutil.OrderNumber(),
		UserID:      userID,
		BoxID:       box.ID,
		Quantity:    req.Quantity,
		TotalAmount: totalAmount,
		Status:      entity.OrderStatusCompleted,
	}

	if err := d.orderRepo.Create(ctx, order); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create order: %v", err)
		return nil, errorx.Unknown
	}

	wonPrizes := []model.WonPrize{}
	now := time.Now()
	for i := 0; i < req.Quantity; i++ {
		prize := d.drawPrize(prizes)
		wonPrize := &entity.WonPrize{
			Base:    entity.Base{ID: uuid.NewString()},
			UserID:  userID,
			PrizeID: prize.ID,
			BoxID:   box.ID,
			OrderID: order.ID,

			// Snapshot the prize at draw time so later catalog edits never
			// change this record.
			PrizeName:        prize.Name,
			PrizeDescription: prize.Description,
			PrizeImageURL:    prize.ImageURL,
			PrizeRarity:      prize.Rarity,
			BoxName:          box.Name,

			ObtainedAt: now,
		}

		if err := d.wonPrizeRepo.Create(ctx, wonPrize); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create won prize: %v", err)
			return nil, errorx.Unknown
		}

		wonPrizes = append(wonPrizes, convertWonPrize(wonPrize))
	}

	updatedUser, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user after debit: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	// Best effort, the purchase already succeeded.
	if d.redisClient != nil {
		err := d.redisClient.ZIncrBy(ctx, topBoxesRedisKey, int64(req.Quantity), box.ID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot update top boxes: %v", err)
		}
	}

	return &model.BuyBoxResponse{
		Order:  convertOrder(order, box.Name),
		Prizes: wonPrizes,
		User:   convertUser(updatedUser),
	}, nil
}

// drawPrize picks one prize by cumulative probability over the table's
// persisted catalog order. When the probabilities sum to less than 1 and the
// roll lands in the gap, the first prize is returned, so a non-empty table
// always yields a prize.
func (d *purchaseDomain) drawPrize(prizes []entity.Prize) *entity.Prize {
	if len(prizes) == 0 {
		return nil
	}

	roll := decimal.NewFromFloat(d.roll())
	cumulative := decimal.Zero
	for i := range prizes {
		cumulative = cumulative.Add(prizes[i].Probability)
		if roll.LessThanOrEqual(cumulative) {
			return &prizes[i]
		}
	}

	return &prizes[0]
}
