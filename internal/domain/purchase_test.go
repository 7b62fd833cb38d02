package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/blindbox-labs/backend/internal/entity"
	"github.com/blindbox-labs/backend/internal/model"
	"github.com/blindbox-labs/backend/internal/repository"
	"github.com/blindbox-labs/backend/pkg/errorx"
	"github.com/blindbox-labs/backend/pkg/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestPurchaseDomain(rolls ...float64) *purchaseDomain {
	d := NewPurchaseDomain(
		repository.NewUserRepository(),
		repository.NewBoxRepository(),
		repository.NewPrizeRepository(),
		repository.NewOrderRepository(),
		repository.NewWonPrizeRepository(),
		&testutil.MockRedisClient{},
	)

	if len(rolls) > 0 {
		i := 0
		d.roll = func() float64 {
			roll := rolls[i%len(rolls)]
			i++
			return roll
		}
	}

	return d
}

func Test_purchaseDomain_BuyBox(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	// The first roll lands on the common prize, the second on the
	// legendary one.
	d := newTestPurchaseDomain(0.5, 0.95)

	resp, err := d.BuyBox(ctx, &model.BuyBoxRequest{BoxID: testutil.Box1.ID, Quantity: 2})
	require.NoError(t, err)

	require.Equal(t, "60", resp.Order.TotalAmount)
	require.Equal(t, string(entity.OrderStatusCompleted), resp.Order.Status)
	require.Equal(t, testutil.User1.ID, resp.Order.UserID)
	require.Equal(t, testutil.Box1.ID, resp.Order.BoxID)
	require.Equal(t, 2, resp.Order.Quantity)
	require.NotEmpty(t, resp.Order.OrderNumber)
	require.Equal(t, "40", resp.User.Balance)

	require.Len(t, resp.Prizes, 2)
	require.Equal(t, testutil.Box1CommonPrize.ID, resp.Prizes[0].PrizeID)
	require.Equal(t, testutil.Box1LegendaryPrize.ID, resp.Prizes[1].PrizeID)
	for _, prize := range resp.Prizes {
		require.Equal(t, resp.Order.ID, prize.OrderID)
		require.Equal(t, testutil.User1.ID, prize.UserID)
		require.Equal(t, testutil.Box1.Name, prize.BoxName)
	}

	// Snapshot fields are captured at draw time.
	require.Equal(t, testutil.Box1CommonPrize.Name, resp.Prizes[0].PrizeName)
	require.Equal(t, string(entity.RarityCommon), resp.Prizes[0].PrizeRarity)
	require.Equal(t, string(entity.RarityLegendary), resp.Prizes[1].PrizeRarity)

	box, err := repository.NewBoxRepository().GetByID(ctx, testutil.Box1.ID)
	require.NoError(t, err)
	require.Equal(t, 3, box.Stock)
	require.Equal(t, 2, box.Sales)

	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.True(t, user.Balance.Equal(decimal.NewFromInt(40)))

	total, err := repository.NewWonPrizeRepository().Count(ctx,
		repository.GetListWonPrizeFilter{OrderID: resp.Order.ID})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)

	orders, err := repository.NewOrderRepository().GetList(ctx,
		repository.GetListOrderFilter{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, resp.Order.ID, orders[0].ID)
}

func Test_purchaseDomain_BuyBox_failures(t *testing.T) {
	testcases := []struct {
		name         string
		userID       string
		req          *model.BuyBoxRequest
		expectedCode errorx.Code
		expectedMsg  string
	}{
		{
			name:         "quantity too large",
			userID:       testutil.User1.ID,
			req:          &model.BuyBoxRequest{BoxID: testutil.Box1.ID, Quantity: 11},
			expectedCode: errorx.BadRequest,
			expectedMsg:  "Quantity must be between 1 and 10",
		},
		{
			name:         "quantity too small",
			userID:       testutil.User1.ID,
			req:          &model.BuyBoxRequest{BoxID: testutil.Box1.ID, Quantity: 0},
			expectedCode: errorx.BadRequest,
			expectedMsg:  "Quantity must be between 1 and 10",
		},
		{
			name:         "user not found",
			userID:       "unknown",
			req:          &model.BuyBoxRequest{BoxID: testutil.Box1.ID, Quantity: 1},
			expectedCode: errorx.NotFound,
			expectedMsg:  "Not found user",
		},
		{
			name:         "disabled user",
			userID:       testutil.DisabledUser.ID,
			req:          &model.BuyBoxRequest{BoxID: testutil.Box1.ID, Quantity: 1},
			expectedCode: errorx.PermissionDenied,
			expectedMsg:  "User is disabled",
		},
		{
			name:         "box not found",
			userID:       testutil.User1.ID,
			req:          &model.BuyBoxRequest{BoxID: "unknown", Quantity: 1},
			expectedCode: errorx.NotFound,
			expectedMsg:  "Not found box",
		},
		{
			name:         "inactive box",
			userID:       testutil.User1.ID,
			req:          &model.BuyBoxRequest{BoxID: testutil.InactiveBox.ID, Quantity: 1},
			expectedCode: errorx.Unavailable,
			expectedMsg:  "Box is not available for purchase",
		},
		{
			name:         "out of stock",
			userID:       testutil.User1.ID,
			req:          &model.BuyBoxRequest{BoxID: testutil.OutOfStockBox.ID, Quantity: 1},
			expectedCode: errorx.InsufficientStock,
			expectedMsg:  "Insufficient stock, only 0 remaining",
		},
		{
			name:         "insufficient balance",
			userID:       testutil.User2.ID,
			req:          &model.BuyBoxRequest{BoxID: testutil.Box1.ID, Quantity: 1},
			expectedCode: errorx.InsufficientBalance,
			expectedMsg:  "Insufficient balance, required 30 but only 20 available",
		},
		{
			name:         "empty prize table",
			userID:       testutil.User1.ID,
			req:          &model.BuyBoxRequest{BoxID: testutil.EmptyBox.ID, Quantity: 1},
			expectedCode: errorx.EmptyPrizeTable,
			expectedMsg:  "Box has no prize table configured",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := testutil.MockContextWithUserID(tc.userID)
			testutil.CreateFixtureDb(ctx)

			d := newTestPurchaseDomain()
			_, err := d.BuyBox(ctx, tc.req)
			require.Error(t, err)

			var errx errorx.Error
			require.ErrorAs(t, err, &errx)
			require.Equal(t, tc.expectedCode, errx.Code)
			require.Equal(t, tc.expectedMsg, errx.Message)

			// A failed precondition must leave every store untouched.
			box, err := repository.NewBoxRepository().GetByID(ctx, tc.req.BoxID)
			if err == nil {
				require.Equal(t, 0, box.Sales)
			}

			if user, err := repository.NewUserRepository().GetByID(ctx, tc.userID); err == nil {
				switch tc.userID {
				case testutil.User1.ID:
					require.True(t, user.Balance.Equal(testutil.User1.Balance))
				case testutil.User2.ID:
					require.True(t, user.Balance.Equal(testutil.User2.Balance))
				}
			}

			orderTotal, err := repository.NewOrderRepository().Count(ctx,
				repository.GetListOrderFilter{})
			require.NoError(t, err)
			require.EqualValues(t, 0, orderTotal)

			prizeTotal, err := repository.NewWonPrizeRepository().Count(ctx,
				repository.GetListWonPrizeFilter{})
			require.NoError(t, err)
			require.EqualValues(t, 0, prizeTotal)
		})
	}
}

func Test_purchaseDomain_BuyBox_drainsStock(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	d := newTestPurchaseDomain(0.5)

	// Top up so every purchase below is limited by stock, not balance.
	err := repository.NewUserRepository().ApplyBalanceDelta(
		ctx, testutil.User1.ID, decimal.NewFromInt(200))
	require.NoError(t, err)

	// Stock 5: the third purchase of 2 must fail on the 1 remaining.
	for i := 0; i < 2; i++ {
		_, err := d.BuyBox(ctx, &model.BuyBoxRequest{BoxID: testutil.Box1.ID, Quantity: 2})
		require.NoError(t, err)
	}

	_, err = d.BuyBox(ctx, &model.BuyBoxRequest{BoxID: testutil.Box1.ID, Quantity: 2})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InsufficientStock, errx.Code)
	require.Equal(t, "Insufficient stock, only 1 remaining", errx.Message)

	box, err := repository.NewBoxRepository().GetByID(ctx, testutil.Box1.ID)
	require.NoError(t, err)
	require.Equal(t, 1, box.Stock)
	require.Equal(t, 4, box.Sales)
}

func Test_purchaseDomain_drawPrize(t *testing.T) {
	prizes := []entity.Prize{
		{Base: entity.Base{ID: "p1"}, Probability: decimal.RequireFromString("0.5")},
		{Base: entity.Base{ID: "p2"}, Probability: decimal.RequireFromString("0.5")},
	}

	testcases := []struct {
		roll     float64
		expected string
	}{
		{roll: 0.3, expected: "p1"},
		{roll: 0.5, expected: "p1"},
		{roll: 0.7, expected: "p2"},
		{roll: 0.999, expected: "p2"},
	}

	for _, tc := range testcases {
		d := newTestPurchaseDomain(tc.roll)
		got := d.drawPrize(prizes)
		require.NotNil(t, got)
		require.Equal(t, tc.expected, got.ID)
	}
}

func Test_purchaseDomain_drawPrize_deterministic(t *testing.T) {
	prizes := []entity.Prize{
		{Base: entity.Base{ID: "p1"}, Probability: decimal.RequireFromString("0.2")},
		{Base: entity.Base{ID: "p2"}, Probability: decimal.RequireFromString("0.3")},
		{Base: entity.Base{ID: "p3"}, Probability: decimal.RequireFromString("0.5")},
	}

	rolls := []float64{0.1, 0.25, 0.45, 0.55, 0.99, 0.2, 0.5}
	first := []string{}
	d := newTestPurchaseDomain(rolls...)
	for range rolls {
		first = append(first, d.drawPrize(prizes).ID)
	}

	second := []string{}
	d = newTestPurchaseDomain(rolls...)
	for range rolls {
		second = append(second, d.drawPrize(prizes).ID)
	}

	require.Equal(t, first, second)
}

func Test_purchaseDomain_drawPrize_fallback(t *testing.T) {
	// The table sums to 0.3; a roll in the gap falls back to the first
	// prize instead of yielding nothing.
	prizes := []entity.Prize{
		{Base: entity.Base{ID: "p1"}, Probability: decimal.RequireFromString("0.3")},
	}

	d := newTestPurchaseDomain(0.9)
	got := d.drawPrize(prizes)
	require.NotNil(t, got)
	require.Equal(t, "p1", got.ID)

	require.Nil(t, d.drawPrize(nil))
}

// staleBoxRepository serves a stale snapshot on the first read, then
// delegates, imitating another purchase landing between the precondition
// check and the guarded update.
type staleBoxRepository struct {
	repository.BoxRepository
	stale *entity.Box
	read  bool
}

func (r *staleBoxRepository) GetByID(ctx context.Context, id string) (*entity.Box, error) {
	if !r.read {
		r.read = true
		return r.stale, nil
	}

	return r.BoxRepository.GetByID(ctx, id)
}

type staleUserRepository struct {
	repository.UserRepository
	stale *entity.User
	read  bool
}

func (r *staleUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !r.read {
		r.read = true
		return r.stale, nil
	}

	return r.UserRepository.GetByID(ctx, id)
}

func Test_purchaseDomain_BuyBox_reportsCurrentStockOnRace(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	boxRepo := repository.NewBoxRepository()
	require.NoError(t, boxRepo.DecrementStock(ctx, testutil.Box1.ID, 4))

	staleBox := testutil.Box1
	d := NewPurchaseDomain(
		repository.NewUserRepository(),
		&staleBoxRepository{BoxRepository: boxRepo, stale: &staleBox},
		repository.NewPrizeRepository(),
		repository.NewOrderRepository(),
		repository.NewWonPrizeRepository(),
		&testutil.MockRedisClient{},
	)

	_, err := d.BuyBox(ctx, &model.BuyBoxRequest{BoxID: testutil.Box1.ID, Quantity: 2})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InsufficientStock, errx.Code)
	require.Equal(t, "Insufficient stock, only 1 remaining", errx.Message)

	box, err := boxRepo.GetByID(ctx, testutil.Box1.ID)
	require.NoError(t, err)
	require.Equal(t, 1, box.Stock)
	require.Equal(t, 4, box.Sales)
}

func Test_purchaseDomain_BuyBox_reportsCurrentBalanceOnRace(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(ctx)

	staleUser := testutil.User2
	staleUser.Balance = decimal.NewFromInt(100)

	boxRepo := repository.NewBoxRepository()
	d := NewPurchaseDomain(
		&staleUserRepository{UserRepository: repository.NewUserRepository(), stale: &staleUser},
		boxRepo,
		repository.NewPrizeRepository(),
		repository.NewOrderRepository(),
		repository.NewWonPrizeRepository(),
		&testutil.MockRedisClient{},
	)

	_, err := d.BuyBox(ctx, &model.BuyBoxRequest{BoxID: testutil.Box1.ID, Quantity: 2})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InsufficientBalance, errx.Code)
	require.Equal(t, "Insufficient balance, required 60 but only 20 available", errx.Message)

	// The stock decrement preceding the failed debit must roll back too.
	box, err := boxRepo.GetByID(ctx, testutil.Box1.ID)
	require.NoError(t, err)
	require.Equal(t, 5, box.Stock)
	require.Equal(t, 0, box.Sales)
}

type failingOrderRepository struct {
	repository.OrderRepository
}

func (failingOrderRepository) Create(context.Context, *entity.Order) error {
	return errors.New("order insert failed")
}

type failingWonPrizeRepository struct {
	repository.WonPrizeRepository
}

func (failingWonPrizeRepository) Create(context.Context, *entity.WonPrize) error {
	return errors.New("won prize insert failed")
}

func Test_purchaseDomain_BuyBox_rollsBackOnLedgerFailure(t *testing.T) {
	testcases := []struct {
		name  string
		build func(d *purchaseDomain)
	}{
		{
			name: "order append fails",
			build: func(d *purchaseDomain) {
				d.orderRepo = failingOrderRepository{d.orderRepo}
			},
		},
		{
			name: "won prize append fails",
			build: func(d *purchaseDomain) {
				d.wonPrizeRepo = failingWonPrizeRepository{d.wonPrizeRepo}
			},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := testutil.MockContextWithUserID(testutil.User1.ID)
			testutil.CreateFixtureDb(ctx)

			d := newTestPurchaseDomain(0.5)
			tc.build(d)

			_, err := d.BuyBox(ctx, &model.BuyBoxRequest{
				BoxID:    testutil.Box1.ID,
				Quantity: 2,
			})
			require.Equal(t, errorx.Unknown, err)

			// The stock decrement and the debit that preceded the failed
			// append must both roll back.
			box, err := repository.NewBoxRepository().GetByID(ctx, testutil.Box1.ID)
			require.NoError(t, err)
			require.Equal(t, 5, box.Stock)
			require.Equal(t, 0, box.Sales)

			user, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
			require.NoError(t, err)
			require.True(t, user.Balance.Equal(testutil.User1.Balance))

			orderTotal, err := repository.NewOrderRepository().Count(ctx,
				repository.GetListOrderFilter{})
			require.NoError(t, err)
			require.EqualValues(t, 0, orderTotal)

			prizeTotal, err := repository.NewWonPrizeRepository().Count(ctx,
				repository.GetListWonPrizeFilter{})
			require.NoError(t, err)
			require.EqualValues(t, 0, prizeTotal)
		})
	}
}
