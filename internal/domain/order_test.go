package domain

import (
	"testing"
	"time"

	"github.com/blindbox-labs/backend/internal/model"
	"github.com/blindbox-labs/backend/internal/repository"
	"github.com/blindbox-labs/backend/pkg/errorx"
	"github.com/blindbox-labs/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_orderDomain_GetMyOrders(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	purchase := newTestPurchaseDomain(0.5)
	buyResp, err := purchase.BuyBox(ctx, &model.BuyBoxRequest{
		BoxID:    testutil.Box1.ID,
		Quantity: 2,
	})
	require.NoError(t, err)

	d := NewOrderDomain(repository.NewOrderRepository(), repository.NewBoxRepository())
	resp, err := d.GetMyOrders(ctx, &model.GetMyOrdersRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 1, resp.Total)
	require.Len(t, resp.Orders, 1)
	require.Equal(t, buyResp.Order.ID, resp.Orders[0].ID)
	require.Equal(t, testutil.Box1.Name, resp.Orders[0].BoxName)
	require.Equal(t, "60", resp.Orders[0].TotalAmount)

	// Another user sees nothing.
	otherCtx := testutil.MockContextWithUserID(testutil.User2.ID)
	testutil.CreateFixtureDb(otherCtx)
	resp, err = d.GetMyOrders(otherCtx, &model.GetMyOrdersRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 0, resp.Total)
	require.Empty(t, resp.Orders)

	resp, err = d.GetMyOrders(ctx, &model.GetMyOrdersRequest{BoxID: "unknown"})
	require.NoError(t, err)
	require.EqualValues(t, 0, resp.Total)

	resp, err = d.GetMyOrders(ctx, &model.GetMyOrdersRequest{Status: "completed"})
	require.NoError(t, err)
	require.EqualValues(t, 1, resp.Total)

	future := time.Now().Add(time.Hour).Format(time.RFC3339)
	resp, err = d.GetMyOrders(ctx, &model.GetMyOrdersRequest{Begin: future})
	require.NoError(t, err)
	require.EqualValues(t, 0, resp.Total)

	_, err = d.GetMyOrders(ctx, &model.GetMyOrdersRequest{Begin: "yesterday"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = d.GetMyOrders(ctx, &model.GetMyOrdersRequest{Status: "unknown"})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = d.GetMyOrders(ctx, &model.GetMyOrdersRequest{Offset: -1})
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}
