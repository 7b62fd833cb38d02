package domain

import (
	"context"
	"time"

	"github.com/blindbox-labs/backend/internal/entity"
	"github.com/blindbox-labs/backend/internal/model"
	"github.com/blindbox-labs/backend/internal/repository"
	"github.com/blindbox-labs/backend/pkg/enum"
	"github.com/blindbox-labs/backend/pkg/errorx"
	"github.com/blindbox-labs/backend/pkg/xcontext"
)

type OrderDomain interface {
	GetMyOrders(context.Context, *model.GetMyOrdersRequest) (*model.GetMyOrdersResponse, error)
}

type orderDomain struct {
	orderRepo repository.OrderRepository
	boxRepo   repository.BoxRepository
}

func NewOrderDomain(
	orderRepo repository.OrderRepository,
	boxRepo repository.BoxRepository,
) *orderDomain {
	return &orderDomain{orderRepo: orderRepo, boxRepo: boxRepo}
}

func parseTimeRange(begin, end string) (time.Time, time.Time, error) {
	var beginTime, endTime time.Time
	var err error
	if begin != "" {
		if beginTime, err = time.Parse(time.RFC3339, begin); err != nil {
			return time.Time{}, time.Time{}, errorx.New(errorx.BadRequest, "Invalid begin time")
		}
	}

	if end != "" {
		if endTime, err = time.Parse(time.RFC3339, end); err != nil {
			return time.Time{}, time.Time{}, errorx.New(errorx.BadRequest, "Invalid end time")
		}
	}

	return beginTime, endTime, nil
}

func (d *orderDomain) GetMyOrders(
	ctx context.Context, req *model.GetMyOrdersRequest,
) (*model.GetMyOrdersResponse, error) {
	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	begin, end, err := parseTimeRange(req.Begin, req.End)
	if err != nil {
		return nil, err
	}

	filter := repository.GetListOrderFilter{
		UserID: xcontext.RequestUserID(ctx),
		BoxID:  req.BoxID,
		Begin:  begin,
		End:    end,
		Offset: offset,
		Limit:  limit,
	}

	if req.Status != "" {
		status, err := enum.ToEnum[entity.OrderStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid order status %s", req.Status)
		}

		filter.Status = status
	}

	orders, err := d.orderRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get orders: %v", err)
		return nil, errorx.Unknown
	}

	total, err := d.orderRepo.Count(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count orders: %v", err)
		return nil, errorx.Unknown
	}

	boxNames := map[string]string{}
	clientOrders := []model.Order{}
	for i := range orders {
		boxID := orders[i].BoxID
		if _, ok := boxNames[boxID]; !ok {
			box, err := d.boxRepo.GetByID(ctx, boxID)
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot get box %s of order: %v", boxID, err)
				boxNames[boxID] = ""
			} else {
				boxNames[boxID] = box.Name
			}
		}

		clientOrders = append(clientOrders, convertOrder(&orders[i], boxNames[boxID]))
	}

	return &model.GetMyOrdersResponse{Orders: clientOrders, Total: total}, nil
}
