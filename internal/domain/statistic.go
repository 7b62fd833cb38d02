package domain

import (
	"context"

	"github.com/blindbox-labs/backend/internal/model"
	"github.com/blindbox-labs/backend/internal/repository"
	"github.com/blindbox-labs/backend/pkg/errorx"
	"github.com/blindbox-labs/backend/pkg/xcontext"
	"github.com/blindbox-labs/backend/pkg/xredis"
)

type StatisticDomain interface {
	GetTopBoxes(context.Context, *model.GetTopBoxesRequest) (*model.GetTopBoxesResponse, error)
}

type statisticDomain struct {
	boxRepo     repository.BoxRepository
	redisClient xredis.Client
}

func NewStatisticDomain(
	boxRepo repository.BoxRepository,
	redisClient xredis.Client,
) *statisticDomain {
	return &statisticDomain{boxRepo: boxRepo, redisClient: redisClient}
}

func (d *statisticDomain) GetTopBoxes(
	ctx context.Context, req *model.GetTopBoxesRequest,
) (*model.GetTopBoxesResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = xcontext.Configs(ctx).Shop.TopBoxesLimit
	}

	exist := false
	if d.redisClient != nil {
		var err error
		exist, err = d.redisClient.Exist(ctx, topBoxesRedisKey)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot check top boxes key: %v", err)
		}
	}

	if !exist {
		return d.getTopBoxesFromDB(ctx, limit)
	}

	zs, err := d.redisClient.ZRevRangeWithScores(ctx, topBoxesRedisKey, 0, limit)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get top boxes from redis: %v", err)
		return d.getTopBoxesFromDB(ctx, limit)
	}

	ids := []string{}
	salesByID := map[string]int64{}
	for _, z := range zs {
		id, ok := z.Member.(string)
		if !ok {
			continue
		}

		ids = append(ids, id)
		salesByID[id] = int64(z.Score)
	}

	boxes, err := d.boxRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get boxes: %v", err)
		return nil, errorx.Unknown
	}

	boxByID := map[string]model.Box{}
	for i := range boxes {
		boxByID[boxes[i].ID] = convertBox(&boxes[i], nil)
	}

	result := []model.BoxSales{}
	for _, id := range ids {
		box, ok := boxByID[id]
		if !ok {
			continue
		}

		result = append(result, model.BoxSales{Box: box, Sales: salesByID[id]})
	}

	return &model.GetTopBoxesResponse{Boxes: result}, nil
}

func (d *statisticDomain) getTopBoxesFromDB(
	ctx context.Context, limit int,
) (*model.GetTopBoxesResponse, error) {
	boxes, err := d.boxRepo.GetTopBySales(ctx, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get top boxes: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.BoxSales{}
	for i := range boxes {
		result = append(result, model.BoxSales{
			Box:   convertBox(&boxes[i], nil),
			Sales: int64(boxes[i].Sales),
		})
	}

	return &model.GetTopBoxesResponse{Boxes: result}, nil
}
