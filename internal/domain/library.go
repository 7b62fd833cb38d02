package domain

import (
	"context"

	"github.com/blindbox-labs/backend/internal/entity"
	"github.com/blindbox-labs/backend/internal/model"
	"github.com/blindbox-labs/backend/internal/repository"
	"github.com/blindbox-labs/backend/pkg/enum"
	"github.com/blindbox-labs/backend/pkg/errorx"
	"github.com/blindbox-labs/backend/pkg/xcontext"
)

// LibraryDomain serves a user's collection of won prizes.
type LibraryDomain interface {
	GetMyPrizes(context.Context, *model.GetMyPrizesRequest) (*model.GetMyPrizesResponse, error)
}

type libraryDomain struct {
	wonPrizeRepo repository.WonPrizeRepository
}

func NewLibraryDomain(wonPrizeRepo repository.WonPrizeRepository) *libraryDomain {
	return &libraryDomain{wonPrizeRepo: wonPrizeRepo}
}

func (d *libraryDomain) GetMyPrizes(
	ctx context.Context, req *model.GetMyPrizesRequest,
) (*model.GetMyPrizesResponse, error) {
	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	begin, end, err := parseTimeRange(req.Begin, req.End)
	if err != nil {
		return nil, err
	}

	filter := repository.GetListWonPrizeFilter{
		UserID: xcontext.RequestUserID(ctx),
		BoxID:  req.BoxID,
		Begin:  begin,
		End:    end,
		Offset: offset,
		Limit:  limit,
	}

	if req.Rarity != "" {
		rarity, err := enum.ToEnum[entity.PrizeRarity](req.Rarity)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid rarity %s", req.Rarity)
		}

		filter.Rarity = rarity
	}

	wonPrizes, err := d.wonPrizeRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get won prizes: %v", err)
		return nil, errorx.Unknown
	}

	total, err := d.wonPrizeRepo.Count(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count won prizes: %v", err)
		return nil, errorx.Unknown
	}

	clientPrizes := []model.WonPrize{}
	for i := range wonPrizes {
		clientPrizes = append(clientPrizes, convertWonPrize(&wonPrizes[i]))
	}

	return &model.GetMyPrizesResponse{Prizes: clientPrizes, Total: total}, nil
}
