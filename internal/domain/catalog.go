package domain

import (
	"context"
	"errors"

	"github.com/blindbox-labs/backend/internal/common"
	"github.com/blindbox-labs/backend/internal/entity"
	"github.com/blindbox-labs/backend/internal/model"
	"github.com/blindbox-labs/backend/internal/repository"
	"github.com/blindbox-labs/backend/pkg/enum"
	"github.com/blindbox-labs/backend/pkg/errorx"
	"github.com/blindbox-labs/backend/pkg/xcontext"
	"github.com/blindbox-labs/backend/pkg/xredis"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CatalogDomain interface {
	GetBox(context.Context, *model.GetBoxRequest) (*model.GetBoxResponse, error)
	GetBoxes(context.Context, *model.GetBoxesRequest) (*model.GetBoxesResponse, error)
	CreateBox(context.Context, *model.CreateBoxRequest) (*model.CreateBoxResponse, error)
	UpdateBox(context.Context, *model.UpdateBoxRequest) (*model.UpdateBoxResponse, error)
	CreatePrize(context.Context, *model.CreatePrizeRequest) (*model.CreatePrizeResponse, error)
}

type catalogDomain struct {
	boxRepo            repository.BoxRepository
	prizeRepo          repository.PrizeRepository
	redisClient        xredis.Client
	globalRoleVerifier *common.GlobalRoleVerifier
}

func NewCatalogDomain(
	boxRepo repository.BoxRepository,
	prizeRepo repository.PrizeRepository,
	userRepo repository.UserRepository,
	redisClient xredis.Client,
) *catalogDomain {
	return &catalogDomain{
		boxRepo:            boxRepo,
		prizeRepo:          prizeRepo,
		redisClient:        redisClient,
		globalRoleVerifier: common.NewGlobalRoleVerifier(userRepo),
	}
}

func (d *catalogDomain) GetBox(
	ctx context.Context, req *model.GetBoxRequest,
) (*model.GetBoxResponse, error) {
	box, err := d.boxRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found box")
		}

		xcontext.Logger(ctx).Errorf("Cannot get box: %v", err)
		return nil, errorx.Unknown
	}

	prizes, err := d.prizeRepo.GetByBoxID(ctx, box.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get prizes of box: %v", err)
		return nil, errorx.Unknown
	}

	clientPrizes := []model.Prize{}
	for i := range prizes {
		clientPrizes = append(clientPrizes, convertPrize(&prizes[i]))
	}

	return &model.GetBoxResponse{Box: convertBox(box, clientPrizes)}, nil
}

func (d *catalogDomain) GetBoxes(
	ctx context.Context, req *model.GetBoxesRequest,
) (*model.GetBoxesResponse, error) {
	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	filter := repository.GetListBoxFilter{Offset: offset, Limit: limit}
	if req.Status != "" {
		status, err := enum.ToEnum[entity.BoxStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid box status %s", req.Status)
		}

		filter.Status = status
	}

	boxes, err := d.boxRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get boxes: %v", err)
		return nil, errorx.Unknown
	}

	clientBoxes := []model.Box{}
	for i := range boxes {
		clientBoxes = append(clientBoxes, convertBox(&boxes[i], nil))
	}

	return &model.GetBoxesResponse{Boxes: clientBoxes}, nil
}

func (d *catalogDomain) CreateBox(
	ctx context.Context, req *model.CreateBoxRequest,
) (*model.CreateBoxResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a box name")
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		return nil, errorx.New(errorx.BadRequest, "Price must be a non-negative decimal")
	}

	if req.Stock < 0 {
		return nil, errorx.New(errorx.BadRequest, "Stock must not be negative")
	}

	box := &entity.Box{
		Base:        entity.Base{ID: uuid.NewString()},
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       price,
		Stock:       req.Stock,
		Status:      entity.BoxStatusActive,
	}

	if err := d.boxRepo.Create(ctx, box); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create box: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateBoxResponse{ID: box.ID}, nil
}

func (d *catalogDomain) UpdateBox(
	ctx context.Context, req *model.UpdateBoxRequest,
) (*model.UpdateBoxResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if _, err := d.boxRepo.GetByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found box")
		}

		xcontext.Logger(ctx).Errorf("Cannot get box: %v", err)
		return nil, errorx.Unknown
	}

	data := entity.Box{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
	}

	if req.Price != "" {
		price, err := decimal.NewFromString(req.Price)
		if err != nil || price.IsNegative() {
			return nil, errorx.New(errorx.BadRequest, "Price must be a non-negative decimal")
		}

		data.Price = price
	}

	if req.Status != "" {
		status, err := enum.ToEnum[entity.BoxStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid box status %s", req.Status)
		}

		data.Status = status
	}

	if err := d.boxRepo.UpdateByID(ctx, req.ID, &data); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update box: %v", err)
		return nil, errorx.Unknown
	}

	// The cached leaderboard only lists purchasable boxes, so a status
	// change makes it stale. Best effort, the DB fallback still serves.
	if req.Status != "" && d.redisClient != nil {
		if err := d.redisClient.Del(ctx, topBoxesRedisKey); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot invalidate top boxes: %v", err)
		}
	}

	return &model.UpdateBoxResponse{}, nil
}

func (d *catalogDomain) CreatePrize(
	ctx context.Context, req *model.CreatePrizeRequest,
) (*model.CreatePrizeResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a prize name")
	}

	box, err := d.boxRepo.GetByID(ctx, req.BoxID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found box")
		}

		xcontext.Logger(ctx).Errorf("Cannot get box: %v", err)
		return nil, errorx.Unknown
	}

	probability, err := decimal.NewFromString(req.Probability)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Probability must be a decimal")
	}

	// Probability bounds are enforced here, at admin-write time; the draw
	// trusts the stored table.
	if probability.IsNegative() || probability.GreaterThan(decimal.NewFromInt(1)) {
		return nil, errorx.New(errorx.BadRequest, "Probability must be in [0, 1]")
	}

	rarity, err := enum.ToEnum[entity.PrizeRarity](req.Rarity)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid rarity %s", req.Rarity)
	}

	existingPrizes, err := d.prizeRepo.GetByBoxID(ctx, box.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get prizes of box: %v", err)
		return nil, errorx.Unknown
	}

	total := probability
	for i := range existingPrizes {
		total = total.Add(existingPrizes[i].Probability)
	}

	if total.GreaterThan(decimal.NewFromInt(1)) {
		return nil, errorx.New(errorx.BadRequest,
			"Total probability of box would reach %s, which exceeds 1", total)
	}

	prize := &entity.Prize{
		Base:         entity.Base{ID: uuid.NewString()},
		BoxID:        box.ID,
		Name:         req.Name,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Probability:  probability,
		Rarity:       rarity,
		CatalogOrder: len(existingPrizes),
	}

	if err := d.prizeRepo.Create(ctx, prize); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create prize: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreatePrizeResponse{ID: prize.ID}, nil
}
