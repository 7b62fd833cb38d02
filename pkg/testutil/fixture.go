package testutil

import (
	"context"

	"github.com/blindbox-labs/backend/internal/entity"
	"github.com/blindbox-labs/backend/internal/repository"
	"github.com/shopspring/decimal"
)

var (
	User1 = entity.User{
		Base:    entity.Base{ID: "user1"},
		Name:    "user1",
		Role:    entity.RoleUser,
		Status:  entity.UserStatusEnabled,
		Balance: decimal.NewFromInt(100),
	}

	User2 = entity.User{
		Base:    entity.Base{ID: "user2"},
		Name:    "user2",
		Role:    entity.RoleUser,
		Status:  entity.UserStatusEnabled,
		Balance: decimal.NewFromInt(20),
	}

	DisabledUser = entity.User{
		Base:    entity.Base{ID: "disabled_user"},
		Name:    "disabled_user",
		Role:    entity.RoleUser,
		Status:  entity.UserStatusDisabled,
		Balance: decimal.NewFromInt(100),
	}

	AdminUser = entity.User{
		Base:   entity.Base{ID: "admin"},
		Name:   "admin",
		Role:   entity.RoleAdmin,
		Status: entity.UserStatusEnabled,
	}

	Box1 = entity.Box{
		Base:   entity.Base{ID: "box1"},
		Name:   "Starlight Box",
		Price:  decimal.NewFromInt(30),
		Stock:  5,
		Status: entity.BoxStatusActive,
	}

	OutOfStockBox = entity.Box{
		Base:   entity.Base{ID: "box2"},
		Name:   "Sold Out Box",
		Price:  decimal.NewFromInt(30),
		Stock:  0,
		Status: entity.BoxStatusActive,
	}

	InactiveBox = entity.Box{
		Base:   entity.Base{ID: "box3"},
		Name:   "Retired Box",
		Price:  decimal.NewFromInt(30),
		Stock:  5,
		Status: entity.BoxStatusInactive,
	}

	EmptyBox = entity.Box{
		Base:   entity.Base{ID: "box4"},
		Name:   "Misconfigured Box",
		Price:  decimal.NewFromInt(30),
		Stock:  5,
		Status: entity.BoxStatusActive,
	}

	Box1CommonPrize = entity.Prize{
		Base:         entity.Base{ID: "prize1"},
		BoxID:        Box1.ID,
		Name:         "Plush Figure",
		Probability:  decimal.RequireFromString("0.9"),
		Rarity:       entity.RarityCommon,
		CatalogOrder: 0,
	}

	Box1LegendaryPrize = entity.Prize{
		Base:         entity.Base{ID: "prize2"},
		BoxID:        Box1.ID,
		Name:         "Golden Figure",
		Probability:  decimal.RequireFromString("0.1"),
		Rarity:       entity.RarityLegendary,
		CatalogOrder: 1,
	}
)

func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
	InsertBoxes(ctx)
	InsertPrizes(ctx)
}

func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	for _, user := range []entity.User{User1, User2, DisabledUser, AdminUser} {
		record := user
		if err := userRepo.Create(ctx, &record); err != nil {
			panic(err)
		}
	}
}

func InsertBoxes(ctx context.Context) {
	boxRepo := repository.NewBoxRepository()
	for _, box := range []entity.Box{Box1, OutOfStockBox, InactiveBox, EmptyBox} {
		record := box
		if err := boxRepo.Create(ctx, &record); err != nil {
			panic(err)
		}
	}
}

func InsertPrizes(ctx context.Context) {
	prizeRepo := repository.NewPrizeRepository()
	for _, prize := range []entity.Prize{Box1CommonPrize, Box1LegendaryPrize} {
		record := prize
		if err := prizeRepo.Create(ctx, &record); err != nil {
			panic(err)
		}
	}
}
