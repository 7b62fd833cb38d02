package domain

import (
	"github.com/blindbox-labs/backend/internal/entity"
	"github.com/blindbox-labs/backend/internal/model"
)

func convertUser(user *entity.User) model.User {
	if user == nil {
		return model.User{}
	}

	return model.User{
		ID:      user.ID,
		Name:    user.Name,
		Role:    string(user.Role),
		Status:  string(user.Status),
		Balance: user.Balance.String(),
	}
}

func convertPrize(prize *entity.Prize) model.Prize {
	if prize == nil {
		return model.Prize{}
	}

	return model.Prize{
		ID:          prize.ID,
		BoxID:       prize.BoxID,
		Name:        prize.Name,
		Description: prize.Description,
		ImageURL:    prize.ImageURL,
		Probability: prize.Probability.String(),
		Rarity:      string(prize.Rarity),
	}
}

func convertBox(box *entity.Box, prizes []model.Prize) model.Box {
	if box == nil {
		return model.Box{}
	}

	return model.Box{
		ID:          box.ID,
		Name:        box.Name,
		Description: box.Description,
		ImageURL:    box.ImageURL,
		Price:       box.Price.String(),
		Stock:       box.Stock,
		Sales:       box.Sales,
		Status:      string(box.Status),
		Prizes:      prizes,
	}
}

func convertOrder(order *entity.Order, boxName string) model.Order {
	if order == nil {
		return model.Order{}
	}

	return model.Order{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		BoxID:       order.BoxID,
		BoxName:     boxName,
		Quantity:    order.Quantity,
		TotalAmount: order.TotalAmount.String(),
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt,
	}
}

func convertWonPrize(wonPrize *entity.WonPrize) model.WonPrize {
	if wonPrize == nil {
		return model.WonPrize{}
	}

	return model.WonPrize{
		ID:               wonPrize.ID,
		UserID:           wonPrize.UserID,
		PrizeID:          wonPrize.PrizeID,
		BoxID:            wonPrize.BoxID,
		OrderID:          wonPrize.OrderID,
		PrizeName:        wonPrize.PrizeName,
		PrizeDescription: wonPrize.PrizeDescription,
		PrizeImageURL:    wonPrize.PrizeImageURL,
		PrizeRarity:      string(wonPrize.PrizeRarity),
		BoxName:          wonPrize.BoxName,
		ObtainedAt:       wonPrize.ObtainedAt,
	}
}
