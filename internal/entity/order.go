package entity

import (
	"github.com/blindbox-labs/backend/pkg/enum"
	"github.com/shopspring/decimal"
)

type OrderStatus string

var (
	OrderStatusPending   = enum.New(OrderStatus("pending"))
	OrderStatusCompleted = enum.New(OrderStatus("completed"))
	OrderStatusCancelled = enum.New(OrderStatus("cancelled"))
)

type Order struct {
	Base

	OrderNumber string `gorm:"uniqueIndex"`

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	BoxID string
	Box   Box `gorm:"foreignKey:BoxID"`

	Quantity    int
	TotalAmount decimal.Decimal `gorm:"type:decimal(20,8)"`

	Status OrderStatus
}
