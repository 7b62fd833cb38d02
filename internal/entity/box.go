package entity

import (
	"github.com/blindbox-labs/backend/pkg/enum"
	"github.com/shopspring/decimal"
)

type BoxStatus string

var (
	BoxStatusActive   = enum.New(BoxStatus("active"))
	BoxStatusInactive = enum.New(BoxStatus("inactive"))
)

type Box struct {
	Base

	Name        string
	Description string
	ImageURL    string

	Price decimal.Decimal `gorm:"type:decimal(20,8)"`

	// Stock never goes negative. It is mutated only through the guarded
	// decrement update, which also bumps Sales.
	Stock int
	Sales int

	Status BoxStatus `gorm:"default:active"`
}
