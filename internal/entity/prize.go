package entity

import (
	"github.com/blindbox-labs/backend/pkg/enum"
	"github.com/shopspring/decimal"
)

type PrizeRarity string

var (
	RarityCommon    = enum.New(PrizeRarity("common"))
	RarityRare      = enum.New(PrizeRarity("rare"))
	RarityEpic      = enum.New(PrizeRarity("epic"))
	RarityLegendary = enum.New(PrizeRarity("legendary"))
)

type Prize struct {
	Base

	BoxID string
	Box   Box `gorm:"foreignKey:BoxID"`

	Name        string
	Description string
	ImageURL    string

	// Probability is a decimal in [0, 1], validated at write time. The
	// probabilities of a box need not sum to exactly 1; the draw falls back
	// to the first prize for the shortfall.
	Probability decimal.Decimal `gorm:"type:decimal(20,8)"`

	Rarity PrizeRarity

	// CatalogOrder fixes the iteration order of the draw. It is assigned at
	// creation and never re-sorted.
	CatalogOrder int
}
