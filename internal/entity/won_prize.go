package entity

import "time"

// WonPrize is one entry of a user's library. Prize and box attributes are
// denormalized at draw time so that later catalog edits never rewrite a
// user's history.
type WonPrize struct {
	Base

	UserID string
	User   User `gorm:"foreignKey:UserID"`

	PrizeID string
	Prize   Prize `gorm:"foreignKey:PrizeID"`

	BoxID string
	Box   Box `gorm:"foreignKey:BoxID"`

	OrderID string
	Order   Order `gorm:"foreignKey:OrderID"`

	PrizeName        string
	PrizeDescription string
	PrizeImageURL    string
	PrizeRarity      PrizeRarity
	BoxName          string

	ObtainedAt time.Time
}
