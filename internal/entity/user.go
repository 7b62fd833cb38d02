package entity

import (
	"github.com/blindbox-labs/backend/pkg/enum"
	"github.com/shopspring/decimal"
)

type UserStatus string

var (
	UserStatusEnabled  = enum.New(UserStatus("enabled"))
	UserStatusDisabled = enum.New(UserStatus("disabled"))
)

type UserRole string

var (
	RoleUser  = enum.New(UserRole("user"))
	RoleAdmin = enum.New(UserRole("admin"))
)

var GlobalAdminRoles = []UserRole{RoleAdmin}

type User struct {
	Base

	Name   string   `gorm:"uniqueIndex"`
	Role   UserRole `gorm:"default:user"`
	Status UserStatus `gorm:"default:enabled"`

	// Balance never goes negative. It is mutated only through the
	// repository's guarded delta update.
	Balance decimal.Decimal `gorm:"type:decimal(20,8)"`
}
