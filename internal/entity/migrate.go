package entity

import (
	"context"

	"github.com/blindbox-labs/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Box{},
		&Prize{},
		&Order{},
		&WonPrize{},
	)
}
