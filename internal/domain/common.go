package domain

import (
	"context"

	"github.com/blindbox-labs/backend/pkg/errorx"
	"github.com/blindbox-labs/backend/pkg/xcontext"
)

// topBoxesRedisKey is the sorted set tracking units sold per box.
const topBoxesRedisKey = "statistic:top_boxes"

func checkPagination(ctx context.Context, offset, limit int) (int, int, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if offset < 0 || limit < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Offset or limit must not be negative")
	}

	if limit == 0 {
		limit = apiCfg.DefaultLimit
	}

	if apiCfg.MaxLimit > 0 && limit > apiCfg.MaxLimit {
		return 0, 0, errorx.New(errorx.BadRequest, "Exceeded the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	return offset, limit, nil
}
