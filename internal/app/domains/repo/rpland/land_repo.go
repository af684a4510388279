package rpland

import (
	"context"

	"github.com/egnd-2025/krishi-backend/common/entity"
)

// LandRepository 地块仓储接口（只定义，不实现）
// 实现在 infra/persistence 层；地块注册由外部流程负责，本服务只读
type LandRepository interface {
	// GetByUserID 查询用户的地块记录，不存在时返回 nil
	GetByUserID(ctx context.Context, userID int64) (*entity.Land, error)
}
