package rporder

import (
	"context"

	"github.com/egnd-2025/krishi-backend/internal/app/domains/entity/etorder"
)

// ListFilter 订单列表查询条件
type ListFilter struct {
	UserID int64
	Status string // 空串表示不过滤
	Limit  int
	Offset int
}

// OrderRepository 订单仓储接口（只定义，不实现）
// 实现在 infra/persistence 层
type OrderRepository interface {
	// Create 在一个事务内创建订单及其全部订单项
	Create(ctx context.Context, order *etorder.Order) error

	// GetByID 查询订单（含订单项），不存在时返回 nil
	GetByID(ctx context.Context, orderID string) (*etorder.Order, error)

	// ListByUser 按用户查询订单列表（含订单项），按创建时间倒序
	ListByUser(ctx context.Context, filter ListFilter) ([]*etorder.Order, error)

	// UpdateStatus 更新订单状态
	UpdateStatus(ctx context.Context, orderID string, status etorder.OrderStatus) error

	// AddItem 向已有订单追加订单项并重算订单总额
	AddItem(ctx context.Context, orderID string, item *etorder.OrderItem) error
}
