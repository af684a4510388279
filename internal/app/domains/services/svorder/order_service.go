package svorder

import (
	"context"

	"github.com/egnd-2025/krishi-backend/internal/app/domains/entity/etorder"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/modules/mdorder"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/repo/rporder"
)

// OrderService 通用订单服务（手工下单入口的薄封装）
type OrderService struct {
	manager *mdorder.OrderManager
}

// NewOrderService 创建订单服务
func NewOrderService(manager *mdorder.OrderManager) *OrderService {
	return &OrderService{manager: manager}
}

// CreateOrder 创建订单
func (s *OrderService) CreateOrder(ctx context.Context, userID int64, currency, notes string, items []mdorder.ItemInput) (*etorder.Order, error) {
	return s.manager.CreateOrder(ctx, userID, currency, notes, items)
}

// GetOrder 查询订单
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*etorder.Order, error) {
	return s.manager.GetOrder(ctx, orderID)
}

// ListOrders 查询用户订单列表
func (s *OrderService) ListOrders(ctx context.Context, filter rporder.ListFilter) ([]*etorder.Order, error) {
	return s.manager.ListOrders(ctx, filter)
}

// UpdateStatus 更新订单状态
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status etorder.OrderStatus) (*etorder.Order, error) {
	return s.manager.UpdateStatus(ctx, orderID, status)
}

// AddItem 追加订单项
func (s *OrderService) AddItem(ctx context.Context, orderID string, input mdorder.ItemInput) (*etorder.Order, error) {
	return s.manager.AddItem(ctx, orderID, input)
}

// CancelOrder 取消订单
func (s *OrderService) CancelOrder(ctx context.Context, orderID string) (*etorder.Order, error) {
	return s.manager.CancelOrder(ctx, orderID)
}
