package mdorder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/egnd-2025/krishi-backend/internal/app/domains/entity/etorder"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/repo/rporder"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/errorx"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/logger"
)

// OrderManager 通用订单管理（手工下单入口）
// 与自动下单共用同一套订单实体与仓储，只是入口和状态起点不同：
// 手工订单从 pending 起走状态机，自动订单直接写终态
type OrderManager struct {
	orderRepo rporder.OrderRepository
	log       logger.Logger
}

// NewOrderManager 创建订单管理器
func NewOrderManager(orderRepo rporder.OrderRepository, log logger.Logger) *OrderManager {
	return &OrderManager{orderRepo: orderRepo, log: log}
}

// ItemInput 创建订单时的订单项入参
type ItemInput struct {
	ProductID          string
	ProductName        string
	ProductDescription string
	Quantity           int
	UnitPrice          float64
	Metadata           map[string]interface{}
}

// CreateOrder 创建订单（至少一个订单项，同事务落库）
func (m *OrderManager) CreateOrder(ctx context.Context, userID int64, currency, notes string, items []ItemInput) (*etorder.Order, error) {
	if len(items) == 0 {
		return nil, errorx.Validation("order must have at least one item")
	}

	order, err := etorder.NewOrder(uuid.NewString(), userID, currency, notes)
	if err != nil {
		return nil, errorx.Wrap(errorx.KindValidation, "invalid order", err)
	}

	for _, input := range items {
		item := &etorder.OrderItem{
			ID:                 uuid.NewString(),
			ProductID:          input.ProductID,
			ProductName:        input.ProductName,
			ProductDescription: input.ProductDescription,
			Quantity:           input.Quantity,
			UnitPrice:          input.UnitPrice,
			Metadata:           input.Metadata,
			CreatedAt:          time.Now(),
		}
		if err := order.AddItem(item); err != nil {
			return nil, errorx.Wrap(errorx.KindValidation, "invalid order item", err)
		}
	}

	if err := m.orderRepo.Create(ctx, order); err != nil {
		return nil, errorx.Persistence("create order failed", err)
	}

	m.log.Infof(ctx, "order created: id=%s items=%d total=%.2f", order.ID, len(order.Items), order.TotalAmount)
	return order, nil
}

// GetOrder 查询单个订单（含订单项）
func (m *OrderManager) GetOrder(ctx context.Context, orderID string) (*etorder.Order, error) {
	order, err := m.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, errorx.Persistence("query order failed", err)
	}
	if order == nil {
		return nil, errorx.NotFound(fmt.Sprintf("order not found: %s", orderID))
	}
	return order, nil
}

// ListOrders 查询用户订单列表
func (m *OrderManager) ListOrders(ctx context.Context, filter rporder.ListFilter) ([]*etorder.Order, error) {
	if filter.Status != "" && !etorder.ValidStatus(etorder.OrderStatus(filter.Status)) {
		return nil, errorx.Validation(fmt.Sprintf("invalid order status: %s", filter.Status))
	}

	orders, err := m.orderRepo.ListByUser(ctx, filter)
	if err != nil {
		return nil, errorx.Persistence("list orders failed", err)
	}
	return orders, nil
}

// UpdateStatus 订单状态迁移
// 先在领域对象上校验迁移合法性，再落库，非法迁移不触库
func (m *OrderManager) UpdateStatus(ctx context.Context, orderID string, status etorder.OrderStatus) (*etorder.Order, error) {
	if !etorder.ValidStatus(status) {
		return nil, errorx.Validation(fmt.Sprintf("invalid order status: %s", status))
	}

	order, err := m.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.TransitionTo(status); err != nil {
		return nil, errorx.Wrap(errorx.KindValidation, "status transition rejected", err)
	}

	if err := m.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, errorx.Persistence("update order status failed", err)
	}

	m.log.Infof(ctx, "order status updated: id=%s status=%s", orderID, status)
	return order, nil
}

// AddItem 向已有订单追加订单项
func (m *OrderManager) AddItem(ctx context.Context, orderID string, input ItemInput) (*etorder.Order, error) {
	if input.ProductName == "" || input.Quantity <= 0 || input.UnitPrice < 0 {
		return nil, errorx.Validation("invalid order item")
	}

	// 追加前确认订单存在
	if _, err := m.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}

	item := &etorder.OrderItem{
		ID:                 uuid.NewString(),
		OrderID:            orderID,
		ProductID:          input.ProductID,
		ProductName:        input.ProductName,
		ProductDescription: input.ProductDescription,
		Quantity:           input.Quantity,
		UnitPrice:          input.UnitPrice,
		Metadata:           input.Metadata,
		CreatedAt:          time.Now(),
	}

	if err := m.orderRepo.AddItem(ctx, orderID, item); err != nil {
		return nil, errorx.Persistence("add order item failed", err)
	}

	return m.GetOrder(ctx, orderID)
}

// CancelOrder 取消订单（只有迁移，没有物理删除）
func (m *OrderManager) CancelOrder(ctx context.Context, orderID string) (*etorder.Order, error) {
	return m.UpdateStatus(ctx, orderID, etorder.OrderStatusCancelled)
}
