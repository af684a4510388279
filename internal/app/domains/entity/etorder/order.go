package etorder

import (
	"errors"
	"fmt"
	"time"
)

// 错误定义
var (
	ErrInvalidOrderID    = errors.New("order ID cannot be empty")
	ErrInvalidUserID     = errors.New("invalid user ID")
	ErrEmptyItems        = errors.New("order must have at least one item")
	ErrInvalidItem       = errors.New("invalid order item")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
	// 自动下单直接写入的终态
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusFailed    OrderStatus = "failed"
)

// 状态机：只允许从 pending 出发的显式迁移，没有物理删除，取消也是一次迁移
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled},
}

// Order 订单聚合根（领域对象）
type Order struct {
	ID            string
	UserID        int64
	TransactionID string
	Status        OrderStatus
	TotalAmount   float64
	Currency      string
	Notes         string
	Items         []*OrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem 订单项（值对象）
// 订单项不能脱离订单存在
type OrderItem struct {
	ID                 string
	OrderID            string
	ProductID          string
	ProductName        string
	ProductDescription string
	Quantity           int
	UnitPrice          float64
	TotalPrice         float64
	Metadata           map[string]interface{}
	CreatedAt          time.Time
}

// NewOrder 创建订单（工厂方法）
func NewOrder(id string, userID int64, currency, notes string) (*Order, error) {
	if id == "" {
		return nil, ErrInvalidOrderID
	}
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	if currency == "" {
		currency = "USD"
	}

	now := time.Now()
	return &Order{
		ID:        id,
		UserID:    userID,
		Status:    OrderStatusPending,
		Currency:  currency,
		Notes:     notes,
		Items:     make([]*OrderItem, 0, 1),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// AddItem 添加订单项并重算总额（领域行为）
func (o *Order) AddItem(item *OrderItem) error {
	if item == nil || item.ProductName == "" || item.Quantity <= 0 || item.UnitPrice < 0 {
		return ErrInvalidItem
	}

	item.OrderID = o.ID
	item.TotalPrice = float64(item.Quantity) * item.UnitPrice
	o.Items = append(o.Items, item)
	o.recalculateTotal()
	o.UpdatedAt = time.Now()
	return nil
}

// TransitionTo 状态迁移（领域行为）
func (o *Order) TransitionTo(status OrderStatus) error {
	for _, allowed := range allowedTransitions[o.Status] {
		if allowed == status {
			o.Status = status
			o.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, status)
}

// Cancel 取消订单（没有硬删除，只有取消迁移）
func (o *Order) Cancel() error {
	return o.TransitionTo(OrderStatusCancelled)
}

// recalculateTotal 按订单项重算总额
func (o *Order) recalculateTotal() {
	total := 0.0
	for _, item := range o.Items {
		total += item.TotalPrice
	}
	o.TotalAmount = total
}

// ValidStatus 判断状态值是否合法
func ValidStatus(status OrderStatus) bool {
	switch status {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusCompleted, OrderStatusFailed:
		return true
	}
	return false
}
