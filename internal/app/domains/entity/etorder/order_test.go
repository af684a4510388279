package etorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder("order-1", 1, "USD", "")
	require.NoError(t, err)
	return order
}

func TestNewOrderValidation(t *testing.T) {
	_, err := NewOrder("", 1, "USD", "")
	assert.ErrorIs(t, err, ErrInvalidOrderID)

	_, err = NewOrder("order-1", 0, "USD", "")
	assert.ErrorIs(t, err, ErrInvalidUserID)

	order, err := NewOrder("order-1", 1, "", "")
	require.NoError(t, err)
	assert.Equal(t, "USD", order.Currency)
	assert.Equal(t, OrderStatusPending, order.Status)
}

func TestAddItemRecalculatesTotal(t *testing.T) {
	order := newTestOrder(t)

	require.NoError(t, order.AddItem(&OrderItem{ID: "i1", ProductName: "Wheat Seeds", Quantity: 10, UnitPrice: 2.5}))
	require.NoError(t, order.AddItem(&OrderItem{ID: "i2", ProductName: "Urea", Quantity: 4, UnitPrice: 6}))

	assert.InDelta(t, 49, order.TotalAmount, 0.001)
	assert.Equal(t, "order-1", order.Items[0].OrderID)
	assert.InDelta(t, 25, order.Items[0].TotalPrice, 0.001)
}

func TestAddItemRejectsInvalid(t *testing.T) {
	order := newTestOrder(t)

	assert.ErrorIs(t, order.AddItem(nil), ErrInvalidItem)
	assert.ErrorIs(t, order.AddItem(&OrderItem{ProductName: "", Quantity: 1}), ErrInvalidItem)
	assert.ErrorIs(t, order.AddItem(&OrderItem{ProductName: "x", Quantity: 0}), ErrInvalidItem)
	assert.ErrorIs(t, order.AddItem(&OrderItem{ProductName: "x", Quantity: 1, UnitPrice: -1}), ErrInvalidItem)
}

func TestStatusTransitions(t *testing.T) {
	order := newTestOrder(t)

	// pending → paid 合法
	require.NoError(t, order.TransitionTo(OrderStatusPaid))
	assert.Equal(t, OrderStatusPaid, order.Status)

	// paid 之后不允许再迁移
	err := order.TransitionTo(OrderStatusShipped)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, OrderStatusPaid, order.Status)
}

func TestCancelOnlyFromPending(t *testing.T) {
	order := newTestOrder(t)
	require.NoError(t, order.Cancel())
	assert.Equal(t, OrderStatusCancelled, order.Status)

	// 已取消的订单不能再取消
	assert.ErrorIs(t, order.Cancel(), ErrInvalidTransition)
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(OrderStatusPending))
	assert.True(t, ValidStatus(OrderStatusCompleted))
	assert.True(t, ValidStatus(OrderStatusFailed))
	assert.False(t, ValidStatus(OrderStatus("refunded")))
}
