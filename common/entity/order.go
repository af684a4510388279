package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Order 订单实体
type Order struct {
	ID            string  `gorm:"column:order_id;primaryKey;type:varchar(64)"`
	UserID        int64   `gorm:"column:user_id;not null;index:idx_user_status"`
	TransactionID string  `gorm:"column:transaction_id;type:varchar(255)"`
	Status        string  `gorm:"column:status;type:varchar(50);not null;default:'pending';index:idx_user_status"`
	TotalAmount   float64 `gorm:"column:total_amount;type:decimal(10,2);not null;default:0"`
	Currency      string  `gorm:"column:currency;type:varchar(3);not null;default:'USD'"`
	Notes         string  `gorm:"column:notes;type:text"`

	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单项实体
// 订单项必须挂在有效订单下（order_id 外键），不允许孤立存在
type OrderItem struct {
	ID                 string         `gorm:"column:item_id;primaryKey;type:varchar(64)"`
	OrderID            string         `gorm:"column:order_id;type:varchar(64);not null;index:idx_order_id"`
	ProductID          string         `gorm:"column:product_id;type:varchar(255)"`
	ProductName        string         `gorm:"column:product_name;type:varchar(500);not null"`
	ProductDescription string         `gorm:"column:product_description;type:text"`
	Quantity           int            `gorm:"column:quantity;not null;default:1"`
	UnitPrice          float64        `gorm:"column:unit_price;type:decimal(10,2);not null"`
	TotalPrice         float64        `gorm:"column:total_price;type:decimal(10,2);not null"`
	Metadata           datatypes.JSON `gorm:"column:metadata;type:json"`

	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
	OrderStatusCompleted = "completed"
	OrderStatusFailed    = "failed"
)
