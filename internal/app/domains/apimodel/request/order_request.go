package request

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	UserID   int64        `json:"user_id" binding:"required" example:"1"`
	Currency string       `json:"currency" example:"USD"`
	Notes    string       `json:"notes" example:"Spring planting supplies"`
	Items    []*OrderItem `json:"items" binding:"required,min=1,dive"`
}

// OrderItem 订单项
type OrderItem struct {
	ProductID          string                 `json:"product_id" example:"prod-001"`
	ProductName        string                 `json:"product_name" binding:"required" example:"Wheat Seeds"`
	ProductDescription string                 `json:"product_description" example:"High-yield winter wheat"`
	Quantity           int                    `json:"quantity" binding:"required,gt=0" example:"50"`
	UnitPrice          float64                `json:"unit_price" binding:"gte=0" example:"12.50"`
	Metadata           map[string]interface{} `json:"metadata"`
}

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending paid shipped delivered cancelled" example:"paid"`
}

// AddOrderItemRequest 追加订单项请求
type AddOrderItemRequest struct {
	Item *OrderItem `json:"item" binding:"required"`
}

// RunAgenticRequest 触发农事流水线请求
type RunAgenticRequest struct {
	UserID int64 `json:"user_id" binding:"required,gt=0" example:"1"`
}
