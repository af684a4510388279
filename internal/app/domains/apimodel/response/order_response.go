package response

import "time"

// OrderResponse 订单响应（DTO）
type OrderResponse struct {
	ID            string               `json:"id"`
	UserID        int64                `json:"user_id"`
	TransactionID string               `json:"transaction_id,omitempty"`
	Status        string               `json:"status"`
	TotalAmount   float64              `json:"total_amount"`
	Currency      string               `json:"currency"`
	Notes         string               `json:"notes,omitempty"`
	Items         []*OrderItemResponse `json:"items"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// OrderItemResponse 订单项响应（DTO）
type OrderItemResponse struct {
	ID                 string                 `json:"id"`
	ProductID          string                 `json:"product_id,omitempty"`
	ProductName        string                 `json:"product_name"`
	ProductDescription string                 `json:"product_description,omitempty"`
	Quantity           int                    `json:"quantity"`
	UnitPrice          float64                `json:"unit_price"`
	TotalPrice         float64                `json:"total_price"`
	Metadata           map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
}
