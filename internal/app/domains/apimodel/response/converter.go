package response

import (
	"github.com/egnd-2025/krishi-backend/internal/app/domains/entity/etorder"
)

// FromOrderEntity 从领域对象转换为响应 DTO
func FromOrderEntity(order *etorder.Order) *OrderResponse {
	resp := &OrderResponse{
		ID:            order.ID,
		UserID:        order.UserID,
		TransactionID: order.TransactionID,
		Status:        string(order.Status),
		TotalAmount:   order.TotalAmount,
		Currency:      order.Currency,
		Notes:         order.Notes,
		Items:         make([]*OrderItemResponse, 0, len(order.Items)),
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}

	for _, item := range order.Items {
		resp.Items = append(resp.Items, fromOrderItemEntity(item))
	}

	return resp
}

// FromOrderEntities 批量转换订单列表
func FromOrderEntities(orders []*etorder.Order) []*OrderResponse {
	resps := make([]*OrderResponse, 0, len(orders))
	for _, order := range orders {
		resps = append(resps, FromOrderEntity(order))
	}
	return resps
}

func fromOrderItemEntity(item *etorder.OrderItem) *OrderItemResponse {
	if item == nil {
		return nil
	}
	return &OrderItemResponse{
		ID:                 item.ID,
		ProductID:          item.ProductID,
		ProductName:        item.ProductName,
		ProductDescription: item.ProductDescription,
		Quantity:           item.Quantity,
		UnitPrice:          item.UnitPrice,
		TotalPrice:         item.TotalPrice,
		Metadata:           item.Metadata,
		CreatedAt:          item.CreatedAt,
	}
}
