package request

import (
	"github.com/egnd-2025/krishi-backend/internal/app/domains/modules/mdorder"
)

// ToItemInputs 将订单项 DTO 列表转换为模块入参
func (r *CreateOrderRequest) ToItemInputs() []mdorder.ItemInput {
	return toItemInputs(r.Items)
}

// ToItemInput 将单个订单项 DTO 转换为模块入参
func (r *AddOrderItemRequest) ToItemInput() mdorder.ItemInput {
	return toItemInput(r.Item)
}

func toItemInputs(dtos []*OrderItem) []mdorder.ItemInput {
	inputs := make([]mdorder.ItemInput, 0, len(dtos))
	for _, dto := range dtos {
		inputs = append(inputs, toItemInput(dto))
	}
	return inputs
}

func toItemInput(dto *OrderItem) mdorder.ItemInput {
	if dto == nil {
		return mdorder.ItemInput{}
	}
	return mdorder.ItemInput{
		ProductID:          dto.ProductID,
		ProductName:        dto.ProductName,
		ProductDescription: dto.ProductDescription,
		Quantity:           dto.Quantity,
		UnitPrice:          dto.UnitPrice,
		Metadata:           dto.Metadata,
	}
}
