package mdordering

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/egnd-2025/krishi-backend/common/model"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/entity/etorder"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/repo/rporder"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/errorx"
)

// AttemptRecorder 自动下单结果落库器
// 每次尝试写一个订单加一条订单项：成功写 completed，失败写 failed，
// 类目、优先级、理由和支付回执引用进订单项 metadata
type AttemptRecorder struct {
	orderRepo rporder.OrderRepository
	currency  string
}

// NewAttemptRecorder 创建落库器
func NewAttemptRecorder(orderRepo rporder.OrderRepository, currency string) *AttemptRecorder {
	return &AttemptRecorder{orderRepo: orderRepo, currency: currency}
}

// Record 将一次下单尝试落库，返回持久化订单 ID
func (r *AttemptRecorder) Record(ctx context.Context, userID int64, rec model.Recommendation, outcome *model.AttemptOutcome) (string, error) {
	status := etorder.OrderStatusFailed
	notes := "Automated order failed: " + outcome.Error
	if outcome.Success {
		status = etorder.OrderStatusCompleted
		notes = "Automated order placed by agentic ordering pipeline"
	}

	now := time.Now()
	order := &etorder.Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		TransactionID: outcome.MerchantOrderID,
		Status:        status,
		Currency:      r.currency,
		Notes:         notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	metadata := map[string]interface{}{
		"category": string(rec.Category),
		"priority": string(rec.Priority),
		"reason":   rec.Reason,
	}
	if outcome.Receipt != nil {
		metadata["payment_transaction"] = outcome.Receipt.Transaction
		metadata["payment_network"] = outcome.Receipt.Network
		metadata["payment_payer"] = outcome.Receipt.Payer
	}
	if outcome.Error != "" {
		metadata["error"] = outcome.Error
	}

	unitPrice := rec.Product.Price
	totalPrice := outcome.SettledPrice
	if totalPrice == 0 {
		totalPrice = unitPrice * float64(rec.Quantity)
	}

	item := &etorder.OrderItem{
		ID:                 uuid.NewString(),
		OrderID:            order.ID,
		ProductName:        rec.Product.Name,
		ProductDescription: rec.Product.Description,
		Quantity:           rec.Quantity,
		UnitPrice:          unitPrice,
		TotalPrice:         totalPrice,
		Metadata:           metadata,
		CreatedAt:          now,
	}
	order.Items = []*etorder.OrderItem{item}
	order.TotalAmount = totalPrice

	if err := r.orderRepo.Create(ctx, order); err != nil {
		return "", errorx.Persistence("persist order attempt failed", err)
	}

	return order.ID, nil
}
