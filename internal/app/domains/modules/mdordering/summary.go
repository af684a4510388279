package mdordering

import (
	"github.com/egnd-2025/krishi-backend/common/model"
)

// Summarize 将下单尝试列表折叠为汇总报告
// 纯函数，无 I/O：总花费只累计成功项的成交价，单项记录保持输入顺序
func Summarize(attempts []model.OrderAttempt) model.OrderingSummary {
	summary := model.OrderingSummary{
		Total: len(attempts),
		Items: make([]model.SummaryItem, 0, len(attempts)),
	}

	for _, attempt := range attempts {
		item := model.SummaryItem{
			Product:         attempt.Recommendation.Product.Name,
			Quantity:        attempt.Recommendation.Quantity,
			Unit:            attempt.Recommendation.Product.Unit,
			Priority:        attempt.Recommendation.Priority,
			Success:         attempt.Outcome.Success,
			MerchantOrderID: attempt.Outcome.MerchantOrderID,
			PersistedID:     attempt.Outcome.PersistedOrderID,
			Persisted:       attempt.Outcome.Persisted,
			Error:           attempt.Outcome.Error,
		}

		if attempt.Outcome.Success {
			summary.Succeeded++
			summary.TotalCost += attempt.Outcome.SettledPrice
			item.Price = attempt.Outcome.SettledPrice
			if attempt.Outcome.Receipt != nil {
				item.TransactionID = attempt.Outcome.Receipt.Transaction
			}
		} else {
			summary.Failed++
		}

		summary.Items = append(summary.Items, item)
	}

	return summary
}
