package mdordering

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/egnd-2025/krishi-backend/common/model"
)

func attempt(product string, success bool, price float64) model.OrderAttempt {
	a := model.OrderAttempt{
		Recommendation: rec(model.CategorySeed, model.PriorityHigh, product),
		Outcome: model.AttemptOutcome{
			Success:      success,
			SettledPrice: price,
			Persisted:    true,
		},
	}
	if !success {
		a.Outcome.Error = "settlement rejected"
		a.Outcome.SettledPrice = 0
	}
	return a
}

func TestSummarize(t *testing.T) {
	attempts := []model.OrderAttempt{
		attempt("Wheat Seeds", true, 120.5),
		attempt("Urea", false, 0),
		attempt("Sprayer", true, 45),
	}

	summary := Summarize(attempts)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	// 总花费只累计成功项的成交价
	assert.InDelta(t, 165.5, summary.TotalCost, 0.001)

	// 单项记录保持输入顺序
	assert.Equal(t, "Wheat Seeds", summary.Items[0].Product)
	assert.Equal(t, "Urea", summary.Items[1].Product)
	assert.Equal(t, "Sprayer", summary.Items[2].Product)
	assert.Equal(t, "settlement rejected", summary.Items[1].Error)
	assert.False(t, summary.Items[1].Success)
}

func TestSummarizeIsPure(t *testing.T) {
	attempts := []model.OrderAttempt{
		attempt("Wheat Seeds", true, 100),
	}

	first := Summarize(attempts)
	second := Summarize(attempts)

	// 幂等：同一输入任意次调用结果一致，且不改写输入
	assert.Equal(t, first, second)
	assert.True(t, attempts[0].Outcome.Success)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, 0, summary.Total)
	assert.Zero(t, summary.TotalCost)
	assert.NotNil(t, summary.Items)
}
