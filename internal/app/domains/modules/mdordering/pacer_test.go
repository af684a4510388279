package mdordering

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egnd-2025/krishi-backend/common/model"
	"github.com/egnd-2025/krishi-backend/internal/app/infra/merchant"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/logger"
)

// timedPurchaser 记录每次调用时刻的商家桩
type timedPurchaser struct {
	calls []time.Time
}

func (f *timedPurchaser) CanPay() bool { return true }

func (f *timedPurchaser) Purchase(ctx context.Context, category model.Category, productName string, quantity int) (*merchant.PurchaseResult, error) {
	f.calls = append(f.calls, time.Now())
	return &merchant.PurchaseResult{
		OrderID:  "merchant-" + productName,
		Product:  productName,
		Quantity: quantity,
	}, nil
}

func TestRatePacerFirstWaitHonorsInterval(t *testing.T) {
	interval := 50 * time.Millisecond
	p := NewRatePacer(interval)

	// 构造后的第一次 Wait 也要等满间隔，不能直接放行
	start := time.Now()
	require.NoError(t, p.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), interval)
}

func TestDispatchPacesAdjacentItems(t *testing.T) {
	interval := 40 * time.Millisecond
	purchaser := &timedPurchaser{}
	d := NewDispatcher(purchaser, &fakeRecorder{}, NewRatePacer(interval), logger.NewNop())

	recs := []model.Recommendation{
		rec(model.CategorySeed, model.PriorityHigh, "Wheat Seeds"),
		rec(model.CategoryFertilizer, model.PriorityHigh, "DAP"),
		rec(model.CategoryTool, model.PriorityHigh, "Sprayer"),
	}

	_, err := d.Dispatch(context.Background(), 1, recs)
	require.NoError(t, err)
	require.Len(t, purchaser.calls, 3)

	// 相邻两次调用之间的间隔不小于节流间隔，首对也不例外
	for i := 1; i < len(purchaser.calls); i++ {
		gap := purchaser.calls[i].Sub(purchaser.calls[i-1])
		assert.GreaterOrEqual(t, gap, interval, "gap before call %d", i)
	}
}
