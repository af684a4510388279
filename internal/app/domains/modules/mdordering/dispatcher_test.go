package mdordering

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egnd-2025/krishi-backend/common/model"
	"github.com/egnd-2025/krishi-backend/internal/app/infra/merchant"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/logger"
)

// fakePurchaser 可编排的商家桩：按商品名决定成败
type fakePurchaser struct {
	canPay bool
	failOn map[string]error
	calls  []string
}

func (f *fakePurchaser) CanPay() bool { return f.canPay }

func (f *fakePurchaser) Purchase(ctx context.Context, category model.Category, productName string, quantity int) (*merchant.PurchaseResult, error) {
	f.calls = append(f.calls, productName)
	if err, ok := f.failOn[productName]; ok {
		return nil, err
	}
	return &merchant.PurchaseResult{
		OrderID:  "merchant-" + productName,
		Product:  productName,
		Quantity: quantity,
		Price:    float64(quantity) * 2,
		Receipt:  &model.PaymentReceipt{Success: true, Transaction: "0xabc", Network: "polygon-amoy"},
	}, nil
}

// fakeRecorder 可编排的落库桩
type fakeRecorder struct {
	failOn  map[string]error
	records int
}

func (f *fakeRecorder) Record(ctx context.Context, userID int64, rec model.Recommendation, outcome *model.AttemptOutcome) (string, error) {
	if err, ok := f.failOn[rec.Product.Name]; ok {
		return "", err
	}
	f.records++
	return "order-" + rec.Product.Name, nil
}

func newTestDispatcher(purchaser Purchaser, recorder Recorder) *Dispatcher {
	return NewDispatcher(purchaser, recorder, NopPacer{}, logger.NewNop())
}

func TestDispatchPartialFailureIsolation(t *testing.T) {
	purchaser := &fakePurchaser{
		canPay: true,
		failOn: map[string]error{"Urea": errors.New("settlement rejected")},
	}
	recorder := &fakeRecorder{}
	d := newTestDispatcher(purchaser, recorder)

	recs := []model.Recommendation{
		rec(model.CategorySeed, model.PriorityHigh, "Wheat Seeds"),
		rec(model.CategoryFertilizer, model.PriorityHigh, "Urea"),
		rec(model.CategoryTool, model.PriorityHigh, "Sprayer"),
	}

	attempts, err := d.Dispatch(context.Background(), 1, recs)
	require.NoError(t, err)

	// 第 2 条失败不阻止第 3 条执行，结果与入参同序
	require.Len(t, attempts, 3)
	assert.Equal(t, []string{"Wheat Seeds", "Urea", "Sprayer"}, purchaser.calls)
	assert.True(t, attempts[0].Outcome.Success)
	assert.False(t, attempts[1].Outcome.Success)
	assert.Contains(t, attempts[1].Outcome.Error, "settlement rejected")
	assert.True(t, attempts[2].Outcome.Success)

	// 成败都落库
	assert.Equal(t, 3, recorder.records)

	summary := Summarize(attempts)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
}

func TestDispatchSkippedWithoutCredential(t *testing.T) {
	d := newTestDispatcher(&fakePurchaser{canPay: false}, &fakeRecorder{})

	attempts, err := d.Dispatch(context.Background(), 1, []model.Recommendation{
		rec(model.CategorySeed, model.PriorityHigh, "Wheat Seeds"),
	})

	assert.ErrorIs(t, err, ErrOrderingSkipped)
	assert.Nil(t, attempts)
}

func TestDispatchPersistenceFailureKeepsSuccess(t *testing.T) {
	purchaser := &fakePurchaser{canPay: true}
	recorder := &fakeRecorder{
		failOn: map[string]error{"Wheat Seeds": errors.New("db down")},
	}
	d := newTestDispatcher(purchaser, recorder)

	attempts, err := d.Dispatch(context.Background(), 1, []model.Recommendation{
		rec(model.CategorySeed, model.PriorityHigh, "Wheat Seeds"),
	})
	require.NoError(t, err)
	require.Len(t, attempts, 1)

	// 钱已经花了：结果仍是成功，只是 Persisted=false 留给对账
	outcome := attempts[0].Outcome
	assert.True(t, outcome.Success)
	assert.False(t, outcome.Persisted)
	assert.Empty(t, outcome.PersistedOrderID)
	assert.Equal(t, "merchant-Wheat Seeds", outcome.MerchantOrderID)
}

func TestDispatchRecordsPersistedOrderID(t *testing.T) {
	d := newTestDispatcher(&fakePurchaser{canPay: true}, &fakeRecorder{})

	attempts, err := d.Dispatch(context.Background(), 7, []model.Recommendation{
		rec(model.CategoryTool, model.PriorityHigh, "Sprayer"),
	})
	require.NoError(t, err)

	outcome := attempts[0].Outcome
	assert.True(t, outcome.Persisted)
	assert.Equal(t, "order-Sprayer", outcome.PersistedOrderID)
}
