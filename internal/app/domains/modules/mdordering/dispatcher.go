package mdordering

import (
	"context"
	"errors"

	"github.com/egnd-2025/krishi-backend/common/model"
	"github.com/egnd-2025/krishi-backend/internal/app/infra/merchant"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/logger"
)

// ErrOrderingSkipped 未配置支付凭证时返回：分析和推荐照常，但不下单
var ErrOrderingSkipped = errors.New("automated ordering skipped: payment credential is not configured")

// Purchaser 付费下单能力（商家客户端的抽象，便于注入与测试）
type Purchaser interface {
	CanPay() bool
	Purchase(ctx context.Context, category model.Category, productName string, quantity int) (*merchant.PurchaseResult, error)
}

// Recorder 下单结果落库能力
type Recorder interface {
	Record(ctx context.Context, userID int64, rec model.Recommendation, outcome *model.AttemptOutcome) (string, error)
}

// Dispatcher 自动下单调度器
// 严格按推荐产出顺序逐条执行，单条失败不影响后续条目；
// 每条之间等待固定节流间隔，成败都等
type Dispatcher struct {
	purchaser Purchaser
	recorder  Recorder
	pacer     Pacer
	log       logger.Logger
}

// NewDispatcher 创建调度器
func NewDispatcher(purchaser Purchaser, recorder Recorder, pacer Pacer, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		purchaser: purchaser,
		recorder:  recorder,
		pacer:     pacer,
		log:       log,
	}
}

// Dispatch 对推荐列表执行自动下单
// 入参为已通过准入筛选的推荐；返回与入参同序的尝试记录。
// 支付能力缺失时返回 ErrOrderingSkipped，不接触商家
func (d *Dispatcher) Dispatch(ctx context.Context, userID int64, recs []model.Recommendation) ([]model.OrderAttempt, error) {
	if !d.purchaser.CanPay() {
		return nil, ErrOrderingSkipped
	}

	attempts := make([]model.OrderAttempt, 0, len(recs))

	for i, rec := range recs {
		if i > 0 {
			// 节流间隔对齐商家的按次结算节奏
			if err := d.pacer.Wait(ctx); err != nil {
				return attempts, err
			}
		}

		outcome := d.dispatchOne(ctx, userID, rec)
		attempts = append(attempts, model.OrderAttempt{
			Recommendation: rec,
			Outcome:        *outcome,
		})
	}

	return attempts, nil
}

// dispatchOne 执行单条下单尝试
// 所有失败都收敛为 outcome，绝不向上抛，保证后续条目继续执行
func (d *Dispatcher) dispatchOne(ctx context.Context, userID int64, rec model.Recommendation) *model.AttemptOutcome {
	outcome := &model.AttemptOutcome{}

	result, err := d.purchaser.Purchase(ctx, rec.Category, rec.Product.Name, rec.Quantity)
	if err != nil {
		d.log.Warnf(ctx, "purchase failed: product=%s quantity=%d err=%v", rec.Product.Name, rec.Quantity, err)
		outcome.Error = err.Error()
	} else {
		outcome.Success = true
		outcome.MerchantOrderID = result.OrderID
		outcome.SettledPrice = result.Price
		outcome.Receipt = result.Receipt
		d.log.Infof(ctx, "purchase settled: product=%s quantity=%d price=%.2f merchantOrder=%s",
			rec.Product.Name, rec.Quantity, result.Price, result.OrderID)
	}

	// 成败都落库；支付成功但落库失败时结果仍是成功，
	// 只把 Persisted 置为 false 留给对账
	persistedID, err := d.recorder.Record(ctx, userID, rec, outcome)
	if err != nil {
		d.log.Errorf(ctx, "persist order attempt failed: product=%s err=%v", rec.Product.Name, err)
		outcome.Persisted = false
	} else {
		outcome.Persisted = true
		outcome.PersistedOrderID = persistedID
	}

	return outcome
}
