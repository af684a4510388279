package svagentic

import (
	"context"
	"errors"

	"github.com/egnd-2025/krishi-backend/common/model"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/entity/etorder"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/modules/mdanalysis"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/modules/mdcatalog"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/modules/mdordering"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/modules/mdrecommend"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/repo/rporder"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/logger"
)

// OrderingResult 自动下单环节的结果
// Skipped=true 表示支付凭证未配置，分析照常、下单整体跳过
type OrderingResult struct {
	Skipped bool                   `json:"skipped"`
	Message string                 `json:"message"`
	Summary *model.OrderingSummary `json:"summary,omitempty"`
}

// OrderReadyItem 供手工下单的条目（自动下单子集的前端表达）
type OrderReadyItem struct {
	Endpoint      string         `json:"endpoint"`
	Product       string         `json:"product"`
	Quantity      int            `json:"quantity"`
	Priority      model.Priority `json:"priority"`
	Reason        string         `json:"reason"`
	EstimatedCost float64        `json:"estimated_cost"`
}

// PipelineResult 一次完整流水线运行的结果
// analysis 与 ordering 分开呈现：只要地块存在分析就有结果，
// 下单可以部分失败或整体跳过
type PipelineResult struct {
	LandAnalysis           *model.AnalysisSnapshot    `json:"land_analysis"`
	CropRecommendations    []model.CropRecommendation `json:"crop_recommendations"`
	ProductRecommendations []model.Recommendation     `json:"product_recommendations"`
	OrderReady             []OrderReadyItem           `json:"order_ready"`
	Ordering               *OrderingResult            `json:"ordering"`
}

// RecommendationResult 只分析不下单的结果
type RecommendationResult struct {
	LandAnalysis           *model.AnalysisSnapshot    `json:"land_analysis"`
	CropRecommendations    []model.CropRecommendation `json:"crop_recommendations"`
	ProductRecommendations []model.Recommendation     `json:"product_recommendations"`
	OrderReady             []OrderReadyItem           `json:"order_ready"`
}

// AgenticService 农事流水线编排服务
// 串行推进：分析 → 目录 → 作物推荐 → 商品推荐 → 自动下单 → 汇总；
// 地块缺失与目录不可达终止整次运行，其余失败都收敛在更小范围内
type AgenticService struct {
	analyzer   *mdanalysis.ConditionAnalyzer
	catalog    *mdcatalog.CatalogFetcher
	engine     *mdrecommend.RecommendationEngine
	dispatcher *mdordering.Dispatcher
	orderRepo  rporder.OrderRepository
	log        logger.Logger
}

// NewAgenticService 创建流水线服务
func NewAgenticService(
	analyzer *mdanalysis.ConditionAnalyzer,
	catalog *mdcatalog.CatalogFetcher,
	engine *mdrecommend.RecommendationEngine,
	dispatcher *mdordering.Dispatcher,
	orderRepo rporder.OrderRepository,
	log logger.Logger,
) *AgenticService {
	return &AgenticService{
		analyzer:   analyzer,
		catalog:    catalog,
		engine:     engine,
		dispatcher: dispatcher,
		orderRepo:  orderRepo,
		log:        log,
	}
}

// RunAgenticOrdering 执行完整的分析加自动下单流水线
func (s *AgenticService) RunAgenticOrdering(ctx context.Context, userID int64) (*PipelineResult, error) {
	recResult, err := s.GetRecommendations(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &PipelineResult{
		LandAnalysis:           recResult.LandAnalysis,
		CropRecommendations:    recResult.CropRecommendations,
		ProductRecommendations: recResult.ProductRecommendations,
		OrderReady:             recResult.OrderReady,
	}

	// 下单失败不推翻已完成的分析结果
	result.Ordering = s.ExecuteOrdering(ctx, userID, recResult.ProductRecommendations)
	return result, nil
}

// GetRecommendations 只做分析和推荐，不触发下单
func (s *AgenticService) GetRecommendations(ctx context.Context, userID int64) (*RecommendationResult, error) {
	snapshot, err := s.analyzer.Analyze(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.log.Infof(ctx, "land analysis done: area=%.2fha ndvi=%.2f", snapshot.Land.Area, snapshot.Conditions.NDVI)

	catalog, err := s.catalog.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	crops := s.engine.RecommendCrops(ctx, snapshot, catalog.SeedNames())
	products := s.engine.RecommendProducts(ctx, snapshot, crops, catalog)
	s.log.Infof(ctx, "recommendations generated: crops=%d products=%d", len(crops), len(products))

	return &RecommendationResult{
		LandAnalysis:           snapshot,
		CropRecommendations:    crops,
		ProductRecommendations: products,
		OrderReady:             buildOrderReady(products),
	}, nil
}

// ExecuteOrdering 对推荐列表执行自动下单并生成汇总
// 永不报错：凭证缺失返回跳过标记，其余失败折叠进汇总
func (s *AgenticService) ExecuteOrdering(ctx context.Context, userID int64, recs []model.Recommendation) *OrderingResult {
	selected := mdordering.SelectForOrdering(recs)
	if len(selected) == 0 {
		return &OrderingResult{
			Message: "No high-priority items to order automatically",
			Summary: &model.OrderingSummary{Items: []model.SummaryItem{}},
		}
	}

	attempts, err := s.dispatcher.Dispatch(ctx, userID, selected)
	if err != nil {
		if errors.Is(err, mdordering.ErrOrderingSkipped) {
			s.log.Warnf(ctx, "automated ordering skipped: payment credential missing")
			return &OrderingResult{
				Skipped: true,
				Message: "Analysis only, manual ordering required: payment credential is not configured",
			}
		}
		// 调度中途被打断（如节流等待期间取消），已完成的尝试仍然汇总
		s.log.Errorf(ctx, "ordering dispatch interrupted: %v", err)
	}

	summary := mdordering.Summarize(attempts)
	message := "Orders placed"
	if summary.Failed > 0 {
		message = "Orders partially placed, check per-item results"
	}
	if summary.Succeeded == 0 {
		message = "Analysis completed but automated ordering failed"
	}

	s.log.Infof(ctx, "ordering finished: total=%d succeeded=%d failed=%d cost=%.2f",
		summary.Total, summary.Succeeded, summary.Failed, summary.TotalCost)

	return &OrderingResult{
		Message: message,
		Summary: &summary,
	}
}

// GetOrderHistory 查询用户的自动下单历史
func (s *AgenticService) GetOrderHistory(ctx context.Context, userID int64, limit, offset int) ([]*etorder.Order, error) {
	return s.orderRepo.ListByUser(ctx, rporder.ListFilter{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
}

// buildOrderReady 将自动下单子集转换为前端可直接发起手工下单的条目
func buildOrderReady(recs []model.Recommendation) []OrderReadyItem {
	endpoints := map[model.Category]string{
		model.CategorySeed:       "/order/seeds",
		model.CategoryFertilizer: "/order/fertilizers",
		model.CategoryTool:       "/order/tools",
		model.CategoryPesticide:  "/order/pesticides",
	}

	selected := mdordering.SelectForOrdering(recs)
	items := make([]OrderReadyItem, 0, len(selected))
	for _, rec := range selected {
		items = append(items, OrderReadyItem{
			Endpoint:      endpoints[rec.Category],
			Product:       rec.Product.Name,
			Quantity:      rec.Quantity,
			Priority:      rec.Priority,
			Reason:        rec.Reason,
			EstimatedCost: float64(rec.Quantity) * rec.Product.Price,
		})
	}
	return items
}
