package mdrecommend

import (
	"context"

	"github.com/egnd-2025/krishi-backend/common/model"
	"github.com/egnd-2025/krishi-backend/internal/app/infra/advisor"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/logger"
)

// 咨询不可用时的兜底作物榜单（固定值，保证确定性）
var fallbackCrops = []model.CropRecommendation{
	{Name: "Wheat Seeds", Score: 75, Reasons: []string{"Good for current conditions"}},
	{Name: "Maize Seeds", Score: 70, Reasons: []string{"Suitable temperature range"}},
	{Name: "Soybean Seeds", Score: 65, Reasons: []string{"Moderate conditions"}},
}

// 兜底篮子中的基础氮肥
const fallbackFertilizerName = "Urea"

// RecommendationEngine 推荐引擎
// 咨询输出永远先过 schema 校验再对账目录；任何环节失败都退化到
// 规则兜底，引擎本身从不因咨询服务失败而报错
type RecommendationEngine struct {
	completer advisor.Completer
	log       logger.Logger
}

// NewRecommendationEngine 创建推荐引擎
func NewRecommendationEngine(completer advisor.Completer, log logger.Logger) *RecommendationEngine {
	return &RecommendationEngine{completer: completer, log: log}
}

// aiProductRecommendation 咨询输出中的单条商品推荐（未对账）
type aiProductRecommendation struct {
	Type     string `json:"type"`
	Product  struct {
		Name string `json:"name"`
	} `json:"product"`
	Quantity int    `json:"quantity"`
	Priority string `json:"priority"`
	Reason   string `json:"reason"`
}

// RecommendCrops 生成作物推荐榜单（按适宜度排序）
// 咨询失败或输出非法时返回固定兜底榜单，不报错
func (e *RecommendationEngine) RecommendCrops(ctx context.Context, snapshot *model.AnalysisSnapshot, availableCrops []string) []model.CropRecommendation {
	raw, err := e.completer.Complete(ctx, buildCropPrompt(snapshot, availableCrops))
	if err != nil {
		e.log.Warnf(ctx, "crop advisory unavailable, using fallback crops: %v", err)
		return fallbackCropRecommendations()
	}

	var crops []model.CropRecommendation
	if err := decodeValidated(raw, cropSchema, &crops); err != nil {
		e.log.Warnf(ctx, "crop advisory output rejected, using fallback crops: %v", err)
		return fallbackCropRecommendations()
	}

	return crops
}

// RecommendProducts 生成已对账的商品推荐列表
// 每条推荐的商品指针都指向本次运行拉取的目录真实条目；
// 对不上目录的推荐丢弃并记日志；咨询整体失败时返回规则兜底篮子
func (e *RecommendationEngine) RecommendProducts(ctx context.Context, snapshot *model.AnalysisSnapshot, crops []model.CropRecommendation, catalog *model.Catalog) []model.Recommendation {
	raw, err := e.completer.Complete(ctx, buildProductPrompt(snapshot, crops, catalog))
	if err != nil {
		e.log.Warnf(ctx, "product advisory unavailable, using fallback basket: %v", err)
		return e.fallbackBasket(ctx, snapshot, crops, catalog)
	}

	var aiRecs []aiProductRecommendation
	if err := decodeValidated(raw, productSchema, &aiRecs); err != nil {
		e.log.Warnf(ctx, "product advisory output rejected, using fallback basket: %v", err)
		return e.fallbackBasket(ctx, snapshot, crops, catalog)
	}

	return e.reconcile(ctx, snapshot, aiRecs, catalog)
}

// reconcile 将咨询输出对账到目录
// 价格、单位、描述一律以目录为准，绝不信任 AI 回显的价格；
// 用量超出规则用量合理区间时压回规则用量
func (e *RecommendationEngine) reconcile(ctx context.Context, snapshot *model.AnalysisSnapshot, aiRecs []aiProductRecommendation, catalog *model.Catalog) []model.Recommendation {
	validated := make([]model.Recommendation, 0, len(aiRecs))

	for _, rec := range aiRecs {
		category := model.Category(rec.Type)
		if !category.Valid() {
			e.log.Warnf(ctx, "recommendation dropped: unknown category %q", rec.Type)
			continue
		}

		product := catalog.Find(category, rec.Product.Name)
		if product == nil {
			e.log.Warnf(ctx, "recommendation dropped: product %q not found in %s catalog", rec.Product.Name, category)
			continue
		}

		priority := model.Priority(rec.Priority)
		if !priority.Valid() {
			priority = model.PriorityLow
		}

		validated = append(validated, model.Recommendation{
			Category: category,
			Product:  product,
			Quantity: sanitizeQuantity(rec.Quantity, category, snapshot.Land.Area, snapshot.Conditions.NDVI),
			Priority: priority,
			Reason:   rec.Reason,
		})
	}

	return validated
}

// fallbackBasket 规则兜底篮子：首选作物的种子 + 基础氮肥，均为高优先级
// 目录里找不到的条目直接跳过，篮子可以为空但不报错
func (e *RecommendationEngine) fallbackBasket(ctx context.Context, snapshot *model.AnalysisSnapshot, crops []model.CropRecommendation, catalog *model.Catalog) []model.Recommendation {
	basket := make([]model.Recommendation, 0, 2)

	if len(crops) > 0 {
		topCrop := crops[0]
		if seed := catalog.Find(model.CategorySeed, topCrop.Name); seed != nil {
			basket = append(basket, model.Recommendation{
				Category: model.CategorySeed,
				Product:  seed,
				Quantity: PolicyQuantity(model.CategorySeed, snapshot.Land.Area, topCrop.Name, snapshot.Conditions.NDVI),
				Priority: model.PriorityHigh,
				Reason:   "Recommended crop: " + topCrop.Name,
			})
		}
	}

	if fertilizer := catalog.Find(model.CategoryFertilizer, fallbackFertilizerName); fertilizer != nil {
		basket = append(basket, model.Recommendation{
			Category: model.CategoryFertilizer,
			Product:  fertilizer,
			Quantity: PolicyQuantity(model.CategoryFertilizer, snapshot.Land.Area, "", snapshot.Conditions.NDVI),
			Priority: model.PriorityHigh,
			Reason:   "Essential nitrogen fertilizer",
		})
	} else {
		e.log.Warnf(ctx, "fallback fertilizer %q not in catalog, basket reduced", fallbackFertilizerName)
	}

	return basket
}

// fallbackCropRecommendations 返回兜底作物榜单的拷贝，防止调用方改写共享数据
func fallbackCropRecommendations() []model.CropRecommendation {
	crops := make([]model.CropRecommendation, len(fallbackCrops))
	copy(crops, fallbackCrops)
	return crops
}
