package mdrecommend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egnd-2025/krishi-backend/common/model"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/logger"
)

// fakeCompleter 可编排的咨询桩
type fakeCompleter struct {
	reply string
	err   error
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return f.reply, f.err
}

func testSnapshot() *model.AnalysisSnapshot {
	return &model.AnalysisSnapshot{
		Land:       model.LandProfile{Area: 2, Country: "India", Latitude: 28.6, Longitude: 77.2},
		Conditions: model.DefaultFieldConditions(),
	}
}

func testCatalog() *model.Catalog {
	return &model.Catalog{
		Seeds: []model.Product{
			{Name: "Wheat Seeds", Price: 12.5, Unit: "kg", Description: "Winter wheat"},
			{Name: "Rice Seeds", Price: 15, Unit: "kg"},
		},
		Fertilizers: []model.Product{
			{Name: "Urea", Price: 6, Unit: "kg", Description: "Nitrogen fertilizer"},
		},
		Tools: []model.Product{
			{Name: "Sprayer", Price: 45, Unit: "piece"},
		},
	}
}

func TestRecommendCropsFallbackOnInvalidJSON(t *testing.T) {
	engine := NewRecommendationEngine(&fakeCompleter{reply: "sorry, I cannot help with that"}, logger.NewNop())

	crops := engine.RecommendCrops(context.Background(), testSnapshot(), []string{"Wheat Seeds"})

	// 非 JSON 输出走固定兜底榜单，确定性结果
	require.Len(t, crops, 3)
	assert.Equal(t, "Wheat Seeds", crops[0].Name)
	assert.Equal(t, 75, crops[0].Score)
	assert.Equal(t, "Maize Seeds", crops[1].Name)
	assert.Equal(t, 70, crops[1].Score)
	assert.Equal(t, "Soybean Seeds", crops[2].Name)
	assert.Equal(t, 65, crops[2].Score)
}

func TestRecommendCropsFallbackOnUpstreamError(t *testing.T) {
	engine := NewRecommendationEngine(&fakeCompleter{err: errors.New("timeout")}, logger.NewNop())

	crops := engine.RecommendCrops(context.Background(), testSnapshot(), nil)
	require.Len(t, crops, 3)
}

func TestRecommendCropsParsesValidReply(t *testing.T) {
	reply := "```json\n[{\"name\": \"Rice Seeds\", \"score\": 88, \"reasons\": [\"humid climate\"], \"yieldPotential\": \"high\", \"risks\": [\"flooding\"]}]\n```"
	engine := NewRecommendationEngine(&fakeCompleter{reply: reply}, logger.NewNop())

	crops := engine.RecommendCrops(context.Background(), testSnapshot(), []string{"Rice Seeds"})

	require.Len(t, crops, 1)
	assert.Equal(t, "Rice Seeds", crops[0].Name)
	assert.Equal(t, 88, crops[0].Score)
}

func TestRecommendCropsFallbackOnFractionalScore(t *testing.T) {
	// score 字段是整数：带小数的输出在 schema 这一层就被拒绝，
	// 不会走到反序列化才失败
	reply := `[{"name": "Rice Seeds", "score": 87.5}]`
	engine := NewRecommendationEngine(&fakeCompleter{reply: reply}, logger.NewNop())

	crops := engine.RecommendCrops(context.Background(), testSnapshot(), []string{"Rice Seeds"})

	require.Len(t, crops, 3)
	assert.Equal(t, "Wheat Seeds", crops[0].Name)
}

func TestRecommendProductsReconcilesAgainstCatalog(t *testing.T) {
	// AI 回显的价格是 999，对账后必须替换为目录真实价格
	reply := `[
		{"type": "seed", "product": {"name": "Wheat Seeds", "price": 999}, "quantity": 50, "priority": "high", "reason": "staple crop"},
		{"type": "fertilizer", "product": {"name": "Ghost Fertilizer"}, "quantity": 100, "priority": "high", "reason": "made up"},
		{"type": "tool", "product": {"name": "Sprayer"}, "quantity": 1, "priority": "medium", "reason": "pest control"}
	]`
	engine := NewRecommendationEngine(&fakeCompleter{reply: reply}, logger.NewNop())
	catalog := testCatalog()

	recs := engine.RecommendProducts(context.Background(), testSnapshot(), nil, catalog)

	// 目录里没有的条目被丢弃
	require.Len(t, recs, 2)

	// 商品指针指向目录真实条目，价格以目录为准
	assert.Same(t, &catalog.Seeds[0], recs[0].Product)
	assert.InDelta(t, 12.5, recs[0].Product.Price, 0.001)
	assert.Equal(t, 50, recs[0].Quantity)
	assert.Equal(t, model.PriorityHigh, recs[0].Priority)

	assert.Same(t, &catalog.Tools[0], recs[1].Product)
}

func TestRecommendProductsCapsAbsurdQuantity(t *testing.T) {
	reply := `[{"type": "seed", "product": {"name": "Wheat Seeds"}, "quantity": 99999, "priority": "high", "reason": "x"}]`
	engine := NewRecommendationEngine(&fakeCompleter{reply: reply}, logger.NewNop())

	recs := engine.RecommendProducts(context.Background(), testSnapshot(), nil, testCatalog())

	require.Len(t, recs, 1)
	// 2 公顷的规则用量：25 × 2 = 50
	assert.Equal(t, 50, recs[0].Quantity)
}

func TestRecommendProductsFallbackBasket(t *testing.T) {
	engine := NewRecommendationEngine(&fakeCompleter{reply: "not json"}, logger.NewNop())
	catalog := testCatalog()
	crops := []model.CropRecommendation{{Name: "Wheat Seeds", Score: 75}}

	recs := engine.RecommendProducts(context.Background(), testSnapshot(), crops, catalog)

	// 兜底篮子：首选作物种子 + Urea，均为高优先级
	require.Len(t, recs, 2)
	assert.Equal(t, model.CategorySeed, recs[0].Category)
	assert.Same(t, &catalog.Seeds[0], recs[0].Product)
	assert.Equal(t, model.PriorityHigh, recs[0].Priority)
	assert.Equal(t, model.CategoryFertilizer, recs[1].Category)
	assert.Equal(t, "Urea", recs[1].Product.Name)
	assert.Equal(t, model.PriorityHigh, recs[1].Priority)
}

func TestRecommendProductsFallbackWithoutUrea(t *testing.T) {
	engine := NewRecommendationEngine(&fakeCompleter{err: errors.New("down")}, logger.NewNop())
	catalog := testCatalog()
	catalog.Fertilizers = nil
	crops := []model.CropRecommendation{{Name: "Wheat Seeds", Score: 75}}

	recs := engine.RecommendProducts(context.Background(), testSnapshot(), crops, catalog)

	// 目录没有 Urea：篮子只剩种子，不报错
	require.Len(t, recs, 1)
	assert.Equal(t, model.CategorySeed, recs[0].Category)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `[1]`, stripCodeFence("```json\n[1]\n```"))
	assert.Equal(t, `[1]`, stripCodeFence("```\n[1]\n```"))
	assert.Equal(t, `[1]`, stripCodeFence("  [1]  "))
}
