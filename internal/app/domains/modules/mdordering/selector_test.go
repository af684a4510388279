package mdordering

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/egnd-2025/krishi-backend/common/model"
)

func rec(category model.Category, priority model.Priority, name string) model.Recommendation {
	return model.Recommendation{
		Category: category,
		Priority: priority,
		Product:  &model.Product{Name: name, Price: 10, Unit: "kg"},
		Quantity: 1,
	}
}

func TestShouldAutoOrder(t *testing.T) {
	tests := []struct {
		name     string
		rec      model.Recommendation
		expected bool
	}{
		{"high seed", rec(model.CategorySeed, model.PriorityHigh, "Wheat Seeds"), true},
		{"high tool", rec(model.CategoryTool, model.PriorityHigh, "Tractor"), true},
		{"medium tool", rec(model.CategoryTool, model.PriorityMedium, "Sprayer"), true},
		{"medium seed", rec(model.CategorySeed, model.PriorityMedium, "Rice Seeds"), false},
		{"medium fertilizer", rec(model.CategoryFertilizer, model.PriorityMedium, "Urea"), false},
		{"low tool", rec(model.CategoryTool, model.PriorityLow, "Hoe"), false},
		{"low pesticide", rec(model.CategoryPesticide, model.PriorityLow, "Neem Oil"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShouldAutoOrder(tt.rec))
		})
	}
}

func TestSelectForOrdering(t *testing.T) {
	input := []model.Recommendation{
		rec(model.CategorySeed, model.PriorityHigh, "Wheat Seeds"),
		rec(model.CategoryFertilizer, model.PriorityMedium, "Urea"),
		rec(model.CategoryTool, model.PriorityMedium, "Sprayer"),
		rec(model.CategoryPesticide, model.PriorityLow, "Neem Oil"),
		rec(model.CategoryFertilizer, model.PriorityHigh, "DAP"),
	}

	selected := SelectForOrdering(input)

	// 准入集合严格等于：高优先级 ∪ (中优先级 ∩ 农具)
	assert.Len(t, selected, 3)
	assert.Equal(t, "Wheat Seeds", selected[0].Product.Name)
	assert.Equal(t, "Sprayer", selected[1].Product.Name)
	assert.Equal(t, "DAP", selected[2].Product.Name)
}

func TestSelectForOrderingEmpty(t *testing.T) {
	assert.Empty(t, SelectForOrdering(nil))
	assert.Empty(t, SelectForOrdering([]model.Recommendation{
		rec(model.CategorySeed, model.PriorityLow, "Wheat Seeds"),
	}))
}
