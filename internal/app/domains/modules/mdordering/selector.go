package mdordering

import (
	"github.com/egnd-2025/krishi-backend/common/model"
)

// ShouldAutoOrder 自动下单准入判断
// 只有高优先级条目、以及中优先级的农具会被自动购买，
// 其余条目只报告不花钱
func ShouldAutoOrder(rec model.Recommendation) bool {
	if rec.Priority == model.PriorityHigh {
		return true
	}
	return rec.Priority == model.PriorityMedium && rec.Category == model.CategoryTool
}

// SelectForOrdering 从推荐列表中筛出自动下单子集，保持输入顺序
func SelectForOrdering(recs []model.Recommendation) []model.Recommendation {
	selected := make([]model.Recommendation, 0, len(recs))
	for _, rec := range recs {
		if ShouldAutoOrder(rec) {
			selected = append(selected, rec)
		}
	}
	return selected
}
