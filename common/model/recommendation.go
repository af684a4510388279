package model

// Priority 推荐优先级
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid 判断优先级是否合法
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// CropRecommendation 作物推荐（按适宜度排序）
type CropRecommendation struct {
	Name           string   `json:"name"`
	Score          int      `json:"score"` // 适宜度 0-100
	Reasons        []string `json:"reasons"`
	YieldPotential string   `json:"yieldPotential"`
	Risks          []string `json:"risks"`
}

// Recommendation 已校验的商品推荐
// 不变式：Product 必须指向同一次运行中拉取的目录内真实条目，
// 无法匹配目录的推荐在进入下单环节之前丢弃
type Recommendation struct {
	Category Category `json:"type"`
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
	Priority Priority `json:"priority"`
	Reason   string   `json:"reason"`
}
