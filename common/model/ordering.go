package model

// PaymentReceipt 支付回执（从响应头解码）
type PaymentReceipt struct {
	Success     bool   `json:"success"`
	Transaction string `json:"transaction"`
	Network     string `json:"network"`
	Payer       string `json:"payer"`
}

// AttemptOutcome 单次下单尝试的结果
// 创建后不再修改；重试会产生新的 OrderAttempt 而不是改写旧的
type AttemptOutcome struct {
	Success         bool            `json:"success"`
	MerchantOrderID string          `json:"merchant_order_id,omitempty"`
	SettledPrice    float64         `json:"settled_price,omitempty"`
	Receipt         *PaymentReceipt `json:"receipt,omitempty"`

	// 支付成功但落库失败时 Persisted=false：钱已经花了，结果仍是成功，
	// 留显式标记供运维对账
	PersistedOrderID string `json:"persisted_order_id,omitempty"`
	Persisted        bool   `json:"persisted"`

	Error string `json:"error,omitempty"`
}

// OrderAttempt 推荐 + 下单结果
type OrderAttempt struct {
	Recommendation Recommendation `json:"recommendation"`
	Outcome        AttemptOutcome `json:"outcome"`
}

// SummaryItem 汇总中的单项记录（保持输入顺序）
type SummaryItem struct {
	Product         string   `json:"product"`
	Quantity        int      `json:"quantity"`
	Unit            string   `json:"unit"`
	Priority        Priority `json:"priority"`
	Success         bool     `json:"success"`
	MerchantOrderID string   `json:"merchant_order_id,omitempty"`
	PersistedID     string   `json:"persisted_order_id,omitempty"`
	Persisted       bool     `json:"persisted"`
	Price           float64  `json:"price,omitempty"`
	TransactionID   string   `json:"transaction_id,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// OrderingSummary 自动下单汇总报告
type OrderingSummary struct {
	Total     int           `json:"total"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	TotalCost float64       `json:"total_cost"` // 仅累计成功项的成交价
	Items     []SummaryItem `json:"items"`
}
