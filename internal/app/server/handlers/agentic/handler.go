package agentic

import "github.com/egnd-2025/krishi-backend/internal/app/domains/services/svagentic"

// AgenticHandler 农事流水线 HTTP 处理器
type AgenticHandler struct {
	agenticService *svagentic.AgenticService
}

// NewAgenticHandler 创建处理器实例
func NewAgenticHandler(agenticService *svagentic.AgenticService) *AgenticHandler {
	return &AgenticHandler{
		agenticService: agenticService,
	}
}
