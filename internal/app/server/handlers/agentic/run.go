package agentic

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/egnd-2025/krishi-backend/internal/app/domains/apimodel/request"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/apimodel/response"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/ginx"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/logger"
)

// Run 触发完整流水线接口
// POST /api/v1/agentic/run
func (h *AgenticHandler) Run(c *gin.Context) {
	var req request.RunAgenticRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	ctx := logger.WithUserID(c.Request.Context(), req.UserID)
	result, err := h.agenticService.RunAgenticOrdering(ctx, req.UserID)
	if err != nil {
		ginx.BusinessError(c, err)
		return
	}

	ginx.Success(c, result)
}

// GetRecommendations 只取推荐不下单接口
// GET /api/v1/agentic/recommendations/:user_id
func (h *AgenticHandler) GetRecommendations(c *gin.Context) {
	userID, err := parseUserID(c.Param("user_id"))
	if err != nil {
		ginx.BadRequest(c, "invalid user_id")
		return
	}

	ctx := logger.WithUserID(c.Request.Context(), userID)
	result, err := h.agenticService.GetRecommendations(ctx, userID)
	if err != nil {
		ginx.BusinessError(c, err)
		return
	}

	ginx.Success(c, result)
}

// GetOrderHistory 查询自动下单历史接口
// GET /api/v1/agentic/orders/:user_id
func (h *AgenticHandler) GetOrderHistory(c *gin.Context) {
	userID, err := parseUserID(c.Param("user_id"))
	if err != nil {
		ginx.BadRequest(c, "invalid user_id")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, err := h.agenticService.GetOrderHistory(c.Request.Context(), userID, limit, offset)
	if err != nil {
		ginx.BusinessError(c, err)
		return
	}

	ginx.Success(c, response.FromOrderEntities(orders))
}

func parseUserID(raw string) (int64, error) {
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return 0, strconv.ErrSyntax
	}
	return userID, nil
}
