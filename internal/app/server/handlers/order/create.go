package order

import (
	"github.com/gin-gonic/gin"

	"github.com/egnd-2025/krishi-backend/internal/app/domains/apimodel/request"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/apimodel/response"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/ginx"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/logger"
)

// Create 创建订单接口（手工下单）
// POST /api/v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	ctx := logger.WithUserID(c.Request.Context(), req.UserID)
	order, err := h.orderService.CreateOrder(ctx, req.UserID, req.Currency, req.Notes, req.ToItemInputs())
	if err != nil {
		ginx.BusinessError(c, err)
		return
	}

	ginx.Success(c, response.FromOrderEntity(order))
}
