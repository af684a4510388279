package order

import (
	"github.com/gin-gonic/gin"

	"github.com/egnd-2025/krishi-backend/internal/app/domains/apimodel/request"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/apimodel/response"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/entity/etorder"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/ginx"
)

// UpdateStatus 更新订单状态接口
// PATCH /api/v1/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID := c.Param("id")
	if orderID == "" {
		ginx.BadRequest(c, "order id required")
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), orderID, etorder.OrderStatus(req.Status))
	if err != nil {
		ginx.BusinessError(c, err)
		return
	}

	ginx.Success(c, response.FromOrderEntity(order))
}

// AddItem 追加订单项接口
// POST /api/v1/orders/:id/items
func (h *OrderHandler) AddItem(c *gin.Context) {
	orderID := c.Param("id")
	if orderID == "" {
		ginx.BadRequest(c, "order id required")
		return
	}

	var req request.AddOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	order, err := h.orderService.AddItem(c.Request.Context(), orderID, req.ToItemInput())
	if err != nil {
		ginx.BusinessError(c, err)
		return
	}

	ginx.Success(c, response.FromOrderEntity(order))
}

// Cancel 取消订单接口（状态迁移，非物理删除）
// DELETE /api/v1/orders/:id
func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID := c.Param("id")
	if orderID == "" {
		ginx.BadRequest(c, "order id required")
		return
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), orderID)
	if err != nil {
		ginx.BusinessError(c, err)
		return
	}

	ginx.Success(c, response.FromOrderEntity(order))
}
