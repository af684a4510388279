package order

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/egnd-2025/krishi-backend/internal/app/domains/apimodel/response"
	"github.com/egnd-2025/krishi-backend/internal/app/domains/repo/rporder"
	"github.com/egnd-2025/krishi-backend/internal/app/pkg/ginx"
)

// Get 获取订单详情接口
// GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	orderID := c.Param("id")
	if orderID == "" {
		ginx.BadRequest(c, "order id required")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		ginx.BusinessError(c, err)
		return
	}

	ginx.Success(c, response.FromOrderEntity(order))
}

// List 查询订单列表接口
// GET /api/v1/orders?user_id=1&status=pending&limit=50&offset=0
func (h *OrderHandler) List(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		ginx.BadRequest(c, "invalid user_id")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, err := h.orderService.ListOrders(c.Request.Context(), rporder.ListFilter{
		UserID: userID,
		Status: c.Query("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		ginx.BusinessError(c, err)
		return
	}

	ginx.Success(c, response.FromOrderEntities(orders))
}
