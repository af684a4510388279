package routers

import (
	"github.com/gin-gonic/gin"

	"github.com/egnd-2025/krishi-backend/internal/app/pkg/logger"
	"github.com/egnd-2025/krishi-backend/internal/app/server/handlers/agentic"
	"github.com/egnd-2025/krishi-backend/internal/app/server/handlers/order"
	"github.com/egnd-2025/krishi-backend/internal/app/server/middlewares"
)

// SetupRoutes 配置所有路由，使用 Route Group 分类
func SetupRoutes(
	agenticHandler *agentic.AgenticHandler,
	orderHandler *order.OrderHandler,
	log logger.Logger,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middlewares.CORS())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.ErrorHandler())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "krishi-backend",
			"message": "Service is running",
		})
	})

	v1 := r.Group("/api/v1")
	{
		agenticGroup := v1.Group("/agentic")
		{
			agenticGroup.POST("/run", agenticHandler.Run)
			agenticGroup.GET("/recommendations/:user_id", agenticHandler.GetRecommendations)
			agenticGroup.GET("/orders/:user_id", agenticHandler.GetOrderHistory)
		}

		orders := v1.Group("/orders")
		{
			orders.POST("", orderHandler.Create)
			orders.GET("", orderHandler.List)
			orders.GET("/:id", orderHandler.Get)
			orders.PATCH("/:id/status", orderHandler.UpdateStatus)
			orders.POST("/:id/items", orderHandler.AddItem)
			orders.DELETE("/:id", orderHandler.Cancel)
		}
	}

	return r
}
