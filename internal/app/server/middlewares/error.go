package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/egnd-2025/krishi-backend/internal/app/pkg/ginx"
)

// ErrorHandler 统一错误处理中间件
// 处理器把业务错误挂到 c.Error 上，这里按错误分类统一映射状态码
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			ginx.BusinessError(c, c.Errors.Last().Err)
		}
	}
}
