package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"devconnector/internal/domain"
)

// Success 成功直接返回实体本身
type Success struct {
	Success bool `json:"success"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Fail *domain.Error 按其状态码返回字段 -> 消息；其余错误一律 500，原因只进日志
func Fail(c *gin.Context, err error) {
	if de, ok := domain.AsError(err); ok {
		c.JSON(de.Code, de.Fields)
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": msgOf(http.StatusInternalServerError)})
}

// Abort 中间件拒绝请求
func Abort(c *gin.Context, code int) {
	c.AbortWithStatusJSON(code, gin.H{"message": msgOf(code)})
}

// AbortErr 中间件里按 Fail 的规则写响应并中止后续 handler
func AbortErr(c *gin.Context, err error) {
	Fail(c, err)
	c.Abort()
}
