package response

import (
	"github.com/gin-gonic/gin"
)

// ListMeta accompanies unpaginated collections.
type ListMeta struct {
	Total int64 `json:"total"`
}

func NewListMeta(total int) ListMeta {
	return ListMeta{Total: int64(total)}
}

type ApiEnvelope struct {
	Ok    bool      `json:"ok"`
	Data  any       `json:"data,omitempty"`
	Meta  *ListMeta `json:"meta,omitempty"`
	Error any       `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data interface{}, meta *ListMeta) {
	c.JSON(status, ApiEnvelope{
		Ok:   true,
		Data: data,
		Meta: meta,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details interface{}) {
	c.JSON(status, ApiEnvelope{
		Ok: false,
		Error: map[string]interface{}{
			"code":    errorCode,
			"message": message,
			"details": details,
		},
	})
}
