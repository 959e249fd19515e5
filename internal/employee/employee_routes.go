package employee

import (
	"go-empledger/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes mounts the employee endpoints. rdb may be nil, which
// disables replay of add-employee requests.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	r.GET("/employees", handler.GetAll)
	r.POST("/add-employee", middleware.Idempotency(rdb), handler.Create)
	r.GET("/employee/:id", handler.GetByID)
	r.PUT("/update-employee/:id", handler.Update)
	r.PUT("/employees/:id/status", handler.UpdateStatus)
	r.DELETE("/employee/:id", handler.Delete)
	r.GET("/img/:id", handler.Image)
}
