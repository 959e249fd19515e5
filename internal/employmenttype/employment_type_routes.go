package employmenttype

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/employment-types", handler.GetAll)
	// legacy alias kept for existing clients
	r.GET("/employee-types", handler.GetAll)
	r.POST("/employment-types", handler.Create)
}
