package employeesalary

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/employee-salaries", handler.GetAll)
	r.GET("/employee/:id/salary", handler.GetByEmployee)
}
