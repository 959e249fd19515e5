package app

import (
	"go-empledger/internal/employee"
	"go-empledger/internal/employeesalary"
	"go-empledger/internal/employmenttype"
	"go-empledger/internal/messaging/kafka"
	"go-empledger/internal/shared/sequence"

	"github.com/gin-gonic/gin"
)

func registerModules(api *gin.RouterGroup, m modules) {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(m.gormDB)
	employeeSalaryRepo := employeesalary.NewRepository(m.gormDB)
	employmentTypeRepo := employmenttype.NewRepository(m.gormDB)
	outboxRepo := kafka.NewOutboxRepository(m.db)
	sequenceGen := sequence.NewGenerator(m.gormDB)

	// --- Services ---
	employmentTypeService := employmenttype.NewService(employmentTypeRepo, m.rdb)
	employeeSalaryService := employeesalary.NewService(m.db, employeeSalaryRepo, sequenceGen)
	employeeService := employee.NewService(
		m.db,
		employeeRepo,
		employmentTypeService,
		employeeSalaryService,
		outboxRepo,
		m.store,
	)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	employeeSalaryHandler := employeesalary.NewHandler(employeeSalaryService)
	employmentTypeHandler := employmenttype.NewHandler(employmentTypeService)

	// --- Routes Registration ---
	employee.RegisterRoutes(api, employeeHandler, m.rdb)
	employeesalary.RegisterRoutes(api, employeeSalaryHandler)
	employmenttype.RegisterRoutes(api, employmentTypeHandler)
}
