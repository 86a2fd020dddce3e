package routes

import (
	"metalic-backend/config"
	"metalic-backend/controllers"
	"metalic-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	r.GET("/health", controllers.HealthCheck)
	r.GET("/ping", controllers.Ping)

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/pending", controllers.GetPendingCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.GET("/:id/balance", controllers.GetCustomerBalance)
			customers.GET("/:id/bills", controllers.GetCustomerBills)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		bills := api.Group("/bills")
		{
			bills.POST("", controllers.CreateBill)
			bills.GET("", controllers.GetBills)
			bills.GET("/:id", controllers.GetBill)
			bills.PUT("/:id", controllers.UpdateBill)
			bills.DELETE("/:id", controllers.DeleteBill)
		}

		transactions := api.Group("/transactions")
		{
			transactions.POST("", controllers.CreateTransaction)
			transactions.GET("", controllers.GetTransactions)
			transactions.GET("/:id", controllers.GetTransaction)
			transactions.PUT("/:id", controllers.UpdateTransaction)
			transactions.DELETE("/:id", controllers.DeleteTransaction)
		}

		stock := api.Group("/stock")
		{
			stock.GET("", controllers.GetStock)
			stock.GET("/items", controllers.GetStockItems)
			stock.POST("/transaction", controllers.CreateStockMovement)
		}

		employees := api.Group("/employees")
		{
			employees.POST("", controllers.CreateEmployee)
			employees.GET("", controllers.GetEmployees)
			employees.GET("/:id", controllers.GetEmployee)
			employees.PUT("/:id", controllers.UpdateEmployee)
			employees.DELETE("/:id", controllers.DeleteEmployee)

			employees.POST("/:id/salaries", controllers.CreateEmployeeSalary)
			employees.PUT("/salaries/:salaryId", controllers.UpdateEmployeeSalary)
			employees.DELETE("/salaries/:salaryId", controllers.DeleteEmployeeSalary)

			employees.POST("/:id/payments", controllers.CreateEmployeePayment)
			employees.GET("/:id/payments", controllers.GetEmployeePayments)
			employees.DELETE("/payments/:paymentId", controllers.DeleteEmployeePayment)
		}

		expenses := api.Group("/expenses")
		{
			expenses.POST("", controllers.CreateExpense)
			expenses.GET("", controllers.GetExpenses)
			expenses.GET("/dashboard", controllers.GetExpenseDashboard)
			expenses.GET("/:id", controllers.GetExpense)
			expenses.PUT("/:id", controllers.UpdateExpense)
			expenses.DELETE("/:id", controllers.DeleteExpense)
		}

		gst := api.Group("/gst-bills")
		{
			gst.POST("", controllers.CreateGSTBill)
			gst.GET("", controllers.GetGSTBills)
			gst.GET("/:id", controllers.GetGSTBill)
			gst.DELETE("/:id", controllers.DeleteGSTBill)
		}
		api.GET("/gst-customers", controllers.GetGSTCustomers)

		backup := api.Group("/backup")
		{
			backup.POST("/run", controllers.CreateBackup)
			backup.GET("/download", controllers.DownloadBackup)
			backup.POST("/restore", controllers.RestoreBackup)
			backup.GET("", controllers.ListBackups)
		}

		settings := api.Group("/settings")
		{
			settings.GET("/firm", controllers.GetFirmSettings)
			settings.PUT("/firm", controllers.UpdateFirmSettings)
			settings.GET("/backup", controllers.GetBackupSettings)
			settings.PUT("/backup", controllers.UpdateBackupSettings)
		}

		api.GET("/dashboard", controllers.GetDashboard)
		api.GET("/stats/today", controllers.GetTodayStatistics)
	}

	return r
}
