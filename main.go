package main

import (
	"fmt"
	"log"
	"os"

	"metalic-backend/config"
	"metalic-backend/controllers"
	"metalic-backend/models"
	"metalic-backend/routes"
	"metalic-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Bill{},
		&models.Transaction{},
		&models.StockItem{},
		&models.StockEntry{},
		&models.Employee{},
		&models.EmployeeSalary{},
		&models.EmployeePayment{},
		&models.Expense{},
		&models.GSTBill{},
		&models.GSTBillItem{},
		&models.GSTCustomer{},
		&models.FirmSettings{},
		&models.BackupSettings{},
		&models.ReminderLog{},
	)
}

func main() {
	backupDir := os.Getenv("BACKUP_DIR")
	if backupDir == "" {
		backupDir = "backups"
	}
	backup := services.NewBackupService(config.DB, backupDir)
	controllers.RegisterBackupService(backup)
	if err := backup.StartScheduler(); err != nil {
		log.Printf("Backup scheduler not started: %v", err)
	}

	services.NewReminderService(config.DB).StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
