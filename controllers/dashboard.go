package controllers

import (
	"net/http"
	"time"

	"metalic-backend/config"
	"metalic-backend/services"
	"metalic-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboard returns the landing-page overview.
func GetDashboard(c *gin.Context) {
	dashboard, err := services.NewBalanceService(config.DB).Dashboard()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// GetTodayStatistics returns the balance folds restricted to today's bills.
func GetTodayStatistics(c *gin.Context) {
	stats, err := services.NewBalanceService(config.DB).TodayStatistics(time.Now())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func HealthCheck(c *gin.Context) {
	sqlDB, err := config.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
