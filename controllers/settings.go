package controllers

import (
	"errors"
	"net/http"

	"metalic-backend/config"
	"metalic-backend/models"
	"metalic-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateFirmSettingsInput struct {
	FirmName  *string `json:"firm_name"`
	GSTNumber *string `json:"gst_number"`
	Address   *string `json:"address"`
	LogoPath  *string `json:"logo_path"`
}

type UpdateBackupSettingsInput struct {
	BackupTime        *string `json:"backup_time"`
	AutoBackupEnabled *bool   `json:"auto_backup_enabled"`
}

// firmSettings returns the single firm profile row, creating it on first
// access.
func firmSettings() (*models.FirmSettings, error) {
	var settings models.FirmSettings
	err := config.DB.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.FirmSettings{}
		if err := config.DB.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func GetFirmSettings(c *gin.Context) {
	settings, err := firmSettings()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

func UpdateFirmSettings(c *gin.Context) {
	var input UpdateFirmSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	settings, err := firmSettings()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	if input.FirmName != nil {
		settings.FirmName = *input.FirmName
	}
	if input.GSTNumber != nil {
		settings.GSTNumber = *input.GSTNumber
	}
	if input.Address != nil {
		settings.Address = *input.Address
	}
	if input.LogoPath != nil {
		settings.LogoPath = *input.LogoPath
	}

	if err := config.DB.Save(settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

func GetBackupSettings(c *gin.Context) {
	settings, err := backupService.Settings()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load backup settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateBackupSettings saves the schedule and re-arms the running scheduler.
func UpdateBackupSettings(c *gin.Context) {
	var input UpdateBackupSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	settings, err := backupService.UpdateSettings(input.BackupTime, input.AutoBackupEnabled)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}
