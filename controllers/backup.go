package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"metalic-backend/services"
	"metalic-backend/utils"

	"github.com/gin-gonic/gin"
)

// backupService is the scheduler-owning instance constructed in main. It is
// shared so settings updates re-arm the same cron, not a fresh one.
var backupService *services.BackupService

func RegisterBackupService(s *services.BackupService) {
	backupService = s
}

// CreateBackup runs an on-demand backup and returns the archive name.
func CreateBackup(c *gin.Context) {
	path, err := backupService.CreateBackup()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Backup failed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Backup created successfully",
		"file":    filepath.Base(path),
	})
}

// DownloadBackup streams a freshly built archive to the caller.
func DownloadBackup(c *gin.Context) {
	name := "metalic_backup_" + time.Now().Format("20060102_150405") + ".zip"
	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", "attachment; filename="+name)

	if err := backupService.WriteBackup(c.Writer); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Backup failed: "+err.Error())
		return
	}
}

// RestoreBackup replaces the entire store with the uploaded archive.
func RestoreBackup(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Backup file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to read upload")
		return
	}
	defer src.Close()

	if err := backupService.Restore(src, file.Size); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Backup restored successfully"})
}

// ListBackups names the archives currently on disk, newest first.
func ListBackups(c *gin.Context) {
	dir := os.Getenv("BACKUP_DIR")
	if dir == "" {
		dir = "backups"
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusOK, []string{})
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to list backups")
		return
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".zip" {
			names = append(names, entry.Name())
		}
	}
	c.JSON(http.StatusOK, names)
}
