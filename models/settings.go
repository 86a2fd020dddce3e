package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FirmSettings is a single-row table holding the firm profile printed on
// invoices and reports.
type FirmSettings struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FirmName  string    `gorm:"default:'Metalic Jewelers'" json:"firm_name"`
	GSTNumber string    `json:"gst_number"`
	Address   string    `gorm:"type:text" json:"address"`
	LogoPath  string    `json:"logo_path"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f *FirmSettings) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return
}

// BackupSettings is a single-row table controlling the scheduled auto backup.
type BackupSettings struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BackupTime        string    `gorm:"type:varchar(10);default:'20:00'" json:"backup_time"` // HH:MM
	AutoBackupEnabled bool      `gorm:"default:false" json:"auto_backup_enabled"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (b *BackupSettings) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.BackupTime == "" {
		b.BackupTime = "20:00"
	}
	return
}
