package storage

import "time"

// ScanModel is the GORM model for scans table
type ScanModel struct {
	CreatedAt    time.Time
	LastOpenedAt *time.Time `gorm:"default:null;index:idx_last_opened"`
	Name         string     `gorm:"primaryKey"`
	Nodes        int        `gorm:"not null;default:0"`
	Path         string     `gorm:"not null;uniqueIndex:idx_path"`
	SizeBytes    int64      `gorm:"not null;default:0"`
	UpdatedAt    time.Time  `gorm:"index:idx_updated_at"`
}

// TableName specifies the table name for GORM
func (ScanModel) TableName() string { return "scans" }
