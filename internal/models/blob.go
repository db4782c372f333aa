package models

import (
	"time"

	"gorm.io/datatypes"
)

// Blob is one durable key→document row. Every store serializes its whole
// state into a single row here on each mutation.
type Blob struct {
	Key       string         `gorm:"primaryKey;type:text"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time      `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Blob) TableName() string {
	return "winx_blobs"
}
