package model

import (
	"time"

	"gorm.io/datatypes"
)

// KVEntry is one stored collection in the postgres backend.
type KVEntry struct {
	Key       string         `gorm:"primaryKey;size:255" json:"key"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null" json:"value"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
