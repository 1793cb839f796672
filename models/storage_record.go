package models

import "time"

// StorageRecord is a named JSON blob in the storage_records table. Each
// collection (deadlines, checked submissions) lives in a single row keyed
// by its record name.
type StorageRecord struct {
	Key      string    `gorm:"primaryKey;column:record_key" json:"record_key"`
	Value    string    `gorm:"column:record_value;type:longtext" json:"record_value"`
	UpdateAt time.Time `gorm:"column:update_at" json:"update_at"`
}

// TableName specifies the table name for GORM
func (StorageRecord) TableName() string {
	return "storage_records"
}
