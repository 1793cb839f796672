package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"homework-tracker-api/models"
)

// Storage keys for the two persisted collections.
const (
	StorageKeyDeadlines = "homework-deadlines"
	StorageKeyChecked   = "checked-submissions"
)

// Store reads and writes named JSON blobs. A missing key reads as
// (nil, nil); only a real storage failure returns an error.
type Store interface {
	Read(key string) ([]byte, error)
	Write(key string, value []byte) error
}

// GormStore keeps each collection in one row of the storage_records table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Read(key string) ([]byte, error) {
	var rec models.StorageRecord
	if err := s.db.Where("record_key = ?", key).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return []byte(rec.Value), nil
}

func (s *GormStore) Write(key string, value []byte) error {
	rec := models.StorageRecord{
		Key:      key,
		Value:    string(value),
		UpdateAt: time.Now(),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"record_value", "update_at"}),
	}).Create(&rec).Error
}
