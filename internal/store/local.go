package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// cacheEntry is a row of the local durable cache: one JSON payload per
// storage key.
type cacheEntry struct {
	Key       string `gorm:"primaryKey;type:varchar(255)"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (cacheEntry) TableName() string {
	return "cache_entries"
}

// Local is the durable on-disk cache. It is always written synchronously
// so reads never depend on the network.
type Local struct {
	db *gorm.DB
}

// OpenLocal opens (or creates) the sqlite cache file at path.
func OpenLocal(path string) (*Local, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local cache: %w", err)
	}
	return NewLocal(db)
}

// NewLocal wraps an existing GORM connection (used for testing with an
// in-memory database or a mocked driver).
func NewLocal(db *gorm.DB) (*Local, error) {
	if err := db.AutoMigrate(&cacheEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate local cache: %w", err)
	}
	return &Local{db: db}, nil
}

// getRaw returns the cached payload for key, or found=false if the key
// has never been written.
func (l *Local) getRaw(ctx context.Context, key string) ([]byte, bool, error) {
	var entry cacheEntry
	err := l.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return entry.Value, true, nil
}

// setRaw stores the payload for key, replacing any previous value.
func (l *Local) setRaw(ctx context.Context, key string, value []byte) error {
	entry := cacheEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	return l.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

// deleteRaw removes the payload for key. Deleting a missing key is not
// an error.
func (l *Local) deleteRaw(ctx context.Context, key string) error {
	return l.db.WithContext(ctx).Delete(&cacheEntry{}, "key = ?", key).Error
}

// Close releases the underlying database handle.
func (l *Local) Close() error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
