// Package gormstore hosts the key→blob substrate in a relational database.
// Each well-known key maps to one row of winx_blobs.
package gormstore

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"winx/internal/config"
	"winx/internal/models"
	"winx/internal/storage"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Open connects to postgres and ensures the blob table exists.
func Open(cfg config.StorageConfig) (*Store, error) {
	gcfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	gdb, err := gorm.Open(postgres.Open(cfg.DSN), gcfg)
	if err != nil {
		return nil, err
	}

	sqldb, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqldb.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := gdb.AutoMigrate(&models.Blob{}); err != nil {
		return nil, err
	}

	return &Store{db: gdb}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var blob models.Blob
	err := s.db.WithContext(ctx).First(&blob, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(blob.Value), nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	blob := models.Blob{Key: key, Value: datatypes.JSON(value)}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&blob).Error
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&models.Blob{}, "key = ?", key).Error
}

// Ping reports whether the backing database is reachable.
func (s *Store) Ping() error {
	if s == nil || s.db == nil {
		return errors.New("gormstore: not connected")
	}
	sqldb, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqldb.Ping()
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqldb, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqldb.Close()
}
