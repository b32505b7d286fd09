package kv

import (
	"context"
	"errors"
	"time"

	"github.com/merendaflow/merenda-backend/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StateBlob is the single-table schema behind the SQL adapter: one row per
// store key, holding the serialized collection.
type StateBlob struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     []byte    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName implements gorm's Tabler.
func (StateBlob) TableName() string {
	return "state_blobs"
}

// SQLStore persists blobs in a relational table via the shared gorm client.
type SQLStore struct {
	client *db.Client
}

// NewSQLStore wraps the gorm client as a persistence adapter.
func NewSQLStore(client *db.Client) (*SQLStore, error) {
	if client == nil {
		return nil, errors.New("db client required")
	}
	return &SQLStore{client: client}, nil
}

func (s *SQLStore) Load(ctx context.Context, key string) ([]byte, error) {
	var row StateBlob
	err := s.client.DB().WithContext(ctx).First(&row, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return row.Value, nil
}

func (s *SQLStore) Save(ctx context.Context, key string, blob []byte) error {
	row := StateBlob{Key: key, Value: blob}
	return s.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
}

// Ping verifies the backend connection.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
