package cartstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cartSnapshot is the persisted row for one table's cart.
type cartSnapshot struct {
	ID          uint   `gorm:"primaryKey"`
	VenueID     string `gorm:"size:128;not null;uniqueIndex:idx_cart_venue_table"`
	TableNumber int    `gorm:"not null;uniqueIndex:idx_cart_venue_table"`
	Payload     string `gorm:"type:text;not null"`
	UpdatedAt   time.Time
}

func (cartSnapshot) TableName() string { return "cart_snapshots" }

// SQLiteStore keeps cart snapshots in an embedded SQLite file, the
// single-node stand-in for a shared Redis instance.
type SQLiteStore struct {
	db *gorm.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite store: %w", err)
	}
	if err := db.AutoMigrate(&cartSnapshot{}); err != nil {
		return nil, fmt.Errorf("migrating cart snapshots: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, venueID string, table int, payload string) error {
	row := cartSnapshot{VenueID: venueID, TableNumber: table, Payload: payload}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "venue_id"}, {Name: "table_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
}

func (s *SQLiteStore) Load(ctx context.Context, venueID string, table int) (string, bool, error) {
	var row cartSnapshot
	err := s.db.WithContext(ctx).
		Where("venue_id = ? AND table_number = ?", venueID, table).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.Payload, true, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, venueID string, table int) error {
	return s.db.WithContext(ctx).
		Where("venue_id = ? AND table_number = ?", venueID, table).
		Delete(&cartSnapshot{}).Error
}
