package cartstore

import (
	"context"
	"encoding/json"

	"github.com/diningtech/tableside/internal/cart"
	"github.com/diningtech/tableside/pkg/logger"
)

// Store is the raw keyed string store a cart snapshot is written to. The
// backend is interchangeable: Redis for shared deployments, an embedded
// SQLite file for single-node ones.
type Store interface {
	Save(ctx context.Context, venueID string, table int, payload string) error
	Load(ctx context.Context, venueID string, table int) (string, bool, error)
	Delete(ctx context.Context, venueID string, table int) error
}

// Bridge serializes cart lines in and out of a Store. Absent or malformed
// payloads always load as an empty cart; persistence never breaks ordering.
type Bridge struct {
	store Store
	logg  *logger.Logger
}

func NewBridge(store Store, logg *logger.Logger) *Bridge {
	return &Bridge{store: store, logg: logg}
}

// Save writes the cart lines for a (venue, table) pair.
func (b *Bridge) Save(ctx context.Context, venueID string, table int, lines []cart.Line) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return b.store.Save(ctx, venueID, table, string(payload))
}

// Load reads back the saved lines for a (venue, table) pair. Any failure
// mode degrades to an empty cart.
func (b *Bridge) Load(ctx context.Context, venueID string, table int) []cart.Line {
	payload, ok, err := b.store.Load(ctx, venueID, table)
	if err != nil {
		if b.logg != nil {
			b.logg.Warn(b.logg.WithFields(ctx, map[string]any{
				"venue_id": venueID,
				"table":    table,
				"error":    err.Error(),
			}), "cart snapshot load failed, starting empty")
		}
		return nil
	}
	if !ok || payload == "" {
		return nil
	}

	var lines []cart.Line
	if err := json.Unmarshal([]byte(payload), &lines); err != nil {
		if b.logg != nil {
			b.logg.Warn(b.logg.WithFields(ctx, map[string]any{
				"venue_id": venueID,
				"table":    table,
				"error":    err.Error(),
			}), "cart snapshot malformed, starting empty")
		}
		return nil
	}
	return lines
}

// Clear removes the saved snapshot for a (venue, table) pair.
func (b *Bridge) Clear(ctx context.Context, venueID string, table int) error {
	return b.store.Delete(ctx, venueID, table)
}
