package remote

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/diningtech/tableside/internal/menu"
	"github.com/diningtech/tableside/pkg/config"
	"github.com/diningtech/tableside/pkg/logger"
)

// resubscribeDelay paces reconnect attempts after a failed menu listen.
const resubscribeDelay = 5 * time.Second

// Client is the Firestore-backed remote document store. It serves both
// sides of the wire: the live menu subscription and the append-only order
// and service-request writes.
type Client struct {
	fs   *firestore.Client
	logg *logger.Logger
}

func New(ctx context.Context, cfg config.FirestoreConfig, logg *logger.Logger) (*Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	fs, err := firestore.NewClientWithDatabase(ctx, cfg.ProjectID, cfg.DatabaseID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &Client{fs: fs, logg: logg}, nil
}

func (c *Client) Close() error {
	return c.fs.Close()
}

// Append writes one document into a collection. An empty docID lets the
// store generate the identifier; a caller-supplied one makes the write
// addressable, which Create keeps from silently overwriting.
func (c *Client) Append(ctx context.Context, collectionPath, docID string, doc any) error {
	col := c.fs.Collection(collectionPath)
	if docID == "" {
		_, _, err := col.Add(ctx, doc)
		return err
	}
	_, err := col.Doc(docID).Create(ctx, doc)
	return err
}

// Listen streams menu snapshots for a venue until ctx is cancelled. Every
// event delivers the full current document set; a stream failure is
// reported once and the subscription is retried after a short delay.
func (c *Client) Listen(ctx context.Context, venueID string, onSnapshot func([]menu.Item), onError func(error)) {
	collectionPath := fmt.Sprintf("restaurants/%s/menu_items", venueID)

	go func() {
		for {
			if ctx.Err() != nil {
				return
			}
			c.listenOnce(ctx, collectionPath, onSnapshot, onError)

			select {
			case <-ctx.Done():
				return
			case <-time.After(resubscribeDelay):
			}
		}
	}()
}

func (c *Client) listenOnce(ctx context.Context, collectionPath string, onSnapshot func([]menu.Item), onError func(error)) {
	iter := c.fs.Collection(collectionPath).Snapshots(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err != nil {
			if status.Code(err) == codes.Canceled || ctx.Err() != nil {
				return
			}
			onError(err)
			return
		}

		docs, err := snap.Documents.GetAll()
		if err != nil {
			onError(err)
			return
		}

		items := make([]menu.Item, 0, len(docs))
		for _, doc := range docs {
			var item menu.Item
			if err := doc.DataTo(&item); err != nil {
				if c.logg != nil {
					c.logg.Warn(c.logg.WithField(ctx, "doc_id", doc.Ref.ID),
						"skipping undecodable menu document")
				}
				continue
			}
			item.ID = doc.Ref.ID
			items = append(items, item)
		}
		onSnapshot(items)
	}
}
