package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/diningtech/tableside/internal/session"
	pkgerrors "github.com/diningtech/tableside/pkg/errors"
	"github.com/diningtech/tableside/pkg/metrics"
)

// RequestKind enumerates the table service requests a diner can raise.
type RequestKind string

const (
	RequestWater  RequestKind = "water"
	RequestWaiter RequestKind = "waiter"
	RequestBill   RequestKind = "bill"
)

func (k RequestKind) IsValid() bool {
	switch k {
	case RequestWater, RequestWaiter, RequestBill:
		return true
	}
	return false
}

// Message renders the human-readable note shown to the floor staff.
func (k RequestKind) Message(table int) string {
	switch k {
	case RequestWater:
		return fmt.Sprintf("Water requested for table %d", table)
	case RequestWaiter:
		return fmt.Sprintf("Waiter assistance requested for table %d", table)
	case RequestBill:
		return fmt.Sprintf("Bill requested for table %d", table)
	}
	return ""
}

// ServiceRequest is the append-only document written for a service call.
type ServiceRequest struct {
	TableNumber int       `firestore:"tableNumber" json:"table_number"`
	Type        string    `firestore:"type" json:"type"`
	Message     string    `firestore:"message" json:"message"`
	Timestamp   time.Time `firestore:"timestamp,serverTimestamp" json:"timestamp"`
	Status      string    `firestore:"status" json:"status"`
}

// DocAppender appends a document to a remote collection, optionally under a
// pre-generated document identifier.
type DocAppender interface {
	Append(ctx context.Context, collectionPath, docID string, doc any) error
}

// Service submits orders and service requests to the remote store. Writes
// are fire-and-forget: one attempt, no automatic retry, and the caller must
// treat a returned error as not-submitted.
type Service interface {
	SubmitOrder(ctx context.Context, order *session.Order) error
	RequestService(ctx context.Context, table int, kind RequestKind) error
}

type service struct {
	writer  DocAppender
	venueID string
	stats   *metrics.Metrics
}

// NewService wires an order gateway for one venue.
func NewService(writer DocAppender, venueID string, stats *metrics.Metrics) (Service, error) {
	if writer == nil {
		return nil, fmt.Errorf("document writer required")
	}
	if venueID == "" {
		return nil, fmt.Errorf("venue id required")
	}
	return &service{writer: writer, venueID: venueID, stats: stats}, nil
}

func (s *service) ordersPath() string {
	return fmt.Sprintf("restaurants/%s/orders", s.venueID)
}

func (s *service) serviceRequestsPath() string {
	return fmt.Sprintf("restaurants/%s/service_requests", s.venueID)
}

func (s *service) SubmitOrder(ctx context.Context, order *session.Order) error {
	if order == nil || len(order.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order has no items")
	}
	if err := s.writer.Append(ctx, s.ordersPath(), order.ID, order); err != nil {
		s.stats.ObserveOrder(false, 0)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submit order")
	}
	s.stats.ObserveOrder(true, order.Total)
	return nil
}

func (s *service) RequestService(ctx context.Context, table int, kind RequestKind) error {
	if !kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown service request type %q", kind))
	}
	req := &ServiceRequest{
		TableNumber: table,
		Type:        string(kind),
		Message:     kind.Message(table),
		Timestamp:   time.Now().UTC(),
		Status:      session.StatusPending,
	}
	if err := s.writer.Append(ctx, s.serviceRequestsPath(), "", req); err != nil {
		s.stats.ObserveServiceRequest(string(kind), false)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "request service")
	}
	s.stats.ObserveServiceRequest(string(kind), true)
	return nil
}
