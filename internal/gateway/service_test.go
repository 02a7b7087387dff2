package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/diningtech/tableside/internal/cart"
	"github.com/diningtech/tableside/internal/session"
	pkgerrors "github.com/diningtech/tableside/pkg/errors"
)

type recordedWrite struct {
	path  string
	docID string
	doc   any
}

type stubAppender struct {
	writes []recordedWrite
	err    error
}

func (s *stubAppender) Append(ctx context.Context, collectionPath, docID string, doc any) error {
	if s.err != nil {
		return s.err
	}
	s.writes = append(s.writes, recordedWrite{path: collectionPath, docID: docID, doc: doc})
	return nil
}

func testOrder() *session.Order {
	return session.NewOrder("restaurant_1", 4, []cart.Line{
		{ItemID: "s1", Name: "Samosa", Price: 60, Quantity: 2},
	})
}

func TestSubmitOrderWritesToVenueCollection(t *testing.T) {
	appender := &stubAppender{}
	svc, err := NewService(appender, "restaurant_1", nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	order := testOrder()
	if err := svc.SubmitOrder(context.Background(), order); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(appender.writes) != 1 {
		t.Fatalf("expected one write, got %d", len(appender.writes))
	}
	write := appender.writes[0]
	if write.path != "restaurants/restaurant_1/orders" {
		t.Fatalf("unexpected collection path %q", write.path)
	}
	if write.docID != order.ID {
		t.Fatalf("expected client-generated doc id %q, got %q", order.ID, write.docID)
	}
}

func TestSubmitOrderFailureIsDependencyError(t *testing.T) {
	appender := &stubAppender{err: errors.New("firestore unavailable")}
	svc, _ := NewService(appender, "restaurant_1", nil)

	err := svc.SubmitOrder(context.Background(), testOrder())
	if err == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSubmitOrderRejectsEmptyOrder(t *testing.T) {
	svc, _ := NewService(&stubAppender{}, "restaurant_1", nil)
	if err := svc.SubmitOrder(context.Background(), nil); err == nil {
		t.Fatal("nil order should be rejected")
	}
	if err := svc.SubmitOrder(context.Background(), &session.Order{}); err == nil {
		t.Fatal("empty order should be rejected")
	}
}

func TestRequestServiceMessages(t *testing.T) {
	tests := []struct {
		kind    RequestKind
		message string
	}{
		{RequestWater, "Water requested for table 9"},
		{RequestWaiter, "Waiter assistance requested for table 9"},
		{RequestBill, "Bill requested for table 9"},
	}

	for _, tt := range tests {
		appender := &stubAppender{}
		svc, _ := NewService(appender, "restaurant_1", nil)

		if err := svc.RequestService(context.Background(), 9, tt.kind); err != nil {
			t.Fatalf("%s: %v", tt.kind, err)
		}
		write := appender.writes[0]
		if write.path != "restaurants/restaurant_1/service_requests" {
			t.Fatalf("unexpected path %q", write.path)
		}
		req, ok := write.doc.(*ServiceRequest)
		if !ok {
			t.Fatalf("unexpected doc type %T", write.doc)
		}
		if req.Message != tt.message {
			t.Fatalf("expected message %q, got %q", tt.message, req.Message)
		}
		if req.Status != session.StatusPending || req.TableNumber != 9 {
			t.Fatalf("unexpected request doc: %+v", req)
		}
	}
}

func TestRequestServiceRejectsUnknownKind(t *testing.T) {
	svc, _ := NewService(&stubAppender{}, "restaurant_1", nil)
	err := svc.RequestService(context.Background(), 3, RequestKind("song"))
	if err == nil {
		t.Fatal("unknown kind should be rejected")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
}
