package notification

import (
	"context"
	"errors"
	"testing"

	"erp_backend/internal/events"
	"erp_backend/platform/logger"

	"github.com/google/uuid"
)

type testSender struct {
	calls     int
	lastEmail string
	lastTotal string
	err       error
}

func (s *testSender) SendQuotationFinalized(_ context.Context, toEmail, _, _, total string) error {
	s.calls++
	s.lastEmail = toEmail
	s.lastTotal = total
	return s.err
}

func TestHandleQuotationFinalizedSendsEmail(t *testing.T) {
	sender := &testSender{}
	m := NewModule(sender, logger.New("development"))

	event := events.NewQuotationFinalized(uuid.New(), "Kitchen remodel", 129900, "customer@example.com", "Jane Doe")
	if err := m.handleQuotationFinalized(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.calls != 1 {
		t.Fatalf("expected 1 send, got %d", sender.calls)
	}
	if sender.lastEmail != "customer@example.com" {
		t.Fatalf("unexpected recipient: %s", sender.lastEmail)
	}
	if sender.lastTotal != "1299.00" {
		t.Fatalf("expected formatted total 1299.00, got %s", sender.lastTotal)
	}
}

func TestHandleQuotationFinalizedSkipsWithoutCustomerEmail(t *testing.T) {
	sender := &testSender{}
	m := NewModule(sender, logger.New("development"))

	event := events.NewQuotationFinalized(uuid.New(), "Kitchen remodel", 129900, "", "")
	if err := m.handleQuotationFinalized(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.calls != 0 {
		t.Fatalf("expected no send without customer email, got %d", sender.calls)
	}
}

func TestHandleQuotationFinalizedWithNilSender(t *testing.T) {
	m := NewModule(nil, logger.New("development"))

	event := events.NewQuotationFinalized(uuid.New(), "Kitchen remodel", 500, "customer@example.com", "Jane Doe")
	if err := m.handleQuotationFinalized(context.Background(), event); err != nil {
		t.Fatalf("nil sender should be a no-op, got error: %v", err)
	}
}

func TestHandleQuotationFinalizedPropagatesSendError(t *testing.T) {
	sender := &testSender{err: errors.New("smtp unreachable")}
	m := NewModule(sender, logger.New("development"))

	event := events.NewQuotationFinalized(uuid.New(), "Kitchen remodel", 500, "customer@example.com", "Jane Doe")
	if err := m.handleQuotationFinalized(context.Background(), event); err == nil {
		t.Fatal("expected send error to propagate")
	}
}

func TestHandleQuotationFinalizedIgnoresOtherEvents(t *testing.T) {
	sender := &testSender{}
	m := NewModule(sender, logger.New("development"))

	event := events.NewQuotationCreated(uuid.New(), "Kitchen remodel")
	if err := m.handleQuotationFinalized(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.calls != 0 {
		t.Fatalf("expected no send for unrelated event, got %d", sender.calls)
	}
}
