package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
)

// recordingNotifier captures every notification the handlers publish.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []ports.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, notification ports.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
}

func (n *recordingNotifier) Sent() []ports.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.Notification(nil), n.sent...)
}

func (n *recordingNotifier) ByEvent(eventType ports.EventType) []ports.Notification {
	var out []ports.Notification
	for _, notification := range n.Sent() {
		if notification.EventType == eventType {
			out = append(out, notification)
		}
	}
	return out
}

// staffDirectoryStub resolves roles from a fixed table; unknown roles get
// an empty recipient list. Err, when set, fails every lookup.
type staffDirectoryStub struct {
	recipients map[ports.StaffRole][]kernel.UUID
	err        error
}

func (s *staffDirectoryStub) RecipientsByRole(_ context.Context, role ports.StaffRole) ([]kernel.UUID, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.recipients[role], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
