package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/lexgrid/lexgrid/internal/port/analysis"
	"github.com/lexgrid/lexgrid/internal/port/eventbus"
)

// fakeBus records published messages and fans them out to local subscribers.
type fakeBus struct {
	mu        sync.Mutex
	published map[string][][]byte
	handlers  map[string][]eventbus.Handler
	pubErr    error
	subErr    error
}

func newFakeBus() *fakeBus {
	return &fakeBus{
		published: make(map[string][][]byte),
		handlers:  make(map[string][]eventbus.Handler),
	}
}

func (b *fakeBus) Publish(_ context.Context, subject string, data []byte) error {
	b.mu.Lock()
	if b.pubErr != nil {
		defer b.mu.Unlock()
		return b.pubErr
	}
	b.published[subject] = append(b.published[subject], data)
	handlers := append([]eventbus.Handler(nil), b.handlers[subject]...)
	b.mu.Unlock()

	for _, h := range handlers {
		h(subject, data)
	}
	return nil
}

func (b *fakeBus) Subscribe(_ context.Context, subject string, handler eventbus.Handler) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subErr != nil {
		return nil, b.subErr
	}
	b.handlers[subject] = append(b.handlers[subject], handler)
	return func() {}, nil
}

func (b *fakeBus) IsConnected() bool { return true }

func (b *fakeBus) Close() error { return nil }

func (b *fakeBus) messages(subject string) [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][]byte(nil), b.published[subject]...)
}

func (b *fakeBus) decodeLast(t *testing.T, subject string, into any) {
	t.Helper()
	msgs := b.messages(subject)
	if len(msgs) == 0 {
		t.Fatalf("no messages published on %s", subject)
	}
	if err := json.Unmarshal(msgs[len(msgs)-1], into); err != nil {
		t.Fatalf("decode message on %s: %v", subject, err)
	}
}

// fakeBackend returns a canned payload or error and records received requests.
type fakeBackend struct {
	mu      sync.Mutex
	calls   []analysis.Request
	payload map[string]any
	err     error

	// analyze, when set, overrides the canned behavior.
	analyze func(ctx context.Context, req analysis.Request) (map[string]any, error)
}

func (f *fakeBackend) Analyze(ctx context.Context, req analysis.Request) (map[string]any, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	fn := f.analyze
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeBackend) requests() []analysis.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]analysis.Request(nil), f.calls...)
}
