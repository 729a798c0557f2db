package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type call struct {
	method, path, token string
	body                any
}

type stubBackend struct {
	mu     sync.Mutex
	routes map[string]func(body any) (any, error)
	calls  []call
}

func newStubBackend() *stubBackend {
	return &stubBackend{routes: make(map[string]func(any) (any, error))}
}

func (b *stubBackend) on(method, path string, fn func(body any) (any, error)) *stubBackend {
	b.routes[method+" "+path] = fn
	return b
}

func (b *stubBackend) respond(method, path string, resp any) *stubBackend {
	return b.on(method, path, func(any) (any, error) { return resp, nil })
}

func (b *stubBackend) Do(_ context.Context, method, path, token string, body any) (any, error) {
	b.mu.Lock()
	b.calls = append(b.calls, call{method, path, token, body})
	fn, ok := b.routes[method+" "+path]
	b.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("unexpected %s %s", method, path)
	}
	return fn(body)
}

func (b *stubBackend) last() call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[len(b.calls)-1]
}

type stubPublisher struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (p *stubPublisher) Publish(e domain.AuditEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, e)
}

func actorFor(role domain.Role) domain.Actor {
	return domain.Actor{Token: "tok", Username: "tester", Role: role}
}
