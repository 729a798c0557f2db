package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
)

type stubAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	err     error
}

func (r *stubAuditRepo) Insert(_ context.Context, e *domain.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, *e)
	return nil
}

func (r *stubAuditRepo) snapshot() []domain.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AuditEntry(nil), r.entries...)
}

func TestDispatcher_PreservesPerRecordOrder(t *testing.T) {
	repo := &stubAuditRepo{}
	d := NewDispatcher(3, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	actions := []string{"fee.edit", "fee.toggle_status", "fee.delete"}
	for _, a := range actions {
		d.Publish(domain.AuditEntry{Action: a, Entity: "fee", EntityID: "7"})
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(repo.snapshot()) < len(actions) {
		if time.Now().After(deadline) {
			t.Fatalf("entries not written in time: %d", len(repo.snapshot()))
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	d.Wait()

	got := repo.snapshot()
	for i, a := range actions {
		if got[i].Action != a {
			t.Fatalf("entry %d: expected %s, got %s", i, a, got[i].Action)
		}
		if got[i].Timestamp.IsZero() {
			t.Fatalf("entry %d not timestamped", i)
		}
	}
}

func TestDispatcher_DrainsOnShutdown(t *testing.T) {
	repo := &stubAuditRepo{}
	d := NewDispatcher(1, repo, zerolog.Nop())

	for i := 0; i < 5; i++ {
		d.Publish(domain.AuditEntry{Action: "payment.verify", Entity: "payment", EntityID: "1"})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()

	if n := len(repo.snapshot()); n != 5 {
		t.Fatalf("expected 5 drained entries, got %d", n)
	}
}

type countingObserver struct {
	mu       sync.Mutex
	dropped  int
	maxDepth int
}

func (o *countingObserver) QueueDepth(_, depth int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if depth > o.maxDepth {
		o.maxDepth = depth
	}
}

func (o *countingObserver) Dropped() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.dropped++
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	obs := &countingObserver{}
	d := NewDispatcher(1, &stubAuditRepo{}, zerolog.Nop(), WithObserver(obs))
	for i := 0; i < channelBuffer+10; i++ {
		d.Publish(domain.AuditEntry{Entity: "household", EntityID: "1"})
	}
	if n := len(d.workers[0]); n != channelBuffer {
		t.Fatalf("expected full buffer of %d, got %d", channelBuffer, n)
	}
	if obs.dropped != 10 || obs.maxDepth != channelBuffer {
		t.Fatalf("observer saw dropped=%d maxDepth=%d", obs.dropped, obs.maxDepth)
	}
}

func TestDispatcher_WriteErrorsDoNotStopWorker(t *testing.T) {
	repo := &stubAuditRepo{err: errors.New("mongo down")}
	d := NewDispatcher(1, repo, zerolog.Nop())
	d.Publish(domain.AuditEntry{Entity: "fee"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()

	if len(d.workers[0]) != 0 {
		t.Fatalf("queue not drained after write error")
	}
}
