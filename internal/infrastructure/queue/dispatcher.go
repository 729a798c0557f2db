package queue

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/ports"
)

var _ ports.AuditPublisher = (*Dispatcher)(nil)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// Observer is told about queue depth changes and dropped entries.
type Observer interface {
	QueueDepth(worker, depth int)
	Dropped()
}

type nopObserver struct{}

func (nopObserver) QueueDepth(int, int) {}
func (nopObserver) Dropped()            {}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithObserver reports queue activity to o.
func WithObserver(o Observer) Option {
	return func(d *Dispatcher) { d.observer = o }
}

// Dispatcher persists audit entries on a fixed set of workers. Entries for
// the same record hash to the same worker, so they are written in the order
// they were published.
type Dispatcher struct {
	workers  []chan domain.AuditEntry
	repo     ports.AuditRepository
	log      zerolog.Logger
	observer Observer
	wg       sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger, opts ...Option) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan domain.AuditEntry, numWorkers),
		repo:     repo,
		log:      log,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(d)
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches the workers. They exit when ctx is cancelled, after writing
// whatever is already queued.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has exited.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Publish queues entry without blocking. When the worker's buffer is full
// the entry is dropped and logged.
func (d *Dispatcher) Publish(entry domain.AuditEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	idx := d.shardIndex(entry.Entity + ":" + entry.EntityID)
	select {
	case d.workers[idx] <- entry:
		d.observer.QueueDepth(idx, len(d.workers[idx]))
	default:
		d.observer.Dropped()
		d.log.Warn().
			Str("action", entry.Action).
			Str("entity", entry.Entity).
			Int("worker_id", idx).
			Msg("audit queue full, entry dropped")
	}
}

func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case entry := <-ch:
			d.write(ctx, id, entry)
			d.observer.QueueDepth(id, len(ch))
		}
	}
}

// drain flushes entries queued before shutdown with a fresh deadline.
func (d *Dispatcher) drain(id int, ch <-chan domain.AuditEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	for {
		select {
		case entry := <-ch:
			d.write(ctx, id, entry)
		default:
			return
		}
	}
}

func (d *Dispatcher) write(ctx context.Context, id int, entry domain.AuditEntry) {
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := d.repo.Insert(wctx, &entry); err != nil {
		d.log.Error().Err(err).
			Str("action", entry.Action).
			Str("entity", entry.Entity).
			Int("worker_id", id).
			Msg("audit write failed")
	}
}
