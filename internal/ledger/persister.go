package ledger

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/julianstephens/heybuddy/internal/logger"
	"github.com/julianstephens/heybuddy/internal/storage"
)

type write struct {
	key   string
	value string
}

type job struct {
	commit *Commit
	writes []write
}

// persister drains queued writes in FIFO order on a single goroutine, so the
// last value enqueued for a key is the last value written. The queue is
// unbounded: enqueue never waits on storage.
type persister struct {
	store   storage.Provider
	timeout time.Duration
	onError func(WriteError)

	mu      sync.Mutex
	cond    *sync.Cond
	pending []job
	closed  bool

	wg     sync.WaitGroup
	failed atomic.Int64
}

func newPersister(store storage.Provider, timeout time.Duration, onError func(WriteError)) *persister {
	p := &persister{
		store:   store,
		timeout: timeout,
		onError: onError,
	}
	p.cond = sync.NewCond(&p.mu)
	p.wg.Add(1)
	go p.run()
	return p
}

func (p *persister) run() {
	defer p.wg.Done()
	for {
		j, ok := p.next()
		if !ok {
			return
		}
		p.apply(j)
	}
}

// next blocks until a job is pending. It reports false once the queue is
// closed and empty.
func (p *persister) next() (job, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for len(p.pending) == 0 && !p.closed {
		p.cond.Wait()
	}
	if len(p.pending) == 0 {
		return job{}, false
	}
	j := p.pending[0]
	p.pending[0] = job{}
	p.pending = p.pending[1:]
	return j, true
}

func (p *persister) apply(j job) {
	var errs []error
	for _, w := range j.writes {
		if err := p.set(w); err != nil {
			werr := WriteError{CommitID: j.commit.ID, Key: w.key, Err: err}
			p.failed.Add(1)
			logger.Error("Failed to persist wellness key", "key", w.key, "commit", j.commit.ID, "error", err)
			if p.onError != nil {
				p.onError(werr)
			}
			errs = append(errs, &werr)
		}
	}
	j.commit.finish(errors.Join(errs...))
}

func (p *persister) set(w write) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	return p.store.Set(ctx, w.key, w.value)
}

// enqueue must not be called after close.
func (p *persister) enqueue(j job) {
	p.mu.Lock()
	p.pending = append(p.pending, j)
	p.mu.Unlock()
	p.cond.Signal()
}

// close stops accepting work and waits for the queue to drain.
func (p *persister) close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cond.Broadcast()
	p.wg.Wait()
}
