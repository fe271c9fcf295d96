package ledger

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrClosed is reported by commits created after the ledger was closed
var ErrClosed = errors.New("ledger is closed")

// Commit tracks the asynchronous persistence of one mutation. The in-memory
// state is already updated when a Commit is handed out; the Commit only says
// whether the storage backend caught up.
type Commit struct {
	ID   uuid.UUID
	Keys []string

	done chan struct{}
	once sync.Once
	err  error
}

func newCommit(keys ...string) *Commit {
	return &Commit{
		ID:   uuid.New(),
		Keys: keys,
		done: make(chan struct{}),
	}
}

// resolvedCommit returns a commit that is already finished.
func resolvedCommit(err error, keys ...string) *Commit {
	c := newCommit(keys...)
	c.finish(err)
	return c
}

func (c *Commit) finish(err error) {
	c.once.Do(func() {
		c.err = err
		close(c.done)
	})
}

// Done is closed once every key of the commit has been written or failed.
func (c *Commit) Done() <-chan struct{} {
	return c.done
}

// Err returns the write error, or nil while pending or on success.
func (c *Commit) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}

// Wait blocks until the commit finishes or ctx is done.
func (c *Commit) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WriteError describes one failed key write
type WriteError struct {
	CommitID uuid.UUID
	Key      string
	Err      error
}

func (e *WriteError) Error() string {
	return "persisting " + e.Key + ": " + e.Err.Error()
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
