package ledger

import (
	"math/rand/v2"
	"time"

	"github.com/julianstephens/heybuddy/internal/constants"
)

// Option configures a Ledger
type Option func(*Ledger)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithLocation sets the timezone that decides what "today" is.
func WithLocation(loc *time.Location) Option {
	return func(l *Ledger) {
		if loc != nil {
			l.loc = loc
		}
	}
}

// WithRand sets the source used for buddy messages.
func WithRand(r *rand.Rand) Option {
	return func(l *Ledger) { l.rng = r }
}

// WithTrendOrder picks the entry ordering used by the trend in Summary.
func WithTrendOrder(order constants.TrendOrder) Option {
	return func(l *Ledger) {
		if order != "" {
			l.trendOrder = order
		}
	}
}

// WithWriteTimeout bounds each storage write.
func WithWriteTimeout(d time.Duration) Option {
	return func(l *Ledger) {
		if d > 0 {
			l.writeTimeout = d
		}
	}
}

// WithWriteErrorHandler is called from the persistence goroutine for every
// failed key write. It must not block on ledger mutations.
func WithWriteErrorHandler(fn func(WriteError)) Option {
	return func(l *Ledger) { l.onWriteError = fn }
}
