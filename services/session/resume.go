package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// Resumer runs refresh subscriptions when the hosting shell reports that the
// client has resumed (for example the tab regained focus).
type Resumer struct {
	logger *zap.Logger

	mu   sync.Mutex
	next int
	subs map[int]func(context.Context) error
}

func NewResumer(logger *zap.Logger) *Resumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resumer{logger: logger, subs: make(map[int]func(context.Context) error)}
}

// Subscribe registers fn. Calling the returned func cancels the subscription.
func (r *Resumer) Subscribe(fn func(context.Context) error) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.next
	r.next++
	r.subs[id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subs, id)
	}
}

// Resume runs every subscription and joins their errors.
func (r *Resumer) Resume(ctx context.Context) error {
	r.mu.Lock()
	fns := make([]func(context.Context) error, 0, len(r.subs))
	for _, fn := range r.subs {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	var errs []error
	for _, fn := range fns {
		if err := fn(ctx); err != nil {
			r.logger.Warn("Resume refresh failed", zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
