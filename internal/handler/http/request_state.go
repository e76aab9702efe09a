package http

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

type stateContextKey int

const (
	deadlineKey stateContextKey = iota
	accessRecordKey
)

const (
	deadlinePending int32 = iota
	deadlineCompleted
	deadlineExpired
)

// deadline arbitrates between the deadline layer and the inner chain. Exactly
// one side wins: the chain by completing (normally or by panicking) before
// the deadline or the deadline layer by expiring. Expiry hooks run only when
// expiry wins.
type deadline struct {
	state atomic.Int32

	mu    sync.Mutex
	hooks []func()
}

func newDeadline() *deadline {
	return &deadline{}
}

// onExpire registers fn to run once the deadline layer wins. A hook
// registered after expiry runs immediately.
func (d *deadline) onExpire(fn func()) {
	d.mu.Lock()
	if d.state.Load() == deadlineExpired {
		d.mu.Unlock()
		fn()
		return
	}
	d.hooks = append(d.hooks, fn)
	d.mu.Unlock()
}

// complete claims the outcome for the inner chain. It fails once ctx has
// passed its deadline.
func (d *deadline) complete(ctx context.Context) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return false
	}
	return d.state.CompareAndSwap(deadlinePending, deadlineCompleted)
}

// expire claims the outcome for the deadline layer and runs the hooks.
func (d *deadline) expire() bool {
	if !d.state.CompareAndSwap(deadlinePending, deadlineExpired) {
		return false
	}

	d.mu.Lock()
	hooks := d.hooks
	d.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	return true
}

func withDeadline(ctx context.Context, d *deadline) context.Context {
	return context.WithValue(ctx, deadlineKey, d)
}

func deadlineFromContext(ctx context.Context) (*deadline, bool) {
	d, ok := ctx.Value(deadlineKey).(*deadline)
	return d, ok
}

// accessRecord carries what the dispatcher learns about a request back to the
// access logger. It may be read from the deadline layer while the abandoned
// handler still runs, hence the mutex.
type accessRecord struct {
	mu    sync.Mutex
	route string
}

func (a *accessRecord) setRoute(route string) {
	a.mu.Lock()
	a.route = route
	a.mu.Unlock()
}

func (a *accessRecord) routePattern() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route
}

func withAccessRecord(ctx context.Context, a *accessRecord) context.Context {
	return context.WithValue(ctx, accessRecordKey, a)
}

func accessRecordFromContext(ctx context.Context) (*accessRecord, bool) {
	a, ok := ctx.Value(accessRecordKey).(*accessRecord)
	return a, ok
}
