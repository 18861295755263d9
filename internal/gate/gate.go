// Package gate holds protected pages back until the visitor tracking call has
// succeeded. The gate makes no decision of its own: success of the check grants
// access, any failure denies it until the visitor retries.
package gate

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

type State int

const (
	Loading State = iota
	Granted
	Denied
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	default:
		return "unknown"
	}
}

var ErrNotDenied = errors.New("gate: retry is only possible from the denied state")

// CheckFunc performs the tracking call. Any error denies access.
type CheckFunc func(ctx context.Context) error

type Gate struct {
	mu         sync.Mutex
	state      State
	retryCount int
	checking   bool

	check CheckFunc
	log   *zap.Logger
}

func New(check CheckFunc, log *zap.Logger) *Gate {
	return &Gate{
		state: Loading,
		check: check,
		log:   log,
	}
}

// Check invokes the tracking call once and settles the gate. It does nothing
// unless the gate is Loading with no call in flight. There is no timeout beyond
// what ctx carries.
func (g *Gate) Check(ctx context.Context) {
	g.mu.Lock()
	if g.state != Loading || g.checking {
		g.mu.Unlock()
		return
	}
	g.checking = true
	g.mu.Unlock()

	err := g.check(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.checking = false
	if err != nil {
		g.log.Warn("location check failed", zap.Int("retry_count", g.retryCount), zap.Error(err))
		g.state = Denied
		return
	}
	g.state = Granted
}

// Retry moves a denied gate back to Loading. The caller runs Check afterwards.
func (g *Gate) Retry() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != Denied {
		return ErrNotDenied
	}
	g.retryCount++
	g.state = Loading
	return nil
}

func (g *Gate) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Snapshot{State: g.state, RetryCount: g.retryCount}
}

// Snapshot is a point-in-time view of a gate, with the copy shown to the visitor.
type Snapshot struct {
	State      State
	RetryCount int
}

// Allows reports whether protected content may be rendered.
func (s Snapshot) Allows() bool {
	return s.State == Granted
}

// Attempts counts tracking calls made so far, including the first one.
func (s Snapshot) Attempts() int {
	return s.RetryCount + 1
}

func (s Snapshot) Title() string {
	if s.State == Loading {
		return "Initializing Services"
	}
	return "Location Access Required"
}

func (s Snapshot) Message() string {
	if s.RetryCount == 0 {
		return "To ensure the best possible experience and provide you with localized services, please enable location access."
	}
	return "Location access is required to continue. Please enable location services in your browser settings and try again."
}

func (s Snapshot) ActionLabel() string {
	if s.RetryCount == 0 {
		return "Grant Location Access"
	}
	return "Try Again"
}

// Hint is shown below the retry button once the visitor has retried.
func (s Snapshot) Hint() string {
	if s.RetryCount == 0 {
		return ""
	}
	return "If you're having trouble, make sure location services are enabled in your browser settings."
}
