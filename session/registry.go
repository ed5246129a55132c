package session

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/gmsbind/binding"
	"github.com/wippyai/gmsbind/errors"
)

// RestartPolicy decides what Start does while another session is unfinished.
type RestartPolicy uint8

const (
	// RestartDiscard drops the unfinished session and starts fresh.
	// The dropped binder is returned from Start and never merged.
	RestartDiscard RestartPolicy = iota
	// RestartReject fails Start with KindSessionAlreadyActive.
	RestartReject
)

func (p RestartPolicy) String() string {
	switch p {
	case RestartDiscard:
		return "discard"
	case RestartReject:
		return "reject"
	default:
		return "unknown"
	}
}

// ParseRestartPolicy parses "discard" or "reject".
func ParseRestartPolicy(s string) (RestartPolicy, error) {
	switch s {
	case "", "discard":
		return RestartDiscard, nil
	case "reject":
		return RestartReject, nil
	default:
		return 0, errors.InvalidInput(errors.PhaseConfig, "unknown restart policy "+s)
	}
}

// Option configures a Registry.
type Option func(*Registry)

// WithRestartPolicy sets the policy applied by Start.
func WithRestartPolicy(p RestartPolicy) Option {
	return func(r *Registry) { r.policy = p }
}

// WithStableOrder sorts records by source position when the session ends.
func WithStableOrder() Option {
	return func(r *Registry) { r.stable = true }
}

// Registry is the single-slot session holder shared by discovery sites.
type Registry struct {
	active *Binder
	mu     sync.Mutex
	policy RestartPolicy
	stable bool
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start installs a fresh empty session for t. Under RestartDiscard an
// unfinished session is returned as discarded; under RestartReject it is
// left in place and an error is returned.
func (r *Registry) Start(t Target) (discarded *Binder, err error) {
	r.mu.Lock()
	prev := r.active
	if prev != nil && r.policy == RestartReject {
		r.mu.Unlock()
		return nil, errors.SessionAlreadyActive(prev.Name, t.Name)
	}
	r.active = newBinder(t)
	r.mu.Unlock()

	if prev != nil {
		Logger().Warn("discarding unfinished session",
			zap.String("session", prev.Name),
			zap.Int("functions", len(prev.Functions)),
			zap.String("replacement", t.Name))
	}
	Logger().Debug("session started",
		zap.String("session", t.Name),
		zap.String("file", t.FileName),
		zap.String("prefix", t.Prefix))
	return prev, nil
}

// Append adds rec to the active session in call order.
func (r *Registry) Append(rec binding.FunctionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active == nil {
		return errors.NoActiveSession("append")
	}
	r.active.Functions = append(r.active.Functions, rec)
	return nil
}

// End detaches the active session and returns an owned snapshot.
// The registry is empty afterwards.
func (r *Registry) End() (*Binder, error) {
	r.mu.Lock()
	b := r.active
	r.active = nil
	r.mu.Unlock()

	if b == nil {
		return nil, errors.NoActiveSession("end")
	}

	out := b.snapshot()
	if r.stable {
		sortByPos(out.Functions)
	}

	Logger().Debug("session ended",
		zap.String("session", out.Name),
		zap.Int("functions", len(out.Functions)))
	return out, nil
}

// Active reports whether a session is installed.
func (r *Registry) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active != nil
}
