package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/idklol/launcher/internal/identity"
	"github.com/idklol/launcher/internal/state"
)

const defaultPollInterval = 15 * time.Second

// Prober checks whether the identity server is reachable.
type Prober interface {
	CheckStatus(ctx context.Context, baseURL string) identity.StatusResult
}

// Sink receives status transitions. *state.Store satisfies it.
type Sink interface {
	Apply(state.Update)
}

// Poller probes the identity server on a fixed cadence while a base URL is
// configured. All methods are safe for concurrent use.
type Poller struct {
	prober   Prober
	sink     Sink
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time

	mu      sync.Mutex
	parent  context.Context
	cancel  context.CancelFunc
	gen     uint64
	url     string
	stopped bool
}

// PollerOption customises a Poller.
type PollerOption func(*Poller)

// WithInterval overrides the 15 second probe interval.
func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithPollerLogger sets the logger used for loop lifecycle messages.
func WithPollerLogger(logger *zap.Logger) PollerOption {
	return func(p *Poller) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPoller returns an idle poller. Polling ends for good when ctx is done.
func NewPoller(ctx context.Context, prober Prober, sink Sink, opts ...PollerOption) *Poller {
	p := &Poller{
		prober:   prober,
		sink:     sink,
		interval: defaultPollInterval,
		logger:   zap.NewNop(),
		now:      time.Now,
		parent:   ctx,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetURL points the poller at a new identity base URL. An empty URL stops
// polling and reports the server offline straight away. Setting the URL that
// is already being polled is a no-op.
func (p *Poller) SetURL(raw string) {
	baseURL := identity.NormalizeBaseURL(raw)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}
	if baseURL != "" && baseURL == p.url && p.cancel != nil {
		return
	}
	p.haltLocked()
	p.url = baseURL

	if baseURL == "" {
		p.logger.Info("identity url cleared; status offline")
		p.sink.Apply(state.Update{Event: state.EventURLCleared, At: p.now()})
		return
	}

	p.sink.Apply(state.Update{Event: state.EventURLChanged, BaseURL: baseURL, At: p.now()})
	ctx, cancel := context.WithCancel(p.parent)
	p.cancel = cancel
	p.logger.Info("status polling started",
		zap.String("url", baseURL),
		zap.Duration("interval", p.interval))
	go p.loop(ctx, p.gen, baseURL)
}

// Stop cancels polling permanently. Results of probes still in flight are
// discarded.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.haltLocked()
	p.stopped = true
	p.logger.Debug("status polling stopped")
}

// URL returns the base URL currently polled, or "" when idle.
func (p *Poller) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

func (p *Poller) haltLocked() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.gen++
}

func (p *Poller) loop(ctx context.Context, gen uint64, baseURL string) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.probe(ctx, gen, baseURL)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *Poller) probe(ctx context.Context, gen uint64, baseURL string) {
	result := p.prober.CheckStatus(ctx, baseURL)

	ev := state.EventProbeFailed
	if result.OK {
		ev = state.EventProbeSucceeded
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen || ctx.Err() != nil {
		p.logger.Debug("discarding stale status result", zap.String("url", baseURL))
		return
	}
	p.sink.Apply(state.Update{
		Event:                ev,
		BaseURL:              baseURL,
		RegistrationEndpoint: result.RegistrationEndpoint,
		At:                   p.now(),
	})
}
