package store

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/fuzumoe/url-insight-dashboard/internal/metrics"
)

// DefaultPollInterval is the refresh cadence used when none is given.
const DefaultPollInterval = 5 * time.Second

// Poller is a reusable periodic-callback primitive. While active it
// invokes the callback once per interval; while inactive it holds no
// timer at all. Deactivating cancels the pending tick with no trailing
// invocation, and reactivating starts a fresh interval.
//
// The callback can be swapped at any time without resetting the
// interval's phase: each tick dereferences the current callback rather
// than a closure captured at start time.
type Poller struct {
	interval time.Duration
	clock    clockwork.Clock
	log      *slog.Logger
	metrics  *metrics.DashboardMetrics

	mu   sync.Mutex
	cb   func()
	stop chan struct{}
	done chan struct{}
}

// PollerOption configures the Poller
type PollerOption func(*Poller)

// WithPollerLogger sets the logger
func WithPollerLogger(log *slog.Logger) PollerOption {
	return func(p *Poller) { p.log = log }
}

// WithPollerMetrics sets the metrics collector
func WithPollerMetrics(m *metrics.DashboardMetrics) PollerOption {
	return func(p *Poller) { p.metrics = m }
}

// WithClock replaces the wall clock, letting tests drive ticks with a
// fake clock.
func WithClock(clock clockwork.Clock) PollerOption {
	return func(p *Poller) { p.clock = clock }
}

// NewPoller creates an inactive poller with the given interval.
func NewPoller(interval time.Duration, cb func(), opts ...PollerOption) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	p := &Poller{
		interval: interval,
		cb:       cb,
		clock:    clockwork.NewRealClock(),
		log:      slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// SetCallback replaces the callback invoked on each tick. The running
// interval keeps its phase.
func (p *Poller) SetCallback(cb func()) {
	p.mu.Lock()
	p.cb = cb
	p.mu.Unlock()
}

// SetActive starts or cancels the interval. Redundant calls are
// no-ops. Deactivation blocks until the interval goroutine has
// released its timer, so no tick can fire after SetActive(false)
// returns. Because of that join, SetActive must not be called from
// inside the callback itself.
func (p *Poller) SetActive(active bool) {
	p.mu.Lock()

	if active == (p.stop != nil) {
		p.mu.Unlock()
		return
	}

	if active {
		stop := make(chan struct{})
		done := make(chan struct{})
		p.stop, p.done = stop, done
		go p.run(stop, done)
		p.mu.Unlock()
		p.log.Debug("Poller activated", slog.Duration("interval", p.interval))
	} else {
		close(p.stop)
		done := p.done
		p.stop, p.done = nil, nil
		p.mu.Unlock()
		<-done
		p.log.Debug("Poller deactivated")
	}

	p.metrics.SetPollerActive(active)
}

// Active reports whether the interval is running.
func (p *Poller) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stop != nil
}

// Stop deactivates the poller. Call on teardown; a leaked interval
// firing after the consuming view is gone is a defect.
func (p *Poller) Stop() {
	p.SetActive(false)
}

func (p *Poller) run(stop, done chan struct{}) {
	defer close(done)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			// A tick may already be buffered when the poller is
			// deactivated; drop it instead of firing after cancel.
			select {
			case <-stop:
				return
			default:
			}
			p.invoke()
		}
	}
}

func (p *Poller) invoke() {
	p.mu.Lock()
	cb := p.cb
	p.mu.Unlock()

	if cb != nil {
		cb()
	}
}
