package chart

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultSettleDelay is how long the transformer ignores further triggers
// after it ran.
const DefaultSettleDelay = 50 * time.Millisecond

// dayNumberMinPPD is the narrowest day width that fits a two-digit label.
const dayNumberMinPPD = 8

// HeaderTransformer collapses the three-band header into the compact
// two-band layout and re-applies itself whenever the chart is rebuilt.
type HeaderTransformer struct {
	settle time.Duration
	logger *slog.Logger

	busy atomic.Bool

	mu     sync.Mutex
	cancel func()
	timer  *time.Timer
}

// NewHeaderTransformer creates a transformer. A zero settle delay clears
// the busy flag as soon as an invocation returns.
func NewHeaderTransformer(settle time.Duration, logger *slog.Logger) *HeaderTransformer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &HeaderTransformer{settle: settle, logger: logger}
}

// Apply hides the medium band, shifts the content up by its height and
// relabels the day band with day numbers when they fit. It reports whether
// anything changed. Invocations overlapping a running or settling one are
// dropped.
func (h *HeaderTransformer) Apply(c *Chart) bool {
	if !h.busy.CompareAndSwap(false, true) {
		h.logger.Debug("header transform dropped")
		return false
	}
	defer h.release()

	changed := false
	if c.HideBand(LevelMedium) {
		c.ShiftContent(-c.Band(LevelMedium).Height)
		changed = true
	}
	if c.PixelsPerDay >= dayNumberMinPPD && c.FineStyle() != FineDayNumber {
		c.RelabelFine(FineDayNumber)
		changed = true
	}
	if changed {
		h.logger.Debug("header transformed", "ppd", c.PixelsPerDay)
	}
	return changed
}

func (h *HeaderTransformer) release() {
	if h.settle <= 0 {
		h.busy.Store(false)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.timer != nil {
		h.timer.Stop()
	}
	h.timer = time.AfterFunc(h.settle, func() { h.busy.Store(false) })
}

// Busy reports whether an invocation is running or settling.
func (h *HeaderTransformer) Busy() bool { return h.busy.Load() }

// Attach transforms c now and again after every structural mutation of c.
func (h *HeaderTransformer) Attach(c *Chart) {
	h.Detach()
	cancel := c.Observe(func(Mutation) { h.Apply(c) })
	h.mu.Lock()
	h.cancel = cancel
	h.mu.Unlock()
	h.Apply(c)
}

// Detach stops re-applying the transform. It is safe to call when not
// attached.
func (h *HeaderTransformer) Detach() {
	h.mu.Lock()
	cancel := h.cancel
	h.cancel = nil
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
		h.busy.Store(false)
	}
	h.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
