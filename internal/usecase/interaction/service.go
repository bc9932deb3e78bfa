// Package interaction implements the per-record operations a user performs
// on settled history: copying a summary to the clipboard and deleting a
// record. Neither operation touches the submission pipelines, so both are
// allowed while a request is in flight.
package interaction

import (
	"log/slog"
	"sync"
	"time"

	"summary-pad/internal/domain/entity"
	"summary-pad/internal/history"
	"summary-pad/internal/infra/clipboard"
	"summary-pad/internal/observability/metrics"
)

// DefaultConfirmTTL is how long a successful copy stays marked on its record.
const DefaultConfirmTTL = 1500 * time.Millisecond

// Controller serves copy and delete requests against the history store.
type Controller struct {
	store      *history.Store
	clip       clipboard.Service
	confirmTTL time.Duration
	logger     *slog.Logger

	mu        sync.Mutex
	copiedID  int64
	copiedSet bool
	copyGen   uint64
	timer     *time.Timer
}

// Option configures a Controller.
type Option func(*Controller)

// WithConfirmTTL overrides how long the copy confirmation marker persists.
func WithConfirmTTL(ttl time.Duration) Option {
	return func(c *Controller) {
		if ttl > 0 {
			c.confirmTTL = ttl
		}
	}
}

// WithLogger overrides the controller's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewController creates an interaction controller over the given history
// store and clipboard service.
func NewController(store *history.Store, clip clipboard.Service, opts ...Option) *Controller {
	c := &Controller{
		store:      store,
		clip:       clip,
		confirmTTL: DefaultConfirmTTL,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Copy writes the text of the record with the given id to the clipboard.
// On success the record is marked as just-copied until the confirmation
// TTL elapses or a newer copy replaces the marker. A clipboard failure
// leaves the marker state unchanged.
func (c *Controller) Copy(id int64) error {
	record, ok := c.find(id)
	if !ok {
		return entity.ErrNotFound
	}

	if err := c.clip.Copy(record.Text); err != nil {
		c.logger.Warn("clipboard copy failed",
			slog.Int64("record_id", id),
			slog.String("error", err.Error()))
		metrics.RecordClipboardCopy(false)
		return err
	}

	c.markCopied(id)
	metrics.RecordClipboardCopy(true)
	return nil
}

// CopiedID returns the id of the record whose copy confirmation is still
// active, if any.
func (c *Controller) CopiedID() (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copiedID, c.copiedSet
}

// Delete removes the record with the given id from the history and
// persists the shortened list. Deleting an id that is not present is a
// no-op.
func (c *Controller) Delete(id int64) error {
	records := c.store.Records()

	kept := make([]entity.SummaryRecord, 0, len(records))
	for _, record := range records {
		if record.ID != id {
			kept = append(kept, record)
		}
	}
	if len(kept) == len(records) {
		return nil
	}

	if err := c.store.Persist(kept); err != nil {
		return err
	}

	metrics.RecordHistoryDelete()
	c.logger.Info("history record deleted",
		slog.Int64("record_id", id),
		slog.Int("remaining", len(kept)))
	return nil
}

func (c *Controller) find(id int64) (entity.SummaryRecord, bool) {
	for _, record := range c.store.Records() {
		if record.ID == id {
			return record, true
		}
	}
	return entity.SummaryRecord{}, false
}

// markCopied sets the confirmation marker and schedules its expiry.
// Each copy bumps a generation counter so a timer armed for an earlier
// copy can never clear a marker set by a later one.
func (c *Controller) markCopied(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}

	c.copiedID = id
	c.copiedSet = true
	c.copyGen++
	gen := c.copyGen

	c.timer = time.AfterFunc(c.confirmTTL, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.copyGen != gen {
			return
		}
		c.copiedSet = false
		c.copiedID = 0
	})
}
