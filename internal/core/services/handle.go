package services

import (
	"sync"

	"github.com/google/uuid"

	"github.com/shelfwise/shelfwise-cli/internal/core/ports/driven"
	"github.com/shelfwise/shelfwise-cli/internal/core/ports/driving"
	"github.com/shelfwise/shelfwise-cli/internal/logger"
)

// Ensure Handle implements the driving port.
var _ driving.Subscription = (*Handle)(nil)

// Handle is the explicit subscription-handle object returned to an
// owning screen. One handle per subscription, stored and torn down by
// the screen's own lifecycle; Cancel is idempotent so a double teardown
// cannot cancel someone else's stream.
type Handle struct {
	id     string
	once   sync.Once
	cancel driven.CancelFunc
}

// newHandle wraps a store-level cancel in a Handle.
func newHandle(cancel driven.CancelFunc) *Handle {
	return &Handle{id: uuid.NewString(), cancel: cancel}
}

// ID identifies the subscription instance, for logging.
func (h *Handle) ID() string {
	return h.id
}

// Cancel tears the subscription down. Safe to call more than once;
// only the first call reaches the store.
func (h *Handle) Cancel() {
	h.once.Do(func() {
		logger.Debug("subscription %s cancelled", h.id)
		if h.cancel != nil {
			h.cancel()
		}
	})
}
