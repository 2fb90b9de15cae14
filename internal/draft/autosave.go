package draft

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/3cstudio/contentforge/internal/models"
)

// DefaultAutosaveDelay matches the original editor's one-second debounce.
const DefaultAutosaveDelay = time.Second

// Autosaver debounces draft persistence: repeated edits inside the delay
// window collapse into a single deferred write. At most one timer is pending
// at a time, and scheduling or cancelling after Close is safe.
type Autosaver struct {
	mu      sync.Mutex
	delay   time.Duration
	persist func(*models.TemplateDraft) error
	timer   *time.Timer
	closed  bool
}

// NewAutosaver creates an autosaver that calls persist with a draft snapshot
// after the debounce delay. A non-positive delay uses the default.
func NewAutosaver(delay time.Duration, persist func(*models.TemplateDraft) error) *Autosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &Autosaver{delay: delay, persist: persist}
}

// Schedule arms the debounce timer with a snapshot, replacing any pending
// one. The snapshot must not alias the live draft.
func (a *Autosaver) Schedule(snapshot *models.TemplateDraft) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, func() {
		a.fire(snapshot)
	})
}

func (a *Autosaver) fire(snapshot *models.TemplateDraft) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.timer = nil
	a.mu.Unlock()

	// Autosave is best effort: a failed write is reported, never fatal.
	if err := a.persist(snapshot); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: autosave failed: %v\n", err)
	}
}

// Cancel drops the pending snapshot, if any.
func (a *Autosaver) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// Pending reports whether a snapshot is waiting to be written.
func (a *Autosaver) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.timer != nil
}

// Close cancels any pending snapshot and ignores all further scheduling.
// Closing twice, or scheduling after close, is harmless.
func (a *Autosaver) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}
