package reconciler

import (
	"sync"
	"time"

	"github.com/franzxzx/roadnet/pkg"
	da "github.com/franzxzx/roadnet/pkg/datastructure"
	"github.com/franzxzx/roadnet/pkg/util"
	"go.uber.org/zap"
)

// SegmentStore is the authoritative segment set the reconciler mutates.
type SegmentStore interface {
	GetSegmentStatus(id string) (pkg.RoadStatus, bool)
	SetSegmentStatus(id string, status pkg.RoadStatus) bool
}

// Reconciler merges asynchronous status events into the live segment set.
// a local edit marks its segment "locally pending" for the suppression
// window; feed updates for a pending segment are dropped so the feed cannot
// visibly revert a change the user just made. the pending flag expires on its
// own, it is a short-lived per-segment advisory lock, not general concurrency
// control.
type Reconciler struct {
	log   *zap.Logger
	store SegmentStore

	window time.Duration
	now    func() time.Time

	mu      sync.Mutex           // guards pending and serializes store writes
	pending map[string]time.Time // segment id -> pending flag expiry

	onChange func(da.StatusUpdate)
}

func New(log *zap.Logger, store SegmentStore, window time.Duration) *Reconciler {
	if window <= 0 {
		window = pkg.DEFAULT_SUPPRESSION_WINDOW * time.Millisecond
	}
	return &Reconciler{
		log:     log,
		store:   store,
		window:  window,
		now:     time.Now,
		pending: make(map[string]time.Time),
	}
}

// SetOnChange registers the callback fired after every applied status change,
// local or from the feed. the engine drops its graph cache there and the
// websocket hub pushes the update to clients.
func (r *Reconciler) SetOnChange(fn func(da.StatusUpdate)) {
	r.onChange = fn
}

// ApplyFeedUpdate merges one external status event. returns true when the
// segment was actually mutated; suppressed, unknown-segment and identical
// status events all report false. the store write stays inside the critical
// section so a local edit cannot land between the pending check and the
// write and be reverted by this in-flight update.
func (r *Reconciler) ApplyFeedUpdate(update da.StatusUpdate) bool {
	r.mu.Lock()
	if expiry, ok := r.pending[update.SegmentID]; ok {
		if r.now().Before(expiry) {
			r.mu.Unlock()
			r.log.Debug("feed update suppressed by recent local edit",
				zap.String("segment_id", update.SegmentID),
				zap.String("status", update.Status.String()))
			return false
		}
		delete(r.pending, update.SegmentID)
	}

	if _, ok := r.store.GetSegmentStatus(update.SegmentID); !ok {
		r.mu.Unlock()
		r.log.Warn("feed update for unknown segment",
			zap.String("segment_id", update.SegmentID))
		return false
	}

	changed := r.store.SetSegmentStatus(update.SegmentID, update.Status)
	r.mu.Unlock()

	if changed && r.onChange != nil {
		r.onChange(update)
	}
	return changed
}

// ApplyLocalEdit applies a user-initiated status edit immediately and marks
// the segment locally pending. local edits are never suppressed.
func (r *Reconciler) ApplyLocalEdit(segmentID string, status pkg.RoadStatus,
	source string) (bool, error) {
	r.mu.Lock()
	if _, ok := r.store.GetSegmentStatus(segmentID); !ok {
		r.mu.Unlock()
		return false, util.WrapErrorf(nil, util.ErrNotFound,
			"segment %s does not exist", segmentID)
	}

	r.pending[segmentID] = r.now().Add(r.window)
	changed := r.store.SetSegmentStatus(segmentID, status)
	r.mu.Unlock()

	if changed && r.onChange != nil {
		r.onChange(da.NewStatusUpdate(segmentID, status, r.now(), source))
	}
	return changed, nil
}

// PendingCount reports how many segments currently hold an unexpired pending
// flag.
func (r *Reconciler) PendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	now := r.now()
	for _, expiry := range r.pending {
		if now.Before(expiry) {
			n++
		}
	}
	return n
}
