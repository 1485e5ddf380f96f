package draft

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultInterval matches the reference authoring behavior: one snapshot
// every 30 seconds while something is worth saving.
const DefaultInterval = 30 * time.Second

// Autosaver periodically snapshots an in-progress post into a store slot.
// Restoring is always an explicit caller decision; the autosaver only ever
// writes.
type Autosaver struct {
	store    *Store
	slot     string
	interval time.Duration
	source   func() Snapshot
	now      func() time.Time

	// Lifecycle context - cancelled when Close() is called.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewAutosaver wires an autosaver to a slot. source is polled on each tick
// for the current authoring state. An interval of zero falls back to
// DefaultInterval.
func NewAutosaver(store *Store, slot string, interval time.Duration, source func() Snapshot) *Autosaver {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Autosaver{
		store:    store,
		slot:     slot,
		interval: interval,
		source:   source,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the snapshot loop.
func (a *Autosaver) Start() {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		ticker := time.NewTicker(a.interval)
		defer ticker.Stop()

		for {
			select {
			case <-a.ctx.Done():
				return
			case <-ticker.C:
				if _, err := a.SaveNow(); err != nil {
					log.Error().Err(err).Str("slot", a.slot).Msg("Failed to autosave draft")
				}
			}
		}
	}()
}

// SaveNow snapshots immediately if there is anything to save: a draft with
// a blank title and blank content is not worth a slot write. Reports
// whether a snapshot was written.
func (a *Autosaver) SaveNow() (bool, error) {
	snap := a.source()
	if strings.TrimSpace(snap.Title) == "" && strings.TrimSpace(snap.Content) == "" {
		return false, nil
	}

	snap.LastSaved = a.now()
	if err := a.store.SaveDraft(a.slot, snap); err != nil {
		return false, err
	}
	return true, nil
}

// Restore returns the saved snapshot for the caller to offer back to the
// author. It never applies anything itself; restoring is a confirmation
// step away, every time.
func (a *Autosaver) Restore() (*Snapshot, error) {
	return a.store.LoadDraft(a.slot)
}

// Clear drops the slot. Called after a successful publish or an explicit
// draft submit.
func (a *Autosaver) Clear() error {
	return a.store.ClearDraft(a.slot)
}

// Close stops the snapshot loop and waits for it to finish.
func (a *Autosaver) Close() error {
	a.cancel()
	a.wg.Wait()
	return nil
}
