// Package selection tracks which job ids are selected for bulk
// operations. The tracker holds ids only, never job records; the store
// reconciles it on deletion so the selection is always a subset of the
// collection.
package selection

import (
	"sort"
	"sync"
)

// Tracker is a set of selected job ids.
type Tracker struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{ids: make(map[string]struct{})}
}

// ToggleOne adds the id if absent and removes it if present.
func (t *Tracker) ToggleOne(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.ids[id]; ok {
		delete(t.ids, id)
		return
	}
	t.ids[id] = struct{}{}
}

// ToggleAll clears the selection when it already covers every visible
// row; otherwise it selects exactly the visible ids, dropping any
// stale prior selection.
func (t *Tracker) ToggleAll(visible []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.ids) == len(visible) {
		t.ids = make(map[string]struct{})
		return
	}

	t.ids = make(map[string]struct{}, len(visible))
	for _, id := range visible {
		t.ids[id] = struct{}{}
	}
}

// Drop removes the ids from the selection. The store calls this for
// every id it removes from the collection.
func (t *Tracker) Drop(ids ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, id := range ids {
		delete(t.ids, id)
	}
}

// Clear empties the selection. Called after a bulk delete completes.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ids = make(map[string]struct{})
}

// Has reports whether the id is selected.
func (t *Tracker) Has(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.ids[id]
	return ok
}

// Count returns the number of selected ids.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.ids)
}

// Selected returns the selected ids in stable order.
func (t *Tracker) Selected() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]string, 0, len(t.ids))
	for id := range t.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
