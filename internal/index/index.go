// Package index maintains the item set for a document tree: the full-walk
// scanner, the single-file incremental updater, and the fsnotify-backed
// change stream that feeds it. The item set is only ever replaced as a
// whole, so no reader observes a half-updated scan.
package index

import (
	"sync"

	"tasktree/internal/config"
	"tasktree/internal/fs"
	"tasktree/internal/item"
)

// Index holds the current item set, keyed by canonical path.
type Index struct {
	fsys fs.FS

	mu       sync.Mutex
	items    map[string]item.Item
	scanning bool

	notify func()
}

// New returns an empty index reading through fsys.
func New(fsys fs.FS) *Index {
	return &Index{
		fsys:  fsys,
		items: map[string]item.Item{},
	}
}

// OnChange registers the notification callback invoked after every state
// change (scan start, scan completion, incremental patch). The host
// subscribes and re-renders; the engine knows nothing about the UI.
func (ix *Index) OnChange(fn func()) {
	ix.mu.Lock()
	ix.notify = fn
	ix.mu.Unlock()
}

// Items returns a copy of the current item set.
func (ix *Index) Items() []item.Item {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	items := make([]item.Item, 0, len(ix.items))
	for _, it := range ix.items {
		items = append(items, it)
	}

	return items
}

// Scanning reports whether a full rescan is in flight. While true the host
// shows a placeholder row instead of real content.
func (ix *Index) Scanning() bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	return ix.scanning
}

// HasItems reports whether the index currently holds any items. Hosts use
// this to show or hide the whole view.
func (ix *Index) HasItems() bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	return len(ix.items) > 0
}

// Rescan walks the tree under cfg.Root and swaps the resulting item set in
// as a unit. Items no longer found by the walk are dropped; this is the only
// way items leave the index.
//
// A Rescan requested while another is in flight is coalesced: the call
// returns immediately and the in-flight walk's result stands. The walker
// receives its configuration snapshot at start, so the in-flight result is
// already current for any request issued during the walk.
func (ix *Index) Rescan(cfg config.Config) {
	ix.mu.Lock()
	if ix.scanning {
		ix.mu.Unlock()

		return
	}

	ix.scanning = true
	ix.mu.Unlock()

	ix.changed()

	items := scanTree(ix.fsys, cfg)

	ix.mu.Lock()
	ix.items = items
	ix.scanning = false
	ix.mu.Unlock()

	ix.changed()
}

func (ix *Index) changed() {
	ix.mu.Lock()
	fn := ix.notify
	ix.mu.Unlock()

	if fn != nil {
		fn()
	}
}
