package index

import (
	log "github.com/sirupsen/logrus"

	"tasktree/internal/config"
	"tasktree/internal/item"
)

// Update re-derives the item for a single changed file and patches the item
// set without walking the tree. It reports true when the caller must fall
// back to a full Rescan instead: the file could not be read, or a previously
// indexed file stopped qualifying (membership shrank in a way only the
// walker reconciles).
//
// A file that newly qualifies is upserted directly. For unchanged membership
// the patched record is identical to what a full rescan would produce for
// the same content.
func (ix *Index) Update(cfg config.Config, path string) (needsRescan bool) {
	path = canonical(path)

	content, err := ix.fsys.ReadFile(path)
	if err != nil {
		log.WithFields(log.Fields{"path": path, "cause": err}).Debug("Changed file unreadable, falling back to rescan")

		return true
	}

	it, ok := item.Derive(path, content, cfg.TagConfig())

	ix.mu.Lock()

	_, present := ix.items[path]
	if !ok {
		ix.mu.Unlock()

		// Not tracked before and still not qualifying: nothing to do.
		return present
	}

	// Whole-map replacement so a renderer holding the previous set never
	// observes a torn update.
	patched := make(map[string]item.Item, len(ix.items)+1)
	for k, v := range ix.items {
		patched[k] = v
	}

	patched[path] = it
	ix.items = patched
	ix.mu.Unlock()

	ix.changed()

	return false
}
