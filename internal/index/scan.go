package index

import (
	"path/filepath"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"

	"tasktree/internal/config"
	"tasktree/internal/fs"
	"tasktree/internal/item"
)

// scanTree walks the tree rooted at cfg.Root and derives an item for every
// qualifying candidate file. Unreadable directories and files are logged and
// skipped; the walk never aborts.
func scanTree(fsys fs.FS, cfg config.Config) map[string]item.Item {
	tags := cfg.TagConfig()
	items := map[string]item.Item{}
	seen := map[string]struct{}{}

	var walk func(dir string)

	walk = func(dir string) {
		entries, err := fsys.ReadDir(dir)
		if err != nil {
			log.WithFields(log.Fields{"dir": dir, "cause": err}).Warning("Skipping unreadable directory")

			return
		}

		for _, entry := range entries {
			name := entry.Name()

			if entry.IsDir() {
				if !skipDir(name, cfg.Exclude) {
					walk(filepath.Join(dir, name))
				}

				continue
			}

			if match, _ := filepath.Match(cfg.Include, name); !match {
				continue
			}

			path := canonical(filepath.Join(dir, name))
			if _, dup := seen[path]; dup {
				continue
			}

			seen[path] = struct{}{}

			content, err := fsys.ReadFile(path)
			if err != nil {
				log.WithFields(log.Fields{"path": path, "cause": err}).Warning("Skipping unreadable file")

				continue
			}

			it, ok := item.Derive(path, content, tags)
			if ok {
				items[path] = it
			}
		}
	}

	walk(cfg.Root)

	return items
}

// skipDir reports whether a directory is excluded from the walk: hidden
// directories plus the configured exclusion list.
func skipDir(name string, exclude []string) bool {
	return strings.HasPrefix(name, ".") || slices.Contains(exclude, name)
}

// canonical normalizes a path for use as the index key and for the
// duplicate-path guard within one walk.
func canonical(path string) string {
	return filepath.Clean(path)
}
