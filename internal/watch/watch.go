// Package watch re-runs a handler whenever a source file changes on disk.
package watch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Handler receives the current contents of the watched file.
type Handler func(src []byte)

// Run calls h with the contents of path, then again after every write,
// create or rename of the file, until ctx is done. The parent directory is
// watched rather than the file so that editors replacing the file through
// a rename are still seen. Changes that leave the contents unchanged are
// not reported twice in a row.
func Run(ctx context.Context, path string, h Handler) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	last, err := os.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	h(last)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !relevant(ev.Op) {
				continue
			}
			src, err := os.ReadFile(abs)
			if err != nil {
				// Mid-rename; the create that follows will be picked up.
				continue
			}
			if bytes.Equal(src, last) {
				continue
			}
			last = src
			h(src)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
