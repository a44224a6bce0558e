package catalog

import (
	"path/filepath"
	"time"

	"foerderrechner/internal/logger"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the store whenever the catalog file changes. Only
// meaningful for a FileSource; callers with an HTTP source skip it.
// Events are debounced because editors and CI deploys write the file
// in several bursts.
func (st *Store) Watch(path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory, not the file: atomic renames (write tmp +
	// rename) drop a watch on the file itself.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}
	base := filepath.Base(path)

	go func() {
		defer watcher.Close()
		var pending *time.Timer
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != base {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if pending != nil {
					pending.Stop()
				}
				pending = time.AfterFunc(500*time.Millisecond, func() {
					if err := st.Reload(); err != nil {
						logger.Warn("catalog: reload failed, keeping previous snapshot", map[string]interface{}{
							"path": path, "error": err.Error(),
						})
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("catalog: watch error", map[string]interface{}{"error": err.Error()})
			}
		}
	}()

	logger.Info("catalog: watching for changes", map[string]interface{}{"path": path})
	return nil
}
