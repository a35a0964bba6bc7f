package file

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/logger"
)

// Watch observes the configuration file for external writes and invokes
// notify for each one. The host (or the user with an editor) may change the
// file while the wizard is open; the wizard then re-derives its state.
//
// Watch blocks until ctx is cancelled. The directory is watched rather than
// the file itself because atomic renames replace the inode.
func (c *ConfigChannel) Watch(ctx context.Context, notify func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(c.filePath)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != c.filePath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("config file changed: %s", event.Op)
			notify()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watch error: %v", err)
		}
	}
}
