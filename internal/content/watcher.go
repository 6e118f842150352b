package content

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// reloadDelay debounces editors that write a file in several steps
const reloadDelay = 200 * time.Millisecond

// ReloadCallback is called after the store received new content
type ReloadCallback func(version int)

// Watch reloads the store whenever a content document in dir changes, until
// ctx is cancelled. A reload that fails to parse is logged and the store
// keeps its previous content.
func Watch(ctx context.Context, store *Store, dir string, logger *zap.Logger, cb ReloadCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// editors often replace files by rename, so watch the directory
	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("content watcher started", zap.String("dir", dir))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(reloadDelay)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(reloadDelay)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("content watcher stopped")
			return nil

		case <-reloadCh:
			reload(store, dir, logger, cb)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !IsDocument(ev.Name) {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("content changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			scheduleReload()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("content watcher error", zap.Error(watchErr))
		}
	}
}

func reload(store *Store, dir string, logger *zap.Logger, cb ReloadCallback) {
	c, err := Load(dir)
	if err != nil {
		logger.Warn("content reload failed, keeping previous content", zap.Error(err))
		return
	}

	store.Replace(c)
	version := store.Version()
	logger.Info("content reloaded",
		zap.Int("version", version),
		zap.Int("projects", len(c.Projects)),
		zap.Int("experience", len(c.Experience)),
		zap.Int("education", len(c.Education)))

	if cb != nil {
		cb(version)
	}
}
