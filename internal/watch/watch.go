// Package watch reruns the batch whenever the input workbook changes on
// disk. Runs are single-flight: events arriving mid-run coalesce into the
// watcher's channel and trigger one follow-up run.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// settleDelay gives the writing process time to finish before we read the
// workbook back.
const settleDelay = 500 * time.Millisecond

// Run watches path's directory and invokes handler after each write or
// create of the file itself. Handler errors are logged, not fatal: the
// next save of the workbook gets another chance.
func Run(ctx context.Context, log *logrus.Entry, path string, handler func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	target := filepath.Clean(path)
	log.WithField("path", target).Info("watching input workbook")

	for {
		select {
		case <-ctx.Done():
			log.Info("watch stopped")
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			log.WithField("op", event.Op.String()).Info("input workbook changed")
			time.Sleep(settleDelay)
			if err := handler(); err != nil {
				log.WithField("error", err.Error()).Error("batch run failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			log.WithField("error", err.Error()).Error("watcher error")
		}
	}
}
