package engine

import (
	"fmt"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-quad/common"
	"github.com/fsnotify/fsnotify"
)

// startWatcher watches the directories holding the cycle's textures until Quit.
func (e *engine) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	dirs := make(map[string]struct{})
	for _, id := range e.cycle.Entries() {
		dir := filepath.Dir(id)
		if _, ok := dirs[dir]; ok {
			continue
		}
		dirs[dir] = struct{}{}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	e.wg.Add(1)
	go e.watchTextures(watcher)
	return nil
}

func (e *engine) watchTextures(watcher *fsnotify.Watcher) {
	defer e.wg.Done()
	defer watcher.Close()

	for {
		select {
		case <-e.quitChannel:
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			e.handleFileEvent(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			common.Logger().Warn("texture watcher", "error", err)
		}
	}
}

// handleFileEvent drops cached decodes of a written texture and re-applies it when it is the
// one on screen.
func (e *engine) handleFileEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	current := e.cycle.Current()
	for _, id := range e.cycle.Entries() {
		if !samePath(id, event.Name) {
			continue
		}
		if e.cache != nil {
			e.cache.Invalidate(id)
		}
		if id != current {
			continue
		}
		if err := e.renderer.SetTexture(id); err != nil {
			common.Logger().Warn("texture reload rejected", "texture", id, "error", err)
			continue
		}
		common.Logger().Info("texture reloaded", "texture", id)
	}
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
