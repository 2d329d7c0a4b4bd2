package game

import (
	"context"
	"time"

	"github.com/milk9111/overworld/assets"
	"github.com/milk9111/overworld/dialogue"
	"github.com/milk9111/overworld/prefabs"
	"go.uber.org/zap"
)

const reloadTimeout = 5 * time.Second

// drainWatcher applies every file change reported since the last frame.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path := <-g.watcher.Events:
			g.fileChanged(path)
		case err := <-g.watcher.Errors:
			g.log.Warn("watcher error", zap.Error(err))
		default:
			return
		}
	}
}

func (g *Game) fileChanged(path string) {
	switch {
	case prefabs.IsDialogueFile(path):
		g.reloadDialogue()
	case prefabs.IsAssetFile(path):
		g.log.Info("asset changed", zap.String("asset", assets.RelPath(path)))
		g.reloadAssets()
	case prefabs.IsSpecFile(path):
		// Prefabs are read from disk on every build.
		g.log.Info("prefab changed", zap.String("path", path))
	}
}

func (g *Game) reloadDialogue() {
	trees, err := dialogue.LoadLibrary(g.log)
	if err != nil {
		g.log.Error("reload dialogue failed", zap.Error(err))
		return
	}
	g.trees = trees
	g.log.Info("dialogue reloaded", zap.Strings("triggers", trees.Triggers()))
}

func (g *Game) reloadAssets() {
	if g.assets == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()
	changed, err := g.assets.Reload(ctx)
	if err != nil {
		g.log.Error("reload assets failed", zap.Error(err))
		return
	}
	g.log.Info("assets reloaded", zap.Int("changed", changed))
}
