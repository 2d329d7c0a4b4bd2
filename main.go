package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/overworld/assets"
	"github.com/milk9111/overworld/editor"
	"github.com/milk9111/overworld/game"
	"github.com/milk9111/overworld/overworld"
	"github.com/milk9111/overworld/prefabs"
	"go.uber.org/zap"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	assetDir := flag.String("assets", "assets", "asset directory; the embedded assets are used when it does not exist")
	layout := flag.String("layout", overworld.DefaultWorld, "world prefab layout to start from")
	withEditor := flag.Bool("editor", false, "enable the in-game editor (Tab)")
	watch := flag.Bool("watch", false, "hot reload prefabs, dialogue and assets from disk")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	lib, err := assets.Load(ctx, assets.FS(*assetDir), assets.ManifestPath, logger.Named("assets"))
	cancel()
	if err != nil {
		logger.Fatal("load assets", zap.Error(err))
	}

	var watcher *prefabs.Watcher
	if *watch {
		watcher, err = prefabs.NewWatcher(existingDirs("prefabs", filepath.Join("prefabs", "dialogue"), *assetDir, filepath.Join(*assetDir, "sprites"))...)
		if err != nil {
			logger.Warn("hot reload disabled", zap.Error(err))
			watcher = nil
		}
	}

	g, err := game.New(game.Options{
		Log:     logger.Named("game"),
		Assets:  lib,
		Layout:  *layout,
		Watcher: watcher,
	})
	if err != nil {
		logger.Fatal("start game", zap.Error(err))
	}
	defer func() { _ = g.Close() }()

	a := &app{game: g}
	if *withEditor {
		a.editor, err = editor.New(g, editor.Options{
			Log:      logger.Named("editor"),
			SavePath: filepath.Join(*assetDir, "overworld.json"),
			UI:       true,
		})
		if err != nil {
			logger.Fatal("start editor", zap.Error(err))
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(2*viewWidth, 2*viewHeight)
	ebiten.SetWindowTitle("overworld")

	if err := ebiten.RunGame(a); err != nil {
		logger.Error("game exited", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func existingDirs(dirs ...string) []string {
	var out []string
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			out = append(out, dir)
		}
	}
	return out
}
