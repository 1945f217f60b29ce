package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"photocrop-server/internal/engine"
	"photocrop-server/internal/infrastructure/storage"
	"photocrop-server/internal/tui"
	"photocrop-server/pkg/levels"
	"photocrop-server/pkg/logger"
	"photocrop-server/pkg/utils"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := engine.NewConfig()
	var levelRef, seed, logPath string
	flag.StringVar(&levelRef, "level", "bricks:1", "Level to play: world:number or path to a YAML file")
	flag.StringVar(&seed, "seed", "", "Seed for random targeting (empty for random)")
	flag.DurationVar(&cfg.TickInterval, "tick", cfg.TickInterval, "Tick interval when the level does not set one")
	flag.StringVar(&logPath, "log", "viewer.log", "Log file (the terminal is taken by the board)")
	flag.Parse()

	if err := run(cfg, levelRef, seed, logPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg engine.Config, levelRef, seed, logPath string) error {
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger.InitWithOutput(logFile)

	if seed != "" {
		cfg.Seed = utils.ParseSeed(seed)
	}

	data, err := levels.Resolve(levelRef)
	if err != nil {
		return err
	}
	gameService, err := engine.NewService(cfg, data)
	if err != nil {
		return err
	}
	gameService.Progress = storage.NewProgressStore(nil)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	updates := gameService.Hub.Register(cfg.Token)
	defer gameService.Hub.Unregister(cfg.Token, updates)

	go func() {
		if err := gameService.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Log.WithError(err).Error("Game loop stopped")
		}
	}()

	viewer := tui.NewViewer(screen, cfg.Token, gameService.ProcessCommand)
	if err := viewer.Run(ctx, updates); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
