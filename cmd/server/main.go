package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photocrop-server/internal/agent"
	"photocrop-server/internal/engine"
	"photocrop-server/internal/infrastructure/storage"
	"photocrop-server/internal/server"
	"photocrop-server/internal/version"
	"photocrop-server/pkg/levels"
	"photocrop-server/pkg/logger"
	"photocrop-server/pkg/utils"

	"github.com/sirupsen/logrus"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	cfg := engine.NewConfig()
	var levelRef, seed, replayPath, progressApp string
	var autoplay bool
	flag.StringVar(&levelRef, "level", "bricks:1", "Level to serve: world:number or path to a YAML file")
	flag.StringVar(&seed, "seed", "", "Seed for random targeting (number or any string, empty for random)")
	flag.DurationVar(&cfg.TickInterval, "tick", cfg.TickInterval, "Tick interval when the level does not set one")
	flag.StringVar(&replayPath, "replay", "", "Path to .pcrp replay file to simulate")
	flag.StringVar(&cfg.ReplayDir, "replay-dir", cfg.ReplayDir, "Directory for recorded replays")
	flag.StringVar(&progressApp, "progress", "photocrop", "gdata app name for saved progress (empty keeps it in memory)")
	flag.BoolVar(&autoplay, "bot", false, "Let a headless agent build the level")
	flag.Parse()

	logger.Log.WithFields(version.Fields()).Info("Starting Photocrop...")

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		if err := runReplay(cfg, replayPath); err != nil {
			logger.Log.WithError(err).Fatal("Replay failed")
		}
		return
	}

	if seed != "" {
		cfg.Seed = utils.ParseSeed(seed)
		logger.Log.Infof("🎲 Using explicit seed: %d", cfg.Seed)
	} else {
		logger.Log.Infof("🎲 Using random seed: %d", cfg.Seed)
	}

	port := os.Getenv("PC_PORT")
	if port == "" {
		port = "8080"
	}

	data, err := levels.Resolve(levelRef)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load level")
	}

	// 2. Инициализация ядра
	gameService, err := engine.NewService(cfg, data)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to build level")
	}
	gameService.Progress = openProgress(progressApp)

	replays, err := storage.NewReplayService(cfg.ReplayDir)
	if err != nil {
		logger.Log.WithError(err).Warn("Replay recording disabled")
	} else {
		gameService.Replays = replays
	}

	// Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if autoplay {
		bot := agent.NewBot("autoplay", gameService)
		go bot.Run(ctx)
	}

	go func() {
		if err := gameService.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Log.WithError(err).Error("Game loop stopped")
		}
	}()

	// 3. Запуск сервера
	srv := server.New(gameService, port)
	if err := srv.Run(ctx); err != nil {
		logger.Log.WithError(err).Fatal("Server start error")
	}

	logger.Log.Info("Done.")
}

// openProgress открывает хранилище прогресса, при ошибке держит его в памяти
func openProgress(appName string) *storage.ProgressStore {
	if appName == "" {
		return storage.NewProgressStore(nil)
	}
	store, err := storage.OpenProgressStore(appName)
	if err != nil {
		logger.Log.WithError(err).Warn("Progress will not survive restart")
		return storage.NewProgressStore(nil)
	}
	return store
}

// runReplay проигрывает записанную сессию на чистом уровне и печатает итог
func runReplay(cfg engine.Config, path string) error {
	logger.Log.Info("💿 Mode: Replay Simulation")

	replays, err := storage.NewReplayService(cfg.ReplayDir)
	if err != nil {
		return err
	}
	session, err := replays.Load(path)
	if err != nil {
		return err
	}

	data, err := levels.Find(session.World, session.LevelNumber)
	if err != nil {
		return err
	}

	cfg.Seed = session.Seed
	gameService, err := engine.NewService(cfg, data)
	if err != nil {
		return err
	}

	started := time.Now()
	result, err := gameService.Playback(context.Background(), session)
	if err != nil {
		return err
	}

	logger.Log.WithFields(logrus.Fields{
		"world":     result.World.String(),
		"level":     result.LevelNumber,
		"completed": result.Completed,
		"survivors": result.Survivors,
		"actions":   len(session.Actions),
		"elapsed":   time.Since(started).String(),
	}).Info("Replay finished")
	return nil
}
