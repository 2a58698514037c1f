package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salvage-server/internal/agent"
	"salvage-server/internal/config"
	"salvage-server/internal/engine"
	"salvage-server/internal/server"
	"salvage-server/internal/version"
	"salvage-server/pkg/logger"
	"salvage-server/pkg/utils"

	"golang.org/x/sync/errgroup"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Параметры запуска
	var (
		seed       int64
		configPath string
		worldName  string
		autopilot  bool
	)
	flag.Int64Var(&seed, "seed", 0, "World seed (0 for random)")
	flag.StringVar(&worldName, "world", "", "World name; derives the seed when -seed is not set")
	flag.StringVar(&configPath, "config", "", "Path to YAML tuning tables (empty for built-in defaults)")
	flag.BoolVar(&autopilot, "autopilot", false, "Run the headless autopilot agent")
	flag.Parse()

	logger.Log.Info("Starting salvage server...")
	logger.Log.Info(version.String())

	cfg, err := loadConfig(configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Config error")
	}

	switch {
	case seed == 0 && worldName != "":
		seed = utils.StringToSeed(worldName)
		logger.Log.Infof("Using seed %d from world %q", seed, worldName)
	case seed == 0:
		seed = time.Now().UnixNano()
		logger.Log.Infof("Using random seed: %d", seed)
	default:
		logger.Log.Infof("Using explicit seed: %d", seed)
	}

	port := os.Getenv("SALVAGE_PORT")
	if port == "" {
		port = "8080"
	}

	// 2. Ядро, транспорт и (по желанию) автопилот
	gameService := engine.NewService(cfg, seed)
	srv := server.New(gameService, port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return gameService.Run(ctx) })
	g.Go(func() error { return srv.Run(ctx) })
	if autopilot {
		bot := agent.NewBot("autopilot", gameService.Hub, gameService)
		g.Go(func() error { return bot.Run(ctx) })
	}

	if err := g.Wait(); err != nil {
		logger.Log.WithError(err).Fatal("Server stopped with error")
	}
	logger.Log.Info("Done.")
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default()
	}
	return config.Load(path)
}
