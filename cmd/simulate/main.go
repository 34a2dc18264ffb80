package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/agentopoly/monopoly-engine/internal/config"
	"github.com/agentopoly/monopoly-engine/internal/game"
	"github.com/agentopoly/monopoly-engine/internal/simulation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	agentsFlag = flag.String("agents", "", "comma-separated agent kinds per seat (random, greedy); defaults to simulation.players random agents")
	gamesFlag  = flag.Int("games", 0, "override simulation.games")
	seedFlag   = flag.Int64("seed", 0, "override simulation.seed")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *gamesFlag > 0 {
		cfg.Simulation.Games = *gamesFlag
	}
	if *seedFlag != 0 {
		cfg.Simulation.Seed = *seedFlag
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	agents := make([]string, 0, cfg.Simulation.Players)
	if *agentsFlag != "" {
		for _, kind := range strings.Split(*agentsFlag, ",") {
			agents = append(agents, strings.TrimSpace(kind))
		}
	} else {
		for i := 0; i < cfg.Simulation.Players; i++ {
			agents = append(agents, "random")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := simulation.NewRunner(logger, game.Settings{
		StartingCash: cfg.Rules.StartingCash,
		MinPlayers:   cfg.Rules.MinPlayers,
		MaxPlayers:   cfg.Rules.MaxPlayers,
	}, cfg.Simulation.MaxTurns)
	if cfg.Simulation.ReplayDir != "" {
		runner.SetReplayRecorder(game.NewReplayRecorder(logger, cfg.Simulation.ReplayDir))
	}

	series, err := simulation.NewSeries(simulation.SeriesConfig{
		Games:       cfg.Simulation.Games,
		Agents:      agents,
		Seed:        cfg.Simulation.Seed,
		Parallelism: cfg.Simulation.Parallelism,
	}, runner, logger)
	if err != nil {
		logger.Fatal("invalid series", zap.Error(err))
	}

	snap, err := series.Run(ctx)
	if err != nil {
		logger.Error("series failed", zap.Error(err))
	}

	fmt.Printf("series %s: %d/%d games played, %d finished\n", snap.ID, snap.Played, snap.Games, snap.Finished)
	fmt.Printf("%-8s %6s %6s %10s %12s\n", "agent", "seats", "wins", "bankrupt", "avg worth")
	for _, rec := range snap.Standings {
		fmt.Printf("%-8s %6d %6d %10d %12.1f\n", rec.Agent, rec.Seats, rec.Wins, rec.Bankruptcies, rec.AverageWorth())
	}
	if err != nil {
		os.Exit(1)
	}
}

func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
