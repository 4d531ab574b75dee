package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/coder/quartz"
	holdem "github.com/whatisfaker/holdemtable"
	"github.com/whatisfaker/holdemtable/api"
	"github.com/whatisfaker/holdemtable/config"
	"github.com/whatisfaker/holdemtable/logging"
	"go.uber.org/zap"
)

var CLI struct {
	Config   string   `short:"c" default:"holdem-server.hcl" env:"HOLDEM_CONFIG" help:"Path to HCL configuration file"`
	Addr     string   `short:"a" env:"HOLDEM_ADDR" help:"Address to bind to, host:port (overrides config)"`
	LogLevel string   `short:"l" env:"HOLDEM_LOG_LEVEL" help:"Log level (overrides config)"`
	EnvFile  []string `name:"env-file" help:"dotenv files loaded before reading the environment"`
}

func main() {
	// dotenv files must be in the environment before kong resolves env tags
	if err := config.LoadEnv(envFiles(os.Args[1:])...); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ctx := kong.Parse(&CLI,
		kong.Name("holdem-server"),
		kong.Description("HTTP server for hold'em tables"),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		ctx.Exit(1)
	}
	if CLI.LogLevel != "" {
		cfg.Server.LogLevel = CLI.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		ctx.Exit(1)
	}
	addr := cfg.ListenAddress()
	if CLI.Addr != "" {
		addr = CLI.Addr
	}

	logger := logging.New(cfg.Server.LogLevel, os.Stderr)
	defer func() {
		_ = logger.Sync()
	}()

	m := holdem.NewManager(logger, quartz.NewReal())
	if err := seed(m, cfg); err != nil {
		logger.Error("failed to seed tables", zap.Error(err))
		ctx.Exit(1)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(m, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.Int("tables", len(cfg.Tables)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", zap.Error(err))
			ctx.Exit(1)
		}
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

func seed(m *holdem.Manager, cfg *config.Config) error {
	for _, t := range cfg.Tables {
		opts := []holdem.TableOption{holdem.OptionBlinds(t.SmallBlind, t.BigBlind, t.Ante)}
		if t.GameType != "" {
			opts = append(opts, holdem.OptionGameType(t.GameType))
		}
		if _, err := m.CreateTable(t.Name, int8(t.MaxPlayers), t.MinBuyIn, t.MaxBuyIn, opts...); err != nil {
			return fmt.Errorf("table %s: %w", t.Name, err)
		}
	}
	for _, p := range cfg.Players {
		if _, err := m.CreatePlayer(p.Name, p.Bankroll); err != nil {
			return fmt.Errorf("player %s: %w", p.Name, err)
		}
	}
	return nil
}

// envFiles values of --env-file, read ahead of kong
func envFiles(args []string) []string {
	var files []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--env-file" && i+1 < len(args):
			files = append(files, args[i+1])
			i++
		case strings.HasPrefix(a, "--env-file="):
			files = append(files, strings.TrimPrefix(a, "--env-file="))
		}
	}
	return files
}
