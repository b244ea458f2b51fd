package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/inversi/internal/config"
	"github.com/rocketscienceinc/inversi/internal/oracle"
	"github.com/rocketscienceinc/inversi/internal/repository"
	"github.com/rocketscienceinc/inversi/internal/repository/storage"
	"github.com/rocketscienceinc/inversi/internal/service"
	"github.com/rocketscienceinc/inversi/internal/ui"
	"github.com/rocketscienceinc/inversi/internal/usecase"
	"github.com/rocketscienceinc/inversi/transport/rest"
)

var ErrAddrNotFound = errors.New("redis host is empty")

// RunApp - runs the static file server until a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signalContext(log)
	defer cancel()

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "static_dir", conf.StaticDir)

	if err := rest.New(logger, conf.HTTPPort, conf.StaticDir).Start(ctx); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// RunTerminal - runs the terminal game until the user quits or a signal arrives.
func RunTerminal(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signalContext(log)
	defer cancel()

	decider, closeOracle, err := NewOracle(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeOracle()

	policy := service.NewOpponentPolicy(logger, decider, rand.New(rand.NewSource(seed(conf.Opponent.Seed)))) //nolint:gosec

	navigator := usecase.NewNavigator(logger, policy, usecase.WithThinkDelay(conf.Opponent.ThinkDelay))

	log.Info("Starting terminal UI", "oracle", conf.Oracle.Kind)

	return ui.New(logger, navigator).Run(ctx)
}

// NewOracle builds the configured oracle, wrapped in a decision cache. A nil
// oracle means the opponent relies on the heuristic alone. The returned func
// releases the cache storage.
func NewOracle(ctx context.Context, logger *slog.Logger, conf *config.Config) (oracle.Oracle, func(), error) {
	log := logger.With("component", "app", "method", "NewOracle")

	var next oracle.Oracle

	switch conf.Oracle.Kind {
	case config.OracleHTTP:
		next = oracle.NewHTTPOracle(conf.Oracle.URL, conf.Oracle.Timeout)
	case config.OracleCommand:
		next = oracle.NewCommandOracle(conf.Oracle.Command[0], conf.Oracle.Command[1:]...)
	case config.OracleNone:
		return nil, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrInvalidOracle, conf.Oracle.Kind)
	}

	if !conf.Redis.Enabled {
		return oracle.NewCachedOracle(logger, next, repository.NewMemoryDecisionRepository(conf.Redis.TTL)), func() {}, nil
	}

	if conf.Redis.Host == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeStorage := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	store := repository.NewDecisionRepository(redisStorage, conf.Redis.TTL)

	return oracle.NewCachedOracle(logger, next, store), closeStorage, nil
}

func signalContext(log *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigs)
	}()

	return ctx, cancel
}

func seed(configured int64) int64 {
	if configured != 0 {
		return configured
	}
	return time.Now().UnixNano()
}
