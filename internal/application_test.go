package application

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/inversi/internal/config"
	"github.com/rocketscienceinc/inversi/internal/oracle"
)

func TestNewOracle(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("No oracle configured", func(t *testing.T) {
		conf := &config.Config{Oracle: config.Oracle{Kind: config.OracleNone}}

		decider, release, err := NewOracle(ctx, logger, conf)

		require.NoError(t, err)
		assert.Nil(t, decider)
		release()
	})

	t.Run("HTTP oracle gets an in-memory cache without redis", func(t *testing.T) {
		conf := &config.Config{
			Oracle: config.Oracle{Kind: config.OracleHTTP, URL: "http://localhost:1/decide", Timeout: time.Second},
			Redis:  config.Redis{TTL: time.Minute},
		}

		decider, release, err := NewOracle(ctx, logger, conf)

		require.NoError(t, err)
		assert.IsType(t, &oracle.CachedOracle{}, decider)
		release()
	})

	t.Run("Command oracle", func(t *testing.T) {
		conf := &config.Config{Oracle: config.Oracle{Kind: config.OracleCommand, Command: []string{"llm", "--quiet"}}}

		decider, release, err := NewOracle(ctx, logger, conf)

		require.NoError(t, err)
		assert.IsType(t, &oracle.CachedOracle{}, decider)
		release()
	})

	t.Run("Redis enabled without host", func(t *testing.T) {
		conf := &config.Config{
			Oracle: config.Oracle{Kind: config.OracleHTTP, URL: "http://localhost:1/decide"},
			Redis:  config.Redis{Enabled: true},
		}

		_, _, err := NewOracle(ctx, logger, conf)

		require.ErrorIs(t, err, ErrAddrNotFound)
	})

	t.Run("Unknown kind", func(t *testing.T) {
		conf := &config.Config{Oracle: config.Oracle{Kind: "tarot"}}

		_, _, err := NewOracle(ctx, logger, conf)

		require.ErrorIs(t, err, config.ErrInvalidOracle)
	})
}

func TestSeed(t *testing.T) {
	assert.Equal(t, int64(7), seed(7))
	assert.NotZero(t, seed(0))
}
