package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	localConfigFile = "config.yml"
	xdgConfigFile   = "inversi/config.yml"
)

const (
	OracleNone    = "none"
	OracleHTTP    = "http"
	OracleCommand = "command"
)

var ErrInvalidOracle = errors.New("invalid oracle settings")

type Config struct {
	LogLevel  string   `yaml:"log-level" env:"INVERSI_LOG_LEVEL" env-default:"info"`
	LogFile   string   `yaml:"log-file" env:"INVERSI_LOG_FILE"`
	HTTPPort  string   `yaml:"http-port" env:"INVERSI_HTTP_PORT" env-default:"9090"`
	StaticDir string   `yaml:"static-dir" env:"INVERSI_STATIC_DIR" env-default:"./web"`
	Redis     Redis    `yaml:"redis"`
	Oracle    Oracle   `yaml:"oracle"`
	Opponent  Opponent `yaml:"opponent"`
}

type Redis struct {
	Enabled bool          `yaml:"enabled" env:"INVERSI_REDIS_ENABLED" env-default:"false"`
	Host    string        `yaml:"host" env:"INVERSI_REDIS_HOST" env-default:"localhost"`
	Port    string        `yaml:"port" env:"INVERSI_REDIS_PORT" env-default:"6379"`
	TTL     time.Duration `yaml:"ttl" env:"INVERSI_REDIS_TTL" env-default:"24h"`
}

// Oracle selects the external decision maker for the automated side.
type Oracle struct {
	Kind    string        `yaml:"kind" env:"INVERSI_ORACLE_KIND" env-default:"none"`
	URL     string        `yaml:"url" env:"INVERSI_ORACLE_URL"`
	Command []string      `yaml:"command" env:"INVERSI_ORACLE_COMMAND" env-separator:" "`
	Timeout time.Duration `yaml:"timeout" env:"INVERSI_ORACLE_TIMEOUT" env-default:"30s"`
}

type Opponent struct {
	ThinkDelay time.Duration `yaml:"think-delay" env:"INVERSI_THINK_DELAY" env-default:"0s"`
	// Seed for the fallback heuristic; zero picks one from the clock.
	Seed int64 `yaml:"seed" env:"INVERSI_OPPONENT_SEED" env-default:"0"`
}

// MustLoad - load configuration from path, or from the environment only when
// path is empty.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if path == "" {
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read config from environment: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Locate returns the config file to use: explicit if set, then ./config.yml,
// then inversi/config.yml in the XDG config dirs. An empty result means
// environment only.
func Locate(explicit string) string {
	if explicit != "" {
		return explicit
	}

	if _, err := os.Stat(localConfigFile); err == nil {
		return localConfigFile
	}

	if path, err := xdg.SearchConfigFile(xdgConfigFile); err == nil {
		return path
	}

	return ""
}

func (that *Config) Validate() error {
	switch that.Oracle.Kind {
	case OracleNone:
	case OracleHTTP:
		if that.Oracle.URL == "" {
			return fmt.Errorf("%w: %s needs a url", ErrInvalidOracle, that.Oracle.Kind)
		}
	case OracleCommand:
		if len(that.Oracle.Command) == 0 {
			return fmt.Errorf("%w: %s needs a command", ErrInvalidOracle, that.Oracle.Kind)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOracle, that.Oracle.Kind)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
