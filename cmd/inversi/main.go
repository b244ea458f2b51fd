// inversi is the terminal client: reverse Othello against the computer or a
// second player on the same keyboard.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	app "github.com/rocketscienceinc/inversi/internal"
	"github.com/rocketscienceinc/inversi/internal/config"
)

var flagConfig = flag.String("config", "", "path to config.yml")

func main() {
	flag.Parse()

	conf, err := config.Load(config.Locate(*flagConfig))
	if err != nil {
		fmt.Fprintf(os.Stderr, "inversi: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := initLogger(conf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "inversi: %v\n", err)
		os.Exit(1)
	}

	err = app.RunTerminal(logger, conf)
	closeLog()

	if err != nil {
		fmt.Fprintf(os.Stderr, "inversi: %v\n", err)
		os.Exit(1)
	}
}

// initLogger writes to the configured log file; the terminal belongs to the UI.
func initLogger(conf *config.Config) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(conf.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	if conf.LogFile == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() {}, nil
	}

	file, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open log file: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level}))

	return logger, func() { _ = file.Close() }, nil
}
