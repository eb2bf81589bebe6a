package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"zentimer/internal/app"
	"zentimer/internal/config"
	"zentimer/internal/logging"
	"zentimer/internal/platform"
	"zentimer/internal/storage"
	"zentimer/internal/ui/preferences"
)

const (
	appName = "ZenTimer"
	appID   = "com.zentimer.app"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	options, err := config.Load(appName, args)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "zentimer: %v\n", err)
		return 2
	}

	logger, closeLog, err := newLogger(options.Settings, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "zentimer: %v\n", err)
		return 1
	}
	defer closeLog()

	if options.InitConfig {
		if err := storage.SaveSettingsFile(options.ConfigPath, options.Settings); err != nil {
			logger.Error("write settings", "error", err)
			return 1
		}
		logger.Info("settings written", "path", options.ConfigPath)
		return 0
	}

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if !options.Headless {
			if signalErr := platform.SignalRunning(appName); signalErr != nil {
				logger.Warn("signal running instance", "error", signalErr)
			}
		}
		logger.Info("single instance", "error", err)
		return 1
	}
	defer func() {
		_ = guard.Release()
	}()

	if options.Headless {
		return runHeadless(options, logger)
	}
	return runDesktop(options, guard, logger)
}

// newLogger writes to the configured log file, or to fallback when none is set.
func newLogger(settings preferences.Settings, fallback io.Writer) (logging.Logger, func(), error) {
	if settings.LogFile == "" {
		return logging.New(logging.Options{Writer: fallback, Level: settings.LogLevel}), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(settings.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(settings.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := logging.New(logging.Options{Writer: file, Level: settings.LogLevel})
	return logger, func() { _ = file.Close() }, nil
}

func coordinatorConfig(settings preferences.Settings) app.Config {
	return app.Config{
		Clock:         settings.ClockConfig(),
		Notification:  settings.NotificationConfig(),
		Idle:          settings.IdleConfig(),
		BaseTitle:     settings.BaseTitle,
		TitleInterval: settings.TitleInterval,
	}
}
