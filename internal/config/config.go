// Package config resolves the effective settings from defaults, the YAML
// settings file, ZENTIMER_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"zentimer/internal/core/clock"
	"zentimer/internal/storage"
	"zentimer/internal/ui/preferences"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "ZENTIMER"

const (
	keyConfig               = "config"
	keyDuration             = "duration"
	keyTask                 = "task"
	keyHeadless             = "headless"
	keyLogLevel             = "log_level"
	keyLogFile              = "log_file"
	keyInitConfig           = "init_config"
	keySoundURL             = "sound_url"
	keySoundVolume          = "sound_volume"
	keyBaseTitle            = "base_title"
	keyNotificationsEnabled = "notifications_enabled"
	keyReminderFrequency    = "reminder_frequency"
	keyReminderTemplate     = "reminder_template"
	keyIdleEnabled          = "idle_enabled"
)

// Options is the resolved launch configuration.
type Options struct {
	ConfigPath string
	Task       string
	Headless   bool
	InitConfig bool
	Settings   preferences.Settings
}

// Load parses args (without the program name) and merges every source.
// A pflag.ErrHelp error means usage was printed.
func Load(appName string, args []string) (Options, error) {
	flags := newFlagSet(appName)
	if err := flags.Parse(args); err != nil {
		return Options{}, fmt.Errorf("parse flags: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	bindings := map[string]string{
		keyConfig:     "config",
		keyDuration:   "duration",
		keyTask:       "task",
		keyHeadless:   "headless",
		keyLogLevel:   "log-level",
		keyInitConfig: "init-config",
	}
	for key, flagName := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(flagName)); err != nil {
			return Options{}, fmt.Errorf("bind flag %s: %w", flagName, err)
		}
	}

	path := v.GetString(keyConfig)
	if path == "" {
		defaultPath, err := storage.DefaultPath(appName)
		if err != nil {
			return Options{}, err
		}
		path = defaultPath
	}
	settings, err := storage.LoadSettingsFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("load settings %s: %w", path, err)
	}

	setFileDefaults(v, settings)
	settings, err = overlay(v, settings)
	if err != nil {
		return Options{}, err
	}

	return Options{
		ConfigPath: path,
		Task:       strings.TrimSpace(v.GetString(keyTask)),
		Headless:   v.GetBool(keyHeadless),
		InitConfig: v.GetBool(keyInitConfig),
		Settings:   settings,
	}, nil
}

func newFlagSet(appName string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	flags.String("config", "", "path to settings.yaml")
	flags.String("duration", "", "initial countdown as MM or MM:SS")
	flags.String("task", "", "focus task to start with")
	flags.Bool("headless", false, "run in the terminal without windows")
	flags.String("log-level", "", "debug, info, warn or error")
	flags.Bool("init-config", false, "write the effective settings file and exit")
	return flags
}

// setFileDefaults makes the file-backed settings the fallback for every key.
func setFileDefaults(v *viper.Viper, settings preferences.Settings) {
	v.SetDefault(keyDuration, clock.FormatTime(int(settings.InitialDuration/time.Second)))
	v.SetDefault(keyTask, "")
	v.SetDefault(keyHeadless, false)
	v.SetDefault(keyInitConfig, false)
	v.SetDefault(keyLogLevel, settings.LogLevel)
	v.SetDefault(keyLogFile, settings.LogFile)
	v.SetDefault(keySoundURL, settings.SoundURL)
	v.SetDefault(keySoundVolume, settings.SoundVolume)
	v.SetDefault(keyBaseTitle, settings.BaseTitle)
	v.SetDefault(keyNotificationsEnabled, settings.NotificationsEnabled)
	v.SetDefault(keyReminderFrequency, settings.FrequencyMinutes)
	v.SetDefault(keyReminderTemplate, settings.MessageTemplate)
	v.SetDefault(keyIdleEnabled, settings.IdleEnabled)
}

func overlay(v *viper.Viper, settings preferences.Settings) (preferences.Settings, error) {
	duration := v.GetString(keyDuration)
	seconds, ok := clock.ParseDuration(duration)
	if !ok {
		return settings, fmt.Errorf("invalid duration %q: want MM or MM:SS", duration)
	}
	settings.InitialDuration = time.Duration(seconds) * time.Second

	volume := v.GetFloat64(keySoundVolume)
	if volume < 0 || volume > 1 {
		return settings, fmt.Errorf("invalid sound volume %v: want 0..1", volume)
	}
	settings.SoundVolume = volume

	settings.LogLevel = v.GetString(keyLogLevel)
	settings.LogFile = v.GetString(keyLogFile)
	settings.SoundURL = v.GetString(keySoundURL)
	settings.BaseTitle = v.GetString(keyBaseTitle)
	settings.NotificationsEnabled = v.GetBool(keyNotificationsEnabled)
	settings.FrequencyMinutes = v.GetInt(keyReminderFrequency)
	settings.MessageTemplate = v.GetString(keyReminderTemplate)
	settings.IdleEnabled = v.GetBool(keyIdleEnabled)

	// Clamp frequency like the preferences window does.
	settings = settings.WithNotificationConfig(settings.NotificationConfig())
	return settings, nil
}
