package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"zentimer/internal/core/clock"
	"zentimer/internal/platform"
	"zentimer/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	Duration      string            `yaml:"duration"`
	Notifications yamlNotifications `yaml:"notifications"`
	Sound         yamlSound         `yaml:"sound"`
	Title         yamlTitle         `yaml:"title"`
	Idle          yamlIdle          `yaml:"idle"`
	Log           yamlLog           `yaml:"log"`
}

type yamlNotifications struct {
	Enabled          bool   `yaml:"enabled"`
	FrequencyMinutes int    `yaml:"frequency_minutes"`
	MessageTemplate  string `yaml:"message_template"`
}

type yamlSound struct {
	URL    string   `yaml:"url"`
	Volume *float64 `yaml:"volume,omitempty"`
}

type yamlTitle struct {
	Base            string `yaml:"base"`
	IntervalSeconds int    `yaml:"interval_seconds"`
}

type yamlIdle struct {
	Enabled           bool `yaml:"enabled"`
	PauseAfterMinutes int  `yaml:"pause_after_minutes"`
}

type yamlLog struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// DefaultPath returns the settings file location for appName.
func DefaultPath(appName string) (string, error) {
	configDir, err := platform.ConfigDir(appName)
	if err != nil {
		return "", fmt.Errorf("resolve settings path: %w", err)
	}
	return filepath.Join(configDir, settingsFileName), nil
}

// LoadSettings reads user preferences from the default YAML file.
// If the file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	path, err := DefaultPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(path)
}

// LoadSettingsFile reads user preferences from path.
func LoadSettingsFile(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}
	if err := applyYamlSettings(&settings, fileData); err != nil {
		return settings, err
	}
	return settings, nil
}

// SaveSettings writes user preferences to the default YAML file.
func SaveSettings(appName string, settings preferences.Settings) error {
	path, err := DefaultPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(path, settings)
}

// SaveSettingsFile writes user preferences to path.
func SaveSettingsFile(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	volume := settings.SoundVolume
	fileData := yamlSettings{
		Duration: clock.FormatTime(int(settings.InitialDuration / time.Second)),
		Notifications: yamlNotifications{
			Enabled:          settings.NotificationsEnabled,
			FrequencyMinutes: settings.FrequencyMinutes,
			MessageTemplate:  settings.MessageTemplate,
		},
		Sound: yamlSound{URL: settings.SoundURL, Volume: &volume},
		Title: yamlTitle{
			Base:            settings.BaseTitle,
			IntervalSeconds: int(settings.TitleInterval / time.Second),
		},
		Idle: yamlIdle{
			Enabled:           settings.IdleEnabled,
			PauseAfterMinutes: int(settings.IdlePauseAfter / time.Minute),
		},
		Log: yamlLog{Level: settings.LogLevel, File: settings.LogFile},
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}
	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) error {
	if fileData.Duration != "" {
		seconds, ok := clock.ParseDuration(fileData.Duration)
		if !ok {
			return fmt.Errorf("parse settings yaml: invalid duration %q", fileData.Duration)
		}
		settings.InitialDuration = time.Duration(seconds) * time.Second
	}

	settings.NotificationsEnabled = fileData.Notifications.Enabled
	if fileData.Notifications.FrequencyMinutes > 0 {
		settings.FrequencyMinutes = fileData.Notifications.FrequencyMinutes
	}
	if fileData.Notifications.MessageTemplate != "" {
		settings.MessageTemplate = fileData.Notifications.MessageTemplate
	}

	if fileData.Sound.URL != "" {
		settings.SoundURL = fileData.Sound.URL
	}
	if volume := fileData.Sound.Volume; volume != nil && *volume >= 0 && *volume <= 1 {
		settings.SoundVolume = *volume
	}

	if fileData.Title.Base != "" {
		settings.BaseTitle = fileData.Title.Base
	}
	if fileData.Title.IntervalSeconds > 0 {
		settings.TitleInterval = time.Duration(fileData.Title.IntervalSeconds) * time.Second
	}

	settings.IdleEnabled = fileData.Idle.Enabled
	if fileData.Idle.PauseAfterMinutes > 0 {
		settings.IdlePauseAfter = time.Duration(fileData.Idle.PauseAfterMinutes) * time.Minute
	}

	if fileData.Log.Level != "" {
		settings.LogLevel = fileData.Log.Level
	}
	settings.LogFile = fileData.Log.File
	return nil
}
