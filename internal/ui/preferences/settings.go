package preferences

import (
	"time"

	"zentimer/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	InitialDuration time.Duration
	TickInterval    time.Duration

	NotificationsEnabled bool
	FrequencyMinutes     int
	MessageTemplate      string

	SoundURL    string
	SoundVolume float64

	BaseTitle     string
	TitleInterval time.Duration

	IdleEnabled    bool
	IdlePauseAfter time.Duration

	LogLevel string
	LogFile  string
}

// DefaultSettings returns default settings for ZenTimer.
func DefaultSettings() Settings {
	notification := model.DefaultNotificationConfig()
	return Settings{
		InitialDuration:      model.DefaultDurationSeconds * time.Second,
		TickInterval:         time.Second,
		NotificationsEnabled: notification.Enabled,
		FrequencyMinutes:     notification.FrequencyMinutes,
		MessageTemplate:      notification.MessageTemplate,
		SoundURL:             "https://assets.mixkit.co/active_storage/sfx/2869/2869-preview.mp3",
		SoundVolume:          0.5,
		BaseTitle:            "Simple Web Timer",
		TitleInterval:        2 * time.Second,
		IdleEnabled:          false,
		IdlePauseAfter:       5 * time.Minute,
		LogLevel:             "info",
	}
}

// ClockConfig converts settings to the engine configuration.
func (settings Settings) ClockConfig() model.ClockConfig {
	return model.ClockConfig{
		InitialSeconds: int(settings.InitialDuration / time.Second),
		TickInterval:   settings.TickInterval,
	}
}

// NotificationConfig converts settings to the reminder configuration.
func (settings Settings) NotificationConfig() model.NotificationConfig {
	return model.NotificationConfig{
		Enabled:          settings.NotificationsEnabled,
		FrequencyMinutes: settings.FrequencyMinutes,
		MessageTemplate:  settings.MessageTemplate,
	}.Normalized()
}

// WithNotificationConfig returns a copy carrying config.
func (settings Settings) WithNotificationConfig(config model.NotificationConfig) Settings {
	config = config.Normalized()
	settings.NotificationsEnabled = config.Enabled
	settings.FrequencyMinutes = config.FrequencyMinutes
	settings.MessageTemplate = config.MessageTemplate
	return settings
}

// IdleConfig converts settings to the idle guard configuration.
func (settings Settings) IdleConfig() model.IdleConfig {
	return model.IdleConfig{
		Enabled:       settings.IdleEnabled,
		PauseAfter:    settings.IdlePauseAfter,
		CheckInterval: 5 * time.Second,
	}
}
