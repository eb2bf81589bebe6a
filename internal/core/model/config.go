package model

import "time"

const (
	// DefaultDurationSeconds is the countdown length a fresh timer starts with.
	DefaultDurationSeconds = 25 * 60
	// DefaultFrequencyMinutes is the default reminder cadence.
	DefaultFrequencyMinutes = 5
	// DefaultMessageTemplate is the default reminder body.
	DefaultMessageTemplate = "Focus on: {{task}}"
	// TaskPlaceholder is replaced by the current task name in reminder bodies.
	TaskPlaceholder = "{{task}}"

	minFrequencyMinutes = 1
	maxFrequencyMinutes = 60
)

// NotificationConfig controls the periodic "stay focused" reminders.
type NotificationConfig struct {
	Enabled          bool
	FrequencyMinutes int
	MessageTemplate  string
}

// DefaultNotificationConfig returns reminders disabled with a five minute cadence.
func DefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		Enabled:          false,
		FrequencyMinutes: DefaultFrequencyMinutes,
		MessageTemplate:  DefaultMessageTemplate,
	}
}

// Normalized clamps the frequency into [1,60].
func (config NotificationConfig) Normalized() NotificationConfig {
	if config.FrequencyMinutes < minFrequencyMinutes {
		config.FrequencyMinutes = minFrequencyMinutes
	}
	if config.FrequencyMinutes > maxFrequencyMinutes {
		config.FrequencyMinutes = maxFrequencyMinutes
	}
	return config
}

// FrequencySeconds returns the reminder cadence in seconds.
func (config NotificationConfig) FrequencySeconds() int {
	return config.Normalized().FrequencyMinutes * 60
}

// ClockConfig contains runtime settings for the clock engine.
type ClockConfig struct {
	InitialSeconds int
	TickInterval   time.Duration
}

// IdleConfig controls pausing a running countdown when the user walks away.
type IdleConfig struct {
	Enabled       bool
	PauseAfter    time.Duration
	CheckInterval time.Duration
}
