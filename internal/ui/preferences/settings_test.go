package preferences

import (
	"testing"
	"time"

	"zentimer/internal/core/model"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	if settings.InitialDuration != 25*time.Minute {
		t.Fatalf("expected 25 minutes, got %s", settings.InitialDuration)
	}
	notification := settings.NotificationConfig()
	if notification.Enabled || notification.FrequencyMinutes != 5 || notification.MessageTemplate != "Focus on: {{task}}" {
		t.Fatalf("unexpected notification defaults: %+v", notification)
	}
	if settings.SoundVolume != 0.5 || settings.BaseTitle != "Simple Web Timer" {
		t.Fatalf("unexpected defaults: %+v", settings)
	}
}

func TestConversions(t *testing.T) {
	settings := DefaultSettings()
	settings.InitialDuration = 90 * time.Second
	settings.FrequencyMinutes = 99

	if got := settings.ClockConfig().InitialSeconds; got != 90 {
		t.Fatalf("expected 90 seconds, got %d", got)
	}
	if got := settings.NotificationConfig().FrequencyMinutes; got != 60 {
		t.Fatalf("expected clamped frequency, got %d", got)
	}

	updated := settings.WithNotificationConfig(model.NotificationConfig{Enabled: true, FrequencyMinutes: 0, MessageTemplate: "Go"})
	if !updated.NotificationsEnabled || updated.FrequencyMinutes != 1 || updated.MessageTemplate != "Go" {
		t.Fatalf("unexpected update: %+v", updated)
	}

	idle := updated.IdleConfig()
	if idle.PauseAfter != 5*time.Minute || idle.CheckInterval != 5*time.Second {
		t.Fatalf("unexpected idle config: %+v", idle)
	}
}

func TestParsePositiveInt(t *testing.T) {
	if value, ok := parsePositiveInt("15"); !ok || value != 15 {
		t.Fatalf("expected 15")
	}
	for _, input := range []string{"", "0", "-3", "ten"} {
		if _, ok := parsePositiveInt(input); ok {
			t.Fatalf("expected %q to be rejected", input)
		}
	}
}
