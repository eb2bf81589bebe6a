package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"zentimer/internal/ui/preferences"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettingsFile(filepath.Join(t.TempDir(), "settings.yaml"))
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if settings != preferences.DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", settings)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	settings := preferences.DefaultSettings()
	settings.InitialDuration = 50 * time.Minute
	settings.NotificationsEnabled = true
	settings.FrequencyMinutes = 10
	settings.MessageTemplate = "Back to {{task}}"
	settings.SoundVolume = 0
	settings.IdleEnabled = true
	settings.IdlePauseAfter = 3 * time.Minute
	settings.LogLevel = "debug"

	if err := SaveSettingsFile(path, settings); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	loaded, err := LoadSettingsFile(path)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if loaded != settings {
		t.Fatalf("expected %+v, got %+v", settings, loaded)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if !strings.Contains(string(raw), `duration: "50:00"`) {
		t.Fatalf("expected human readable duration, got:\n%s", raw)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "duration: \"5:30\"\nnotifications:\n  enabled: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	settings, err := LoadSettingsFile(path)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	defaults := preferences.DefaultSettings()
	if settings.InitialDuration != 330*time.Second {
		t.Fatalf("expected 5:30, got %s", settings.InitialDuration)
	}
	if !settings.NotificationsEnabled {
		t.Fatalf("expected notifications enabled")
	}
	if settings.FrequencyMinutes != defaults.FrequencyMinutes || settings.SoundURL != defaults.SoundURL || settings.SoundVolume != defaults.SoundVolume {
		t.Fatalf("missing keys should keep defaults, got %+v", settings)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"bad yaml":     "duration: [",
		"bad duration": "duration: soon\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.yaml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("write file: %v", err)
			}
			if _, err := LoadSettingsFile(path); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}
