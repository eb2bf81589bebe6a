package platform

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/faiface/beep"
)

func TestVolumeControl(t *testing.T) {
	var stream beep.Streamer = beep.Silence(1)

	half := volumeControl(stream, DefaultSoundVolume)
	if half.Base != 2 || half.Volume != -1 || half.Silent {
		t.Fatalf("unexpected control for 0.5: %+v", half)
	}

	full := volumeControl(stream, 1)
	if full.Volume != 0 {
		t.Fatalf("expected unity gain, got %v", full.Volume)
	}

	if muted := volumeControl(stream, 0); !muted.Silent {
		t.Fatalf("expected zero gain to be silent")
	}
}

func TestSetVolume(t *testing.T) {
	player := NewSoundPlayer("", DefaultSoundVolume)
	if got := player.Volume(); got != DefaultSoundVolume {
		t.Fatalf("expected %v, got %v", DefaultSoundVolume, got)
	}
	player.SetVolume(0.2)
	if got := player.Volume(); got != 0.2 {
		t.Fatalf("expected 0.2, got %v", got)
	}
}

func TestPlayReportsMissingFile(t *testing.T) {
	player := NewSoundPlayer(filepath.Join(t.TempDir(), "missing.mp3"), 0.5)
	err := player.Play(context.Background())
	if err == nil || !strings.Contains(err.Error(), "read sound file") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestPlayReportsHTTPStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	player := NewSoundPlayer(server.URL+"/alarm.mp3", 0.5)
	err := player.Play(context.Background())
	if err == nil || !strings.Contains(err.Error(), "unexpected status") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestPlayRetriesAfterDecodeFailure(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte("not an mp3"))
	}))
	defer server.Close()

	player := NewSoundPlayer(server.URL, 0.5)
	for i := 0; i < 2; i++ {
		if err := player.Play(context.Background()); err == nil {
			t.Fatalf("expected decode error")
		}
	}
	if got := requests.Load(); got != 2 {
		t.Fatalf("expected a refetch after failure, got %d requests", got)
	}
}

func TestNewSoundPlayerDefaultsSource(t *testing.T) {
	if player := NewSoundPlayer("", 0.5); player.source != DefaultSoundURL {
		t.Fatalf("expected default URL, got %q", player.source)
	}
}
