package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// DefaultSoundURL is the alert played when a countdown finishes.
const DefaultSoundURL = "https://assets.mixkit.co/active_storage/sfx/2869/2869-preview.mp3"

// DefaultSoundVolume is the linear playback gain.
const DefaultSoundVolume = 0.5

var (
	speakerOnce sync.Once
	speakerErr  error
	speakerRate beep.SampleRate
)

// SoundPlayer fetches an MP3 once and plays it on demand.
type SoundPlayer struct {
	source string
	volume atomic.Uint64 // math.Float64bits of the gain
	client *http.Client

	mu     sync.Mutex
	buffer *beep.Buffer
}

// NewSoundPlayer returns a player for an http(s) URL or a local file path.
func NewSoundPlayer(source string, volume float64) *SoundPlayer {
	if source == "" {
		source = DefaultSoundURL
	}
	player := &SoundPlayer{
		source: source,
		client: &http.Client{Timeout: 15 * time.Second},
	}
	player.SetVolume(volume)
	return player
}

// SetVolume changes the gain used by the next Play.
func (player *SoundPlayer) SetVolume(volume float64) {
	player.volume.Store(math.Float64bits(volume))
}

// Volume returns the current gain.
func (player *SoundPlayer) Volume() float64 {
	return math.Float64frombits(player.volume.Load())
}

// Play blocks until the sound finished or ctx is done.
func (player *SoundPlayer) Play(ctx context.Context) error {
	buffer, err := player.load(ctx)
	if err != nil {
		return err
	}
	if err := initSpeaker(buffer.Format().SampleRate); err != nil {
		return err
	}

	var stream beep.Streamer = buffer.Streamer(0, buffer.Len())
	if buffer.Format().SampleRate != speakerRate {
		stream = beep.Resample(4, buffer.Format().SampleRate, speakerRate, stream)
	}
	done := make(chan struct{})
	speaker.Play(beep.Seq(volumeControl(stream, player.Volume()), beep.Callback(func() { close(done) })))

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// load decodes the source on first use. Failures are retried on the next call.
func (player *SoundPlayer) load(ctx context.Context) (*beep.Buffer, error) {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.buffer != nil {
		return player.buffer, nil
	}

	data, err := player.fetch(ctx)
	if err != nil {
		return nil, err
	}
	buffer, err := decodeMP3(data)
	if err != nil {
		return nil, err
	}
	player.buffer = buffer
	return buffer, nil
}

func (player *SoundPlayer) fetch(ctx context.Context) ([]byte, error) {
	if !strings.HasPrefix(player.source, "http://") && !strings.HasPrefix(player.source, "https://") {
		data, err := os.ReadFile(player.source)
		if err != nil {
			return nil, fmt.Errorf("read sound file: %w", err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, player.source, nil)
	if err != nil {
		return nil, fmt.Errorf("build sound request: %w", err)
	}
	resp, err := player.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sound: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch sound: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read sound body: %w", err)
	}
	return data, nil
}

func decodeMP3(data []byte) (*beep.Buffer, error) {
	if len(data) == 0 {
		return nil, errors.New("decode sound: empty data")
	}
	streamer, format, err := mp3.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("decode sound: %w", err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode sound: %w", err)
	}
	return buffer, nil
}

func initSpeaker(rate beep.SampleRate) error {
	speakerOnce.Do(func() {
		speakerRate = rate
		speakerErr = speaker.Init(rate, rate.N(time.Second/10))
	})
	if speakerErr != nil {
		return fmt.Errorf("init speaker: %w", speakerErr)
	}
	return nil
}

// volumeControl maps a linear gain onto beep's base-2 exponent.
func volumeControl(stream beep.Streamer, gain float64) *effects.Volume {
	if gain <= 0 {
		return &effects.Volume{Streamer: stream, Base: 2, Silent: true}
	}
	return &effects.Volume{
		Streamer: stream,
		Base:     2,
		Volume:   math.Log2(gain),
	}
}
