// Package testutil holds recording fakes for the ports the core drives.
package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"zentimer/internal/core/model"
)

// ErrPlayback is what FakePlayer returns when Fail is set.
var ErrPlayback = errors.New("playback failed")

// Notifier records every notification it is asked to deliver.
type Notifier struct {
	mu            sync.Mutex
	permission    model.Permission
	grantOnAsk    bool
	notifications []model.Notification
	Err           error
}

// NewNotifier returns a fake with the given starting permission.
func NewNotifier(permission model.Permission) *Notifier {
	return &Notifier{permission: permission}
}

// GrantOnRequest makes RequestPermission answer granted.
func (notifier *Notifier) GrantOnRequest() *Notifier {
	notifier.mu.Lock()
	notifier.grantOnAsk = true
	notifier.mu.Unlock()
	return notifier
}

// Permission implements the notifier port.
func (notifier *Notifier) Permission() model.Permission {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return notifier.permission
}

// RequestPermission implements the notifier port.
func (notifier *Notifier) RequestPermission(context.Context) (model.Permission, error) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if notifier.grantOnAsk {
		notifier.permission = model.PermissionGranted
	} else {
		notifier.permission = model.PermissionDenied
	}
	return notifier.permission, nil
}

// Notify implements the notifier port.
func (notifier *Notifier) Notify(_ context.Context, notification model.Notification) error {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if notifier.Err != nil {
		return notifier.Err
	}
	notifier.notifications = append(notifier.notifications, notification)
	return nil
}

// Sent returns a copy of the delivered notifications.
func (notifier *Notifier) Sent() []model.Notification {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return append([]model.Notification(nil), notifier.notifications...)
}

// Player counts alarm playbacks.
type Player struct {
	mu    sync.Mutex
	plays int
	Fail  bool
}

// Play implements the audio port.
func (player *Player) Play(context.Context) error {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.plays++
	if player.Fail {
		return ErrPlayback
	}
	return nil
}

// Plays returns how many times Play was called.
func (player *Player) Plays() int {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.plays
}

// TitleSink records every title written.
type TitleSink struct {
	mu     sync.Mutex
	titles []string
	signal chan struct{}
}

// NewTitleSink returns an empty sink.
func NewTitleSink() *TitleSink {
	return &TitleSink{signal: make(chan struct{}, 64)}
}

// SetTitle implements the title port.
func (sink *TitleSink) SetTitle(title string) {
	sink.mu.Lock()
	sink.titles = append(sink.titles, title)
	sink.mu.Unlock()
	select {
	case sink.signal <- struct{}{}:
	default:
	}
}

// Titles returns a copy of the recorded titles.
func (sink *TitleSink) Titles() []string {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	return append([]string(nil), sink.titles...)
}

// Last returns the most recent title, or "".
func (sink *TitleSink) Last() string {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.titles) == 0 {
		return ""
	}
	return sink.titles[len(sink.titles)-1]
}

// WaitFor blocks until at least n titles were recorded or the timeout expires.
func (sink *TitleSink) WaitFor(n int, timeout time.Duration) bool {
	deadline := time.After(timeout)
	for {
		if len(sink.Titles()) >= n {
			return true
		}
		select {
		case <-sink.signal:
		case <-deadline:
			return len(sink.Titles()) >= n
		}
	}
}

// Tasks is a fixed task name source.
type Tasks struct {
	mu   sync.Mutex
	name string
}

// NewTasks returns a source reporting name.
func NewTasks(name string) *Tasks {
	return &Tasks{name: name}
}

// Name implements the task source port.
func (tasks *Tasks) Name() string {
	tasks.mu.Lock()
	defer tasks.mu.Unlock()
	return tasks.name
}

// Set changes the reported name.
func (tasks *Tasks) Set(name string) {
	tasks.mu.Lock()
	tasks.name = name
	tasks.mu.Unlock()
}

// Config is a settable notification config source.
type Config struct {
	mu     sync.Mutex
	config model.NotificationConfig
}

// NewConfig returns a source holding config.
func NewConfig(config model.NotificationConfig) *Config {
	return &Config{config: config}
}

// NotificationConfig implements the config source port.
func (source *Config) NotificationConfig() model.NotificationConfig {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.config
}

// Set replaces the held config.
func (source *Config) Set(config model.NotificationConfig) {
	source.mu.Lock()
	source.config = config
	source.mu.Unlock()
}
