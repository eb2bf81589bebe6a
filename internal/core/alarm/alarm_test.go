package alarm

import (
	"testing"

	"zentimer/internal/core/clock"
	"zentimer/internal/core/model"
	"zentimer/internal/logging"
	"zentimer/internal/testutil"
)

type fixture struct {
	trigger  *Trigger
	player   *testutil.Player
	notifier *testutil.Notifier
	config   *testutil.Config
	tasks    *testutil.Tasks
}

func newFixture(t *testing.T, permission model.Permission, enabled bool) *fixture {
	t.Helper()
	config := model.DefaultNotificationConfig()
	config.Enabled = enabled
	f := &fixture{
		player:   &testutil.Player{},
		notifier: testutil.NewNotifier(permission),
		config:   testutil.NewConfig(config),
		tasks:    testutil.NewTasks(""),
	}
	f.trigger = New(f.player, f.notifier, f.config, f.tasks, logging.Discard())
	f.trigger.run = func(fn func()) { fn() }
	return f
}

func event(kind clock.EventKind, remaining int, active, finished bool) clock.Event {
	return clock.Event{
		Kind:     kind,
		Snapshot: clock.Snapshot{Remaining: remaining, Initial: 1500, Active: active, Finished: finished},
	}
}

func TestFiresOnFinishTransition(t *testing.T) {
	f := newFixture(t, model.PermissionGranted, true)
	f.tasks.Set("Write report")

	f.trigger.Observe(event(clock.EventTick, 1, true, false))
	f.trigger.Observe(event(clock.EventFinish, 0, false, true))

	if f.player.Plays() != 1 {
		t.Fatalf("expected 1 playback, got %d", f.player.Plays())
	}
	sent := f.notifier.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sent))
	}
	want := model.Notification{Title: "Time's Up!", Body: "Finished: Write report", Persistent: true}
	if sent[0] != want {
		t.Fatalf("expected %+v, got %+v", want, sent[0])
	}
}

func TestDoesNotRefireWhileFinished(t *testing.T) {
	f := newFixture(t, model.PermissionGranted, true)

	f.trigger.Observe(event(clock.EventFinish, 0, false, true))
	f.trigger.Observe(event(clock.EventAdjust, 60, false, true))
	f.trigger.Observe(event(clock.EventAdjust, 0, false, true))

	if f.player.Plays() != 1 {
		t.Fatalf("expected 1 playback, got %d", f.player.Plays())
	}
}

func TestFiresAgainAfterResetStartFinish(t *testing.T) {
	f := newFixture(t, model.PermissionDefault, false)

	f.trigger.Observe(event(clock.EventFinish, 0, false, true))
	f.trigger.Observe(event(clock.EventReset, 10, false, false))
	if f.player.Plays() != 1 {
		t.Fatalf("reset must not fire, got %d plays", f.player.Plays())
	}
	f.trigger.Observe(event(clock.EventStart, 10, true, false))
	f.trigger.Observe(event(clock.EventFinish, 0, false, true))

	if f.player.Plays() != 2 {
		t.Fatalf("expected 2 playbacks, got %d", f.player.Plays())
	}
}

func TestNotificationGating(t *testing.T) {
	cases := []struct {
		name       string
		permission model.Permission
		enabled    bool
	}{
		{"disabled", model.PermissionGranted, false},
		{"permission default", model.PermissionDefault, true},
		{"permission denied", model.PermissionDenied, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, tc.permission, tc.enabled)
			f.trigger.Observe(event(clock.EventFinish, 0, false, true))
			if len(f.notifier.Sent()) != 0 {
				t.Fatalf("expected no notification")
			}
			if f.player.Plays() != 1 {
				t.Fatalf("sound must play regardless of notification settings")
			}
		})
	}
}

func TestPlaybackErrorIsSwallowed(t *testing.T) {
	f := newFixture(t, model.PermissionGranted, true)
	f.player.Fail = true

	f.trigger.Observe(event(clock.EventFinish, 0, false, true))

	sent := f.notifier.Sent()
	if len(sent) != 1 || sent[0].Body != FallbackBody {
		t.Fatalf("expected fallback notification despite playback error, got %+v", sent)
	}
}

func TestBody(t *testing.T) {
	if got := Body(""); got != "Timer Finished" {
		t.Fatalf("unexpected fallback %q", got)
	}
	if got := Body("Review PR"); got != "Finished: Review PR" {
		t.Fatalf("unexpected body %q", got)
	}
}
