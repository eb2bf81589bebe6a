package reminder

import (
	"testing"

	"zentimer/internal/core/clock"
	"zentimer/internal/core/model"
	"zentimer/internal/logging"
	"zentimer/internal/testutil"
)

func enabledConfig(minutes int) model.NotificationConfig {
	return model.NotificationConfig{
		Enabled:          true,
		FrequencyMinutes: minutes,
		MessageTemplate:  model.DefaultMessageTemplate,
	}
}

func tickEvent(remaining, initial int) clock.Event {
	return clock.Event{
		Kind: clock.EventTick,
		Snapshot: clock.Snapshot{
			Remaining: remaining,
			Initial:   initial,
			Active:    true,
			Phase:     clock.PhaseRunning,
		},
	}
}

func newTestScheduler(t *testing.T, config model.NotificationConfig, permission model.Permission, task string) (*Scheduler, *testutil.Notifier) {
	t.Helper()
	notifier := testutil.NewNotifier(permission)
	scheduler := New(testutil.NewConfig(config), notifier, testutil.NewTasks(task), logging.Discard())
	scheduler.run = func(fn func()) { fn() }
	return scheduler, notifier
}

func TestDue(t *testing.T) {
	config := enabledConfig(5)
	running := func(remaining, initial int) clock.Snapshot {
		return clock.Snapshot{Remaining: remaining, Initial: initial, Active: true}
	}

	cases := []struct {
		name     string
		config   model.NotificationConfig
		snapshot clock.Snapshot
		previous int
		want     bool
	}{
		{"multiple fires", config, running(900, 1500), 901, true},
		{"non multiple", config, running(899, 1500), 900, false},
		{"initial duration suppressed", config, running(900, 900), 901, false},
		{"disabled", model.NotificationConfig{FrequencyMinutes: 5}, running(900, 1500), 901, false},
		{"inactive", config, clock.Snapshot{Remaining: 900, Initial: 1500}, 901, false},
		{"zero remaining", config, running(0, 1500), 1, false},
		{"skipped tick crosses multiple", config, running(898, 1500), 903, true},
		{"skipped tick without multiple", config, running(850, 1500), 870, false},
		{"frequency clamped up", model.NotificationConfig{Enabled: true, FrequencyMinutes: 0}, running(120, 1500), 121, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Due(tc.config, tc.snapshot, tc.previous); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestRenderMessage(t *testing.T) {
	if got := RenderMessage("Focus on: {{task}}", "Write report"); got != "Focus on: Write report" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := RenderMessage("Focus on: {{task}}", ""); got != "Focus on: Task" {
		t.Fatalf("unexpected fallback %q", got)
	}
	if got := RenderMessage("Keep going", "Write report"); got != "Keep going" {
		t.Fatalf("template without placeholder changed: %q", got)
	}
	if got := RenderMessage("{{task}} / {{task}}", "A"); got != "A / {{task}}" {
		t.Fatalf("expected only the first placeholder replaced, got %q", got)
	}
}

func TestSchedulerFiresOncePerQualifyingSecond(t *testing.T) {
	scheduler, notifier := newTestScheduler(t, enabledConfig(5), model.PermissionGranted, "Write report")

	scheduler.Observe(tickEvent(901, 1500))
	scheduler.Observe(tickEvent(900, 1500))
	// Same second observed again must not re-fire.
	scheduler.Observe(tickEvent(900, 1500))
	scheduler.Observe(tickEvent(899, 1500))

	sent := notifier.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sent))
	}
	if sent[0].Title != Title || sent[0].Body != "Focus on: Write report" || sent[0].Persistent {
		t.Fatalf("unexpected notification: %+v", sent[0])
	}
}

func TestSchedulerIgnoresCommandEvents(t *testing.T) {
	scheduler, notifier := newTestScheduler(t, enabledConfig(5), model.PermissionGranted, "")

	start := tickEvent(900, 1500)
	start.Kind = clock.EventStart
	scheduler.Observe(start)

	if len(notifier.Sent()) != 0 {
		t.Fatalf("start on a multiple should not notify")
	}

	scheduler.Observe(tickEvent(899, 1500))
	if len(notifier.Sent()) != 0 {
		t.Fatalf("expected no notification at 899")
	}
}

func TestSchedulerRequiresPermission(t *testing.T) {
	for _, permission := range []model.Permission{model.PermissionDefault, model.PermissionDenied} {
		scheduler, notifier := newTestScheduler(t, enabledConfig(5), permission, "")
		scheduler.Observe(tickEvent(900, 1500))
		if len(notifier.Sent()) != 0 {
			t.Fatalf("permission %s: expected no notification", permission)
		}
	}
}

func TestSchedulerSurvivesDeliveryError(t *testing.T) {
	scheduler, notifier := newTestScheduler(t, enabledConfig(1), model.PermissionGranted, "")
	notifier.Err = testutil.ErrPlayback

	scheduler.Observe(tickEvent(60, 1500))
	notifier.Err = nil
	scheduler.Observe(tickEvent(59, 1500))
	scheduler.Observe(tickEvent(0, 1500))

	if len(notifier.Sent()) != 0 {
		t.Fatalf("expected nothing delivered, got %d", len(notifier.Sent()))
	}
}

func TestSchedulerOverCountdown(t *testing.T) {
	config := testutil.NewConfig(enabledConfig(1))
	notifier := testutil.NewNotifier(model.PermissionGranted)
	scheduler := New(config, notifier, testutil.NewTasks(""), logging.Discard())
	scheduler.run = func(fn func()) { fn() }

	events := []clock.Event{tickEvent(121, 1500)}
	for remaining := 120; remaining >= 1; remaining-- {
		events = append(events, tickEvent(remaining, 1500))
	}
	for _, event := range events {
		scheduler.Observe(event)
	}

	// 120 and 60 qualify.
	if got := len(notifier.Sent()); got != 2 {
		t.Fatalf("expected 2 notifications, got %d", got)
	}
}
