package task

import (
	"errors"
	"testing"

	"zentimer/internal/core/model"
)

func TestSetTaskRejectsBlank(t *testing.T) {
	tracker := NewTracker()
	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := tracker.SetTask(text); !errors.Is(err, ErrBlankText) {
			t.Fatalf("SetTask(%q): expected ErrBlankText, got %v", text, err)
		}
	}
	if _, ok := tracker.Current(); ok {
		t.Fatalf("expected no task")
	}
}

func TestSetTaskAssignsID(t *testing.T) {
	tracker := NewTracker()
	created, err := tracker.SetTask("Write report")
	if err != nil {
		t.Fatalf("set task: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected task ID to be set")
	}
	if tracker.Name() != "Write report" {
		t.Fatalf("expected name %q, got %q", "Write report", tracker.Name())
	}

	replaced, err := tracker.SetTask("Review PR")
	if err != nil {
		t.Fatalf("replace task: %v", err)
	}
	if replaced.ID == created.ID {
		t.Fatalf("expected a new ID for the replacement task")
	}
}

func TestSubTaskLifecycle(t *testing.T) {
	tracker := NewTracker()
	if _, err := tracker.AddSubTask("outline"); !errors.Is(err, ErrNoTask) {
		t.Fatalf("expected ErrNoTask, got %v", err)
	}

	if _, err := tracker.SetTask("Write report"); err != nil {
		t.Fatalf("set task: %v", err)
	}
	first, err := tracker.AddSubTask("outline")
	if err != nil {
		t.Fatalf("add subtask: %v", err)
	}
	second, err := tracker.AddSubTask("draft")
	if err != nil {
		t.Fatalf("add subtask: %v", err)
	}
	third, err := tracker.AddSubTask("polish")
	if err != nil {
		t.Fatalf("add subtask: %v", err)
	}
	if _, err := tracker.AddSubTask("  "); !errors.Is(err, ErrBlankText) {
		t.Fatalf("expected ErrBlankText, got %v", err)
	}

	if err := tracker.ToggleSubTask(second.ID); err != nil {
		t.Fatalf("toggle subtask: %v", err)
	}
	current, _ := tracker.Current()
	if !current.SubTasks[1].Completed {
		t.Fatalf("expected second subtask to be completed")
	}

	if err := tracker.RemoveSubTask(first.ID); err != nil {
		t.Fatalf("remove subtask: %v", err)
	}
	current, _ = tracker.Current()
	if len(current.SubTasks) != 2 {
		t.Fatalf("expected 2 subtasks, got %d", len(current.SubTasks))
	}
	if current.SubTasks[0].ID != second.ID || current.SubTasks[1].ID != third.ID {
		t.Fatalf("expected order to be preserved, got %+v", current.SubTasks)
	}

	if err := tracker.ToggleSubTask("missing"); !errors.Is(err, ErrSubTaskNotFound) {
		t.Fatalf("expected ErrSubTaskNotFound, got %v", err)
	}
}

func TestCurrentReturnsCopy(t *testing.T) {
	tracker := NewTracker()
	if _, err := tracker.SetTask("Write report"); err != nil {
		t.Fatalf("set task: %v", err)
	}
	if _, err := tracker.AddSubTask("outline"); err != nil {
		t.Fatalf("add subtask: %v", err)
	}

	current, _ := tracker.Current()
	current.SubTasks[0].Text = "mutated"

	again, _ := tracker.Current()
	if again.SubTasks[0].Text != "outline" {
		t.Fatalf("tracker state leaked through Current")
	}
}

func TestClearDiscardsSubTasksAndNotifies(t *testing.T) {
	tracker := NewTracker()
	lastOK := true
	calls := 0
	tracker.OnChange(func(_ model.Task, ok bool) {
		calls++
		lastOK = ok
	})

	if _, err := tracker.SetTask("Write report"); err != nil {
		t.Fatalf("set task: %v", err)
	}
	if _, err := tracker.AddSubTask("outline"); err != nil {
		t.Fatalf("add subtask: %v", err)
	}
	tracker.Clear()

	if _, ok := tracker.Current(); ok {
		t.Fatalf("expected task to be cleared")
	}
	if tracker.Name() != "" {
		t.Fatalf("expected empty name")
	}
	if calls != 3 || lastOK {
		t.Fatalf("expected 3 change notifications ending with none, got %d (ok=%v)", calls, lastOK)
	}
}
