// Package task tracks the current focus task and its subtasks in memory.
package task

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"zentimer/internal/core/model"
)

var (
	// ErrBlankText is returned for task or subtask text that is empty after trimming.
	ErrBlankText = errors.New("text is blank")
	// ErrNoTask is returned when a subtask operation runs without a focus task.
	ErrNoTask = errors.New("no focus task")
	// ErrSubTaskNotFound is returned for an unknown subtask ID.
	ErrSubTaskNotFound = errors.New("subtask not found")
)

// Tracker owns the optional focus task.
type Tracker struct {
	mu       sync.RWMutex
	current  *model.Task
	onChange []func(model.Task, bool)
	newID    func() string
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{newID: func() string { return uuid.NewString() }}
}

// OnChange registers a callback invoked after every mutation.
func (tracker *Tracker) OnChange(handler func(task model.Task, ok bool)) {
	tracker.mu.Lock()
	tracker.onChange = append(tracker.onChange, handler)
	tracker.mu.Unlock()
}

// Current returns a copy of the focus task.
func (tracker *Tracker) Current() (model.Task, bool) {
	tracker.mu.RLock()
	defer tracker.mu.RUnlock()
	if tracker.current == nil {
		return model.Task{}, false
	}
	return tracker.current.Clone(), true
}

// Name returns the focus task text, or "" when none is set.
func (tracker *Tracker) Name() string {
	tracker.mu.RLock()
	defer tracker.mu.RUnlock()
	if tracker.current == nil {
		return ""
	}
	return tracker.current.Text
}

// SetTask replaces the focus task with a fresh one.
func (tracker *Tracker) SetTask(text string) (model.Task, error) {
	if strings.TrimSpace(text) == "" {
		return model.Task{}, ErrBlankText
	}
	task := model.Task{
		ID:       tracker.newID(),
		Text:     text,
		SubTasks: []model.SubTask{},
	}
	tracker.mutate(func() bool {
		tracker.current = &task
		return true
	})
	return task.Clone(), nil
}

// Clear discards the focus task and all its subtasks.
func (tracker *Tracker) Clear() {
	tracker.mutate(func() bool {
		tracker.current = nil
		return true
	})
}

// AddSubTask appends a subtask to the focus task.
func (tracker *Tracker) AddSubTask(text string) (model.SubTask, error) {
	if strings.TrimSpace(text) == "" {
		return model.SubTask{}, ErrBlankText
	}
	var (
		sub model.SubTask
		err error
	)
	tracker.mutate(func() bool {
		if tracker.current == nil {
			err = ErrNoTask
			return false
		}
		sub = model.SubTask{ID: tracker.newID(), Text: text}
		tracker.current.SubTasks = append(tracker.current.SubTasks, sub)
		return true
	})
	return sub, err
}

// ToggleSubTask flips the completed flag of a subtask.
func (tracker *Tracker) ToggleSubTask(id string) error {
	var err error
	tracker.mutate(func() bool {
		index, lookupErr := tracker.indexLocked(id)
		if lookupErr != nil {
			err = lookupErr
			return false
		}
		tracker.current.SubTasks[index].Completed = !tracker.current.SubTasks[index].Completed
		return true
	})
	return err
}

// RemoveSubTask deletes a subtask, keeping the order of the rest.
func (tracker *Tracker) RemoveSubTask(id string) error {
	var err error
	tracker.mutate(func() bool {
		index, lookupErr := tracker.indexLocked(id)
		if lookupErr != nil {
			err = lookupErr
			return false
		}
		subs := tracker.current.SubTasks
		tracker.current.SubTasks = append(subs[:index:index], subs[index+1:]...)
		return true
	})
	return err
}

func (tracker *Tracker) indexLocked(id string) (int, error) {
	if tracker.current == nil {
		return 0, ErrNoTask
	}
	for i, sub := range tracker.current.SubTasks {
		if sub.ID == id {
			return i, nil
		}
	}
	return 0, ErrSubTaskNotFound
}

// mutate applies change under the lock and notifies listeners if it reports a change.
func (tracker *Tracker) mutate(change func() bool) {
	tracker.mu.Lock()
	if !change() {
		tracker.mu.Unlock()
		return
	}
	var (
		snapshot model.Task
		ok       bool
	)
	if tracker.current != nil {
		snapshot, ok = tracker.current.Clone(), true
	}
	handlers := append([]func(model.Task, bool)(nil), tracker.onChange...)
	tracker.mu.Unlock()

	for _, handler := range handlers {
		handler(snapshot, ok)
	}
}
