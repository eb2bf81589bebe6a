package model

// SubTask is a checklist entry under the focus task.
type SubTask struct {
	ID        string
	Text      string
	Completed bool
}

// Task is the single thing the user is focusing on.
type Task struct {
	ID        string
	Text      string
	Completed bool
	SubTasks  []SubTask
}

// Clone returns a deep copy so callers can't alias the subtask slice.
func (task Task) Clone() Task {
	clone := task
	if task.SubTasks != nil {
		clone.SubTasks = append([]SubTask(nil), task.SubTasks...)
	}
	return clone
}
