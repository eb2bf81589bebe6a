// Package timer is the main window: countdown, controls and the focus task.
package timer

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"zentimer/internal/app"
	"zentimer/internal/core/clock"
	"zentimer/internal/core/model"
)

// Controller is the timer command surface.
type Controller interface {
	Snapshot() clock.Snapshot
	Toggle()
	Reset()
	AddMinutes(minutes int) bool
	SetDuration(text string) error
}

// TaskStore manages the focus task.
type TaskStore interface {
	Current() (model.Task, bool)
	SetTask(text string) (model.Task, error)
	Clear()
	AddSubTask(text string) (model.SubTask, error)
	ToggleSubTask(id string) error
	RemoveSubTask(id string) error
}

var (
	runningColor  = color.NRGBA{R: 255, G: 99, B: 99, A: 255}
	idleColor     = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	finishedColor = color.NRGBA{R: 255, G: 196, B: 64, A: 255}
)

// Window is the main ZenTimer window. Its methods must run on the fyne thread.
type Window struct {
	window     fyne.Window
	controller Controller
	tasks      TaskStore

	timeText   *canvas.Text
	phaseLabel *widget.Label
	toggle     *widget.Button
	reset      *widget.Button
	decrease   *widget.Button
	increase   *widget.Button
	duration   *widget.Entry
	message    *widget.Label

	taskEntry   *widget.Entry
	taskForm    *fyne.Container
	taskLabel   *widget.Label
	taskView    *fyne.Container
	subEntry    *widget.Entry
	subTaskList *fyne.Container
}

// New lays out the main view inside window. It is not shown until Show.
func New(window fyne.Window, controller Controller, tasks TaskStore) *Window {
	view := &Window{
		window:      window,
		controller:  controller,
		tasks:       tasks,
		timeText:    canvas.NewText("00:00", idleColor),
		phaseLabel:  widget.NewLabel(""),
		duration:    widget.NewEntry(),
		message:     widget.NewLabel(""),
		taskEntry:   widget.NewEntry(),
		taskLabel:   widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		subEntry:    widget.NewEntry(),
		subTaskList: container.NewVBox(),
	}
	view.timeText.TextSize = 64
	view.timeText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	view.timeText.Alignment = fyne.TextAlignCenter
	view.phaseLabel.Alignment = fyne.TextAlignCenter
	view.message.Importance = widget.DangerImportance

	view.toggle = widget.NewButton("Start", controller.Toggle)
	view.reset = widget.NewButton("Reset", controller.Reset)
	view.decrease = widget.NewButton("-1 min", func() { controller.AddMinutes(-1) })
	view.increase = widget.NewButton("+1 min", func() { controller.AddMinutes(1) })

	view.duration.SetPlaceHolder("MM or MM:SS")
	view.duration.OnSubmitted = view.submitDuration
	setDuration := widget.NewButton("Set", func() { view.submitDuration(view.duration.Text) })

	view.taskEntry.SetPlaceHolder("What are you focusing on?")
	view.taskEntry.OnSubmitted = view.submitTask
	view.taskForm = container.NewBorder(nil, nil, nil,
		widget.NewButton("Set task", func() { view.submitTask(view.taskEntry.Text) }),
		view.taskEntry)

	view.subEntry.SetPlaceHolder("Add a subtask")
	view.subEntry.OnSubmitted = view.submitSubTask
	view.taskView = container.NewVBox(
		container.NewBorder(nil, nil, nil, widget.NewButton("Clear", tasks.Clear), view.taskLabel),
		view.subTaskList,
		container.NewBorder(nil, nil, nil,
			widget.NewButton("Add", func() { view.submitSubTask(view.subEntry.Text) }),
			view.subEntry),
	)

	controls := container.NewHBox(layout.NewSpacer(), view.decrease, view.toggle, view.reset, view.increase, layout.NewSpacer())
	durationRow := container.NewBorder(nil, nil, widget.NewLabel("Duration"), setDuration, view.duration)

	view.window.SetContent(container.NewVBox(
		view.timeText,
		view.phaseLabel,
		controls,
		durationRow,
		view.message,
		widget.NewSeparator(),
		view.taskForm,
		view.taskView,
	))
	view.window.Resize(fyne.NewSize(420, 520))

	view.Render(controller.Snapshot())
	view.RenderTask(tasks.Current())
	return view
}

// Window returns the underlying fyne window.
func (view *Window) Window() fyne.Window {
	return view.window
}

// Show displays and focuses the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Render updates the countdown and the controls.
func (view *Window) Render(snapshot clock.Snapshot) {
	view.timeText.Text = clock.FormatTime(snapshot.Remaining)
	switch {
	case snapshot.Finished:
		view.timeText.Color = finishedColor
	case snapshot.Active:
		view.timeText.Color = runningColor
	default:
		view.timeText.Color = idleColor
	}
	view.timeText.Refresh()
	view.phaseLabel.SetText(PhaseText(snapshot.Phase))

	if snapshot.Active {
		view.toggle.SetText("Pause")
	} else {
		view.toggle.SetText("Start")
	}
	setEnabled(view.toggle, snapshot.Active || snapshot.Remaining > 0)
	setEnabled(view.decrease, app.DecreaseEnabled(snapshot))
	setEnabled(view.increase, !snapshot.Active)
	if app.ResetVisible(snapshot) {
		view.reset.Show()
	} else {
		view.reset.Hide()
	}
}

// RenderTask shows the task form or the current task with its subtasks.
func (view *Window) RenderTask(task model.Task, ok bool) {
	if !ok {
		view.taskView.Hide()
		view.taskForm.Show()
		return
	}
	view.taskForm.Hide()
	view.taskLabel.SetText(task.Text)

	view.subTaskList.RemoveAll()
	for _, sub := range task.SubTasks {
		id := sub.ID
		check := widget.NewCheck(sub.Text, nil)
		check.SetChecked(sub.Completed)
		check.OnChanged = func(bool) { view.report(view.tasks.ToggleSubTask(id)) }
		remove := widget.NewButton("Remove", func() { view.report(view.tasks.RemoveSubTask(id)) })
		view.subTaskList.Add(container.NewBorder(nil, nil, nil, remove, check))
	}
	view.taskView.Show()
}

func (view *Window) submitDuration(text string) {
	if err := view.controller.SetDuration(text); err != nil {
		view.message.SetText("Enter the duration as MM or MM:SS")
		return
	}
	view.message.SetText("")
	view.duration.SetText("")
}

func (view *Window) submitTask(text string) {
	if _, err := view.tasks.SetTask(text); err != nil {
		return
	}
	view.taskEntry.SetText("")
}

func (view *Window) submitSubTask(text string) {
	if _, err := view.tasks.AddSubTask(text); err != nil {
		return
	}
	view.subEntry.SetText("")
}

func (view *Window) report(err error) {
	if err != nil {
		view.message.SetText(err.Error())
	}
}

// PhaseText is the caption under the countdown.
func PhaseText(phase clock.Phase) string {
	switch phase {
	case clock.PhaseRunning:
		return "Focusing"
	case clock.PhasePaused:
		return "Paused"
	case clock.PhaseFinished:
		return "Time's up!"
	default:
		return "Ready"
	}
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()
	} else {
		button.Disable()
	}
}
