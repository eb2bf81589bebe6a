package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"zentimer/internal/core/clock"
	"zentimer/internal/core/model"
)

// Callbacks defines preferences window action handlers.
type Callbacks struct {
	OnSave              func(Settings)
	OnRequestPermission func()
}

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	settings   Settings
	permission model.Permission
	callbacks  Callbacks

	enabled    *widget.Check
	request    *widget.Button
	status     *widget.Label
	frequency  *widget.Entry
	template   *widget.Entry
	duration   *widget.Entry
	volume     *widget.Slider
	idleCheck  *widget.Check
	errorLabel *widget.Label
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, callbacks Callbacks) *Window {
	window := app.NewWindow("ZenTimer Settings")

	prefs := &Window{
		window:     window,
		permission: model.PermissionDefault,
		callbacks:  callbacks,
		enabled:    widget.NewCheck("Enable focus reminders", nil),
		status:     widget.NewLabel(""),
		frequency:  widget.NewEntry(),
		template:   widget.NewEntry(),
		duration:   widget.NewEntry(),
		volume:     widget.NewSlider(0, 1),
		idleCheck:  widget.NewCheck("Pause when I step away", nil),
		errorLabel: widget.NewLabel(""),
	}
	prefs.request = widget.NewButton("Request permission", func() {
		if prefs.callbacks.OnRequestPermission != nil {
			prefs.callbacks.OnRequestPermission()
		}
	})
	prefs.template.SetPlaceHolder(model.DefaultMessageTemplate)
	prefs.duration.SetPlaceHolder("MM or MM:SS")
	prefs.volume.Step = 0.05
	prefs.errorLabel.Importance = widget.DangerImportance

	form := container.NewVBox(
		widget.NewLabelWithStyle("Notifications", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.status,
		prefs.enabled,
		prefs.request,
		container.NewHBox(widget.NewLabel("Remind me every"), prefs.frequency, widget.NewLabel("min (1-60)")),
		widget.NewLabel("Message ({{task}} is replaced by your task)"),
		prefs.template,
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Default duration"), prefs.duration),
		widget.NewLabel("Alarm volume"),
		prefs.volume,
		prefs.idleCheck,
		prefs.errorLabel,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 480))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.enabled.SetChecked(settings.NotificationsEnabled)
	prefs.frequency.SetText(strconv.Itoa(settings.FrequencyMinutes))
	prefs.template.SetText(settings.MessageTemplate)
	prefs.duration.SetText(clock.FormatTime(int(settings.InitialDuration / time.Second)))
	prefs.volume.SetValue(settings.SoundVolume)
	prefs.idleCheck.SetChecked(settings.IdleEnabled)
	prefs.errorLabel.SetText("")
	prefs.refreshPermission()
}

// SetPermission shows the enable toggle once permission is granted and the
// request button otherwise.
func (prefs *Window) SetPermission(permission model.Permission) {
	prefs.permission = permission
	prefs.refreshPermission()
}

func (prefs *Window) refreshPermission() {
	switch prefs.permission {
	case model.PermissionGranted:
		prefs.status.SetText("Desktop notifications are allowed.")
		prefs.enabled.Show()
		prefs.request.Hide()
	case model.PermissionDenied:
		prefs.status.SetText("Desktop notifications are unavailable.")
		prefs.enabled.Hide()
		prefs.request.Show()
	default:
		prefs.status.SetText("Allow desktop notifications to get focus reminders.")
		prefs.enabled.Hide()
		prefs.request.Show()
	}
}

func (prefs *Window) handleSave() {
	settings, err := prefs.collect()
	if err != nil {
		prefs.errorLabel.SetText(err.Error())
		return
	}
	prefs.errorLabel.SetText("")
	prefs.settings = settings
	if prefs.callbacks.OnSave != nil {
		prefs.callbacks.OnSave(settings)
	}
	prefs.window.Hide()
}

func (prefs *Window) collect() (Settings, error) {
	settings := prefs.settings

	minutes, ok := parsePositiveInt(prefs.frequency.Text)
	if !ok {
		return settings, fmt.Errorf("reminder frequency must be a whole number of minutes")
	}
	seconds, ok := clock.ParseDuration(prefs.duration.Text)
	if !ok {
		return settings, fmt.Errorf("default duration must be MM or MM:SS")
	}

	template := prefs.template.Text
	if template == "" {
		template = model.DefaultMessageTemplate
	}
	// An unanswered permission request keeps the saved choice.
	enabled := settings.NotificationsEnabled
	if prefs.permission != model.PermissionDefault {
		enabled = prefs.enabled.Checked && prefs.permission == model.PermissionGranted
	}
	settings = settings.WithNotificationConfig(model.NotificationConfig{
		Enabled:          enabled,
		FrequencyMinutes: minutes,
		MessageTemplate:  template,
	})
	settings.InitialDuration = time.Duration(seconds) * time.Second
	settings.SoundVolume = prefs.volume.Value
	settings.IdleEnabled = prefs.idleCheck.Checked
	return settings, nil
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
