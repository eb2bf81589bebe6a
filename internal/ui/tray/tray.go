package tray

import "fyne.io/fyne/v2"

const menuTitle = "ZenTimer"

// App is the part of desktop.App the tray needs.
type App interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnToggle      func()
	OnReset       func()
	OnShow        func()
	OnPreferences func()
	OnQuit        func()
}

// State is what the tray menu reflects.
type State struct {
	Status    string
	Running   bool
	CanReset  bool
	HasWindow bool
}

// Manager handles system tray state. Its methods must run on the fyne thread.
type Manager struct {
	app       App
	callbacks Callbacks
	state     State
}

// New creates a tray manager with the provided callbacks.
func New(app App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		state:     State{Status: "starting...", HasWindow: true},
	}
	manager.refreshMenu()
	return manager
}

// SetState updates the menu when anything visible changed.
func (manager *Manager) SetState(state State) {
	if state == manager.state {
		return
	}
	manager.state = state
	manager.refreshMenu()
}

// SetIcon changes the tray icon.
func (manager *Manager) SetIcon(icon fyne.Resource) {
	if manager.app != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

// Menu builds the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	status := fyne.NewMenuItem("Status: "+manager.state.Status, nil)
	status.Disabled = true

	toggleLabel := "Start"
	if manager.state.Running {
		toggleLabel = "Pause"
	}
	toggle := fyne.NewMenuItem(toggleLabel, call(manager.callbacks.OnToggle))

	reset := fyne.NewMenuItem("Reset", call(manager.callbacks.OnReset))
	reset.Disabled = !manager.state.CanReset

	items := []*fyne.MenuItem{status, fyne.NewMenuItemSeparator(), toggle, reset}
	if manager.state.HasWindow {
		items = append(items, fyne.NewMenuItem("Show", call(manager.callbacks.OnShow)))
	}
	items = append(items,
		fyne.NewMenuItem("Preferences", call(manager.callbacks.OnPreferences)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", call(manager.callbacks.OnQuit)),
	)
	return fyne.NewMenu(menuTitle, items...)
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}

func call(handler func()) func() {
	return func() {
		if handler != nil {
			handler()
		}
	}
}
