package timer

import (
	"fyne.io/fyne/v2"
	"fyne.io/systray"
)

// TitleSink mirrors the title ticker onto the window title and the tray tooltip.
type TitleSink struct {
	window fyne.Window
	tray   bool
}

// NewTitleSink writes to window, and to the tray tooltip when tray is true.
func NewTitleSink(window fyne.Window, tray bool) *TitleSink {
	return &TitleSink{window: window, tray: tray}
}

// SetTitle implements the title sink port. It is safe from any goroutine.
func (sink *TitleSink) SetTitle(title string) {
	fyne.Do(func() {
		sink.window.SetTitle(title)
	})
	if sink.tray {
		systray.SetTooltip(title)
	}
}
