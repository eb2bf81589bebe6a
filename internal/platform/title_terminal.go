package platform

import (
	"io"
	"sync"

	"github.com/muesli/termenv"
)

// TerminalTitle writes titles to the terminal window via OSC escape codes.
// It is also the shared writer for everything else printed to that terminal,
// so status lines and title sequences never interleave.
type TerminalTitle struct {
	mu     sync.Mutex
	w      io.Writer
	output *termenv.Output
}

// NewTerminalTitle targets w, usually os.Stdout.
func NewTerminalTitle(w io.Writer) *TerminalTitle {
	return &TerminalTitle{w: w, output: termenv.NewOutput(w)}
}

// SetTitle implements the title sink port.
func (terminal *TerminalTitle) SetTitle(title string) {
	terminal.mu.Lock()
	defer terminal.mu.Unlock()
	terminal.output.SetWindowTitle(title)
}

// Write prints p in one piece between title updates.
func (terminal *TerminalTitle) Write(p []byte) (int, error) {
	terminal.mu.Lock()
	defer terminal.mu.Unlock()
	return terminal.w.Write(p)
}

// Styled renders text in the given hex color when the terminal supports it.
func (terminal *TerminalTitle) Styled(text, hexColor string) string {
	return terminal.output.String(text).Foreground(terminal.output.Color(hexColor)).String()
}
