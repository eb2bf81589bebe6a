package platform

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"testing"
)

func TestTerminalTitleWritesOSC(t *testing.T) {
	var buf bytes.Buffer
	terminal := NewTerminalTitle(&buf)

	terminal.SetTitle("⏳ 25:00")

	if got := buf.String(); !strings.Contains(got, "2;⏳ 25:00") {
		t.Fatalf("expected window title sequence, got %q", got)
	}
}

func TestStyledKeepsText(t *testing.T) {
	terminal := NewTerminalTitle(&bytes.Buffer{})
	if got := terminal.Styled("25:00", "#ff6363"); !strings.Contains(got, "25:00") {
		t.Fatalf("styled text lost its content: %q", got)
	}
}

// chunkWriter records every Write call separately.
type chunkWriter struct {
	mu     sync.Mutex
	chunks []string
}

func (writer *chunkWriter) Write(p []byte) (int, error) {
	writer.mu.Lock()
	writer.chunks = append(writer.chunks, string(p))
	writer.mu.Unlock()
	return len(p), nil
}

func TestTerminalTitleSharesWriterWithStatusLines(t *testing.T) {
	writer := &chunkWriter{}
	terminal := NewTerminalTitle(writer)
	const rounds = 200
	line := "\r\x1b[K12:34  running  🎯 Write report"

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			terminal.SetTitle("⏳ 12:34")
		}
	}()
	for i := 0; i < rounds; i++ {
		if _, err := fmt.Fprint(terminal, line); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	wg.Wait()

	titleSequence := regexp.MustCompile("\x1b\\]2;[^\x07\x1b]*(\x07|\x1b\\\\)")
	rest := titleSequence.ReplaceAllString(strings.Join(writer.chunks, ""), "")
	if rest != strings.Repeat(line, rounds) {
		t.Fatalf("status lines were split by title updates")
	}
}
