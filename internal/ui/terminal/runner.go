// Package terminal runs the timer without windows, driven by line commands on stdin.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"zentimer/internal/core/clock"
	"zentimer/internal/core/model"
	"zentimer/internal/logging"
)

const clearLine = "\r\x1b[K"

// Controller is the timer command surface.
type Controller interface {
	Snapshot() clock.Snapshot
	Subscribe(buffer int) <-chan clock.Event
	Toggle()
	Reset()
	AddMinutes(minutes int) bool
	SetDuration(text string) error
}

// TaskStore manages the focus task.
type TaskStore interface {
	Name() string
	SetTask(text string) (model.Task, error)
	Clear()
}

// Styler colors text for the terminal.
type Styler interface {
	Styled(text, hexColor string) string
}

// Runner renders status lines and executes commands.
type Runner struct {
	controller Controller
	tasks      TaskStore
	styler     Styler
	in         io.Reader
	out        io.Writer
	logger     logging.Logger
}

// New creates a runner reading commands from in and writing to out. When a
// title sink shares the terminal, out should be that sink so writes stay whole.
func New(controller Controller, tasks TaskStore, styler Styler, in io.Reader, out io.Writer, logger logging.Logger) *Runner {
	return &Runner{
		controller: controller,
		tasks:      tasks,
		styler:     styler,
		in:         in,
		out:        out,
		logger:     logger,
	}
}

// Run blocks until ctx is done, the user quits or the engine closes.
func (runner *Runner) Run(ctx context.Context) error {
	events := runner.controller.Subscribe(16)
	commands := make(chan string)
	go runner.readCommands(commands)

	runner.printHelp()
	runner.render(runner.controller.Snapshot())

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(runner.out)
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			runner.render(event.Snapshot)
			if event.Kind == clock.EventFinish {
				fmt.Fprintln(runner.out)
				fmt.Fprintln(runner.out, runner.styler.Styled("Time's up!", "#ffc440"))
			}
		case line, ok := <-commands:
			if !ok {
				// stdin closed; keep counting until cancelled.
				commands = nil
				continue
			}
			if runner.Execute(line) {
				fmt.Fprintln(runner.out)
				return nil
			}
		}
	}
}

// Execute runs one command line. It reports whether the user asked to quit.
func (runner *Runner) Execute(line string) bool {
	command, argument, _ := strings.Cut(strings.TrimSpace(line), " ")
	argument = strings.TrimSpace(argument)

	switch strings.ToLower(command) {
	case "", "s", "start", "p", "pause":
		runner.controller.Toggle()
	case "r", "reset":
		runner.controller.Reset()
	case "+":
		runner.adjust(1)
	case "-":
		runner.adjust(-1)
	case "d", "duration":
		if err := runner.controller.SetDuration(argument); err != nil {
			runner.say("Enter the duration as MM or MM:SS")
		}
	case "t", "task":
		if argument == "" {
			runner.tasks.Clear()
			runner.say("Task cleared")
			return false
		}
		if _, err := runner.tasks.SetTask(argument); err != nil {
			runner.say("Task text must not be blank")
			return false
		}
		runner.say("Focusing on: " + argument)
	case "h", "help", "?":
		runner.printHelp()
	case "q", "quit", "exit":
		return true
	default:
		runner.say(fmt.Sprintf("Unknown command %q, type h for help", command))
	}
	return false
}

func (runner *Runner) adjust(minutes int) {
	if !runner.controller.AddMinutes(minutes) {
		runner.say("Pause the timer to change its time")
		return
	}
	runner.render(runner.controller.Snapshot())
}

func (runner *Runner) readCommands(commands chan<- string) {
	defer close(commands)
	scanner := bufio.NewScanner(runner.in)
	for scanner.Scan() {
		commands <- scanner.Text()
	}
	if err := scanner.Err(); err != nil {
		runner.logger.Warn("read commands", "error", err)
	}
}

func (runner *Runner) render(snapshot clock.Snapshot) {
	fmt.Fprint(runner.out, clearLine+StatusLine(snapshot, runner.tasks.Name(), runner.styler))
}

func (runner *Runner) say(message string) {
	fmt.Fprintln(runner.out, clearLine+message)
}

func (runner *Runner) printHelp() {
	fmt.Fprintln(runner.out, clearLine+"Enter: start/pause  r: reset  +/-: one minute  d MM:SS: duration  t TEXT: task  q: quit")
}

// StatusLine renders the countdown, the phase and the task.
func StatusLine(snapshot clock.Snapshot, taskName string, styler Styler) string {
	color := "#c8c8c8"
	switch {
	case snapshot.Finished:
		color = "#ffc440"
	case snapshot.Active:
		color = "#ff6363"
	}
	line := styler.Styled(clock.FormatTime(snapshot.Remaining), color) + "  " + string(snapshot.Phase)
	if taskName != "" {
		line += "  🎯 " + taskName
	}
	return line
}
