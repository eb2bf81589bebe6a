package platform

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	mutterIdleService = "org.gnome.Mutter.IdleMonitor"
	mutterIdlePath    = "/org/gnome/Mutter/IdleMonitor/Core"
	mutterIdleMethod  = "org.gnome.Mutter.IdleMonitor.GetIdletime"
)

// xprintidleProvider covers X11 sessions.
type xprintidleProvider struct {
	path string
}

// mutterIdleProvider covers GNOME sessions, Wayland included.
type mutterIdleProvider struct {
	conn *dbus.Conn
}

type unsupportedIdleProvider struct{}

func newIdleProvider() IdleProvider {
	if path, err := exec.LookPath("xprintidle"); err == nil {
		return &xprintidleProvider{path: path}
	}
	conn, err := dbus.SessionBus()
	if err != nil {
		return unsupportedIdleProvider{}
	}
	provider := &mutterIdleProvider{conn: conn}
	if _, err := provider.IdleDuration(); err != nil {
		return unsupportedIdleProvider{}
	}
	return provider
}

func (provider *xprintidleProvider) IdleDuration() (time.Duration, error) {
	output, err := exec.Command(provider.path).Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	return parseIdleMillis(string(output))
}

func (provider *mutterIdleProvider) IdleDuration() (time.Duration, error) {
	var idleMillis uint64
	object := provider.conn.Object(mutterIdleService, dbus.ObjectPath(mutterIdlePath))
	if err := object.Call(mutterIdleMethod, 0).Store(&idleMillis); err != nil {
		return 0, fmt.Errorf("query mutter idle monitor: %w", err)
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}

func (unsupportedIdleProvider) IdleDuration() (time.Duration, error) {
	return 0, ErrIdleUnsupported
}

func parseIdleMillis(value string) (time.Duration, error) {
	idleMillis, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds: %w", err)
	}
	if idleMillis < 0 {
		idleMillis = 0
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}
