package platform

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"

	"zentimer/internal/core/model"
)

const (
	notificationsService   = "org.freedesktop.Notifications"
	notificationsPath      = "/org/freedesktop/Notifications"
	notificationsInterface = "org.freedesktop.Notifications"

	urgencyNormal   byte = 1
	urgencyCritical byte = 2

	expireDefault int32 = -1
	expireNever   int32 = 0
)

// ErrNotifierUnavailable is returned when notifications are sent without permission.
var ErrNotifierUnavailable = errors.New("notifier unavailable")

// DBusNotifier sends freedesktop notifications over the session bus.
// mu guards state only; bus calls run without it.
type DBusNotifier struct {
	// requestMu serializes permission requests.
	requestMu  sync.Mutex
	mu         sync.Mutex
	appName    string
	icon       string
	conn       *dbus.Conn
	closed     bool
	permission model.Permission
	connect    func() (*dbus.Conn, error)
	probe      func(ctx context.Context, conn *dbus.Conn) error
}

// NewDBusNotifier returns a notifier in the default permission state.
// Nothing is dialled until RequestPermission.
func NewDBusNotifier(appName, icon string) *DBusNotifier {
	return &DBusNotifier{
		appName:    appName,
		icon:       icon,
		permission: model.PermissionDefault,
		connect:    func() (*dbus.Conn, error) { return dbus.ConnectSessionBus() },
		probe:      queryServerInformation,
	}
}

// Permission reports the last probe result.
func (notifier *DBusNotifier) Permission() model.Permission {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return notifier.permission
}

// RequestPermission connects to the session bus and checks that a
// notification server answers.
func (notifier *DBusNotifier) RequestPermission(ctx context.Context) (model.Permission, error) {
	notifier.requestMu.Lock()
	defer notifier.requestMu.Unlock()

	notifier.mu.Lock()
	conn, closed := notifier.conn, notifier.closed
	notifier.mu.Unlock()
	if closed {
		return model.PermissionDenied, ErrNotifierUnavailable
	}

	if conn == nil {
		dialled, err := notifier.connect()
		if err != nil {
			notifier.setPermission(model.PermissionDenied)
			return model.PermissionDenied, fmt.Errorf("connect session bus: %w", err)
		}
		notifier.mu.Lock()
		if notifier.closed {
			notifier.mu.Unlock()
			_ = dialled.Close()
			return model.PermissionDenied, ErrNotifierUnavailable
		}
		notifier.conn = dialled
		notifier.mu.Unlock()
		conn = dialled
	}

	if err := notifier.probe(ctx, conn); err != nil {
		notifier.setPermission(model.PermissionDenied)
		return model.PermissionDenied, fmt.Errorf("query notification server: %w", err)
	}
	notifier.setPermission(model.PermissionGranted)
	return model.PermissionGranted, nil
}

// Notify shows a notification. Persistent ones are critical and never expire.
func (notifier *DBusNotifier) Notify(ctx context.Context, notification model.Notification) error {
	notifier.mu.Lock()
	conn, permission := notifier.conn, notifier.permission
	notifier.mu.Unlock()
	if conn == nil || permission != model.PermissionGranted {
		return ErrNotifierUnavailable
	}

	urgency, expire := urgencyNormal, expireDefault
	if notification.Persistent {
		urgency, expire = urgencyCritical, expireNever
	}
	hints := map[string]dbus.Variant{"urgency": dbus.MakeVariant(urgency)}

	var id uint32
	call := notificationsObject(conn).CallWithContext(ctx, notificationsInterface+".Notify", 0,
		notifier.appName, uint32(0), notifier.icon, notification.Title, notification.Body,
		[]string{}, hints, expire)
	if err := call.Store(&id); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

// Close releases the bus connection.
func (notifier *DBusNotifier) Close() error {
	notifier.mu.Lock()
	conn := notifier.conn
	notifier.conn = nil
	notifier.closed = true
	notifier.mu.Unlock()
	if conn == nil {
		return nil
	}
	return conn.Close()
}

func (notifier *DBusNotifier) setPermission(permission model.Permission) {
	notifier.mu.Lock()
	notifier.permission = permission
	notifier.mu.Unlock()
}

func queryServerInformation(ctx context.Context, conn *dbus.Conn) error {
	var name, vendor, version, protocolVersion string
	call := notificationsObject(conn).CallWithContext(ctx, notificationsInterface+".GetServerInformation", 0)
	return call.Store(&name, &vendor, &version, &protocolVersion)
}

func notificationsObject(conn *dbus.Conn) dbus.BusObject {
	return conn.Object(notificationsService, dbus.ObjectPath(notificationsPath))
}
