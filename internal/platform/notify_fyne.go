package platform

import (
	"context"
	"sync"

	"fyne.io/fyne/v2"

	"zentimer/internal/core/model"
)

// FyneNotifier sends notifications through the fyne app. fyne has no
// permission model, so requesting always grants.
type FyneNotifier struct {
	mu         sync.Mutex
	app        fyne.App
	permission model.Permission
}

// NewFyneNotifier wraps app.
func NewFyneNotifier(app fyne.App) *FyneNotifier {
	return &FyneNotifier{app: app, permission: model.PermissionDefault}
}

// Permission implements the notifier port.
func (notifier *FyneNotifier) Permission() model.Permission {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return notifier.permission
}

// RequestPermission implements the notifier port.
func (notifier *FyneNotifier) RequestPermission(context.Context) (model.Permission, error) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.permission = model.PermissionGranted
	return notifier.permission, nil
}

// Notify implements the notifier port. Persistence is not supported by fyne.
func (notifier *FyneNotifier) Notify(_ context.Context, notification model.Notification) error {
	if notifier.Permission() != model.PermissionGranted {
		return ErrNotifierUnavailable
	}
	fyne.Do(func() {
		notifier.app.SendNotification(fyne.NewNotification(notification.Title, notification.Body))
	})
	return nil
}
