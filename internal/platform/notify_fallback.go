package platform

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"zentimer/internal/core/model"
)

// Backend is a notifier that can be probed for permission.
type Backend interface {
	Permission() model.Permission
	RequestPermission(ctx context.Context) (model.Permission, error)
	Notify(ctx context.Context, notification model.Notification) error
}

// FallbackNotifier uses the first backend that grants permission.
// Probing runs outside mu so Permission never waits on a backend.
type FallbackNotifier struct {
	// requestMu serializes permission requests.
	requestMu sync.Mutex
	mu        sync.Mutex
	backends  []Backend
	active    Backend
	denied    bool
}

// NewFallbackNotifier tries backends in order. Nil entries are skipped.
func NewFallbackNotifier(backends ...Backend) *FallbackNotifier {
	notifier := &FallbackNotifier{}
	for _, backend := range backends {
		if backend != nil {
			notifier.backends = append(notifier.backends, backend)
		}
	}
	return notifier
}

// Permission implements the notifier port.
func (notifier *FallbackNotifier) Permission() model.Permission {
	notifier.mu.Lock()
	active, denied := notifier.active, notifier.denied
	notifier.mu.Unlock()
	switch {
	case active != nil:
		return active.Permission()
	case denied:
		return model.PermissionDenied
	default:
		return model.PermissionDefault
	}
}

// RequestPermission probes each backend until one grants.
func (notifier *FallbackNotifier) RequestPermission(ctx context.Context) (model.Permission, error) {
	notifier.requestMu.Lock()
	defer notifier.requestMu.Unlock()

	var errs []error
	for _, backend := range notifier.backends {
		permission, err := backend.RequestPermission(ctx)
		if err != nil {
			errs = append(errs, err)
		}
		if permission == model.PermissionGranted {
			notifier.publish(backend, false)
			return permission, nil
		}
	}
	notifier.publish(nil, true)
	if len(errs) > 0 {
		return model.PermissionDenied, fmt.Errorf("request notification permission: %w", errors.Join(errs...))
	}
	return model.PermissionDenied, nil
}

// Notify implements the notifier port.
func (notifier *FallbackNotifier) Notify(ctx context.Context, notification model.Notification) error {
	notifier.mu.Lock()
	active := notifier.active
	notifier.mu.Unlock()
	if active == nil {
		return ErrNotifierUnavailable
	}
	return active.Notify(ctx, notification)
}

func (notifier *FallbackNotifier) publish(active Backend, denied bool) {
	notifier.mu.Lock()
	notifier.active = active
	notifier.denied = denied
	notifier.mu.Unlock()
}
