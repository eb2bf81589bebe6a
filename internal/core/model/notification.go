package model

// Permission mirrors the three-state desktop notification permission.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionDenied  Permission = "denied"
	PermissionGranted Permission = "granted"
)

// Notification is a single desktop notification request.
type Notification struct {
	Title string
	Body  string
	// Persistent notifications stay on screen until the user dismisses them.
	Persistent bool
}
