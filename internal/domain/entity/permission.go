package entity

// PermissionType names a capability an embedded site may request.
type PermissionType string

const (
	PermissionMedia                   PermissionType = "media"
	PermissionGeolocation             PermissionType = "geolocation"
	PermissionNotifications           PermissionType = "notifications"
	PermissionFullscreen              PermissionType = "fullscreen"
	PermissionPointerLock             PermissionType = "pointerLock"
	PermissionClipboardRead           PermissionType = "clipboard-read"
	PermissionClipboardSanitizedWrite PermissionType = "clipboard-sanitized-write"
)

// PermissionDecision is the outcome of a permission check.
type PermissionDecision string

const (
	PermissionGranted PermissionDecision = "granted"
	PermissionDenied  PermissionDecision = "denied"
)

var allowedPermissions = map[PermissionType]struct{}{
	PermissionMedia:                   {},
	PermissionGeolocation:             {},
	PermissionNotifications:           {},
	PermissionFullscreen:              {},
	PermissionPointerLock:             {},
	PermissionClipboardRead:           {},
	PermissionClipboardSanitizedWrite: {},
}

// IsAllowed reports whether a permission is on the fixed allow-list.
// Anything not listed is denied.
func IsAllowed(name string) bool {
	_, ok := allowedPermissions[PermissionType(name)]
	return ok
}

// Decide maps a permission name to a decision.
func Decide(name string) PermissionDecision {
	if IsAllowed(name) {
		return PermissionGranted
	}
	return PermissionDenied
}

// AllowedPermissions returns the allow-list in a stable order.
func AllowedPermissions() []PermissionType {
	return []PermissionType{
		PermissionMedia,
		PermissionGeolocation,
		PermissionNotifications,
		PermissionFullscreen,
		PermissionPointerLock,
		PermissionClipboardRead,
		PermissionClipboardSanitizedWrite,
	}
}
