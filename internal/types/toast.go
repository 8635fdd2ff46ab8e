package types

import "time"

// Toast represents a notification message
type Toast struct {
	Level   ToastLevel
	Message string
	Expires time.Time
}

// ToastLevel indicates the severity of a toast
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// DefaultToastTTL is how long a toast stays on screen
const DefaultToastTTL = 4 * time.Second

// NewToast creates a toast that expires ttl after now
func NewToast(level ToastLevel, message string, now time.Time, ttl time.Duration) Toast {
	return Toast{Level: level, Message: message, Expires: now.Add(ttl)}
}

// Expired reports whether the toast should no longer be shown
func (t Toast) Expired(now time.Time) bool {
	return !now.Before(t.Expires)
}

// PruneToasts drops expired toasts, keeping order
func PruneToasts(toasts []Toast, now time.Time) []Toast {
	kept := toasts[:0]
	for _, t := range toasts {
		if !t.Expired(now) {
			kept = append(kept, t)
		}
	}
	return kept
}
