// Package notification sends desktop notifications through beeep.
// Notifications are opt-in (notifications: true in the config) and only
// mirror failures that are already reported on the terminal.
package notification

import (
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/zhubert/hopper/internal/logger"
)

// Title is the notification title used by Failure.
const Title = "hopper"

// NotifyFunc matches beeep.Notify.
type NotifyFunc func(title, message string, icon any) error

var (
	mu     sync.Mutex
	notify NotifyFunc = beeep.Notify
)

// SetNotifier replaces the function used to deliver notifications. Tests use it
// to avoid real desktop notifications.
func SetNotifier(fn NotifyFunc) {
	mu.Lock()
	defer mu.Unlock()
	notify = fn
}

// ResetNotifier restores beeep.Notify.
func ResetNotifier() {
	SetNotifier(beeep.Notify)
}

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	mu.Lock()
	fn := notify
	mu.Unlock()

	log := logger.ComponentLogger("notification")
	log.Debug("sending notification", "title", title, "message", message)
	// Empty icon: beeep picks the platform default
	if err := fn(title, message, ""); err != nil {
		log.Warn("notification failed", "error", err)
		return err
	}
	return nil
}

// Failure notifies about a failed action when enabled is true.
func Failure(enabled bool, message string) error {
	if !enabled || message == "" {
		return nil
	}
	return Send(Title, message)
}
