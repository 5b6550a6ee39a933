package game

import (
	"log"
	"math/rand/v2"
	"time"

	"github.com/devbyte-game/devbyte/internal/domain"
)

// ─── Default Collaborators ──────────────────────────────────────────────────

// RealClock reads the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

// SystemRand draws from the shared math/rand/v2 source.
type SystemRand struct{}

// Float64 returns a uniform value in [0, 1).
func (SystemRand) Float64() float64 { return rand.Float64() }

// NopNotifier discards all notifications. The core is required to work
// correctly with this sink installed.
type NopNotifier struct{}

// Notify does nothing.
func (NopNotifier) Notify(title, message string) {}

// LogNotifier writes notifications to the process log. Used by the CLI
// when no host shell is attached.
type LogNotifier struct{}

// Notify logs the notification.
func (LogNotifier) Notify(title, message string) {
	log.Printf("[notify] %s: %s", title, message)
}

// ─── Host Shell Bridge ──────────────────────────────────────────────────────

// ShellNotifier routes notifications through an optional host shell,
// degrading to a fallback notifier when the shell is absent or fails.
// A throwing shell must never surface past this boundary.
type ShellNotifier struct {
	Shell    domain.HostShell // may be nil
	Fallback domain.Notifier  // used when Shell is nil or panics
}

// NewShellNotifier wires a shell with a log fallback and signals readiness
// when a shell is present.
func NewShellNotifier(shell domain.HostShell) *ShellNotifier {
	n := &ShellNotifier{Shell: shell, Fallback: LogNotifier{}}
	if shell != nil {
		func() {
			defer func() { recover() }()
			shell.Ready()
		}()
	}
	return n
}

// Notify shows a native popup when possible, otherwise falls back.
func (n *ShellNotifier) Notify(title, message string) {
	if n.Shell != nil {
		ok := func() (ok bool) {
			defer func() {
				if r := recover(); r != nil {
					ok = false
				}
			}()
			n.Shell.ShowPopup(title, message)
			return true
		}()
		if ok {
			return
		}
	}
	if n.Fallback != nil {
		n.Fallback.Notify(title, message)
	}
}
