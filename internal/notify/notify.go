// Package notify defines the notification-sound collaborator. The engine
// only knows the interface; actual audio output lives behind it.
package notify

import "github.com/phuslu/log"

// Notifier plays the notification sound. Play blocks for the duration of
// playback (around a second) so the caller outlives it.
type Notifier interface {
	Play()
}

// LogNotifier is the default backend: it records the event instead of
// producing sound, for environments without an audio device.
type LogNotifier struct {
	Log *log.Logger
}

func (n *LogNotifier) Play() {
	if n.Log != nil {
		n.Log.Info().Msg("notification")
	}
}

// Func adapts a plain function to the Notifier interface.
type Func func()

func (f Func) Play() { f() }
