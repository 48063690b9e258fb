package engine

import (
	"strings"
	"time"

	"voidwatch/internal/prefs"
	"voidwatch/internal/tenno"
)

// Void capture nodes worth interrupting the player for.
var captureNodes = map[string]struct{}{
	"Hepit (Void)": {},
	"Ukko (Void)":  {},
}

// Reward substrings that mark an invasion as worth a notification.
var epicRewards = []string{"forma", "reactor", "catalyst"}

// evaluateTriggers scans the current snapshot for notification-worthy
// entities, plays the sound for new ones, and records them so the same
// entity never notifies twice. Runs on the loop goroutine after each
// successful update.
func (e *Engine) evaluateTriggers() {
	snap := e.store.Snapshot()
	now := e.now()
	fired := false

	if snap.Prefs.NotifyVoidCapture {
		for _, f := range snap.Fissures {
			if !isVoidCapture(f, now) {
				continue
			}
			key := f.Activation.Unix()
			// Check the live record, not the snapshot copy: marks made
			// earlier in this same pass must suppress later entities
			// sharing the stamp.
			if e.store.Prefs().HasNotified(key) {
				continue
			}
			e.logger.Info().Str("node", f.Node.Value).Str("tier", f.Tier.String()).Msg("void capture fissure up")
			e.notifier.Play()
			e.store.UpdatePrefs(func(p *prefs.Prefs) {
				p.MarkNotified(key)
			})
			fired = true
		}
	}

	if snap.Prefs.NotifyEpicInvasion {
		for _, inv := range snap.Invasions {
			if !isEpicInvasion(inv) {
				continue
			}
			key := inv.Activation.Unix()
			if e.store.Prefs().HasNotified(key) {
				continue
			}
			e.logger.Info().Str("node", inv.Node.Value).Msg("epic invasion up")
			e.notifier.Play()
			e.store.UpdatePrefs(func(p *prefs.Prefs) {
				p.MarkNotified(key)
			})
			fired = true
		}
	}

	if fired {
		if err := prefs.Save(e.cfg.PrefsPath, e.store.Prefs()); err != nil {
			e.logger.Error().Err(err).Msg("persist notification history")
		}
	}
}

// isVoidCapture reports whether the fissure is a live, non-storm mission on
// one of the quick Void capture nodes.
func isVoidCapture(f tenno.Fissure, now time.Time) bool {
	if f.Storm || f.HasExpired(now) {
		return false
	}
	_, ok := captureNodes[f.Node.Value]
	return ok
}

// isEpicInvasion reports whether either side's reward set mentions one of
// the epic reward items.
func isEpicInvasion(inv tenno.Invasion) bool {
	rewards := strings.ToLower(inv.Rewards.All())
	for _, want := range epicRewards {
		if strings.Contains(rewards, want) {
			return true
		}
	}
	return false
}
