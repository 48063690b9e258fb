// Package engine runs the background refresh loop. It owns the shared store,
// decides when to re-fetch, orchestrates the primary/fallback sources, keeps
// the raw document cache and the preferences file current, and fires
// notification triggers after successful updates.
package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/phuslu/log"

	"voidwatch/internal/config"
	"voidwatch/internal/nodes"
	"voidwatch/internal/notify"
	"voidwatch/internal/parse"
	"voidwatch/internal/prefs"
	"voidwatch/internal/state"
	"voidwatch/internal/tenno"
)

// Cached raw documents inside the data directory.
const (
	worldStateFile = "world_state.json"
	fissureFile    = "fissure.json"
	cetusFile      = "cetus.json"
	invasionFile   = "invasion.json"
)

const defaultTick = 500 * time.Millisecond

// signal is a completion message from a load attempt back to the loop.
type signal int

const (
	sigInitialized signal = iota + 1
	sigUpdated
	sigFailed
)

// Fetcher is the blocking HTTP collaborator.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Options wire an Engine. Store, Fetcher and Nodes are required; the rest
// default sensibly.
type Options struct {
	Store    *state.Store
	Fetcher  Fetcher
	Nodes    *nodes.Index
	Notifier notify.Notifier
	Config   config.Config
	Logger   *log.Logger
	Now      func() time.Time
	Tick     time.Duration
}

// Engine is the refresh scheduler. One goroutine runs the loop; each refresh
// attempt gets its own short-lived goroutine so the loop never blocks on
// network I/O. The loop is the sole consumer of the signal inbox, which
// keeps updates and trigger evaluation naturally serialized.
type Engine struct {
	store    *state.Store
	fetcher  Fetcher
	notifier notify.Notifier
	cfg      config.Config
	logger   *log.Logger
	now      func() time.Time
	tick     time.Duration

	worldState   *parse.WorldState
	warframeStat *parse.WarframeStat

	inbox chan signal

	// Loop-local latches, touched only by the loop goroutine.
	initialized bool
	updating    bool
}

// New builds an Engine from the options.
func New(opts Options) *Engine {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Tick <= 0 {
		opts.Tick = defaultTick
	}
	if opts.Logger == nil {
		opts.Logger = &log.DefaultLogger
	}
	if opts.Notifier == nil {
		opts.Notifier = &notify.LogNotifier{Log: opts.Logger}
	}
	return &Engine{
		store:        opts.Store,
		fetcher:      opts.Fetcher,
		notifier:     opts.Notifier,
		cfg:          opts.Config,
		logger:       opts.Logger,
		now:          opts.Now,
		tick:         opts.Tick,
		worldState:   parse.NewWorldState(opts.Nodes),
		warframeStat: parse.NewWarframeStat(opts.Nodes),
		inbox:        make(chan signal, 8),
	}
}

// Start launches the loop. It returns immediately; the loop runs until the
// context is cancelled.
func (e *Engine) Start(ctx context.Context) {
	go e.run(ctx)
}

func (e *Engine) run(ctx context.Context) {
	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	for {
		e.drainInbox()

		if !e.initialized {
			e.bootstrap(ctx)
		} else if !e.updating && e.store.Prefs().CanUpdate(e.now()) {
			e.updating = true
			go e.refresh(ctx)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// drainInbox handles every pending completion signal without blocking.
func (e *Engine) drainInbox() {
	for {
		select {
		case sig := <-e.inbox:
			switch sig {
			case sigInitialized:
				e.initialized = true
				e.store.SetInitialized()
				e.logger.Info().Msg("initial data loaded")
			case sigUpdated:
				e.updating = false
				p := e.store.UpdatePrefs(func(p *prefs.Prefs) {
					p.LastUpdate = e.now().Unix()
				})
				if err := prefs.Save(e.cfg.PrefsPath, p); err != nil {
					e.logger.Error().Err(err).Msg("persist prefs after update")
				}
				e.evaluateTriggers()
			case sigFailed:
				e.updating = false
			}
		default:
			return
		}
	}
}

// bootstrap performs the one-time initial load. It runs once per tick until
// it succeeds: ensure the data directory, seed the primary cache when
// missing, then parse whichever cached source is freshest.
func (e *Engine) bootstrap(ctx context.Context) {
	if err := os.MkdirAll(e.cfg.DataDir, 0o755); err != nil {
		e.logger.Error().Err(err).Str("dir", e.cfg.DataDir).Msg("create data directory")
		return
	}

	wsPath := filepath.Join(e.cfg.DataDir, worldStateFile)
	if _, err := os.Stat(wsPath); errors.Is(err, os.ErrNotExist) {
		body, err := e.fetcher.Fetch(ctx, e.cfg.PrimaryURL)
		if err != nil {
			e.logger.Warn().Err(err).Msg("seed fetch from primary failed")
			e.store.SetError(err)
			return
		}
		if err := os.WriteFile(wsPath, body, 0o644); err != nil {
			e.logger.Error().Err(err).Msg("write world state cache")
			return
		}
		e.store.UpdatePrefs(func(p *prefs.Prefs) {
			p.LastUpdate = e.now().Unix()
		})
	}

	if e.fallbackCachesFresher(wsPath) {
		e.bootstrapFromFallbackCaches()
	} else {
		e.bootstrapFromWorldState(wsPath)
	}
}

// fallbackCachesFresher reports whether all three fallback cache files exist
// and are newer than the primary cache.
func (e *Engine) fallbackCachesFresher(wsPath string) bool {
	wsInfo, err := os.Stat(wsPath)
	if err != nil {
		return false
	}
	fissureInfo, err := os.Stat(filepath.Join(e.cfg.DataDir, fissureFile))
	if err != nil {
		return false
	}
	for _, name := range []string{cetusFile, invasionFile} {
		if _, err := os.Stat(filepath.Join(e.cfg.DataDir, name)); err != nil {
			return false
		}
	}
	return fissureInfo.ModTime().After(wsInfo.ModTime())
}

func (e *Engine) bootstrapFromWorldState(wsPath string) {
	body, err := os.ReadFile(wsPath)
	if err != nil {
		e.logger.Error().Err(err).Msg("read world state cache")
		return
	}

	fissures, cetus, invasions, err := e.parseWorldState(body)
	if err != nil {
		// Evict the unusable cache so the next tick re-seeds it.
		e.logger.Error().Err(err).Msg("cached world state unusable, evicting")
		_ = os.Remove(wsPath)
		e.store.SetError(err)
		return
	}

	e.store.ReplaceAll(fissures, cetus, invasions)
	e.inbox <- sigInitialized
}

func (e *Engine) bootstrapFromFallbackCaches() {
	load := func(name string) ([]byte, error) {
		return os.ReadFile(filepath.Join(e.cfg.DataDir, name))
	}

	fissureData, err := load(fissureFile)
	if err != nil {
		e.logger.Error().Err(err).Msg("read fissure cache")
		return
	}
	cetusData, err := load(cetusFile)
	if err != nil {
		e.logger.Error().Err(err).Msg("read cetus cache")
		return
	}
	invasionData, err := load(invasionFile)
	if err != nil {
		e.logger.Error().Err(err).Msg("read invasion cache")
		return
	}

	fissures, err := e.warframeStat.ParseFissures(fissureData)
	if err != nil {
		e.evictFallbackCache(fissureFile, err)
		return
	}
	cetus, err := e.warframeStat.ParseCetusCycle(cetusData)
	if err != nil {
		e.evictFallbackCache(cetusFile, err)
		return
	}
	invasions, err := e.warframeStat.ParseInvasions(invasionData)
	if err != nil {
		e.evictFallbackCache(invasionFile, err)
		return
	}

	e.store.ReplaceAll(fissures, cetus, invasions)
	e.inbox <- sigInitialized
}

// evictFallbackCache removes an unusable cache file; with it gone the next
// bootstrap pass falls back to the primary cached document.
func (e *Engine) evictFallbackCache(name string, err error) {
	e.logger.Error().Err(err).Str("file", name).Msg("cached fallback document unusable, evicting")
	_ = os.Remove(filepath.Join(e.cfg.DataDir, name))
	e.store.SetError(err)
}

// refresh is one asynchronous update attempt: primary first, fallback
// endpoints when the primary is unreachable.
func (e *Engine) refresh(ctx context.Context) {
	body, err := e.fetcher.Fetch(ctx, e.cfg.PrimaryURL)
	if err != nil {
		e.logger.Warn().Err(err).Msg("primary fetch failed, using fallback source")
		e.refreshFromFallback(ctx)
		return
	}
	e.refreshFromPrimary(body)
}

func (e *Engine) refreshFromPrimary(body []byte) {
	e.cache(worldStateFile, body)

	fissures, cetus, invasions, err := e.parseWorldState(body)
	if err != nil {
		e.fail(err)
		return
	}

	e.store.ReplaceAll(fissures, cetus, invasions)
	e.inbox <- sigUpdated
}

// refreshFromFallback runs the three per-entity fetches concurrently. Each
// success independently replaces its entity list and signals an update;
// each failure is logged and skipped. Partial success is a valid outcome.
func (e *Engine) refreshFromFallback(ctx context.Context) {
	var updated atomic.Bool
	var wg sync.WaitGroup

	attempt := func(url, cacheName string, apply func([]byte) error) {
		defer wg.Done()
		body, err := e.fetcher.Fetch(ctx, url)
		if err != nil {
			e.logger.Warn().Err(err).Str("url", url).Msg("fallback fetch failed")
			return
		}
		if err := apply(body); err != nil {
			e.logger.Warn().Err(err).Str("url", url).Msg("fallback parse failed")
			return
		}
		e.cache(cacheName, body)
		updated.Store(true)
		e.inbox <- sigUpdated
	}

	wg.Add(3)
	go attempt(e.cfg.FissuresURL(), fissureFile, func(body []byte) error {
		fissures, err := e.warframeStat.ParseFissures(body)
		if err != nil {
			return err
		}
		e.store.ReplaceFissures(fissures)
		return nil
	})
	go attempt(e.cfg.CetusCycleURL(), cetusFile, func(body []byte) error {
		cetus, err := e.warframeStat.ParseCetusCycle(body)
		if err != nil {
			return err
		}
		e.store.ReplaceCetus(cetus)
		return nil
	})
	go attempt(e.cfg.InvasionsURL(), invasionFile, func(body []byte) error {
		invasions, err := e.warframeStat.ParseInvasions(body)
		if err != nil {
			return err
		}
		e.store.ReplaceInvasions(invasions)
		return nil
	})
	wg.Wait()

	if !updated.Load() {
		e.fail(errors.New("all fallback fetches failed"))
	}
}

func (e *Engine) parseWorldState(body []byte) ([]tenno.Fissure, tenno.CetusCycle, []tenno.Invasion, error) {
	fissures, err := e.worldState.ParseFissures(body)
	if err != nil {
		return nil, tenno.CetusCycle{}, nil, err
	}
	cetus, err := e.worldState.ParseCetusCycle(body)
	if err != nil {
		return nil, tenno.CetusCycle{}, nil, err
	}
	invasions, err := e.worldState.ParseInvasions(body)
	if err != nil {
		return nil, tenno.CetusCycle{}, nil, err
	}
	return fissures, cetus, invasions, nil
}

// fail ends a refresh attempt without an update: the error is recorded for
// the snapshot and the updating latch is released so the next eligible tick
// can try again.
func (e *Engine) fail(err error) {
	e.logger.Error().Err(err).Msg("refresh attempt failed")
	e.store.SetError(err)
	e.inbox <- sigFailed
}

// cache writes a raw document to the data directory. Best effort: a failed
// write costs only the next bootstrap, never the current update.
func (e *Engine) cache(name string, body []byte) {
	path := filepath.Join(e.cfg.DataDir, name)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		e.logger.Warn().Err(err).Str("file", name).Msg("write cache file")
	}
}

// SetNotificationPrefs merges the two presentation-layer toggles into the
// preferences and persists immediately.
func (e *Engine) SetNotificationPrefs(voidCapture, epicInvasion bool) error {
	p := e.store.UpdatePrefs(func(p *prefs.Prefs) {
		p.NotifyVoidCapture = voidCapture
		p.NotifyEpicInvasion = epicInvasion
	})
	return prefs.Save(e.cfg.PrefsPath, p)
}

// TestNotification plays the notification sound directly, bypassing the
// trigger predicates and dedup history.
func (e *Engine) TestNotification() {
	e.notifier.Play()
}
