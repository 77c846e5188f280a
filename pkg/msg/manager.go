package msg

import (
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// GlobalGroup is the path of the root bundle. Every bundle without an
// explicit parent declaration falls back to it.
const GlobalGroup = "global"

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en"

// Reserved keys inside a group's raw data. They configure the bundle
// itself and are not regular message keys.
const (
	// parentKey names the explicit parent group path of a bundle.
	parentKey = "__parent"

	// behaviorKey names a registered alternate bundle behavior.
	behaviorKey = "__behavior"
)

// Manager resolves message groups into bundles and caches them per
// locale. Bundles are built at most once per group path and locale
// epoch; changing the locale or prefix installs a fresh epoch, so
// readers never observe a partially cleared cache. Bundles captured
// before the change keep serving their old data.
//
// Bundle never returns an error: when group resolution fails the
// returned bundle simply echoes keys, and the failure is logged.
type Manager struct {
	resolver  Resolver
	logger    *slog.Logger
	behaviors map[string]BundleFactory
	epoch     atomic.Pointer[epoch]
}

// epoch is one immutable locale+prefix generation of the bundle cache.
type epoch struct {
	locale  string
	prefix  string
	flight  singleflight.Group
	mu      sync.RWMutex
	bundles map[string]Bundle
}

func newEpoch(locale, prefix string) *epoch {
	return &epoch{
		locale:  locale,
		prefix:  prefix,
		bundles: make(map[string]Bundle),
	}
}

func (e *epoch) get(path string) Bundle {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.bundles[path]
}

// put inserts b unless the path is already cached, and returns the
// canonical instance either way. Losing a construction race is fine;
// identity within an epoch is what matters.
func (e *epoch) put(path string, b Bundle) Bundle {
	e.mu.Lock()
	defer e.mu.Unlock()
	if cur, ok := e.bundles[path]; ok {
		return cur
	}
	e.bundles[path] = b
	return b
}

// New creates a manager that resolves group data through resolver. The
// root bundle is resolved eagerly, mirroring the guarantee that it
// always exists.
func New(resolver Resolver, opts ...Option) *Manager {
	if resolver == nil {
		panic("msg: resolver is not provided")
	}
	m := &Manager{
		resolver:  resolver,
		logger:    noplog,
		behaviors: make(map[string]BundleFactory),
	}
	m.epoch.Store(newEpoch(DefaultLocale, ""))
	for _, opt := range opts {
		opt(m)
	}
	m.Bundle(GlobalGroup)
	return m
}

// Locale returns the active locale.
func (m *Manager) Locale() string { return m.epoch.Load().locale }

// Prefix returns the active group path prefix.
func (m *Manager) Prefix() string { return m.epoch.Load().prefix }

// SetLocale replaces the active locale and discards every cached
// bundle. When updateGlobal is true the root bundle is re-resolved
// immediately instead of on first use.
func (m *Manager) SetLocale(locale string, updateGlobal bool) {
	m.epoch.Store(newEpoch(locale, m.epoch.Load().prefix))
	if updateGlobal {
		m.Bundle(GlobalGroup)
	}
}

// SetPrefix replaces the group path prefix, discards every cached
// bundle and re-resolves the root bundle at the new location. A
// non-empty prefix is normalized to end with a dot.
func (m *Manager) SetPrefix(prefix string) {
	m.epoch.Store(newEpoch(m.epoch.Load().locale, normalizePrefix(prefix)))
	m.Bundle(GlobalGroup)
}

// Bundle returns the bundle for the given group path, building and
// caching it on first use. Within one locale epoch, repeated calls for
// the same path return the identical instance. Concurrent first-time
// requests for a path are deduplicated so the resolver runs once.
func (m *Manager) Bundle(path string) Bundle {
	ep := m.epoch.Load()
	if b := ep.get(path); b != nil {
		return b
	}
	v, _, _ := ep.flight.Do(path, func() (any, error) {
		return m.build(ep, path, make(map[string]bool)), nil
	})
	return v.(Bundle)
}

// build constructs the bundle for path inside ep, recursively building
// its parent chain. visiting tracks the paths currently under
// construction in this walk to keep cyclic parent declarations from
// recursing forever.
func (m *Manager) build(ep *epoch, path string, visiting map[string]bool) Bundle {
	if b := ep.get(path); b != nil {
		return b
	}

	visiting[path] = true
	defer delete(visiting, path)

	data := m.resolve(ep, path)
	bundle := m.instantiate(data)

	parentPath := ""
	if data != nil {
		parentPath = strings.TrimSpace(data[parentKey])
	}

	var parent Bundle
	switch {
	case parentPath == "":
		// Default to the root bundle, except for the root itself and
		// while the root is still under construction.
		if path != GlobalGroup && !visiting[GlobalGroup] {
			parent = m.build(ep, GlobalGroup, visiting)
		}
	case parentPath == path, visiting[parentPath]:
		m.logger.Warn("cyclic parent declaration, falling back to root",
			"path", path, "parent", parentPath)
		if path != GlobalGroup && !visiting[GlobalGroup] {
			parent = m.build(ep, GlobalGroup, visiting)
		}
	default:
		parent = m.build(ep, parentPath, visiting)
	}

	bundle.Init(m, path, data, parent)
	return ep.put(path, bundle)
}

// resolve loads the raw data for path, logging and returning nil on
// failure so the bundle degrades to pure fallback.
func (m *Manager) resolve(ep *epoch, path string) map[string]string {
	data, err := m.resolver.Resolve(ep.prefix+path, ep.locale)
	if err != nil {
		m.logger.Warn("unable to resolve message group",
			"path", ep.prefix+path, "locale", ep.locale, "err", err)
		return nil
	}
	return data
}

// instantiate picks the bundle implementation: the behavior named by
// the group's reserved key when one is registered, DefaultBundle
// otherwise. Behavior trouble is never fatal.
func (m *Manager) instantiate(data map[string]string) Bundle {
	name := strings.TrimSpace(data[behaviorKey])
	if name == "" {
		return &DefaultBundle{}
	}
	factory, ok := m.behaviors[name]
	if !ok {
		m.logger.Warn("unknown bundle behavior, using default", "behavior", name)
		return &DefaultBundle{}
	}
	if b := factory(); b != nil {
		return b
	}
	m.logger.Warn("bundle behavior factory returned nil, using default", "behavior", name)
	return &DefaultBundle{}
}

func normalizePrefix(prefix string) string {
	if prefix != "" && !strings.HasSuffix(prefix, ".") {
		prefix += "."
	}
	return prefix
}
