package msg

import "log/slog"

// Option configures a Manager during construction.
type Option func(*Manager)

// WithLocale sets the initial locale. An empty locale is ignored.
func WithLocale(locale string) Option {
	return func(m *Manager) {
		if locale != "" {
			m.epoch.Store(newEpoch(locale, m.epoch.Load().prefix))
		}
	}
}

// WithPrefix sets the group path prefix prepended to every group path
// before it is handed to the resolver. A non-empty prefix is
// normalized to end with a dot, so WithPrefix("rsrc.messages") makes
// the group "game.chess" resolve as "rsrc.messages.game.chess".
func WithPrefix(prefix string) Option {
	return func(m *Manager) {
		m.epoch.Store(newEpoch(m.epoch.Load().locale, normalizePrefix(prefix)))
	}
}

// WithLogger sets the logger used for resolution, translation and
// behavior warnings. The default discards all output.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithBehavior registers an alternate bundle implementation under the
// given identifier. A group selects it by carrying the identifier in
// its reserved behavior key.
func WithBehavior(name string, factory BundleFactory) Option {
	return func(m *Manager) {
		if name != "" && factory != nil {
			m.behaviors[name] = factory
		}
	}
}
