package msg

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
)

// Bundle is one message group resolved for the current locale: its own
// key-to-text data, a parent bundle to fall back to, and the logic to
// translate keys through the chain.
//
// Bundles are obtained from a Manager, which also wires their parent
// and back-reference. Custom implementations can be registered with
// WithBehavior; they usually embed DefaultBundle and override the
// methods they care about.
type Bundle interface {
	// Path returns the group path this bundle was resolved for.
	Path() string

	// Get translates key, substituting args into the translation
	// pattern and selecting a plural variant from the first integer
	// argument. A missing translation yields the key plus stringified
	// arguments; Get never fails.
	Get(key string, args ...any) string

	// Xlate translates a compound key: a key packaged together with an
	// escaped, separator-delimited argument list (see Compose). Each
	// argument is itself translated unless tainted.
	Xlate(compound string) string

	// Exists reports whether key has a translation in this bundle or
	// any of its ancestors.
	Exists(key string) bool

	// Lookup finds the raw translation text for key in this bundle or
	// its ancestors. When reportMissing is true a definitive miss is
	// logged once.
	Lookup(key string, reportMissing bool) (string, bool)

	// All returns the translations of every key starting with prefix,
	// optionally merged with matches from the whole parent chain.
	All(prefix string, includeParent bool) []string

	// AllKeys returns every key starting with prefix, optionally
	// merged with matches from the whole parent chain.
	AllKeys(prefix string, includeParent bool) []string

	// Init is called exactly once by the Manager after construction.
	// data is nil when group resolution failed; such a bundle serves
	// purely as a relay to its parent.
	Init(mgr *Manager, path string, data map[string]string, parent Bundle)
}

// BundleFactory creates an uninitialized Bundle for a behavior
// identifier. The Manager calls Init on the returned value.
type BundleFactory func() Bundle

// DefaultBundle is the standard Bundle implementation.
type DefaultBundle struct {
	mgr    *Manager
	logger *slog.Logger
	path   string
	data   map[string]string
	parent Bundle
}

var noplog = slog.New(slog.NewTextHandler(io.Discard, nil))

// Init implements Bundle.
func (b *DefaultBundle) Init(mgr *Manager, path string, data map[string]string, parent Bundle) {
	b.mgr = mgr
	b.path = path
	b.data = data
	b.parent = parent
	if mgr != nil {
		b.logger = mgr.logger
	}
}

// Path implements Bundle.
func (b *DefaultBundle) Path() string { return b.path }

// Lookup implements Bundle. The parent chain is consulted with
// reporting disabled so that only the final miss is logged.
func (b *DefaultBundle) Lookup(key string, reportMissing bool) (string, bool) {
	if b.data != nil {
		if text, ok := b.data[key]; ok {
			return text, true
		}
	}
	if b.parent != nil {
		if text, ok := b.parent.Lookup(key, false); ok {
			return text, true
		}
	}
	if reportMissing {
		b.log().Warn("missing translation message", "path", b.path, "key", key)
	}
	return "", false
}

// Exists implements Bundle.
func (b *DefaultBundle) Exists(key string) bool {
	_, ok := b.Lookup(key, false)
	return ok
}

// Get implements Bundle.
//
// A tainted key is untainted and returned verbatim. A qualified key is
// redirected to its owning group through the manager. Otherwise the
// plural variant key+PluralSuffix(args...) is tried first, then the
// plain key.
func (b *DefaultBundle) Get(key string, args ...any) string {
	if IsTainted(key) {
		return Untaint(key)
	}
	if IsQualified(key) && b.mgr != nil {
		return b.mgr.Bundle(QualifiedGroup(key)).Get(UnqualifiedKey(key), args...)
	}

	suffix := PluralSuffix(args...)
	text, ok := b.Lookup(key+suffix, false)
	if !ok && suffix != "" {
		text, ok = b.Lookup(key, false)
	}
	if !ok {
		b.log().Warn("missing translation message", "path", b.path, "key", key)
		return fallbackText(key, args)
	}
	if len(args) == 0 {
		return text
	}

	out, err := Format(text, args...)
	if err != nil {
		b.log().Warn("translation pattern error",
			"path", b.path, "key", key, "pattern", text, "args", fmt.Sprintf("%v", args), "err", err)
		return fallbackText(text, args)
	}
	return out
}

// Xlate implements Bundle.
//
// A qualified compound key is handed to its owning group wholesale, so
// the argument list is split and translated in that group's context.
// Tainted arguments are unescaped and used verbatim; everything else
// is recursively translated.
func (b *DefaultBundle) Xlate(compound string) string {
	if IsQualified(compound) && b.mgr != nil {
		return b.mgr.Bundle(QualifiedGroup(compound)).Xlate(UnqualifiedKey(compound))
	}

	key, tail, found := strings.Cut(compound, argSep)
	if !found {
		return b.Get(compound)
	}

	parts := strings.Split(tail, argSep)
	args := make([]any, len(parts))
	for i, raw := range parts {
		if IsTainted(raw) {
			args[i] = Unescape(Untaint(raw))
		} else {
			args[i] = b.Xlate(Unescape(raw))
		}
	}
	return b.Get(key, args...)
}

// All implements Bundle. Local matches come first, sorted by key, then
// matches from each ancestor in order. Entries shadowed by a child are
// still included.
func (b *DefaultBundle) All(prefix string, includeParent bool) []string {
	out := make([]string, 0, len(b.data))
	for _, key := range b.localKeys(prefix) {
		out = append(out, b.Get(key))
	}
	if includeParent && b.parent != nil {
		out = append(out, b.parent.All(prefix, includeParent)...)
	}
	return out
}

// AllKeys implements Bundle with the same ordering rules as All.
func (b *DefaultBundle) AllKeys(prefix string, includeParent bool) []string {
	out := b.localKeys(prefix)
	if includeParent && b.parent != nil {
		out = append(out, b.parent.AllKeys(prefix, includeParent)...)
	}
	return out
}

func (b *DefaultBundle) localKeys(prefix string) []string {
	keys := make([]string, 0, len(b.data))
	for key := range b.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func (b *DefaultBundle) log() *slog.Logger {
	if b.logger != nil {
		return b.logger
	}
	return noplog
}

func (b *DefaultBundle) String() string {
	return fmt.Sprintf("[path=%s, keys=%d]", b.path, len(b.data))
}
