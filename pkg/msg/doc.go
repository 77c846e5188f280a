// Package msg resolves localized text messages organized into a
// hierarchy of named message groups.
//
// Each group is resolved for one locale into a Bundle: a flat
// key-to-text mapping plus a parent bundle to fall back to. A Manager
// owns the locale, caches bundles per group path and wires parent
// relationships. On top of plain lookup the package supports
// count-based pluralization, positional argument substitution,
// cross-group ("qualified") key references and compound keys that
// carry their arguments inside a single string.
//
// Translation never fails: a group that cannot be resolved degrades to
// its parent chain, a key without a translation comes back unchanged,
// and a pattern that cannot accept its arguments yields best-effort
// output. All of these conditions are reported through the configured
// logger, never as errors to the caller.
//
// # Basic Usage
//
// Message files live in an fs.FS, one file per group and locale:
//
//	//go:embed messages
//	var messagesFS embed.FS
//
//	sub, _ := fs.Sub(messagesFS, "messages")
//	mgr := msg.New(msg.NewFSResolver(sub),
//		msg.WithLocale("en-US"),
//		msg.WithLogger(slog.Default()),
//	)
//
//	chess := mgr.Bundle("game.chess")
//	title := chess.Get("m.title")
//	taken := chess.Get("m.piece_taken", "queen")
//
// A key missing from the group is looked up in its parent chain, which
// ends at the root group "global". A group opts into a different
// parent with the reserved key "__parent" in its own data.
//
// # Pluralization
//
// When the first argument of Get is an integer, the variant key with
// suffix ".0", ".1" or ".n" is tried before the plain key:
//
//	m.widgets.0: no widgets.
//	m.widgets.1: "{0} widget."
//	m.widgets.n: "{0} widgets."
//
//	chess.Get("m.widgets", 0) // "no widgets."
//	chess.Get("m.widgets", 5) // "5 widgets."
//
// # Qualified and Compound Keys
//
// Qualify builds a key that resolves against a specific group no
// matter which bundle translates it:
//
//	key := msg.Qualify("global", "m.ok")
//	chess.Get(key) // same as mgr.Bundle("global").Get("m.ok")
//
// Compose packages a key with arguments into one transportable string,
// translated later by Xlate. Arguments are themselves translated
// recursively unless tainted, which protects externally supplied text
// from re-interpretation:
//
//	compound := msg.Compose("m.defeated", msg.Taint(playerName))
//	chess.Xlate(compound)
//
// # Locale Changes
//
// SetLocale swaps the entire bundle cache atomically: calls after it
// returns resolve against the new locale, while bundles captured
// earlier keep serving their old data until re-fetched.
package msg
