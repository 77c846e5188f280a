package msg_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/msgkit/pkg/msg"
)

// testCatalog is the fixture shared by bundle tests: a root group plus
// a chess group that falls back to it.
func testCatalog() msg.MapResolver {
	return msg.MapResolver{
		"en": {
			"global": {
				"m.ok":       "OK",
				"m.cancel":   "Cancel",
				"m.title":    "Global Title",
				"m.defeated": "{0} was defeated",
			},
			"game.chess": {
				"m.title":     "Chess",
				"m.queen":     "Queen",
				"m.pawn":      "Pawn",
				"m.piece":     "{0} takes {1}",
				"m.echo":      "{0}",
				"m.widgets.0": "no widgets.",
				"m.widgets.1": "{0} widget.",
				"m.widgets.n": "{0} widgets.",
				"m.count":     "{0} items",
				"m.badpat":    "{5} mismatch",
			},
		},
	}
}

func TestBundleGet(t *testing.T) {
	t.Parallel()
	mgr := msg.New(testCatalog())
	chess := mgr.Bundle("game.chess")

	t.Run("local translation", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Chess", chess.Get("m.title"))
	})

	t.Run("falls back to the root bundle", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "OK", chess.Get("m.ok"))
	})

	t.Run("missing key echoes unchanged", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "m.nowhere", chess.Get("m.nowhere"))
	})

	t.Run("tainted key bypasses lookup", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "m.title", chess.Get(msg.Taint("m.title")))
	})

	t.Run("argument substitution", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Queen takes Pawn", chess.Get("m.piece", "Queen", "Pawn"))
	})

	t.Run("missing key with arguments renders fallback", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "m.nowhere[5, red]", chess.Get("m.nowhere", 5, "red"))
	})
}

func TestBundlePluralization(t *testing.T) {
	t.Parallel()
	mgr := msg.New(testCatalog())
	chess := mgr.Bundle("game.chess")

	t.Run("variant per count", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "no widgets.", chess.Get("m.widgets", 0))
		assert.Equal(t, "1 widget.", chess.Get("m.widgets", 1))
		assert.Equal(t, "5 widgets.", chess.Get("m.widgets", 5))
	})

	t.Run("falls back to the plain key when no variant exists", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "3 items", chess.Get("m.count", 3))
	})

	t.Run("non-numeric first argument uses the plain key", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "x takes y", chess.Get("m.piece", "x", "y"))
	})
}

func TestBundleQualifiedKeys(t *testing.T) {
	t.Parallel()
	mgr := msg.New(testCatalog())
	chess := mgr.Bundle("game.chess")

	t.Run("redirects to the owning group", func(t *testing.T) {
		t.Parallel()
		qualified := msg.Qualify("global", "m.ok")
		assert.Equal(t, mgr.Bundle("global").Get("m.ok"), chess.Get(qualified))
	})

	t.Run("redirect carries arguments", func(t *testing.T) {
		t.Parallel()
		qualified := msg.Qualify("global", "m.defeated")
		assert.Equal(t, "Bob was defeated", chess.Get(qualified, "Bob"))
	})
}

func TestBundleFormatMismatch(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	mgr := msg.New(testCatalog(), msg.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	chess := mgr.Bundle("game.chess")

	out := chess.Get("m.badpat", "only")
	assert.Equal(t, "{5} mismatch[only]", out)
	assert.Contains(t, buf.String(), "translation pattern error")
	assert.Contains(t, buf.String(), "m.badpat")
}

func TestBundleMissingTranslationLogging(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	mgr := msg.New(testCatalog(), msg.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	chess := mgr.Bundle("game.chess")

	_ = chess.Get("m.nowhere")
	out := buf.String()
	assert.Contains(t, out, "missing translation message")
	assert.Contains(t, out, "game.chess")
	assert.Contains(t, out, "m.nowhere")
}

func TestBundleExists(t *testing.T) {
	t.Parallel()
	mgr := msg.New(testCatalog())
	chess := mgr.Bundle("game.chess")

	assert.True(t, chess.Exists("m.title"))
	assert.True(t, chess.Exists("m.ok"), "should see parent keys")
	assert.False(t, chess.Exists("m.nowhere"))
}

func TestBundleLookup(t *testing.T) {
	t.Parallel()
	mgr := msg.New(testCatalog())
	chess := mgr.Bundle("game.chess")

	text, ok := chess.Lookup("m.piece", false)
	require.True(t, ok)
	assert.Equal(t, "{0} takes {1}", text)

	_, ok = chess.Lookup("m.nowhere", false)
	require.False(t, ok)
}

func TestBundleXlate(t *testing.T) {
	t.Parallel()
	mgr := msg.New(testCatalog())
	chess := mgr.Bundle("game.chess")

	t.Run("no separator degrades to get", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Chess", chess.Xlate("m.title"))
	})

	t.Run("arguments are translated recursively", func(t *testing.T) {
		t.Parallel()
		compound := msg.Compose("m.piece", "m.queen", "m.pawn")
		assert.Equal(t, "Queen takes Pawn", chess.Xlate(compound))
	})

	t.Run("tainted argument passes through verbatim", func(t *testing.T) {
		t.Parallel()
		compound := msg.Compose("m.echo", msg.Taint("a|b"))
		assert.Equal(t, "a|b", chess.Xlate(compound))
	})

	t.Run("tcompose protects literal arguments", func(t *testing.T) {
		t.Parallel()
		compound := msg.TCompose("m.defeated", "m.queen")
		assert.Equal(t, "m.queen was defeated", chess.Xlate(compound))
	})

	t.Run("qualified compound redirects wholesale", func(t *testing.T) {
		t.Parallel()
		compound := msg.Qualify("global", msg.Compose("m.defeated", msg.Taint("Bob")))
		assert.Equal(t, "Bob was defeated", chess.Xlate(compound))
	})
}

func TestBundlePrefixScans(t *testing.T) {
	t.Parallel()
	mgr := msg.New(testCatalog())
	chess := mgr.Bundle("game.chess")

	t.Run("all keys local", func(t *testing.T) {
		t.Parallel()
		keys := chess.AllKeys("m.widgets", false)
		assert.Equal(t, []string{"m.widgets.0", "m.widgets.1", "m.widgets.n"}, keys)
	})

	t.Run("all translations local", func(t *testing.T) {
		t.Parallel()
		all := chess.All("m.widgets", false)
		assert.Equal(t, []string{"no widgets.", "{0} widget.", "{0} widgets."}, all)
	})

	t.Run("parent entries merge without deduplication", func(t *testing.T) {
		t.Parallel()
		all := chess.All("m.title", true)
		assert.Equal(t, []string{"Chess", "Global Title"}, all)

		keys := chess.AllKeys("m.title", true)
		assert.Equal(t, []string{"m.title", "m.title"}, keys)
	})

	t.Run("parent excluded without the flag", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, chess.AllKeys("m.cancel", false))
		assert.Equal(t, []string{"m.cancel"}, chess.AllKeys("m.cancel", true))
	})
}
