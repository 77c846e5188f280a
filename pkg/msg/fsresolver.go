package msg

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// defaultExtensions is the file extension search order used when none
// is configured.
var defaultExtensions = []string{".yaml", ".yml", ".toml", ".json"}

// FSResolver loads group data from message files in an fs.FS, which
// may be an embed.FS, an os.DirFS or any other implementation.
//
// A group path maps to a file location by replacing dots with path
// separators: the group "game.chess" is looked up as "game/chess". For
// each lookup the resolver walks the locale fallback chain and probes
// one file per chain entry and extension, first hit wins:
//
//	game/chess_en-US.yaml
//	game/chess_en.yaml
//	game/chess.yaml
//
// The chain is derived from the locale with golang.org/x/text/language
// (en-US falls back to en), ending with the locale-less base file.
//
// Supported formats by extension: YAML (.yaml/.yml), TOML (.toml) and
// JSON with optional comments and trailing commas (.json). Nested
// tables are flattened to dotted keys; non-string leaf values are
// stringified.
type FSResolver struct {
	fsys fs.FS
	exts []string
}

// FSOption configures an FSResolver.
type FSOption func(*FSResolver)

// WithExtensions replaces the file extension search order. Extensions
// must include the leading dot.
func WithExtensions(exts ...string) FSOption {
	return func(r *FSResolver) {
		if len(exts) > 0 {
			r.exts = exts
		}
	}
}

// NewFSResolver creates a resolver that reads message files from fsys.
func NewFSResolver(fsys fs.FS, opts ...FSOption) *FSResolver {
	if fsys == nil {
		panic("msg: file system is not provided")
	}
	r := &FSResolver{
		fsys: fsys,
		exts: defaultExtensions,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve implements Resolver.
func (r *FSResolver) Resolve(path, locale string) (map[string]string, error) {
	base := strings.ReplaceAll(path, ".", "/")

	for _, loc := range localeChain(locale) {
		name := base
		if loc != "" {
			name += "_" + loc
		}
		for _, ext := range r.exts {
			data, err := fs.ReadFile(r.fsys, name+ext)
			if err != nil {
				continue
			}
			flat, err := decodeMessages(data, ext)
			if err != nil {
				return nil, fmt.Errorf("parsing %s%s: %w", name, ext, err)
			}
			return flat, nil
		}
	}

	return nil, fmt.Errorf("%w: %q (locale %q)", ErrNotFound, path, locale)
}

// localeChain returns the locale candidates to probe, most specific
// first and ending with "" for the locale-less base file. The raw
// locale string is always probed before its canonicalized forms so
// that files named after non-canonical tags keep working.
func localeChain(locale string) []string {
	chain := []string{}
	seen := map[string]bool{}
	add := func(loc string) {
		if !seen[loc] {
			seen[loc] = true
			chain = append(chain, loc)
		}
	}

	if locale != "" {
		add(locale)
		if tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-")); err == nil {
			for ; tag != language.Und; tag = tag.Parent() {
				add(tag.String())
			}
		}
	}
	add("")
	return chain
}

func decodeMessages(data []byte, ext string) (map[string]string, error) {
	var nested map[string]any
	switch ext {
	case ".toml":
		if err := toml.Unmarshal(data, &nested); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(jsonc.ToJSON(data), &nested); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &nested); err != nil {
			return nil, err
		}
	}
	return flattenMessages(nested, ""), nil
}

func flattenMessages(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			for nk, nv := range flattenMessages(v, fullKey) {
				result[nk] = nv
			}
		default:
			result[fullKey] = fmt.Sprintf("%v", v)
		}
	}
	return result
}
