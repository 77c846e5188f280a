package msg

import "fmt"

// Resolver turns a fully qualified group path and a locale into the
// flat key-to-text data for that group. Implementations decide where
// the data lives: message files, embedded catalogs, a remote service.
//
// Resolve returns ErrNotFound (possibly wrapped) when no data backs
// the path and locale. The Manager treats every error the same way: it
// logs a warning and serves a degraded bundle that echoes keys, so a
// Resolver never has to worry about crashing translation callers.
type Resolver interface {
	Resolve(path, locale string) (map[string]string, error)
}

// MapResolver serves group data from memory, keyed by locale and then
// by group path. It is handy for tests and for small embedded catalogs
// that are assembled in code.
type MapResolver map[string]map[string]map[string]string

// Resolve implements Resolver.
func (r MapResolver) Resolve(path, locale string) (map[string]string, error) {
	if data, ok := r[locale][path]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("%w: %q (locale %q)", ErrNotFound, path, locale)
}
