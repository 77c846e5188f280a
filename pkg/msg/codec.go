package msg

import "strings"

// Marker characters used by the key codec. They are a fixed wire
// contract between composed keys and Xlate; changing them breaks every
// catalog that stores compound or qualified keys.
const (
	// taintMarker prefixes a string that must be passed through the
	// translation pipeline verbatim.
	taintMarker = "~"

	// qualMarker prefixes a key that names its owning group explicitly,
	// as in "%global:m.ok".
	qualMarker = "%"

	// qualSep separates the group name from the key in a qualified key.
	qualSep = ":"

	// argSep separates the key and each argument in a compound key.
	argSep = "|"
)

// Taint marks text so that recursive translation leaves it untouched.
// Use it for any string that originates outside the application (user
// input, external systems) before composing it into a compound key.
func Taint(text string) string {
	return taintMarker + text
}

// IsTainted reports whether text carries the taint marker.
func IsTainted(text string) bool {
	return strings.HasPrefix(text, taintMarker)
}

// Untaint strips the taint marker from text. Untainted text is
// returned unchanged.
func Untaint(text string) string {
	if IsTainted(text) {
		return text[len(taintMarker):]
	}
	return text
}

// Compose packages a key and its arguments into a single compound key
// that Bundle.Xlate can later split and translate. Arguments are
// escaped so they may contain separator characters.
func Compose(key string, args ...string) string {
	var b strings.Builder
	b.WriteString(key)
	for _, arg := range args {
		b.WriteString(argSep)
		b.WriteString(Escape(arg))
	}
	return b.String()
}

// TCompose is Compose with every argument tainted first. Use it when
// the arguments are literal text rather than message keys.
func TCompose(key string, args ...string) string {
	tainted := make([]string, len(args))
	for i, arg := range args {
		tainted[i] = Taint(arg)
	}
	return Compose(key, tainted...)
}

// Qualify returns a key that resolves against the named group no
// matter which bundle translates it. The group name must not contain
// the qualification markers; violating that is a programming error and
// panics.
func Qualify(group, key string) string {
	if strings.Contains(group, qualMarker) || strings.Contains(group, qualSep) {
		panic("msg: group name contains a qualification marker: " + group)
	}
	return qualMarker + group + qualSep + key
}

// IsQualified reports whether key names its owning group explicitly.
func IsQualified(key string) bool {
	return strings.HasPrefix(key, qualMarker)
}

// QualifiedGroup extracts the group name from a qualified key. It
// returns "" if the key is not qualified.
func QualifiedGroup(qualified string) string {
	if !IsQualified(qualified) {
		return ""
	}
	rest := qualified[len(qualMarker):]
	if idx := strings.Index(rest, qualSep); idx >= 0 {
		return rest[:idx]
	}
	return rest
}

// UnqualifiedKey extracts the key portion from a qualified key. A key
// that is not qualified is returned unchanged.
func UnqualifiedKey(qualified string) string {
	if !IsQualified(qualified) {
		return qualified
	}
	rest := qualified[len(qualMarker):]
	if idx := strings.Index(rest, qualSep); idx >= 0 {
		return rest[idx+len(qualSep):]
	}
	return rest
}

var (
	escaper   = strings.NewReplacer(`\`, `\\`, argSep, `\!`)
	unescaper = strings.NewReplacer(`\!`, argSep, `\\`, `\`)
)

// Escape encodes the argument separator and the escape character so
// that escaped text can travel inside a compound key.
func Escape(text string) string {
	return escaper.Replace(text)
}

// Unescape reverses Escape.
func Unescape(text string) string {
	return unescaper.Replace(text)
}
