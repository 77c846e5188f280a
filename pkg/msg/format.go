package msg

import (
	"fmt"
	"strconv"
	"strings"
)

// Format substitutes positional placeholders of the form {0}, {1}, ...
// into pattern. Placeholder N is replaced with the string rendering of
// args[N].
//
// Returns ErrBadPattern when a placeholder is unclosed, its index is
// not a number, or it refers past the end of args. Translation callers
// never see these errors directly; Bundle converts them to a logged
// warning plus best-effort output.
func Format(pattern string, args ...any) (string, error) {
	var b strings.Builder
	for i := 0; i < len(pattern); {
		c := pattern[i]
		if c != '{' {
			b.WriteByte(c)
			i++
			continue
		}
		end := strings.IndexByte(pattern[i:], '}')
		if end < 0 {
			return "", fmt.Errorf("%w: unclosed placeholder at offset %d", ErrBadPattern, i)
		}
		idx := pattern[i+1 : i+end]
		n, err := strconv.Atoi(idx)
		if err != nil || n < 0 {
			return "", fmt.Errorf("%w: invalid placeholder index %q", ErrBadPattern, idx)
		}
		if n >= len(args) {
			return "", fmt.Errorf("%w: placeholder {%d} with %d argument(s)", ErrBadPattern, n, len(args))
		}
		b.WriteString(fmt.Sprint(args[n]))
		i += end + 1
	}
	return b.String(), nil
}

// fallbackText renders the deterministic output used when a key has no
// translation or its pattern cannot be formatted: the text followed by
// the bracketed arguments, e.g. "m.widgets[5, red]".
func fallbackText(text string, args []any) string {
	if len(args) == 0 {
		return text
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = fmt.Sprint(arg)
	}
	return text + "[" + strings.Join(parts, ", ") + "]"
}

// PluralSuffix derives the plural key suffix from the first argument:
// ".0" for zero, ".1" for one and ".n" for any other integer. The
// suffix is empty when there are no arguments or the first one cannot
// be read as an integer.
func PluralSuffix(args ...any) string {
	if len(args) == 0 || args[0] == nil {
		return ""
	}
	n, ok := toInt(args[0])
	if !ok {
		return ""
	}
	switch n {
	case 0:
		return ".0"
	case 1:
		return ".1"
	default:
		return ".n"
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	}
	n, err := strconv.Atoi(fmt.Sprint(v))
	if err != nil {
		return 0, false
	}
	return n, true
}
