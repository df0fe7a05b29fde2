package buildsettings

import "strings"

// ParseRaw parses the quoted-text form of a setting as written by the xcode
// npm package: "" is Absent, a leading "(" starts a comma-separated list,
// anything else is a scalar with optional surrounding double quotes.
// A missing closing parenthesis and a trailing comma are tolerated.
func ParseRaw(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return AbsentValue()
	}
	if !strings.HasPrefix(s, "(") {
		return ScalarValue(unquote(s))
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	tokens := splitList(inner)
	items := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		items = append(items, unquote(tok))
	}
	return ListValue(items...)
}

// Raw returns the quoted-text form of the value. List entries are always
// quoted; scalars are quoted only when they contain characters an unquoted
// plist string cannot carry (c++17 becomes "c++17", NO stays NO).
func (v Value) Raw() string {
	switch v.kind {
	case Scalar:
		if needsQuote(v.scalar) {
			return quote(v.scalar)
		}
		return v.scalar
	case List:
		quoted := make([]string, len(v.items))
		for i, item := range v.items {
			quoted[i] = quote(item)
		}
		return "(" + strings.Join(quoted, ", ") + ")"
	default:
		return ""
	}
}

// quote wraps s in double quotes, escaping backslashes and quotes.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// needsQuote reports whether s falls outside the unquoted plist alphabet.
func needsQuote(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("_$/:.-", r):
		default:
			return true
		}
	}
	return false
}

// splitList splits the inside of a parenthesized list on commas that are
// not inside double quotes. Tokens are trimmed; empty tokens are dropped.
func splitList(inner string) []string {
	var (
		tokens  []string
		cur     strings.Builder
		inQuote bool
		escaped bool
	)
	flush := func() {
		if tok := strings.TrimSpace(cur.String()); tok != "" {
			tokens = append(tokens, tok)
		}
		cur.Reset()
	}

	for _, r := range inner {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && inQuote:
			escaped = true
		case r == '"':
			inQuote = !inQuote
		case r == ',' && !inQuote:
			flush()
			continue
		}
		cur.WriteRune(r)
	}
	flush()
	return tokens
}

// unquote strips one pair of surrounding double quotes and resolves
// backslash escapes. Unquoted input is returned trimmed but otherwise as is.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	body := s[1 : len(s)-1]
	if !strings.Contains(body, `\`) {
		return body
	}

	var b strings.Builder
	b.Grow(len(body))
	escaped := false
	for _, r := range body {
		if escaped {
			switch r {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteRune(r)
			}
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
