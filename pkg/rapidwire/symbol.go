package rapidwire

import "strings"

// NormalizeSymbol trims s and uppercases its ASCII letters. The service compares symbols
// case-sensitively, so every symbol leaving the client goes through here.
func NormalizeSymbol(s string) string {
	s = strings.TrimSpace(s)

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch >= 'a' && ch <= 'z' {
			ch -= 'a' - 'A'
		}
		b.WriteByte(ch)
	}

	return b.String()
}
