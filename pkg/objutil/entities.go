package objutil

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Encode escapes the HTML special characters of s and turns every
// non-ASCII rune into a numeric character reference.
func Encode(s string) string {
	s = html.EscapeString(s)
	if isASCII(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
			continue
		}
		b.WriteString("&#")
		b.WriteString(strconv.Itoa(int(r)))
		b.WriteByte(';')
	}
	return b.String()
}

// Decode resolves named and numeric character references in s.
func Decode(s string) string {
	return html.UnescapeString(s)
}

// EncodeStrings encodes every string value of m in place and returns m.
func EncodeStrings(m map[string]any) map[string]any {
	return mapStrings(m, Encode)
}

// DecodeStrings decodes every string value of m in place and returns m.
func DecodeStrings(m map[string]any) map[string]any {
	return mapStrings(m, Decode)
}

func mapStrings(m map[string]any, fn func(string) string) map[string]any {
	for k, v := range m {
		if s, ok := v.(string); ok {
			m[k] = fn(s)
		}
	}
	return m
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
