// Package latin1 converts between Go strings and the ISO-8859-1 byte strings
// VHPI uses for names, string values and printf output.
package latin1

import (
	"golang.org/x/text/encoding/charmap"
)

// Placeholder replaces characters that ISO-8859-1 cannot represent.
const Placeholder byte = '?'

// Decode maps every byte to its ISO-8859-1 character. It cannot fail.
func Decode(b []byte) string {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = charmap.ISO8859_1.DecodeByte(c)
	}
	return string(runes)
}

// DecodeCString decodes b up to its first NUL byte.
func DecodeCString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return Decode(b[:i])
		}
	}
	return Decode(b)
}

// Encode maps s to ISO-8859-1, replacing unrepresentable characters with
// Placeholder.
func Encode(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		out = append(out, EncodeRune(r))
	}
	return out
}

// EncodeCString is Encode with a terminating NUL byte appended.
func EncodeCString(s string) []byte {
	return append(Encode(s), 0)
}

// EncodeRune maps a single character, returning Placeholder when it has no
// ISO-8859-1 byte.
func EncodeRune(r rune) byte {
	if b, ok := charmap.ISO8859_1.EncodeRune(r); ok {
		return b
	}
	return Placeholder
}

// Representable reports whether every character of s has an ISO-8859-1 byte.
func Representable(s string) bool {
	for _, r := range s {
		if _, ok := charmap.ISO8859_1.EncodeRune(r); !ok {
			return false
		}
	}
	return true
}
