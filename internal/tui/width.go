package tui

import "unicode/utf8"

// runeDisplayWidth returns the number of terminal columns a codepoint
// occupies. Pictographic and symbol ranges render double-width; everything
// else (including box drawing and arrows) is treated as one column.
func runeDisplayWidth(r rune) int {
	if r < 0x80 {
		return 1
	}
	if r >= 0x1F300 && r <= 0x1FAFF {
		return 2
	}
	if r >= 0x2600 && r <= 0x27BF {
		return 2
	}
	return 1
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// skipEscape returns the index just past the CSI sequence starting at i
// (s[i] is ESC, s[i+1] is '['). The final letter byte is part of the
// sequence.
func skipEscape(s string, i int) int {
	j := i + 2
	for j < len(s) && !isLetter(s[j]) {
		j++
	}
	if j < len(s) {
		j++
	}
	return j
}

// DisplayWidth computes the visible column count of s: escape sequences are
// free, multi-byte codepoints count once at their decoded width.
func DisplayWidth(s string) int {
	width := 0
	i := 0
	for i < len(s) {
		if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			i = skipEscape(s, i)
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		width += runeDisplayWidth(r)
		i += size
	}
	return width
}

// truncateIndex finds the largest byte offset such that s[:offset] fits in
// maxWidth columns without splitting a codepoint or an escape sequence.
// Escape sequences before the cut are kept (they cost no columns).
func truncateIndex(s string, maxWidth int) int {
	width := 0
	i := 0
	for i < len(s) {
		if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			i = skipEscape(s, i)
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		w := runeDisplayWidth(r)
		if width+w > maxWidth {
			return i
		}
		width += w
		i += size
	}
	return len(s)
}
