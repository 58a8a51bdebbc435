package toml

import "unicode/utf8"

// Scanner primitives operate on a (source, cursor) pair and return a new
// cursor. They never allocate and hold no state of their own, mirroring
// maurice-toml/lexer.go's byte-at-a-time peek/advance style but without the
// intervening Token abstraction: spec.md's grammar wants a cursor, not a
// token stream, once values start being extracted recursively.

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isBareKeyChar(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') ||
		(ch >= '0' && ch <= '9') || ch == '-' || ch == '_'
}

func isControlChar(r rune) bool {
	return (r >= 0 && r <= 0x08) || (r >= 0x0A && r <= 0x1F) || r == 0x7F
}

func peekByte(src string, p int) byte {
	if p >= len(src) {
		return 0
	}
	return src[p]
}

// skipWhitespace advances past ASCII space and tab only.
func skipWhitespace(src string, p int) int {
	for p < len(src) && (src[p] == ' ' || src[p] == '\t') {
		p++
	}
	return p
}

// atNewline reports whether src[p] begins a newline, and its width.
func atNewline(src string, p int) (bool, int) {
	if p < len(src) && src[p] == '\n' {
		return true, 1
	}
	if p+1 < len(src) && src[p] == '\r' && src[p+1] == '\n' {
		return true, 2
	}
	return false, 0
}

// skipComment advances past a '#' comment to (but not past) the next
// newline or EOF, rejecting any control character other than tab.
func skipComment(src string, p int) (int, error) {
	start := p
	if peekByte(src, p) != '#' {
		return p, nil
	}
	for p < len(src) {
		if src[p] == '\n' || src[p] == '\r' {
			break
		}
		r, size := decodeRune(src, p)
		if r == utf8.RuneError && size == 1 {
			return p, errAt(src, p, "invalid UTF-8 in comment")
		}
		if r != '\t' && isControlChar(r) {
			return p, errAt(src, start, "control character U+%04X in comment", r)
		}
		p += size
	}
	return p, nil
}

// skipVoid advances past whitespace, '#'-comments, and, if allowNewline is
// set, newlines, repeating until none of those remain.
func skipVoid(src string, p int, allowNewline bool) (int, error) {
	for {
		next := skipWhitespace(src, p)
		if ok, width := atNewline(src, next); ok && allowNewline {
			next += width
		} else if peekByte(src, next) == '#' {
			var err error
			next, err = skipComment(src, next)
			if err != nil {
				return p, err
			}
		}
		if next == p {
			return p, nil
		}
		p = next
	}
}

// expectNewlineOrEOF succeeds when src[p] is a newline or EOF, returning the
// cursor past the newline (unchanged at EOF).
func expectNewlineOrEOF(src string, p int) (int, error) {
	if p >= len(src) {
		return p, nil
	}
	if ok, width := atNewline(src, p); ok {
		return p + width, nil
	}
	return p, errAt(src, p, "expected newline")
}

func decodeRune(src string, p int) (rune, int) {
	return utf8.DecodeRuneInString(src[p:])
}
