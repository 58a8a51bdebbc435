package toml

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// parseStringValue dispatches on the opening delimiter at src[p] (already
// known to be '"' or '\'') to one of the four string forms in spec.md §4.2,
// returning the decoded string content and the cursor just past the
// closing delimiter(s).
func parseStringValue(src string, p int) (*Value, int, error) {
	delim := src[p]
	triple := p+2 < len(src) && src[p+1] == delim && src[p+2] == delim
	switch {
	case triple && delim == '"':
		return parseMultiLineBasicString(src, p)
	case triple:
		return parseMultiLineLiteralString(src, p)
	case delim == '"':
		return parseBasicString(src, p)
	default:
		return parseLiteralString(src, p)
	}
}

func parseBasicString(src string, p int) (*Value, int, error) {
	start := p
	p++ // opening quote
	var b strings.Builder
	for {
		if p >= len(src) {
			return nil, p, errAt(src, start, "unterminated string")
		}
		ch := src[p]
		if ch == '\n' || ch == '\r' {
			return nil, p, errAt(src, p, "raw newline in single-line string")
		}
		if ch == '"' {
			return newStringValue(b.String()), p + 1, nil
		}
		if ch == '\\' {
			var err error
			p, err = decodeEscape(src, p, &b, false)
			if err != nil {
				return nil, p, err
			}
			continue
		}
		r, size := decodeRune(src, p)
		if r == utf8.RuneError && size == 1 {
			return nil, p, errAt(src, p, "invalid UTF-8 in string")
		}
		if isControlChar(r) {
			return nil, p, errAt(src, p, "control character U+%04X in string", r)
		}
		b.WriteRune(r)
		p += size
	}
}

func parseLiteralString(src string, p int) (*Value, int, error) {
	start := p
	p++ // opening quote
	contentStart := p
	for {
		if p >= len(src) {
			return nil, p, errAt(src, start, "unterminated literal string")
		}
		ch := src[p]
		if ch == '\n' || ch == '\r' {
			return nil, p, errAt(src, p, "raw newline in single-line literal string")
		}
		if ch == '\'' {
			content := src[contentStart:p]
			if err := checkLiteralContent(src, contentStart, content, false); err != nil {
				return nil, p, err
			}
			return newStringValue(content), p + 1, nil
		}
		p++
	}
}

// parseMultiLineBasicString handles """…""" per spec.md §4.2: a leading
// newline right after the delimiter is stripped, raw newlines are allowed,
// backslash-newline (line-ending escape) swallows following whitespace,
// and closing is the first run of three quotes with up to two extra quotes
// absorbed into the content (never more than five in a row).
func parseMultiLineBasicString(src string, p int) (*Value, int, error) {
	start := p
	p += 3
	if p < len(src) && src[p] == '\r' && p+1 < len(src) && src[p+1] == '\n' {
		p += 2
	} else if p < len(src) && src[p] == '\n' {
		p++
	}

	var b strings.Builder
	for {
		if p >= len(src) {
			return nil, p, errAt(src, start, "unterminated multi-line string")
		}
		if src[p] == '"' {
			if p+2 >= len(src) || src[p+1] != '"' || src[p+2] != '"' {
				b.WriteByte('"')
				p++
				continue
			}
			end, extra, ok := findMultiQuoteClose(src, p, '"')
			if ok {
				for i := 0; i < extra; i++ {
					b.WriteByte('"')
				}
				return newStringValue(b.String()), end, nil
			}
			return nil, p, errAt(src, p, "too many consecutive quotes closing multi-line string")
		}
		if src[p] == '\\' {
			var err error
			p, err = decodeEscape(src, p, &b, true)
			if err != nil {
				return nil, p, err
			}
			continue
		}
		if src[p] == '\r' && (p+1 >= len(src) || src[p+1] != '\n') {
			return nil, p, errAt(src, p, "bare carriage return in multi-line string")
		}
		r, size := decodeRune(src, p)
		if r == utf8.RuneError && size == 1 {
			return nil, p, errAt(src, p, "invalid UTF-8 in string")
		}
		if isControlChar(r) && r != '\n' && r != '\r' {
			return nil, p, errAt(src, p, "control character U+%04X in string", r)
		}
		b.WriteRune(r)
		p += size
	}
}

func parseMultiLineLiteralString(src string, p int) (*Value, int, error) {
	start := p
	p += 3
	if p < len(src) && src[p] == '\r' && p+1 < len(src) && src[p+1] == '\n' {
		p += 2
	} else if p < len(src) && src[p] == '\n' {
		p++
	}
	contentStart := p
	for {
		if p >= len(src) {
			return nil, p, errAt(src, start, "unterminated multi-line literal string")
		}
		if src[p] == '\'' {
			if p+2 >= len(src) || src[p+1] != '\'' || src[p+2] != '\'' {
				p++
				continue
			}
			end, extra, ok := findMultiQuoteClose(src, p, '\'')
			if ok {
				content := src[contentStart:p]
				if err := checkLiteralContent(src, contentStart, content, true); err != nil {
					return nil, p, err
				}
				var b strings.Builder
				b.WriteString(content)
				for i := 0; i < extra; i++ {
					b.WriteByte('\'')
				}
				return newStringValue(b.String()), end, nil
			}
			return nil, p, errAt(src, p, "too many consecutive quotes closing multi-line literal string")
		}
		p++
	}
}

// findMultiQuoteClose consumes a run of the closing quote character at
// src[p], deciding — per spec.md §4.2 — that the first three quotes close
// the string and up to two more are literal trailing content. A run longer
// than five is an error (reported by the caller via ok=false).
func findMultiQuoteClose(src string, p int, q byte) (newP, extra int, ok bool) {
	count := 0
	for p+count < len(src) && src[p+count] == q && count < 6 {
		count++
	}
	if count < 3 || count > 5 {
		return p, 0, false
	}
	return p + count, count - 3, true
}

// decodeEscape processes a backslash escape starting at src[p] (where
// src[p]=='\\'), writing the decoded content to b and returning the cursor
// past the escape. multiline enables the line-ending-escape form.
func decodeEscape(src string, p int, b *strings.Builder, multiline bool) (int, error) {
	start := p
	p++
	if p >= len(src) {
		return p, errAt(src, start, "trailing backslash in string")
	}
	switch src[p] {
	case 'b':
		b.WriteByte('\b')
		return p + 1, nil
	case 't':
		b.WriteByte('\t')
		return p + 1, nil
	case 'n':
		b.WriteByte('\n')
		return p + 1, nil
	case 'f':
		b.WriteByte('\f')
		return p + 1, nil
	case 'r':
		b.WriteByte('\r')
		return p + 1, nil
	case '"':
		b.WriteByte('"')
		return p + 1, nil
	case '\\':
		b.WriteByte('\\')
		return p + 1, nil
	case 'u':
		return decodeUnicodeEscape(src, p, b, 4)
	case 'U':
		return decodeUnicodeEscape(src, p, b, 8)
	case '\n', '\r':
		if !multiline {
			return p, errAt(src, start, "invalid escape sequence")
		}
		return skipLineEndingWhitespace(src, p), nil
	case ' ', '\t':
		if multiline && hasNewlineAfterBlank(src, p) {
			return skipLineEndingWhitespace(src, p), nil
		}
		return p, errAt(src, start, "invalid escape sequence '\\%c'", src[p])
	default:
		return p, errAt(src, start, "invalid escape sequence '\\%c'", src[p])
	}
}

func decodeUnicodeEscape(src string, p int, b *strings.Builder, digits int) (int, error) {
	label := "\\u"
	if digits == 8 {
		label = "\\U"
	}
	if p+1+digits > len(src) {
		return p, errAt(src, p, "incomplete %s escape", label)
	}
	hex := src[p+1 : p+1+digits]
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return p, errAt(src, p, "invalid %s escape", label)
		}
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return p, errAt(src, p, "invalid %s escape", label)
	}
	r := rune(n)
	if r >= 0xD800 && r <= 0xDFFF {
		return p, errAt(src, p, "escape resolves to surrogate code point U+%04X", n)
	}
	if r > 0x10FFFF {
		return p, errAt(src, p, "escape codepoint U+%04X out of range", n)
	}
	b.WriteRune(r)
	return p + 1 + digits, nil
}

// skipLineEndingWhitespace implements the multi-line-string line-ending
// escape: a backslash immediately followed by whitespace containing at
// least one newline consumes all following whitespace up to the next
// non-whitespace character. p points at the first whitespace/newline byte
// after the backslash.
func skipLineEndingWhitespace(src string, p int) int {
	for p < len(src) && (src[p] == ' ' || src[p] == '\t' || src[p] == '\n' || src[p] == '\r') {
		p++
	}
	return p
}

func hasNewlineAfterBlank(src string, p int) bool {
	for p < len(src) && (src[p] == ' ' || src[p] == '\t') {
		p++
	}
	return p < len(src) && (src[p] == '\n' || src[p] == '\r')
}

// checkLiteralContent validates a literal string's raw bytes for control
// characters and bad UTF-8; literal strings have no escapes to process.
func checkLiteralContent(src string, base int, content string, multiline bool) error {
	for i := 0; i < len(content); {
		if content[i] == '\r' && (i+1 >= len(content) || content[i+1] != '\n') {
			return errAt(src, base+i, "bare carriage return in literal string")
		}
		r, size := decodeRune(content, i)
		if r == utf8.RuneError && size == 1 {
			return errAt(src, base+i, "invalid UTF-8 in literal string")
		}
		if isControlChar(r) && !(multiline && (r == '\n' || r == '\r')) {
			return errAt(src, base+i, "control character U+%04X in literal string", r)
		}
		i += size
	}
	return nil
}
