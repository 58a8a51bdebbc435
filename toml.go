// Package toml implements a TOML 1.0.0 document reader: scanning,
// scalar parsing, and the assembly of a value tree rooted at a Document.
// It deliberately does not encode TOML back to text, preserve comments or
// key order as source formatting, validate against a schema, or recover
// from malformed input — each parse either returns a complete Document or
// the first ParseError encountered.
package toml

import "unicode/utf8"

// Parse reads data as a TOML 1.0.0 document and returns its value tree.
// A nil input returns ErrNilInput; input carrying a UTF-8 byte order mark
// returns ErrBOM, per spec.md §4.1 (TOML source is pure UTF-8, no BOM).
func Parse(data []byte) (*Document, error) {
	if data == nil {
		return nil, ErrNilInput
	}
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return nil, ErrBOM
	}
	src := string(data)
	if !utf8.ValidString(src) {
		return nil, errAt(src, 0, "input is not valid UTF-8")
	}
	return newAssembler(src).run()
}

// ParseString is a convenience wrapper around Parse for callers already
// holding a string.
func ParseString(src string) (*Document, error) {
	return Parse([]byte(src))
}
