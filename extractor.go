package toml

import "strings"

// extractValue inspects src[p] and dispatches to the appropriate scalar or
// structural parser, per spec.md §4.4. terminator is 0, ']', or '}' and
// names the enclosing structure; extractValue itself does not use it.
// Newlines are tolerated inside arrays and rejected inside inline tables
// by extractArray and extractInlineTable themselves.
func extractValue(src string, p int, terminator byte) (*Value, int, error) {
	if p >= len(src) {
		return nil, p, errAt(src, p, "expected value")
	}
	switch src[p] {
	case '"', '\'':
		return parseStringValue(src, p)
	case '[':
		return extractArray(src, p)
	case '{':
		return extractInlineTable(src, p)
	default:
		return extractBareValue(src, p)
	}
}

// extractBareValue scans the token alphabet used by booleans, numbers, and
// dates (disjoint from quote characters, per spec.md §4.4) and classifies
// it. A date/time is distinguished from a number by trying the date shape
// first, matching spec.md §4.3's grammar ordering.
func extractBareValue(src string, p int) (*Value, int, error) {
	start := p
	if looksLikeDateTimeStart(src, p) {
		return parseDateTime(src, p)
	}
	raw, newP := scanBareToken(src, p)
	if raw == "" {
		return nil, p, errAt(src, p, "expected value")
	}
	v, err := parseNumberOrBool(raw)
	if err != nil {
		// parseNumberOrBool only ever sees the bare token, so any
		// *ParseError it builds has Source/Offset relative to that token,
		// not the document; rebuild it against the real src/start before
		// it escapes this function.
		if pe, ok := err.(*ParseError); ok {
			return nil, start, errAt(src, start, "%s", pe.Message)
		}
		return nil, start, err
	}
	return v, newP, nil
}

// looksLikeDateTimeStart checks the fixed-width date/time prefixes from
// spec.md §4.3 without consuming input: "YYYY-MM-DD" or "HH:MM".
func looksLikeDateTimeStart(src string, p int) bool {
	if p+10 <= len(src) && isDateShape(src[p:p+10]) {
		return true
	}
	if p+5 <= len(src) && isDigit(src[p]) && isDigit(src[p+1]) && src[p+2] == ':' &&
		isDigit(src[p+3]) && isDigit(src[p+4]) {
		return true
	}
	return false
}

// extractArray parses "[ val, val, ... ]" with newlines permitted around
// elements and commas, trailing commas allowed, empty arrays allowed.
func extractArray(src string, p int) (*Value, int, error) {
	start := p
	p++ // '['
	var elems []*Value
	var err error
	p, err = skipVoid(src, p, true)
	if err != nil {
		return nil, p, err
	}
	for p < len(src) && src[p] != ']' {
		var v *Value
		v, p, err = extractValue(src, p, ']')
		if err != nil {
			return nil, p, err
		}
		elems = append(elems, v)
		p, err = skipVoid(src, p, true)
		if err != nil {
			return nil, p, err
		}
		if p < len(src) && src[p] == ',' {
			p++
			p, err = skipVoid(src, p, true)
			if err != nil {
				return nil, p, err
			}
			continue
		}
		break
	}
	if p >= len(src) || src[p] != ']' {
		return nil, p, errAt(src, start, "unterminated array")
	}
	arr := newArrayValue(elems)
	arr.frozen = true
	return arr, p + 1, nil
}

// extractInlineTable parses "{ k = v, ... }". Newlines are not permitted
// anywhere inside, and a trailing comma before '}' is an error, per
// spec.md §4.4. The resulting Table (and every Value reachable from it) is
// frozen: no later statement may extend it.
func extractInlineTable(src string, p int) (*Value, int, error) {
	start := p
	p++ // '{'
	tbl := NewTable()
	p = skipWhitespace(src, p)
	if p < len(src) && src[p] == '}' {
		val := newTableValue(tbl)
		freezeValues(val)
		return val, p + 1, nil
	}
	for {
		var err error
		p, err = extractKeyValue(src, p, tbl, '}')
		if err != nil {
			return nil, p, err
		}
		p = skipWhitespace(src, p)
		if p < len(src) && src[p] == ',' {
			p++
			p = skipWhitespace(src, p)
			if p < len(src) && src[p] == '}' {
				return nil, p, errAt(src, p, "trailing comma not allowed in inline table")
			}
			continue
		}
		break
	}
	if p >= len(src) || src[p] != '}' {
		return nil, p, errAt(src, start, "unterminated inline table")
	}
	val := newTableValue(tbl)
	freezeValues(val)
	return val, p + 1, nil
}

// freezeValues marks every nested table reachable from an inline table as
// frozen, so a dotted key or header later in the document cannot tunnel
// through an array of inline tables to mutate one, matching the
// "inline-table immutability" invariant in spec.md §8.
func freezeValues(v *Value) {
	v.frozen = true
	switch v.kind {
	case KindTable:
		v.tbl.frozen = true
		for _, k := range v.tbl.keys {
			freezeValues(v.tbl.values[k])
		}
	case KindArray:
		for _, e := range v.arr {
			freezeValues(e)
		}
	}
}

// keyPart is one dot-separated segment of a key, per spec.md §4.5.
type keyPart struct {
	name string
}

// parseKey parses a dotted key: one or more bare or quoted parts separated
// by '.', itself optionally surrounded by spaces/tabs (never newlines).
func parseKey(src string, p int) ([]keyPart, int, error) {
	var parts []keyPart
	part, newP, err := parseKeyPart(src, p)
	if err != nil {
		return nil, p, err
	}
	parts = append(parts, part)
	p = newP
	for {
		save := p
		p = skipWhitespace(src, p)
		if p >= len(src) || src[p] != '.' {
			return parts, save, nil
		}
		p++
		p = skipWhitespace(src, p)
		part, newP, err = parseKeyPart(src, p)
		if err != nil {
			return nil, p, err
		}
		parts = append(parts, part)
		p = newP
	}
}

func parseKeyPart(src string, p int) (keyPart, int, error) {
	if p >= len(src) {
		return keyPart{}, p, errAt(src, p, "expected key")
	}
	switch src[p] {
	case '"':
		v, newP, err := parseStringValue(src, p)
		if err != nil {
			return keyPart{}, newP, err
		}
		s, _ := v.AsString()
		return keyPart{name: s}, newP, nil
	case '\'':
		v, newP, err := parseStringValue(src, p)
		if err != nil {
			return keyPart{}, newP, err
		}
		s, _ := v.AsString()
		return keyPart{name: s}, newP, nil
	default:
		start := p
		for p < len(src) && isBareKeyChar(src[p]) {
			p++
		}
		if p == start {
			return keyPart{}, p, errAt(src, p, "expected key")
		}
		return keyPart{name: src[start:p]}, p, nil
	}
}

func keyPathString(parts []keyPart) string {
	names := make([]string, len(parts))
	for i, k := range parts {
		names[i] = k.name
	}
	return strings.Join(names, ".")
}

// extractKeyValue parses "<key> = <value>" and inserts it into target,
// enforcing the invariants of spec.md §4.6: '=' and the value must be on
// the same logical line as the key, dotted-key table walking respects
// frozen/explicit tables, and duplicate leaf keys are rejected. terminator
// is 0 for a top-level statement or '}' for an inline-table entry.
func extractKeyValue(src string, p int, target *Table, terminator byte) (int, error) {
	kvStart := p
	parts, newP, err := parseKey(src, p)
	if err != nil {
		return newP, err
	}
	p = newP

	p = skipWhitespace(src, p)
	if p >= len(src) || src[p] != '=' {
		if p < len(src) && (src[p] == '\n' || src[p] == '\r') {
			return p, errAt(src, p, "newline before '=' in key-value pair")
		}
		return p, errAt(src, p, "expected '='")
	}
	p++
	p = skipWhitespace(src, p)
	if p < len(src) && (src[p] == '\n' || src[p] == '\r') {
		return p, errAt(src, p, "newline after '=' before value")
	}

	val, newP, err := extractValue(src, p, terminator)
	if err != nil {
		return newP, err
	}
	p = newP

	if err := insertDottedKey(src, kvStart, target, parts, val); err != nil {
		return kvStart, err
	}

	if terminator == '}' {
		return p, nil
	}

	p = skipWhitespace(src, p)
	if p < len(src) && src[p] == '#' {
		var cerr error
		p, cerr = skipComment(src, p)
		if cerr != nil {
			return p, cerr
		}
	}
	p, err = expectNewlineOrEOF(src, p)
	if err != nil {
		return p, err
	}
	return p, nil
}

// insertDottedKey walks parts into target, creating intermediate tables as
// needed, and assigns val at the leaf. It enforces:
//   - a frozen table (inline-table origin) may never be walked into or
//     assigned through;
//   - a non-table value in the path is a hard conflict;
//   - the leaf key must not already exist;
//   - an intermediate table created here is marked viaDottedKey so a later
//     "[a.b]" header targeting it is rejected (spec.md §4.6 step 4).
func insertDottedKey(src string, pos int, target *Table, parts []keyPart, val *Value) error {
	cur := target
	for i := 0; i < len(parts)-1; i++ {
		name := parts[i].name
		existing, ok := cur.Get(name)
		if !ok {
			sub := NewTable()
			sub.viaDottedKey = true
			cur.set(name, newTableValue(sub))
			cur = sub
			continue
		}
		if cur.frozen {
			return errAt(src, pos, "cannot extend frozen table via dotted key %q", name)
		}
		sub, isTable := existing.AsTable()
		if !isTable {
			return errAt(src, pos, "key %q is not a table", name)
		}
		if sub.frozen {
			return errAt(src, pos, "cannot extend inline table %q via dotted key", name)
		}
		cur = sub
	}
	leaf := parts[len(parts)-1].name
	if cur.frozen {
		return errAt(src, pos, "cannot assign into frozen table via key %q", leaf)
	}
	if _, exists := cur.Get(leaf); exists {
		return errAt(src, pos, "duplicate key %q", leaf)
	}
	cur.set(leaf, val)
	return nil
}
