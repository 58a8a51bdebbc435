package toml

// assembler drives the top-level loop described in spec.md §4.7. It keeps
// a single mutable pointer at the table receiving key-value lines; all
// other bookkeeping (explicit/frozen/viaDottedKey) lives on the Table and
// Value nodes themselves, the "tree-walking with per-table flags" strategy
// spec.md §9 calls out as equivalent to a path-string seen-set — the
// approach taken by maurice-toml's validate.go, generalized here from a
// post-hoc CST walk into flags set during a single incremental pass.
type assembler struct {
	src     string
	root    *Table
	current *Table
}

func newAssembler(src string) *assembler {
	root := NewTable()
	root.explicit = true
	return &assembler{src: src, root: root, current: root}
}

func (a *assembler) run() (*Document, error) {
	p := 0
	for {
		var err error
		p, err = skipVoid(a.src, p, true)
		if err != nil {
			return nil, err
		}
		if p >= len(a.src) {
			return &Document{Table: a.root}, nil
		}
		if a.src[p] == '[' {
			p, err = a.parseHeader(p)
			if err != nil {
				return nil, err
			}
			continue
		}
		p, err = extractKeyValue(a.src, p, a.current, 0)
		if err != nil {
			return nil, err
		}
	}
}

// parseHeader handles both "[table]" and "[[array-of-tables]]" forms,
// disambiguated by a second '['.
func (a *assembler) parseHeader(p int) (int, error) {
	start := p
	p++ // first '['
	if p < len(a.src) && a.src[p] == '[' {
		p++
		return a.parseArrayOfTablesHeader(start, p)
	}
	return a.parseTableHeader(start, p)
}

func (a *assembler) parseTableHeader(start, p int) (int, error) {
	p = skipWhitespace(a.src, p)
	parts, newP, err := parseKey(a.src, p)
	if err != nil {
		return newP, err
	}
	p = skipWhitespace(a.src, newP)
	if p >= len(a.src) || a.src[p] != ']' {
		return p, errAt(a.src, start, "expected ']' to close table header")
	}
	p++

	tbl, err := a.resolveHeaderTable(start, parts)
	if err != nil {
		return start, err
	}
	a.current = tbl

	return a.finishHeaderLine(p)
}

func (a *assembler) parseArrayOfTablesHeader(start, p int) (int, error) {
	p = skipWhitespace(a.src, p)
	parts, newP, err := parseKey(a.src, p)
	if err != nil {
		return newP, err
	}
	p = skipWhitespace(a.src, newP)
	if p+1 >= len(a.src) || a.src[p] != ']' || a.src[p+1] != ']' {
		return p, errAt(a.src, start, "expected ']]' to close array-of-tables header")
	}
	p += 2

	tbl, err := a.resolveArrayOfTablesEntry(start, parts)
	if err != nil {
		return start, err
	}
	a.current = tbl

	return a.finishHeaderLine(p)
}

func (a *assembler) finishHeaderLine(p int) (int, error) {
	p = skipWhitespace(a.src, p)
	if p < len(a.src) && a.src[p] == '#' {
		var err error
		p, err = skipComment(a.src, p)
		if err != nil {
			return p, err
		}
	}
	return expectNewlineOrEOF(a.src, p)
}

// walkIntermediate walks all but the last part of a header path, creating
// implicit tables as needed and rejecting attempts to tunnel through a
// frozen table or a scalar. An intermediate array is entered through its
// last element, which must be a table (so "[fruit.physical]" after
// "[[fruit]]" targets the latest fruit entry); an empty array is rejected.
func (a *assembler) walkIntermediate(pos int, parts []keyPart) (*Table, error) {
	cur := a.root
	for i := 0; i < len(parts)-1; i++ {
		name := parts[i].name
		if cur.frozen {
			return nil, errAt(a.src, pos, "cannot extend frozen table at %q", name)
		}
		existing, ok := cur.Get(name)
		if !ok {
			sub := NewTable()
			cur.set(name, newTableValue(sub))
			cur = sub
			continue
		}
		switch existing.kind {
		case KindTable:
			if existing.tbl.frozen {
				return nil, errAt(a.src, pos, "cannot extend inline table %q", name)
			}
			cur = existing.tbl
		case KindArray:
			if len(existing.arr) == 0 {
				return nil, errAt(a.src, pos, "cannot traverse into empty array %q", name)
			}
			last := existing.arr[len(existing.arr)-1]
			sub, isTable := last.AsTable()
			if !isTable {
				return nil, errAt(a.src, pos, "key %q is not a table", name)
			}
			cur = sub
		default:
			return nil, errAt(a.src, pos, "key %q is not a table", name)
		}
	}
	return cur, nil
}

// resolveHeaderTable implements "[a.b.c]" per spec.md §4.7: the final
// component must not already be a non-table value, must not already be an
// explicitly-declared table, and must not be frozen or dotted-key-created.
// If it exists as an implicitly-created intermediate table, it is promoted
// to explicit; otherwise a fresh table is created.
func (a *assembler) resolveHeaderTable(pos int, parts []keyPart) (*Table, error) {
	parent, err := a.walkIntermediate(pos, parts)
	if err != nil {
		return nil, err
	}
	leaf := parts[len(parts)-1].name
	if parent.frozen {
		return nil, errAt(a.src, pos, "cannot declare table %q inside frozen table", leaf)
	}

	existing, ok := parent.Get(leaf)
	if !ok {
		tbl := NewTable()
		tbl.explicit = true
		parent.set(leaf, newTableValue(tbl))
		return tbl, nil
	}
	sub, isTable := existing.AsTable()
	if !isTable {
		return nil, errAt(a.src, pos, "cannot redeclare %q, already a %s", leaf, existing.kind)
	}
	if sub.frozen {
		return nil, errAt(a.src, pos, "cannot redeclare frozen inline table %q", leaf)
	}
	if sub.explicit {
		return nil, errAt(a.src, pos, "duplicate table declaration: %q", leaf)
	}
	if sub.viaDottedKey {
		return nil, errAt(a.src, pos, "cannot redeclare table %q created via dotted key", leaf)
	}
	sub.explicit = true
	return sub, nil
}

// resolveArrayOfTablesEntry implements "[[a.b]]" per spec.md §4.7: the
// final path component must be an Array (created empty if absent), and a
// new empty Table is appended and returned as the current table.
func (a *assembler) resolveArrayOfTablesEntry(pos int, parts []keyPart) (*Table, error) {
	parent, err := a.walkIntermediate(pos, parts)
	if err != nil {
		return nil, err
	}
	leaf := parts[len(parts)-1].name
	if parent.frozen {
		return nil, errAt(a.src, pos, "cannot declare array of tables %q inside frozen table", leaf)
	}

	existing, ok := parent.Get(leaf)
	if !ok {
		entry := NewTable()
		arrVal := newArrayValue([]*Value{newTableValue(entry)})
		parent.set(leaf, arrVal)
		return entry, nil
	}
	if existing.kind != KindArray || existing.frozen {
		return nil, errAt(a.src, pos, "%q is already defined as a %s, not an array of tables", leaf, existing.kind)
	}
	entry := NewTable()
	existing.arr = append(existing.arr, newTableValue(entry))
	return entry, nil
}
