package toml

import "strings"

// Kind tags the variant held by a Value.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindDateTime
	KindArray
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindDateTime:
		return "datetime"
	case KindArray:
		return "array"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// Value is the tagged union produced by the parser. Exactly one of the
// payload fields is meaningful, selected by Kind.
type Value struct {
	kind Kind

	str string
	i64 int64
	f64 float64
	b   bool
	dt  DateTime
	arr []*Value
	tbl *Table

	// frozen marks a Value constructed from an inline-table or array
	// literal (and every Value reachable from an inline table): none may
	// be extended by a later dotted-key or header statement, so an
	// "[[a]]" header cannot append to an array written as "a = [...]".
	// Arrays created by "[[a]]" headers are not frozen.
	frozen bool
}

func (v *Value) Kind() Kind { return v.kind }

// AsString returns the string payload and whether Kind is KindString.
func (v *Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsInt64 returns the integer payload and whether Kind is KindInteger.
func (v *Value) AsInt64() (int64, bool) {
	if v.kind != KindInteger {
		return 0, false
	}
	return v.i64, true
}

// AsFloat64 returns the float payload and whether Kind is KindFloat.
func (v *Value) AsFloat64() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f64, true
}

// AsBool returns the boolean payload and whether Kind is KindBoolean.
func (v *Value) AsBool() (bool, bool) {
	if v.kind != KindBoolean {
		return false, false
	}
	return v.b, true
}

// AsDateTime returns the datetime payload and whether Kind is KindDateTime.
func (v *Value) AsDateTime() (DateTime, bool) {
	if v.kind != KindDateTime {
		return DateTime{}, false
	}
	return v.dt, true
}

// AsArray returns the element slice and whether Kind is KindArray.
func (v *Value) AsArray() ([]*Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// AsTable returns the nested Table and whether Kind is KindTable.
func (v *Value) AsTable() (*Table, bool) {
	if v.kind != KindTable {
		return nil, false
	}
	return v.tbl, true
}

func newStringValue(s string) *Value  { return &Value{kind: KindString, str: s} }
func newIntValue(i int64) *Value      { return &Value{kind: KindInteger, i64: i} }
func newFloatValue(f float64) *Value  { return &Value{kind: KindFloat, f64: f} }
func newBoolValue(b bool) *Value      { return &Value{kind: KindBoolean, b: b} }
func newDateTimeValue(d DateTime) *Value {
	return &Value{kind: KindDateTime, dt: d}
}
func newArrayValue(elems []*Value) *Value { return &Value{kind: KindArray, arr: elems} }
func newTableValue(t *Table) *Value       { return &Value{kind: KindTable, tbl: t} }

// Table is an insertion-ordered string -> Value mapping. It is the backing
// structure for both the document root and every nested [table].
type Table struct {
	keys   []string
	values map[string]*Value

	// explicit is set once this table has been opened by its own
	// "[a.b.c]" header (as opposed to merely existing because it is an
	// ancestor of some other header, or because a dotted key created it).
	explicit bool

	// viaDottedKey is set when this table's only reason to exist is a
	// dotted key ("a.b = 1" implicitly creating table "a"). Such tables
	// may gain further sibling keys via more dotted keys but can never be
	// the subject of a later "[a]" header.
	viaDottedKey bool

	// frozen mirrors Value.frozen for the root table reached through an
	// inline-table literal; kept on the Table too so lookups that already
	// hold a *Table don't need the wrapping *Value.
	frozen bool
}

// NewTable returns an empty, open Table.
func NewTable() *Table {
	return &Table{values: make(map[string]*Value)}
}

// Keys returns the table's keys in insertion order.
func (t *Table) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Len reports the number of entries in the table.
func (t *Table) Len() int { return len(t.keys) }

// Get returns the value directly stored under key, if any.
func (t *Table) Get(key string) (*Value, bool) {
	v, ok := t.values[key]
	return v, ok
}

// GetDotted resolves a plain dot-separated path string, e.g. "server.port",
// the convenience form mirroring maurice-toml's Document.Get(path string).
// It is a simple strings.Split and so cannot express a key containing a
// literal dot; callers needing that should walk the tree with Get/AsTable
// or use GetPath with the exact (already-unquoted) segment names.
func (t *Table) GetDotted(path string) (*Value, bool) {
	return t.GetPath(strings.Split(path, ".")...)
}

// GetPath resolves a dotted path of literal key names (no quoting syntax)
// through nested tables, returning the leaf Value if found.
func (t *Table) GetPath(parts ...string) (*Value, bool) {
	cur := t
	for i, p := range parts {
		v, ok := cur.values[p]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		sub, ok := v.AsTable()
		if !ok {
			return nil, false
		}
		cur = sub
	}
	return nil, false
}

func (t *Table) set(key string, v *Value) {
	if _, exists := t.values[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.values[key] = v
}

// Document is the root of a parsed TOML document: a Table with no parent.
type Document struct {
	*Table
}
