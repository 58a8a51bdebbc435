package toml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// Scenario tests directly mirroring the concrete end-to-end cases used to
// validate the parser during development.

func TestScenario_SimpleKeyValue(t *testing.T) {
	d, err := ParseString("key = \"value\"\n")
	require.NoError(t, err)
	v, ok := d.Get("key")
	require.True(t, ok)
	s, _ := v.AsString()
	require.Equal(t, "value", s)
}

func TestScenario_RedeclareImplicitDottedTableFails(t *testing.T) {
	_, err := ParseString("a.b.c = 1\n[a.b]\nd = 2\n")
	require.Error(t, err)
}

func TestScenario_MultiLineBasicStringStripsLeadingNewline(t *testing.T) {
	v, _, err := parseStringValue("\"\"\"\nuwu\nowo\"\"\"", 0)
	require.NoError(t, err)
	s, _ := v.AsString()
	require.Equal(t, "uwu\nowo", s)
}

func TestScenario_MultiLineQuoteAbsorption(t *testing.T) {
	d, err := ParseString(`x = """a""""` + "\n")
	require.NoError(t, err)
	v, _ := d.Get("x")
	s, _ := v.AsString()
	require.Equal(t, `a"`, s)

	d, err = ParseString(`x = """a"""""` + "\n")
	require.NoError(t, err)
	v, _ = d.Get("x")
	s, _ = v.AsString()
	require.Equal(t, `a""`, s)

	_, err = ParseString(`x = """a""""""` + "\n")
	require.Error(t, err)
}

func TestScenario_ArrayOfTablesTwoEntries(t *testing.T) {
	d, err := ParseString("[[fruit]]\nname = \"apple\"\n[[fruit]]\nname = \"pear\"\n")
	require.NoError(t, err)
	v, ok := d.Get("fruit")
	require.True(t, ok)
	arr, _ := v.AsArray()
	require.Len(t, arr, 2)
	tbl0, _ := arr[0].AsTable()
	name0, _ := tbl0.Get("name")
	s, _ := name0.AsString()
	require.Equal(t, "apple", s)
	tbl1, _ := arr[1].AsTable()
	name1, _ := tbl1.Get("name")
	s, _ = name1.AsString()
	require.Equal(t, "pear", s)
}

func TestScenario_DateTimeVariantsByShape(t *testing.T) {
	d, err := ParseString("d = 1979-05-27T07:32:00Z\n")
	require.NoError(t, err)
	v, _ := d.Get("d")
	dt, _ := v.AsDateTime()
	require.Equal(t, DateTimeOffset, dt.Kind)
	require.Equal(t, 0, dt.OffsetMinutes)

	d, err = ParseString("d = 1979-05-27\n")
	require.NoError(t, err)
	v, _ = d.Get("d")
	dt, _ = v.AsDateTime()
	require.Equal(t, DateOnly, dt.Kind)

	d, err = ParseString("d = 07:32:00\n")
	require.NoError(t, err)
	v, _ = d.Get("d")
	dt, _ = v.AsDateTime()
	require.Equal(t, TimeOnly, dt.Kind)
}

func TestScenario_KeyUniquenessAcrossFullPath(t *testing.T) {
	_, err := ParseString("a = 1\n[b]\nc = 2\n[b]\nc = 3\n")
	require.Error(t, err)
}

func TestScenario_SameLineDoubleAssignmentFails(t *testing.T) {
	_, err := ParseString(`first = "Tom" last = "P"` + "\n")
	require.Error(t, err)
}

func TestScenario_NumericLeadingZero(t *testing.T) {
	_, err := ParseString("x = 01\n")
	require.Error(t, err)

	d, err := ParseString("x = 0\n")
	require.NoError(t, err)
	v, _ := d.Get("x")
	i, _ := v.AsInt64()
	require.EqualValues(t, 0, i)

	d, err = ParseString("x = 0.1\n")
	require.NoError(t, err)
	v, _ = d.Get("x")
	f, _ := v.AsFloat64()
	require.InDelta(t, 0.1, f, 1e-9)
}

func TestScenario_NumericErrorPositionIsRealDocumentOffset(t *testing.T) {
	src := "x = 01\n"
	_, err := ParseString(src)
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, src, pe.Source)
	require.Equal(t, 4, pe.Offset)
	require.Equal(t, 1, pe.Line())
	require.Equal(t, 5, pe.Col())
}

func TestScenario_MalformedFloatErrorPositionIsRealDocumentOffset(t *testing.T) {
	src := "a = 1\nx = 1.\n"
	_, err := ParseString(src)
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, src, pe.Source)
	require.Equal(t, 2, pe.Line())
	require.Equal(t, 5, pe.Col())
}

func TestScenario_IntegerRepresentabilityBounds(t *testing.T) {
	d, err := ParseString("x = 9223372036854775807\n")
	require.NoError(t, err)
	v, _ := d.Get("x")
	i, _ := v.AsInt64()
	require.EqualValues(t, 9223372036854775807, i)

	_, err = ParseString("x = 9223372036854775808\n")
	require.Error(t, err)

	d, err = ParseString("x = -9223372036854775808\n")
	require.NoError(t, err)
	v, _ = d.Get("x")
	i, _ = v.AsInt64()
	require.EqualValues(t, -9223372036854775808, i)
}
