package toml

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBasicString_Escapes(t *testing.T) {
	v, p, err := parseStringValue(`"a\tb\nc\"d"`, 0)
	require.NoError(t, err)
	s, _ := v.AsString()
	require.Equal(t, "a\tb\nc\"d", s)
	require.Equal(t, len(`"a\tb\nc\"d"`), p)
}

func TestParseBasicString_UnicodeEscape(t *testing.T) {
	v, _, err := parseStringValue(`"\u00e9"`, 0)
	require.NoError(t, err)
	s, _ := v.AsString()
	require.Equal(t, "é", s)
}

func TestParseBasicString_SurrogateEscapeFails(t *testing.T) {
	_, _, err := parseStringValue(`"\uD800"`, 0)
	require.Error(t, err)
}

func TestParseBasicString_RawNewlineFails(t *testing.T) {
	_, _, err := parseStringValue("\"a\nb\"", 0)
	require.Error(t, err)
}

func TestParseBasicString_UnterminatedFails(t *testing.T) {
	_, _, err := parseStringValue(`"abc`, 0)
	require.Error(t, err)
}

func TestParseLiteralString_NoEscapeProcessing(t *testing.T) {
	v, _, err := parseStringValue(`'C:\Users\nodejs'`, 0)
	require.NoError(t, err)
	s, _ := v.AsString()
	require.Equal(t, `C:\Users\nodejs`, s)
}

func TestParseMultiLineBasicString_StripsLeadingNewline(t *testing.T) {
	v, _, err := parseStringValue("\"\"\"\nfirst line\"\"\"", 0)
	require.NoError(t, err)
	s, _ := v.AsString()
	require.Equal(t, "first line", s)
}

func TestParseMultiLineBasicString_LineEndingEscape(t *testing.T) {
	v, _, err := parseStringValue("\"\"\"a\\\n   b\"\"\"", 0)
	require.NoError(t, err)
	s, _ := v.AsString()
	require.Equal(t, "ab", s)
}

func TestParseMultiLineBasicString_TrailingQuotesAbsorbed(t *testing.T) {
	v, _, err := parseStringValue(`"""a""""`, 0)
	require.NoError(t, err)
	s, _ := v.AsString()
	require.Equal(t, `a"`, s)
}

func TestParseMultiLineLiteralString_RawBackslash(t *testing.T) {
	v, _, err := parseStringValue("'''a\\b'''", 0)
	require.NoError(t, err)
	s, _ := v.AsString()
	require.Equal(t, `a\b`, s)
}

func TestParseBasicString_InvalidEscapeFails(t *testing.T) {
	_, _, err := parseStringValue(`"\q"`, 0)
	require.Error(t, err)
}

func TestParseBasicString_ControlCharFails(t *testing.T) {
	_, _, err := parseStringValue("\"a\x01b\"", 0)
	require.Error(t, err)
}
