package toml

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSkipWhitespace(t *testing.T) {
	p := skipWhitespace("  \t a", 0)
	require.Equal(t, 4, p)
}

func TestSkipVoid_CommentsAndBlankLines(t *testing.T) {
	src := "  # comment\n\n  # another\nkey"
	p, err := skipVoid(src, 0, true)
	require.NoError(t, err)
	require.Equal(t, "key", src[p:])
}

func TestSkipVoid_NoNewlineAllowed(t *testing.T) {
	src := "  \nkey"
	p, err := skipVoid(src, 0, false)
	require.NoError(t, err)
	require.Equal(t, "\nkey", src[p:])
}

func TestSkipComment_RejectsControlChar(t *testing.T) {
	_, err := skipComment("# bad \x01\n", 0)
	require.Error(t, err)
}

func TestExpectNewlineOrEOF(t *testing.T) {
	p, err := expectNewlineOrEOF("\nrest", 0)
	require.NoError(t, err)
	require.Equal(t, 1, p)

	_, err = expectNewlineOrEOF("x", 0)
	require.Error(t, err)

	p, err = expectNewlineOrEOF("", 0)
	require.NoError(t, err)
	require.Equal(t, 0, p)
}

func TestIsControlChar(t *testing.T) {
	require.True(t, isControlChar(0x01))
	require.True(t, isControlChar(0x7F))
	require.False(t, isControlChar('\t'))
	require.False(t, isControlChar('a'))
}
