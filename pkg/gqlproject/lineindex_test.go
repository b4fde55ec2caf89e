package gqlproject

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineIndexRoundTrip(t *testing.T) {
	source := "query Q {\n  user {\n    name\n  }\n}\n"
	li := NewLineIndex(source)

	for offset := 0; offset <= len(source); offset++ {
		pos := li.OffsetToPosition(offset)
		back, ok := li.PositionToOffset(pos)
		require.True(t, ok)
		require.Equal(t, offset, back, "offset %d round-trips through %+v", offset, pos)
	}
}

func TestLineIndexOffsetToPosition(t *testing.T) {
	source := "abc\ndef\nghi"
	li := NewLineIndex(source)

	require.Equal(t, Position{Line: 0, Column: 0}, li.OffsetToPosition(0))
	require.Equal(t, Position{Line: 0, Column: 3}, li.OffsetToPosition(3)) // on the \n
	require.Equal(t, Position{Line: 1, Column: 0}, li.OffsetToPosition(4))
	require.Equal(t, Position{Line: 2, Column: 2}, li.OffsetToPosition(10))
}

func TestLineIndexOutOfRangeLine(t *testing.T) {
	li := NewLineIndex("one line")
	_, ok := li.PositionToOffset(Position{Line: 5, Column: 0})
	require.False(t, ok)
}

func TestLineIndexMultiByteUTF8(t *testing.T) {
	// "café" — é is 2 bytes in UTF-8, 1 UTF-16 unit.
	source := "café\nok"
	li := NewLineIndex(source)

	// Column 4 (characters) lands right after é.
	offset, ok := li.PositionToOffset(Position{Line: 0, Column: 4})
	require.True(t, ok)
	require.Equal(t, len("café"), offset)

	require.Equal(t, 4, li.UTF16Column(0, 4))
}

func TestLineIndexUTF16SurrogatePair(t *testing.T) {
	// U+1F600 (grinning face) is outside the BMP: 1 rune, 2 UTF-16 units.
	source := "😀x"
	li := NewLineIndex(source)
	require.Equal(t, 2, li.UTF16Column(0, 1))
	require.Equal(t, 3, li.UTF16Column(0, 2))
}

func TestLineIndexCharColumnInvertsUTF16Column(t *testing.T) {
	source := "😀café\nok"
	li := NewLineIndex(source)

	for charCol := 0; charCol <= 5; charCol++ {
		units := li.UTF16Column(0, charCol)
		require.Equal(t, charCol, li.CharColumn(0, units), "char column %d round-trips through %d UTF-16 units", charCol, units)
	}
}
