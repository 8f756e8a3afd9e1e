package digest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const marker = "================================================"

func section(path, content string) string {
	return marker + "\n" + FilePrefix + path + "\n\n" + content
}

func TestParse_TwoFileSections(t *testing.T) {
	input := "Directory structure:\n└── o/r/\n    └── a.txt\n" +
		section("a.txt", "hello\nworld") + "\n" +
		section("b/c.txt", "second file")

	files, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, files, 3)
	assert.Equal(t, "Directory structure:\n└── o/r/\n    └── a.txt", files[DirectoryTreeKey])
	assert.Equal(t, "hello\nworld", files["a.txt"])
	assert.Equal(t, "second file", files["b/c.txt"])
}

func TestParse_IdempotentOverSameInput(t *testing.T) {
	input := "preamble\n" + section("x.go", "package x")

	first, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	second, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestParse_NoMarkersYieldsEmptyMap(t *testing.T) {
	files, err := Parse(strings.NewReader("just some text\nno frames here"))
	require.NoError(t, err)
	require.NotNil(t, files)
	assert.Empty(t, files)
}

func TestParse_EmptyInput(t *testing.T) {
	files, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestParse_MarkerOnlyCommitsPreamble(t *testing.T) {
	// A marker with nothing after it still frames the preamble.
	files, err := Parse(strings.NewReader("tree block\n" + marker + "\n"))
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, "tree block", files[DirectoryTreeKey])
}

func TestParse_BarePathLineWithoutPrefix(t *testing.T) {
	input := "preamble\n" + marker + "\n  src/main.go  \n\ncontent here"

	files, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "content here", files["src/main.go"])
}

func TestParse_TrailingUnterminatedSection(t *testing.T) {
	// The last section has no closing marker; EOF flushes it.
	input := "preamble\n" + section("last.txt", "unterminated content")

	files, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "unterminated content", files["last.txt"])
}

func TestParse_ShortEqualsRunIsContent(t *testing.T) {
	input := "preamble\n" + section("eq.py", "a == b\n====\ndone")

	files, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "a == b\n====\ndone", files["eq.py"])
}

func TestIsMarker(t *testing.T) {
	assert.True(t, IsMarker(marker))
	assert.True(t, IsMarker("========"))

	assert.False(t, IsMarker("===="), "short runs are content")
	assert.False(t, IsMarker(marker+" "), "trailing space breaks the frame")
	assert.False(t, IsMarker(""))
	assert.False(t, IsMarker("==== text ===="))
}

func TestParseString(t *testing.T) {
	files := ParseString("p\n" + section("f", "c"))
	assert.Equal(t, "c", files["f"])
	assert.Equal(t, "p", files[DirectoryTreeKey])
}
