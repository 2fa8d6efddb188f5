package source

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NitroLine/tagcloud/tagcloud"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func readAll(t *testing.T, d *Document) []string {
	t.Helper()
	lines := slices.Collect(d.Lines())
	require.NoError(t, d.Err())
	require.NoError(t, d.Close())
	return lines
}

func TestOpenFile(t *testing.T) {
	path := writeFile(t, "words.txt", "the cat sat.\r\nThe CAT ran!\n\nend")

	d, err := Open(context.Background(), path, Options{})
	require.NoError(t, err)

	assert.Equal(t, "words.txt", d.Name())
	assert.Equal(t, []string{"the cat sat.", "The CAT ran!", "", "end"}, readAll(t, d))
}

func TestOpenLongLine(t *testing.T) {
	long := strings.Repeat("word ", 100_000)
	path := writeFile(t, "long.txt", long+"\nshort\n")

	d, err := Open(context.Background(), path, Options{})
	require.NoError(t, err)

	lines := readAll(t, d)
	require.Len(t, lines, 2)
	assert.Equal(t, long, lines[0])
	assert.Equal(t, "short", lines[1])
}

func TestOpenStdin(t *testing.T) {
	for _, path := range []string{"", "-"} {
		d, err := Open(context.Background(), path, Options{Stdin: strings.NewReader("a b\nc")})
		require.NoError(t, err)
		assert.Equal(t, StdinName, d.Name())
		assert.Equal(t, []string{"a b", "c"}, readAll(t, d))
	}
}

func TestOpenEmpty(t *testing.T) {
	d, err := Open(context.Background(), writeFile(t, "empty.txt", ""), Options{})
	require.NoError(t, err)
	assert.Empty(t, readAll(t, d))
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "nope.txt"), Options{})
	assert.ErrorIs(t, err, ErrUnreadable)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestOpenDirectory(t *testing.T) {
	_, err := Open(context.Background(), t.TempDir(), Options{})
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestReadError(t *testing.T) {
	boom := errors.New("disk on fire")
	d, err := Open(context.Background(), "-", Options{
		Stdin: iotest.ErrReader(boom),
	})
	require.NoError(t, err)

	for range d.Lines() {
	}
	assert.ErrorIs(t, d.Err(), ErrUnreadable)
	assert.ErrorIs(t, d.Err(), boom)
}

func TestLinesStopEarly(t *testing.T) {
	d, err := Open(context.Background(), "-", Options{Stdin: strings.NewReader("1\n2\n3\n")})
	require.NoError(t, err)

	for line := range d.Lines() {
		assert.Equal(t, "1", line)
		break
	}
	assert.NoError(t, d.Err())
	assert.NoError(t, d.Close())
}

func TestOpenWithProgress(t *testing.T) {
	path := writeFile(t, "words.txt", "one two\nthree\n")
	var bar bytes.Buffer

	d, err := Open(context.Background(), path, Options{Progress: true, ProgressOutput: &bar})
	require.NoError(t, err)
	assert.Equal(t, []string{"one two", "three"}, readAll(t, d))
	assert.NotZero(t, bar.Len(), "progress bar must be drawn")
}

func TestOpenPDF(t *testing.T) {
	d, err := Open(context.Background(), filepath.Join("testdata", "cat.pdf"), Options{})
	require.NoError(t, err)
	assert.Equal(t, "cat.pdf", d.Name())

	words := slices.Collect(tagcloud.Tokens(slices.Values(readAll(t, d))))
	assert.Equal(t, []string{"the", "cat", "sat", "the", "cat", "ran"}, words)
}

func TestOpenMalformedPDF(t *testing.T) {
	path := writeFile(t, "report.PDF", "this is not a pdf at all")

	_, err := Open(context.Background(), path, Options{})
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestOpenMissingPDF(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "gone.pdf"), Options{})
	assert.ErrorIs(t, err, ErrUnreadable)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
