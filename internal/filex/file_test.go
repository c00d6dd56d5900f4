package filex

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestReadImage_DetectsType(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 16)...)
	path := writeFile(t, "milk.png", png)

	data, ct, err := ReadImage(path, 1024)
	require.NoError(t, err)
	assert.Equal(t, png, data)
	assert.Equal(t, "image/png", ct)
}

func TestReadImage_ExactlyAtLimit(t *testing.T) {
	path := writeFile(t, "a.bin", bytes.Repeat([]byte("a"), 8))

	data, _, err := ReadImage(path, 8)
	require.NoError(t, err)
	assert.Len(t, data, 8)
}

func TestReadImage_TooLarge(t *testing.T) {
	path := writeFile(t, "big.bin", bytes.Repeat([]byte("a"), 9))

	_, _, err := ReadImage(path, 8)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestReadImage_Missing(t *testing.T) {
	_, _, err := ReadImage(filepath.Join(t.TempDir(), "nope.png"), 8)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
