package filex

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadImage_SniffsPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pin.png")
	// Minimal PNG signature followed by junk; enough for sniffing.
	data := append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, make([]byte, 16)...)
	require.NoError(t, os.WriteFile(path, data, 0o660))

	img, err := ReadImage(path)
	require.NoError(t, err)
	require.Equal(t, "pin.png", img.Name)
	require.Equal(t, "image/png", img.ContentType)
	require.Equal(t, data, img.Data)
}

func TestReadImage_UnknownBytesFallBackToOctetStream(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x01, 0x02, 0x03}, 0o660))

	img, err := ReadImage(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(img.ContentType, "application/octet-stream"))
}

func TestReadImage_MissingFile(t *testing.T) {
	_, err := ReadImage(filepath.Join(t.TempDir(), "nope.jpg"))
	require.Error(t, err)
}

func TestReadImage_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.jpg")
	require.NoError(t, os.WriteFile(path, nil, 0o660))

	_, err := ReadImage(path)
	require.Error(t, err)
}
