package archiver_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/labt-build/labt/internal/adapters/archiver"
	"github.com/labt-build/labt/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiver_WriteThenExtractRoundTrips(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "hello.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello world"), 0o644))

	a := archiver.New()
	archivePath := filepath.Join(dir, "out.zip")
	require.NoError(t, a.Write(archivePath, []ports.ArchiveEntry{
		{Name: "nested/hello.txt", Path: src},
	}))

	extractDir := filepath.Join(dir, "extracted")
	require.NoError(t, a.Extract(archivePath, extractDir, nil))

	data, err := os.ReadFile(filepath.Join(extractDir, "nested", "hello.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
}

func TestArchiver_ExtractRejectsZipSlip(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "evil.zip")

	f, err := os.Create(archivePath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("../../escaped.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("escape"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	a := archiver.New()
	err = a.Extract(archivePath, filepath.Join(dir, "dst"), nil)
	require.Error(t, err)
}

func TestArchiver_ExtractOnlyNamedEntries(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "multi.zip")

	f, err := os.Create(archivePath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, name := range []string{"a.txt", "b.txt"} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(name))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	a := archiver.New()
	dst := filepath.Join(dir, "dst")
	require.NoError(t, a.Extract(archivePath, dst, []string{"a.txt"}))

	_, err = os.Stat(filepath.Join(dst, "a.txt"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dst, "b.txt"))
	assert.True(t, os.IsNotExist(err))
}
