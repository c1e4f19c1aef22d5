package fsutil

import (
	"io"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_CreateVisibleOnClose(t *testing.T) {
	m := NewMemory()
	w, err := m.Create("case/constant/polyMesh/points")
	require.NoError(t, err)
	_, err = io.WriteString(w, "hello")
	require.NoError(t, err)

	data, ok := m.Bytes("case/constant/polyMesh/points")
	require.True(t, ok)
	assert.Empty(t, data, "content is buffered until Close")

	require.NoError(t, w.Close())
	data, _ = m.Bytes("case/constant/polyMesh/points")
	assert.Equal(t, "hello", string(data))
	assert.True(t, IsDir(m, "case/constant/polyMesh"))
	assert.True(t, IsDir(m, "case"))
}

func TestMemory_OpenAndStat(t *testing.T) {
	m := NewMemory()
	m.Put("./a/b.stl", []byte("solid x"))

	f, err := m.Open("a/b.stl")
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "solid x", string(data))

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(7), info.Size())
	assert.False(t, info.IsDir())

	_, err = m.Open("missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	_, err = m.Stat("missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMemory_MkdirAllAndNames(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.MkdirAll(filepath.Join("x", "y", "z"), 0o755))
	assert.True(t, IsDir(m, "x/y"))
	assert.False(t, IsDir(m, "x/q"))

	m.Put("b", nil)
	m.Put("a", nil)
	assert.Equal(t, []string{"a", "b"}, m.Names())
}

func TestOS_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	var fsys FileSystem = OS{}

	require.NoError(t, fsys.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	w, err := fsys.Create(filepath.Join(dir, "sub", "f.obj"))
	require.NoError(t, err)
	_, err = io.WriteString(w, "v 0 0 0\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.True(t, IsDir(fsys, filepath.Join(dir, "sub")))
	f, err := fsys.Open(filepath.Join(dir, "sub", "f.obj"))
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "v 0 0 0\n", string(data))
}
