package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorage(t *testing.T) *Storage {
	t.Helper()
	s := New(t.TempDir(), "http://localhost:8080/uploads/", nil)
	s.now = func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestStorage_PutUniqueNames(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)

	first, err := s.Put(ctx, strings.NewReader("<svg/>"), "my icons.svg", "image/svg+xml")
	require.NoError(t, err)
	assert.Equal(t, "2026/03/my-icons.svg", first.StorageKey)
	assert.EqualValues(t, 6, first.Size)
	assert.Len(t, first.SHA256, 32)

	second, err := s.Put(ctx, strings.NewReader("<svg/>"), "my icons.svg", "image/svg+xml")
	require.NoError(t, err)
	assert.Equal(t, "2026/03/my-icons-1.svg", second.StorageKey)

	data, err := s.Read(ctx, second.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))
	assert.Equal(t, "http://localhost:8080/uploads/2026/03/my-icons-1.svg", s.URL(second.StorageKey))
}

func TestStorage_PutSanitizesName(t *testing.T) {
	s := newStorage(t)
	res, err := s.Put(context.Background(), strings.NewReader("x"), "../../etc/.passwd", "")
	require.NoError(t, err)
	assert.Equal(t, "2026/03/passwd", res.StorageKey)
}

func TestStorage_ExistsAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)

	res, err := s.Put(ctx, strings.NewReader("x"), "a.svg", "")
	require.NoError(t, err)
	assert.True(t, s.Exists(ctx, res.StorageKey))
	assert.False(t, s.Exists(ctx, "2026/03"), "directory is not a file")
	assert.False(t, s.Exists(ctx, "missing.svg"))

	require.NoError(t, s.Delete(ctx, res.StorageKey))
	assert.False(t, s.Exists(ctx, res.StorageKey))
	require.NoError(t, s.Delete(ctx, res.StorageKey), "second delete is a no-op")
}

func TestStorage_KeysStayInsideRoot(t *testing.T) {
	s := newStorage(t)
	outside := filepath.Join(filepath.Dir(s.root), "outside.svg")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))
	assert.False(t, s.Exists(context.Background(), "../outside.svg"))
}

func TestStorage_RawPaths(t *testing.T) {
	ctx := context.Background()
	p := filepath.Join(t.TempDir(), "sprite.svg")
	require.NoError(t, os.WriteFile(p, []byte("<svg/>"), 0o644))

	s := New("", "", nil)
	assert.True(t, s.Exists(ctx, p))
	data, err := s.Read(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))

	_, err = s.Put(ctx, strings.NewReader("x"), "a.svg", "")
	assert.Error(t, err)
	assert.NoError(t, s.Ping(ctx))
}

func TestStorage_PutKeepsUnicodeNames(t *testing.T) {
	s := newStorage(t)
	res, err := s.Put(context.Background(), strings.NewReader("<svg/>"), "иконка дом.svg", "image/svg+xml")
	require.NoError(t, err)
	assert.Equal(t, "2026/03/иконка-дом.svg", res.StorageKey)
	assert.True(t, s.Exists(context.Background(), res.StorageKey))
}
