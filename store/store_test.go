package store

import (
	"bytes"
	"os"
	"testing"

	"github.com/nanogit-vcs/nanogit/internal/streamio"
	"github.com/nanogit-vcs/nanogit/object"
	"github.com/nanogit-vcs/nanogit/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(dir, opts...)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestWriteLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	oid, err := s.Write(object.BlobKind, []byte("hello world"))
	require.NoError(t, err)
	assert.True(t, s.Has(oid))

	kind, payload, err := s.Load(oid)
	require.NoError(t, err)
	assert.Equal(t, object.BlobKind, kind)
	assert.Equal(t, "hello world", string(payload))
}

func TestWriteEmptyBlobMatchesGitHash(t *testing.T) {
	s := newTestStore(t)

	oid, err := s.Write(object.BlobKind, nil)
	require.NoError(t, err)
	assert.Equal(t, "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391", oid.String())

	_, payload, err := s.Load(oid)
	require.NoError(t, err)
	assert.Empty(t, payload)
}

func TestWriteIsContentAddressedAndIdempotent(t *testing.T) {
	s := newTestStore(t)

	oid1, err := s.Write(object.BlobKind, []byte("same content"))
	require.NoError(t, err)
	oid2, err := s.Write(object.BlobKind, []byte("same content"))
	require.NoError(t, err)
	assert.Equal(t, oid1, oid2)
}

func TestLoadMissingObjectReturnsNotFound(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.Load(plumbing.NewObjectId("1111111111111111111111111111111111111111"))
	require.Error(t, err)
	assert.True(t, plumbing.IsObjectNotFound(err))
	assert.False(t, s.Has(plumbing.NewObjectId("1111111111111111111111111111111111111111")))
}

func TestLoadDetectsHashMismatch(t *testing.T) {
	s := newTestStore(t)

	oid, err := s.Write(object.BlobKind, []byte("original"))
	require.NoError(t, err)

	// Replace the loose object on disk with a valid zlib stream of a
	// different envelope, so the stored bytes still decompress but no
	// longer hash to their own filename, simulating bit-rot or disk
	// corruption.
	path := s.path(oid)
	require.NoError(t, os.Chmod(path, 0o644))
	var buf bytes.Buffer
	zw := streamio.GetZlibWriter(&buf)
	_, err = zw.Write(object.CanonicalEncode(object.BlobKind, []byte("tampered")))
	require.NoError(t, err)
	streamio.PutZlibWriter(zw)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	_, _, err = s.Load(oid)
	require.Error(t, err)
	assert.True(t, plumbing.IsCorrupt(err))
}

func TestCacheServesWithoutChangingObservedContent(t *testing.T) {
	s := newTestStore(t, WithCache(1<<20))

	oid, err := s.Write(object.TreeKind, []byte("100644 a.txt\x00"+string(make([]byte, plumbing.HashSize))))
	require.NoError(t, err)

	kind1, payload1, err := s.Load(oid)
	require.NoError(t, err)
	kind2, payload2, err := s.Load(oid)
	require.NoError(t, err)

	assert.Equal(t, kind1, kind2)
	assert.Equal(t, payload1, payload2)
}
