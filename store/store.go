// Package store implements the object database contract from spec.md
// §4.2: a read path compatible with Git's loose-object layout
// (objects/<2-hex>/<38-hex>, zlib-compressed canonical envelopes,
// SHA-1 content addressing) plus the write path spec.md notes "exists
// but is not exercised by the traversal" — used here by the
// hash-object plumbing command and by tests that need to populate a
// repository without a real Git checkout.
package store

import (
	"io"
	"os"
	"path/filepath"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/nanogit-vcs/nanogit/internal/streamio"
	"github.com/nanogit-vcs/nanogit/object"
	"github.com/nanogit-vcs/nanogit/plumbing"
)

// Store is a read/write handle onto a repository's loose object
// directory.
type Store struct {
	root  string
	cache *ristretto.Cache[string, []byte]
}

// Option configures a Store at construction.
type Option func(*Store)

// WithCache enables a bounded in-memory cache of decoded (kind, payload)
// envelope bytes in front of the filesystem, grounded on the teacher's
// Database.metaLRU (WithEnableLRU). This is a performance layer only: a
// cache miss falls back to disk and re-verifies the hash exactly as an
// uncached Load would, so it can never make Load return stale or
// incorrect data, and — unlike the Commit Cache in package revwalk — it
// is allowed to evict, because the underlying loose object is immutable
// and always available to re-read.
func WithCache(maxCost int64) Option {
	return func(s *Store) {
		c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
			NumCounters: maxCost * 10,
			MaxCost:     maxCost,
			BufferItems: 64,
		})
		if err == nil {
			s.cache = c
		}
	}
}

// Open returns a Store rooted at <root>/objects, creating that directory
// if it does not already exist.
func Open(root string, opts ...Option) (*Store, error) {
	objDir := filepath.Join(root, "objects")
	if err := os.MkdirAll(objDir, 0o755); err != nil {
		return nil, err
	}
	s := &Store{root: objDir}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Close releases the store's cache resources, if any.
func (s *Store) Close() {
	if s.cache != nil {
		s.cache.Close()
	}
}

func (s *Store) path(oid plumbing.ObjectId) string {
	hex := oid.String()
	return filepath.Join(s.root, hex[:2], hex[2:])
}

// Has reports whether a loose object exists for oid, without reading or
// decompressing it.
func (s *Store) Has(oid plumbing.ObjectId) bool {
	if s.cache != nil {
		if _, ok := s.cache.Get(oid.String()); ok {
			return true
		}
	}
	_, err := os.Stat(s.path(oid))
	return err == nil
}

// Load reads, decompresses and verifies the loose object stored at oid,
// returning its kind and payload. It fails with ObjectNotFoundError if no
// such object exists, CorruptError if decompression fails or the bytes do
// not hash back to oid, and IoError for any other filesystem failure.
func (s *Store) Load(oid plumbing.ObjectId) (object.Kind, []byte, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(oid.String()); ok {
			kind, payload, err := object.DecodeEnvelope(cached)
			if err == nil {
				return kind, payload, nil
			}
			// A cached entry that fails to decode indicates the cache
			// itself is corrupt (never the on-disk object, since it was
			// verified before being cached); fall through to disk.
		}
	}

	f, err := os.Open(s.path(oid))
	if err != nil {
		if os.IsNotExist(err) {
			return object.InvalidKind, nil, plumbing.NewObjectNotFoundError(oid)
		}
		return object.InvalidKind, nil, plumbing.NewIoError("open", oid, err)
	}
	defer f.Close()

	zr, err := streamio.GetZlibReader(f)
	if err != nil {
		return object.InvalidKind, nil, plumbing.NewCorruptError(oid, "zlib: "+err.Error())
	}
	envelope, err := io.ReadAll(zr)
	streamio.PutZlibReader(zr)
	if err != nil {
		return object.InvalidKind, nil, plumbing.NewCorruptError(oid, "zlib: "+err.Error())
	}

	actual := plumbing.NewHasher()
	_, _ = actual.Write(envelope)
	if actual.Sum() != oid {
		return object.InvalidKind, nil, plumbing.NewCorruptError(oid, "hash mismatch")
	}

	kind, payload, err := object.DecodeEnvelope(envelope)
	if err != nil {
		return object.InvalidKind, nil, err
	}

	if s.cache != nil {
		s.cache.Set(oid.String(), envelope, int64(len(envelope)))
	}
	return kind, payload, nil
}

// Write encodes (kind, payload) into its canonical envelope, computes its
// ObjectId, and stores it compressed at the corresponding loose-object
// path, atomically (via a temp file renamed into place) so concurrent
// readers never observe a partially written object.
func (s *Store) Write(kind object.Kind, payload []byte) (plumbing.ObjectId, error) {
	envelope := object.CanonicalEncode(kind, payload)
	oid := plumbing.NewHasher()
	_, _ = oid.Write(envelope)
	id := oid.Sum()

	dst := s.path(id)
	if _, err := os.Stat(dst); err == nil {
		return id, nil // content-addressed: already present, nothing to do
	}

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return id, plumbing.NewIoError("mkdir", id, err)
	}

	tmp, err := os.CreateTemp(dir, "incoming-*")
	if err != nil {
		return id, plumbing.NewIoError("create", id, err)
	}
	tmpPath := tmp.Name()

	zw := streamio.GetZlibWriter(tmp)
	_, writeErr := zw.Write(envelope)
	streamio.PutZlibWriter(zw)
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		_ = os.Remove(tmpPath)
		if writeErr != nil {
			return id, plumbing.NewIoError("write", id, writeErr)
		}
		return id, plumbing.NewIoError("close", id, closeErr)
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		_ = os.Remove(tmpPath)
		return id, plumbing.NewIoError("rename", id, err)
	}
	return id, nil
}
