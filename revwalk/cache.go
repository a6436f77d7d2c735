// Package revwalk implements the Commit Cache and Revision Walker from
// spec.md §4.3–4.4: the priority-queue, merge-aware traversal that backs
// `nanogit log`.
package revwalk

import (
	"github.com/nanogit-vcs/nanogit/object"
	"github.com/nanogit-vcs/nanogit/plumbing"
)

// commitSource loads a commit's raw bytes, however they are stored. The
// Cache depends on this instead of *store.Store directly so tests can
// supply an in-memory double, grounded on the teacher's Backend interface
// in modules/zeta/object/storage.go.
type commitSource interface {
	Load(id plumbing.ObjectId) (object.Kind, []byte, error)
}

// CachedCommit is the traversal-relevant projection of a commit: its
// parents in declaration order and both timestamps. The cache stores both
// author and committer time (not just the one used for ordering) since
// §9's Open Question leaves ordering configurable via TimeOf.
type CachedCommit struct {
	Oid           plumbing.ObjectId
	Parents       []plumbing.ObjectId
	AuthorTime    int64
	CommitterTime int64
}

// Cache is a process-local, append-only memoization of CachedCommit by
// ObjectId. Per spec.md §4.3, entries are never invalidated or mutated —
// the Store's objects are immutable, so there is nothing to invalidate.
// A Cache is owned by exactly one Walker; it is not safe to share a
// single Cache across concurrent walks that mutate it (each Walker should
// construct its own), though the underlying commitSource may be shared
// safely since it is read-only.
type Cache struct {
	source commitSource
	byId   map[plumbing.ObjectId]*CachedCommit
}

// NewCache returns a Cache backed by source.
func NewCache(source commitSource) *Cache {
	return &Cache{
		source: source,
		byId:   make(map[plumbing.ObjectId]*CachedCommit),
	}
}

// GetOrLoad returns the cached projection of id, loading and parsing it
// from the source on first reference. It fails with the Store's error
// kinds (ObjectNotFound, Corrupt, IoError), or with TypeMismatch if the
// stored object is not a commit.
//
// This stores the FULL parent sequence, not just the first parent: the
// spec calls out storing only the first parent as the historical defect
// that silently turns merge commits into chain commits and breaks the
// walker's merge handling. Every parent is needed so uninteresting
// propagation and emission both see the true DAG shape.
func (c *Cache) GetOrLoad(id plumbing.ObjectId) (*CachedCommit, error) {
	if cc, ok := c.byId[id]; ok {
		return cc, nil
	}

	kind, payload, err := c.source.Load(id)
	if err != nil {
		return nil, err
	}
	if kind != object.CommitKind {
		return nil, plumbing.NewTypeMismatchError(id, "commit", kind.String())
	}

	commit, err := object.ParseCommit(payload)
	if err != nil {
		return nil, err
	}

	cc := &CachedCommit{
		Oid:           id,
		Parents:       commit.Parents,
		AuthorTime:    commit.Author.TimestampSecond,
		CommitterTime: commit.Committer.TimestampSecond,
	}
	c.byId[id] = cc
	return cc, nil
}

// Peek returns the cached entry for id without touching the source,
// reporting whether it was present.
func (c *Cache) Peek(id plumbing.ObjectId) (*CachedCommit, bool) {
	cc, ok := c.byId[id]
	return cc, ok
}
