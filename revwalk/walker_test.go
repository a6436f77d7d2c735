package revwalk

import (
	"testing"

	"github.com/nanogit-vcs/nanogit/object"
	"github.com/nanogit-vcs/nanogit/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySource is an in-memory commitSource double, grounded on the
// teacher's MockBackend in modules/zeta/object/commit_walker_test.go: it
// lets tests build a DAG of commits directly by id instead of going
// through the Store and filesystem.
type memorySource struct {
	objects map[plumbing.ObjectId]storedObject
}

type storedObject struct {
	kind    object.Kind
	payload []byte
}

func newMemorySource() *memorySource {
	return &memorySource{objects: make(map[plumbing.ObjectId]storedObject)}
}

func (m *memorySource) Load(id plumbing.ObjectId) (object.Kind, []byte, error) {
	obj, ok := m.objects[id]
	if !ok {
		return object.InvalidKind, nil, plumbing.NewObjectNotFoundError(id)
	}
	return obj.kind, obj.payload, nil
}

// putBlob stores a non-commit object, used by tests that exercise the
// cache's TypeMismatch handling.
func (m *memorySource) putBlob(payload []byte) plumbing.ObjectId {
	id := object.Hash(object.BlobKind, payload)
	m.objects[id] = storedObject{kind: object.BlobKind, payload: payload}
	return id
}

// put synthesizes a commit with the given author/committer timestamp and
// parents, stores its encoded payload, and returns its ObjectId. The tree
// is always the empty tree and the message is name, so distinct names
// never collide on content (distinct parents or timestamps already
// guarantee that, but this keeps ids easy to reason about in failures).
func (m *memorySource) put(name string, ts int64, parents ...plumbing.ObjectId) plumbing.ObjectId {
	sig := object.Signature{Name: name, Email: name + "@example.com", TimestampSecond: ts, TZOffsetMinutes: 0}
	c := &object.Commit{
		Tree:      plumbing.NewObjectId("4b825dc642cb6eb9a060e54bf8d69288fbee4904"),
		Parents:   parents,
		Author:    sig,
		Committer: sig,
		Message:   name + "\n",
	}
	payload := c.Encode()
	id := object.Hash(object.CommitKind, payload)
	m.objects[id] = storedObject{kind: object.CommitKind, payload: payload}
	return id
}

func ids(seq []*CachedCommit) []plumbing.ObjectId {
	out := make([]plumbing.ObjectId, len(seq))
	for i, c := range seq {
		out[i] = c.Oid
	}
	return out
}

func collect(t *testing.T, w *Walker, interesting, uninteresting []plumbing.ObjectId) []*CachedCommit {
	t.Helper()
	var out []*CachedCommit
	for c, err := range w.Walk(interesting, uninteresting) {
		require.NoError(t, err)
		out = append(out, c)
	}
	return out
}

func TestScenarioLinear(t *testing.T) {
	src := newMemorySource()
	a := src.put("A", 1)
	b := src.put("B", 2, a)
	c := src.put("C", 3, b)
	d := src.put("D", 4, c)
	e := src.put("E", 5, d)

	w := New(NewCache(src))
	got := ids(collect(t, w, []plumbing.ObjectId{e}, nil))
	assert.Equal(t, []plumbing.ObjectId{e, d, c, b, a}, got)
}

func TestScenarioSimpleMerge(t *testing.T) {
	src := newMemorySource()
	a := src.put("A", 1)
	b := src.put("B", 2, a)
	c := src.put("C", 3, a)
	d := src.put("D", 4, b)
	e := src.put("E", 5, c)
	m := src.put("M", 6, d, e)

	w := New(NewCache(src))
	got := ids(collect(t, w, []plumbing.ObjectId{m}, nil))
	assert.Equal(t, []plumbing.ObjectId{m, e, d, c, b, a}, got)
}

func TestScenarioDiamond(t *testing.T) {
	src := newMemorySource()
	a := src.put("A", 1)
	b := src.put("B", 2, a)
	c := src.put("C", 3, a)
	d := src.put("D", 4, b, c)

	w := New(NewCache(src))
	got := ids(collect(t, w, []plumbing.ObjectId{d}, nil))
	assert.Equal(t, []plumbing.ObjectId{d, c, b, a}, got)

	// A is reachable via two paths but must appear exactly once.
	count := 0
	for _, id := range got {
		if id == a {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestScenarioOctopus(t *testing.T) {
	src := newMemorySource()
	a := src.put("A", 1)
	b := src.put("B", 2, a)
	c := src.put("C", 3, a)
	d := src.put("D", 4, a)
	m := src.put("M", 5, b, c, d)

	w := New(NewCache(src))
	got := ids(collect(t, w, []plumbing.ObjectId{m}, nil))
	assert.Equal(t, []plumbing.ObjectId{m, d, c, b, a}, got)
}

func TestScenarioRangeExclusion(t *testing.T) {
	src := newMemorySource()
	a := src.put("A", 1)
	b := src.put("B", 2, a)
	c := src.put("C", 3, a)
	d := src.put("D", 4, b)
	e := src.put("E", 5, c)
	m := src.put("M", 6, d, e)

	w := New(NewCache(src))
	got := ids(collect(t, w, []plumbing.ObjectId{m}, []plumbing.ObjectId{d}))
	assert.Equal(t, []plumbing.ObjectId{m, e, c}, got)
}

func TestScenarioSequentialMerges(t *testing.T) {
	src := newMemorySource()
	base := src.put("base", 1)

	f1a := src.put("f1a", 2, base)
	f1b := src.put("f1b", 3, f1a)
	main1 := src.put("main1", 4, base, f1b)

	f2a := src.put("f2a", 5, main1)
	f2b := src.put("f2b", 6, f2a)
	main2 := src.put("main2", 7, main1, f2b)

	f3a := src.put("f3a", 8, main2)
	f3b := src.put("f3b", 9, f3a)
	main3 := src.put("main3", 10, main2, f3b)

	w := New(NewCache(src))
	got := ids(collect(t, w, []plumbing.ObjectId{main3}, nil))
	assert.Len(t, got, 10)

	seen := make(map[plumbing.ObjectId]bool)
	for _, id := range got {
		assert.False(t, seen[id], "duplicate emission of %s", id)
		seen[id] = true
	}
	for i := 1; i < len(got); i++ {
		prevTs := timestampOf(src, got[i-1])
		currTs := timestampOf(src, got[i])
		assert.GreaterOrEqual(t, prevTs, currTs, "emission order must be non-increasing by timestamp")
	}
}

func timestampOf(src *memorySource, id plumbing.ObjectId) int64 {
	_, payload, _ := src.Load(id)
	c, _ := object.ParseCommit(payload)
	return c.Author.TimestampSecond
}

func TestScenarioCrissCross(t *testing.T) {
	// Two branches cross-merge twice: left and right each merge the
	// other's previous tip, so the shared ancestor base is reachable
	// through four distinct paths from the final merge and must still be
	// emitted exactly once.
	src := newMemorySource()
	base := src.put("base", 1)
	l1 := src.put("l1", 2, base)
	r1 := src.put("r1", 3, base)
	l2 := src.put("l2", 4, l1, r1)
	r2 := src.put("r2", 5, r1, l1)
	tip := src.put("tip", 6, l2, r2)

	w := New(NewCache(src))
	got := ids(collect(t, w, []plumbing.ObjectId{tip}, nil))

	seen := make(map[plumbing.ObjectId]bool)
	for _, id := range got {
		assert.False(t, seen[id], "duplicate emission of %s", id)
		seen[id] = true
	}
	assert.ElementsMatch(t, []plumbing.ObjectId{tip, l2, r2, l1, r1, base}, got)
}

func TestEmptyInterestingYieldsEmptySequence(t *testing.T) {
	src := newMemorySource()
	src.put("A", 1)

	w := New(NewCache(src))
	got := collect(t, w, nil, nil)
	assert.Empty(t, got)
}

func TestRootCommitAloneYieldsSingleElement(t *testing.T) {
	src := newMemorySource()
	a := src.put("A", 1)

	w := New(NewCache(src))
	got := ids(collect(t, w, []plumbing.ObjectId{a}, nil))
	assert.Equal(t, []plumbing.ObjectId{a}, got)
}

func TestUninterestingCoveringAllInterestingYieldsEmpty(t *testing.T) {
	src := newMemorySource()
	a := src.put("A", 1)
	b := src.put("B", 2, a)

	w := New(NewCache(src))
	got := collect(t, w, []plumbing.ObjectId{b}, []plumbing.ObjectId{b})
	assert.Empty(t, got)
}

func TestDeterminismAcrossRepeatedWalks(t *testing.T) {
	src := newMemorySource()
	a := src.put("A", 1)
	b := src.put("B", 2, a)
	c := src.put("C", 3, a)
	d := src.put("D", 4, b, c)

	first := ids(collect(t, New(NewCache(src)), []plumbing.ObjectId{d}, nil))
	second := ids(collect(t, New(NewCache(src)), []plumbing.ObjectId{d}, nil))
	assert.Equal(t, first, second)
}

func TestTimestampTieBreaksByDescendingId(t *testing.T) {
	src := newMemorySource()
	// Two independent roots with the identical timestamp: emission order
	// between them must be determined solely by descending ObjectId.
	a := src.put("A", 100)
	b := src.put("B", 100)
	tip := src.put("tip", 200, a, b)

	w := New(NewCache(src))
	got := ids(collect(t, w, []plumbing.ObjectId{tip}, nil))
	require.Len(t, got, 3)
	assert.Equal(t, tip, got[0])
	last, secondLast := got[2], got[1]
	assert.Equal(t, 1, secondLast.Compare(last))
}

func TestOrderSelectorSwitchesBetweenAuthorAndCommitterTime(t *testing.T) {
	src := newMemorySource()
	root := src.put("root", 1)

	// A commit whose author and committer timestamps disagree about which
	// of two children is "newer": ordering by author vs committer time
	// must reorder the emitted sequence between them.
	sigFast := object.Signature{Name: "fast", Email: "fast@example.com", TimestampSecond: 50, TZOffsetMinutes: 0}
	sigSlow := object.Signature{Name: "fast", Email: "fast@example.com", TimestampSecond: 10, TZOffsetMinutes: 0}
	fast := &object.Commit{Tree: plumbing.NewObjectId("4b825dc642cb6eb9a060e54bf8d69288fbee4904"), Parents: []plumbing.ObjectId{root}, Author: sigFast, Committer: sigSlow, Message: "fast\n"}
	fastPayload := fast.Encode()
	fastId := object.Hash(object.CommitKind, fastPayload)
	src.objects[fastId] = storedObject{kind: object.CommitKind, payload: fastPayload}

	slow := src.put("slow", 20, root)

	byAuthor := ids(collect(t, NewWithOrder(NewCache(src), AuthorTime), []plumbing.ObjectId{fastId, slow}, nil))
	assert.Equal(t, fastId, byAuthor[0])

	byCommitter := ids(collect(t, NewWithOrder(NewCache(src), CommitterTime), []plumbing.ObjectId{fastId, slow}, nil))
	assert.Equal(t, slow, byCommitter[0])
}

func TestMissingParentFailsWalkWithObjectNotFound(t *testing.T) {
	src := newMemorySource()
	dangling := plumbing.NewObjectId("9999999999999999999999999999999999999999")
	tip := src.put("tip", 2, dangling)

	w := New(NewCache(src))
	var sawErr error
	var emitted []plumbing.ObjectId
	for c, err := range w.Walk([]plumbing.ObjectId{tip}, nil) {
		if err != nil {
			sawErr = err
			break
		}
		emitted = append(emitted, c.Oid)
	}
	require.Error(t, sawErr)
	assert.True(t, plumbing.IsObjectNotFound(sawErr))
	// tip's parents are loaded before tip itself is emitted, so the
	// dangling parent stops the walk before anything is yielded.
	assert.Empty(t, emitted)
}
