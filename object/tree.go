package object

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/nanogit-vcs/nanogit/plumbing"
)

// FileMode is a tree entry's Git-style octal file mode (e.g. 100644 for a
// regular file, 40000 for a subtree).
type FileMode uint32

const (
	ModeFile    FileMode = 0o100644
	ModeExec    FileMode = 0o100755
	ModeSymlink FileMode = 0o120000
	ModeDir     FileMode = 0o040000
)

// IsDir reports whether the mode denotes a subtree.
func (m FileMode) IsDir() bool {
	return m == ModeDir
}

// TreeEntry is one named child of a Tree: its mode, name, and the
// ObjectId of the blob or subtree it points at.
type TreeEntry struct {
	Mode FileMode
	Name string
	Oid  plumbing.ObjectId
}

// Tree is a directory snapshot: an ordered list of named blob/subtree
// references. The walker never parses trees; they exist so the Store's
// kind dispatch and `ls-tree`-style plumbing have a complete object model
// to operate on.
type Tree struct {
	Entries []*TreeEntry
}

// sortName is Git's tree sort key: entries compare as if directory names
// carried a trailing slash, so "foo" sorts after "foo.c" but before
// "foo/bar" would if it were a sibling rather than nested.
func sortName(e *TreeEntry) string {
	if e.Mode.IsDir() {
		return e.Name + "/"
	}
	return e.Name
}

// Encode writes t's canonical payload: each entry as
// "<octal-mode> <name>\0<20-raw-bytes>", entries sorted by Git's tree
// order.
func (t *Tree) Encode() []byte {
	entries := make([]*TreeEntry, len(t.Entries))
	copy(entries, t.Entries)
	sort.Slice(entries, func(i, j int) bool {
		return sortName(entries[i]) < sortName(entries[j])
	})

	var buf bytes.Buffer
	for _, e := range entries {
		fmt.Fprintf(&buf, "%o %s", uint32(e.Mode), e.Name)
		buf.WriteByte(0)
		buf.Write(e.Oid[:])
	}
	return buf.Bytes()
}

// ParseTree decodes a tree payload, failing with MalformedObjectError on
// a truncated entry, an invalid mode, or an object id short of
// plumbing.HashSize raw bytes.
func ParseTree(payload []byte) (*Tree, error) {
	t := &Tree{}
	for len(payload) > 0 {
		sp := bytes.IndexByte(payload, ' ')
		if sp < 0 {
			return nil, &plumbing.MalformedObjectError{Reason: "tree entry missing mode separator"}
		}
		mode, err := strconv.ParseUint(string(payload[:sp]), 8, 32)
		if err != nil {
			return nil, &plumbing.MalformedObjectError{Reason: "tree entry has invalid mode: " + err.Error()}
		}
		rest := payload[sp+1:]
		nul := bytes.IndexByte(rest, 0)
		if nul < 0 {
			return nil, &plumbing.MalformedObjectError{Reason: "tree entry missing name terminator"}
		}
		name := string(rest[:nul])
		rest = rest[nul+1:]
		if len(rest) < plumbing.HashSize {
			return nil, &plumbing.MalformedObjectError{Reason: "tree entry truncated object id"}
		}
		var oid plumbing.ObjectId
		copy(oid[:], rest[:plumbing.HashSize])
		t.Entries = append(t.Entries, &TreeEntry{Mode: FileMode(mode), Name: name, Oid: oid})
		payload = rest[plumbing.HashSize:]
	}
	return t, nil
}
