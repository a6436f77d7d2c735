// Package refs resolves symbolic references and revision-range
// expressions (the external interface spec.md §6 names: "resolved
// upstream from refs or explicit revisions") into the interesting and
// uninteresting ObjectId sets the revwalk.Walker consumes. It never reads
// or writes commit objects itself; resolution bottoms out at a Store.
package refs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nanogit-vcs/nanogit/plumbing"
)

// minAbbrevHexLen is the shortest prefix Resolve treats as an abbreviated
// object id rather than a reference name, matching Git's floor on
// core.abbrev.
const minAbbrevHexLen = 4

const (
	referencePrefix = "refs/"
	headPrefix      = referencePrefix + "heads/"
	tagPrefix       = referencePrefix + "tags/"
	remotePrefix    = referencePrefix + "remotes/"
	symrefPrefix    = "ref: "
)

// Name is a fully-qualified reference name, e.g. "refs/heads/main".
type Name string

// IsBranch reports whether n names a local branch.
func (n Name) IsBranch() bool { return strings.HasPrefix(string(n), headPrefix) }

// IsTag reports whether n names a tag.
func (n Name) IsTag() bool { return strings.HasPrefix(string(n), tagPrefix) }

// IsRemote reports whether n names a remote-tracking branch.
func (n Name) IsRemote() bool { return strings.HasPrefix(string(n), remotePrefix) }

// Short strips the well-known prefix (refs/heads/, refs/tags/,
// refs/remotes/) from n, returning it unchanged if none applies.
func (n Name) Short() string {
	switch {
	case n.IsBranch():
		return strings.TrimPrefix(string(n), headPrefix)
	case n.IsTag():
		return strings.TrimPrefix(string(n), tagPrefix)
	case n.IsRemote():
		return strings.TrimPrefix(string(n), remotePrefix)
	default:
		return string(n)
	}
}

// Reference is a named pointer at either a concrete ObjectId (a "hash
// reference") or another Name (a "symbolic reference", e.g. HEAD).
type Reference struct {
	Name   Name
	Oid    plumbing.ObjectId
	Target Name // non-empty for a symbolic reference; Oid is then unset
}

// IsSymbolic reports whether the reference points at another reference
// rather than directly at a commit.
func (r Reference) IsSymbolic() bool { return r.Target != "" }

// searchOrder is Git's shorten_unambiguous_ref resolution order: try the
// name literally, then under refs/, refs/tags/, refs/heads/,
// refs/remotes/, and finally as a remote HEAD.
var searchOrder = []string{
	"%s",
	"refs/%s",
	"refs/tags/%s",
	"refs/heads/%s",
	"refs/remotes/%s",
	"refs/remotes/%s/HEAD",
}

// Resolver resolves reference and revision syntax against a repository's
// refs directory and loose object store, grounded on the teacher's
// ReferenceName/RefRevParseRules (modules/plumbing/reference.go).
type Resolver struct {
	gitDir string
	store  objectExistence
}

// objectExistence is the subset of store.Store the Resolver needs: enough
// to recognize an abbreviated or full hex id without depending on the
// store package's concrete type (avoiding an import cycle and keeping
// this package's surface minimal, matching spec.md §6's "resolved
// upstream" framing — the Resolver is itself an external collaborator to
// the walker, not a core component).
type objectExistence interface {
	Has(id plumbing.ObjectId) bool
}

// NewResolver returns a Resolver rooted at gitDir (a repository's ".git"
// directory, or the repository root itself for a bare repository),
// consulting store for object existence checks.
func NewResolver(gitDir string, store objectExistence) *Resolver {
	return &Resolver{gitDir: gitDir, store: store}
}

// Resolve looks up name (a short or fully-qualified reference name, or a
// 40-character hex object id) and returns the ObjectId it ultimately
// points at, following symbolic references.
func (r *Resolver) Resolve(name string) (plumbing.ObjectId, error) {
	if oid, err := plumbing.ParseObjectId(name); err == nil {
		return oid, nil
	}

	if oid, ok, err := r.resolveAbbrevHex(name); err != nil {
		return plumbing.ZeroOid, err
	} else if ok {
		return oid, nil
	}

	for _, pattern := range searchOrder {
		candidate := strings.Replace(pattern, "%s", name, 1)
		if oid, ok := r.readRef(candidate, 0); ok {
			return oid, nil
		}
	}
	return plumbing.ZeroOid, &ReferenceNotFoundError{Name: name}
}

// resolveAbbrevHex treats s as an abbreviated object id, matching Git's
// short-hash lookup: it scans the loose-object shard named by s's first
// two hex digits for a filename sharing the remaining prefix, then
// confirms the candidate against store. ok is false (with a nil error)
// whenever s isn't abbreviated-hex-shaped or no loose object matches,
// letting Resolve fall through to reference-name resolution.
func (r *Resolver) resolveAbbrevHex(s string) (plumbing.ObjectId, bool, error) {
	if len(s) < minAbbrevHexLen || len(s) >= plumbing.HashHexSize || !isHex(s) {
		return plumbing.ZeroOid, false, nil
	}

	shard := s[:2]
	suffix := s[2:]
	entries, err := os.ReadDir(filepath.Join(r.gitDir, "objects", shard))
	if err != nil {
		return plumbing.ZeroOid, false, nil
	}

	var matches []plumbing.ObjectId
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), suffix) {
			continue
		}
		oid, err := plumbing.ParseObjectId(shard + entry.Name())
		if err != nil {
			continue
		}
		matches = append(matches, oid)
	}

	switch len(matches) {
	case 0:
		return plumbing.ZeroOid, false, nil
	case 1:
		if !r.store.Has(matches[0]) {
			return plumbing.ZeroOid, false, nil
		}
		return matches[0], true, nil
	default:
		return plumbing.ZeroOid, false, &AmbiguousObjectError{Prefix: s, Count: len(matches)}
	}
}

func isHex(s string) bool {
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// maxSymrefDepth bounds symbolic reference resolution: a real repository
// never has a chain this long, so hitting it means a cycle rather than a
// legitimate alias chain.
const maxSymrefDepth = 10

// readRef resolves name as a loose ref file under gitDir, falling back to
// a packed-refs entry when no such file exists (the common state of a
// repository's branches once they've been through `git gc`).
func (r *Resolver) readRef(name string, depth int) (plumbing.ObjectId, bool) {
	if depth > maxSymrefDepth {
		return plumbing.ZeroOid, false
	}
	data, err := os.ReadFile(filepath.Join(r.gitDir, filepath.FromSlash(name)))
	if err != nil {
		return r.readPackedRef(name)
	}
	line := strings.TrimSpace(string(data))
	if strings.HasPrefix(line, symrefPrefix) {
		return r.readRef(strings.TrimPrefix(line, symrefPrefix), depth+1)
	}
	oid, err := plumbing.ParseObjectId(line)
	if err != nil {
		return plumbing.ZeroOid, false
	}
	return oid, true
}

// readPackedRef scans gitDir/packed-refs for a line naming ref exactly.
// The format is one "<hex> <refname>" pair per line, with "#"-prefixed
// header/comment lines and "^"-prefixed peeled-tag annotations (the
// dereferenced id of the preceding tag) ignored.
func (r *Resolver) readPackedRef(ref string) (plumbing.ObjectId, bool) {
	data, err := os.ReadFile(filepath.Join(r.gitDir, "packed-refs"))
	if err != nil {
		return plumbing.ZeroOid, false
	}
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" || line[0] == '#' || line[0] == '^' {
			continue
		}
		hex, name, ok := strings.Cut(line, " ")
		if !ok || name != ref {
			continue
		}
		if oid, err := plumbing.ParseObjectId(hex); err == nil {
			return oid, true
		}
	}
	return plumbing.ZeroOid, false
}
