// Package object implements the canonical byte encoding, content
// addressing, and in-memory representation of the three Git object kinds
// this core understands: blobs, trees and commits.
package object

import (
	"bytes"
	"strconv"

	"github.com/nanogit-vcs/nanogit/plumbing"
)

// Kind identifies the variant of an encoded object.
type Kind int8

const (
	InvalidKind Kind = iota
	BlobKind
	TreeKind
	CommitKind
)

// String returns the lowercase kind name used in the canonical envelope
// header, matching Git's own object type names.
func (k Kind) String() string {
	switch k {
	case BlobKind:
		return "blob"
	case TreeKind:
		return "tree"
	case CommitKind:
		return "commit"
	default:
		return "invalid"
	}
}

// KindFromString parses a canonical envelope header's kind field.
// Unrecognized kinds return InvalidKind rather than an error: the Store
// passes that kind through unchanged, and revwalk's Cache turns any
// non-commit kind into a TypeMismatchError with the ObjectId in context,
// so unknown kinds are reported rather than crashing the parser.
func KindFromString(s string) Kind {
	switch s {
	case "blob":
		return BlobKind
	case "tree":
		return TreeKind
	case "commit":
		return CommitKind
	default:
		return InvalidKind
	}
}

// CanonicalEncode produces the canonical byte envelope for an object:
//
//	"<kind> <decimal_size>\0<payload>"
//
// This is a pure function of (kind, payload); ObjectId is always
// Hash(CanonicalEncode(kind, payload)) over the full envelope, never just
// the payload.
func CanonicalEncode(kind Kind, payload []byte) []byte {
	header := kind.String() + " " + strconv.Itoa(len(payload)) + "\x00"
	buf := make([]byte, 0, len(header)+len(payload))
	buf = append(buf, header...)
	buf = append(buf, payload...)
	return buf
}

// Hash returns the ObjectId of the canonical envelope for (kind, payload).
func Hash(kind Kind, payload []byte) plumbing.ObjectId {
	h := plumbing.NewHasher()
	_, _ = h.Write(CanonicalEncode(kind, payload))
	return h.Sum()
}

// DecodeEnvelope splits a canonical envelope into its kind and payload,
// verifying the declared size matches the actual payload length. It does
// not verify the hash; callers that read envelopes off disk (the Store)
// are responsible for that, since only they know the ObjectId the bytes
// are supposed to hash to.
func DecodeEnvelope(envelope []byte) (kind Kind, payload []byte, err error) {
	sp := bytes.IndexByte(envelope, ' ')
	if sp < 0 {
		return InvalidKind, nil, &plumbing.MalformedObjectError{Reason: "envelope missing kind separator"}
	}
	nul := bytes.IndexByte(envelope, 0)
	if nul < 0 || nul < sp {
		return InvalidKind, nil, &plumbing.MalformedObjectError{Reason: "envelope missing NUL separator"}
	}
	kind = KindFromString(string(envelope[:sp]))
	sizeField := string(envelope[sp+1 : nul])
	size, convErr := strconv.Atoi(sizeField)
	if convErr != nil || size < 0 {
		return InvalidKind, nil, &plumbing.MalformedObjectError{Reason: "envelope has non-decimal size: " + sizeField}
	}
	payload = envelope[nul+1:]
	if len(payload) != size {
		return InvalidKind, nil, &plumbing.MalformedObjectError{Reason: "envelope size does not match payload length"}
	}
	return kind, payload, nil
}
