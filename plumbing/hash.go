// Package plumbing defines the low-level value types shared across the
// object database, the commit cache and the revision walker: the
// content-addressed ObjectId and the typed error kinds those layers
// surface.
package plumbing

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"hash"
	"sort"
	"strconv"
)

const (
	// HashSize is the width in bytes of an ObjectId, matching Git's SHA-1
	// object names.
	HashSize = 20
	// HashHexSize is the width of an ObjectId's hexadecimal encoding.
	HashHexSize = HashSize * 2
)

// ObjectId is a content address: the SHA-1 digest of an object's canonical
// envelope. Total order is lexicographic on the raw bytes.
type ObjectId [HashSize]byte

// ZeroOid is the all-zero ObjectId, used as a sentinel for "no object".
var ZeroOid ObjectId

// NewObjectId decodes a 40-character hex string into an ObjectId. Invalid
// input yields the zero value; callers that must reject malformed input
// should use ParseObjectId instead.
func NewObjectId(hex string) ObjectId {
	oid, _ := ParseObjectId(hex)
	return oid
}

// ParseObjectId decodes a 40-character hex string (either case) into an
// ObjectId, failing if the length or alphabet is wrong.
func ParseObjectId(s string) (ObjectId, error) {
	if len(s) != HashHexSize {
		return ZeroOid, &MalformedObjectError{Reason: "object id must be 40 hex characters, got " + strconv.Itoa(len(s))}
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return ZeroOid, &MalformedObjectError{Reason: "object id is not valid hex: " + err.Error()}
	}
	var oid ObjectId
	copy(oid[:], b)
	return oid, nil
}

// IsZero reports whether oid is the all-zero ObjectId.
func (oid ObjectId) IsZero() bool {
	return oid == ZeroOid
}

// String returns the 40-character lowercase hex encoding of oid.
func (oid ObjectId) String() string {
	return hex.EncodeToString(oid[:])
}

// Less reports whether oid sorts strictly before rhs, lexicographically on
// the raw bytes.
func (oid ObjectId) Less(rhs ObjectId) bool {
	return bytes.Compare(oid[:], rhs[:]) < 0
}

// Compare returns -1, 0, or 1 as oid is less than, equal to, or greater
// than rhs, lexicographically on the raw bytes.
func (oid ObjectId) Compare(rhs ObjectId) int {
	return bytes.Compare(oid[:], rhs[:])
}

// ObjectIdSlice attaches sort.Interface to []ObjectId, increasing order.
type ObjectIdSlice []ObjectId

func (s ObjectIdSlice) Len() int           { return len(s) }
func (s ObjectIdSlice) Less(i, j int) bool { return s[i].Less(s[j]) }
func (s ObjectIdSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// SortObjectIds sorts ids in increasing lexicographic order.
func SortObjectIds(ids []ObjectId) {
	sort.Sort(ObjectIdSlice(ids))
}

// Hasher accumulates a canonical object envelope and yields its ObjectId.
type Hasher struct {
	hash.Hash
}

// NewHasher returns a Hasher ready to accept canonical envelope bytes.
func NewHasher() Hasher {
	return Hasher{Hash: sha1.New()}
}

// Sum finalizes the hash and returns the resulting ObjectId.
func (h Hasher) Sum() (oid ObjectId) {
	copy(oid[:], h.Hash.Sum(nil))
	return
}
