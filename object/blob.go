package object

// Blob is a stored file's contents, referenced only for completeness:
// spec.md's traversal never parses a blob, but the Store's `kind`
// dispatch and the `cat-file`/`hash-object` plumbing commands need
// something to decode and encode at the leaves of the object graph.
type Blob struct {
	Content []byte
}

// Encode returns the blob's payload verbatim; a blob's canonical payload
// is simply its raw bytes.
func (b *Blob) Encode() []byte {
	return b.Content
}

// ParseBlob wraps payload as a Blob. Blobs have no grammar to violate, so
// this never fails.
func ParseBlob(payload []byte) *Blob {
	return &Blob{Content: payload}
}
