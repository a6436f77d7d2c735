package plumbing

import "fmt"

// ErrStop is a sentinel for an iteration callback to stop early without
// signalling failure. No function in this module returns or checks it.
var ErrStop = fmt.Errorf("stop iteration")

// ObjectNotFoundError reports that no loose object exists for the given id.
type ObjectNotFoundError struct {
	Oid ObjectId
}

func (e *ObjectNotFoundError) Error() string {
	return fmt.Sprintf("nanogit: object not found: %s", e.Oid)
}

// NewObjectNotFoundError constructs an ObjectNotFoundError for oid.
func NewObjectNotFoundError(oid ObjectId) error {
	return &ObjectNotFoundError{Oid: oid}
}

// IsObjectNotFound reports whether err is an ObjectNotFoundError.
func IsObjectNotFound(err error) bool {
	_, ok := err.(*ObjectNotFoundError)
	return ok
}

// CorruptError reports that an object's stored bytes failed to decompress
// or did not hash to the id under which they were stored.
type CorruptError struct {
	Oid    ObjectId
	Reason string
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("nanogit: corrupt object %s: %s", e.Oid, e.Reason)
}

// NewCorruptError constructs a CorruptError for oid.
func NewCorruptError(oid ObjectId, reason string) error {
	return &CorruptError{Oid: oid, Reason: reason}
}

// IsCorrupt reports whether err is a CorruptError.
func IsCorrupt(err error) bool {
	_, ok := err.(*CorruptError)
	return ok
}

// MalformedObjectError reports that a commit (or other object) payload
// does not conform to its grammar.
type MalformedObjectError struct {
	Oid    ObjectId
	Reason string
}

func (e *MalformedObjectError) Error() string {
	if e.Oid.IsZero() {
		return fmt.Sprintf("nanogit: malformed object: %s", e.Reason)
	}
	return fmt.Sprintf("nanogit: malformed object %s: %s", e.Oid, e.Reason)
}

// IsMalformedObject reports whether err is a MalformedObjectError.
func IsMalformedObject(err error) bool {
	_, ok := err.(*MalformedObjectError)
	return ok
}

// TypeMismatchError reports that an object was loaded expecting one kind
// but the store reports another.
type TypeMismatchError struct {
	Oid      ObjectId
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("nanogit: object %s is %s, not %s", e.Oid, e.Actual, e.Expected)
}

// NewTypeMismatchError constructs a TypeMismatchError for oid.
func NewTypeMismatchError(oid ObjectId, expected, actual string) error {
	return &TypeMismatchError{Oid: oid, Expected: expected, Actual: actual}
}

// IsTypeMismatch reports whether err is a TypeMismatchError.
func IsTypeMismatch(err error) bool {
	_, ok := err.(*TypeMismatchError)
	return ok
}

// IoError wraps an underlying filesystem error, retaining it as context.
type IoError struct {
	Op  string
	Oid ObjectId
	Err error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("nanogit: %s %s: %v", e.Op, e.Oid, e.Err)
}

func (e *IoError) Unwrap() error {
	return e.Err
}

// NewIoError wraps err as an IoError describing op on oid.
func NewIoError(op string, oid ObjectId, err error) error {
	return &IoError{Op: op, Oid: oid, Err: err}
}

// IsIoError reports whether err is an IoError.
func IsIoError(err error) bool {
	_, ok := err.(*IoError)
	return ok
}
