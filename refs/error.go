package refs

import "fmt"

// ReferenceNotFoundError reports that a revision expression's name
// component could not be resolved to any reference or object id.
type ReferenceNotFoundError struct {
	Name string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("nanogit: reference not found: %s", e.Name)
}

// IsReferenceNotFound reports whether err is a ReferenceNotFoundError.
func IsReferenceNotFound(err error) bool {
	_, ok := err.(*ReferenceNotFoundError)
	return ok
}

// AmbiguousObjectError reports that an abbreviated hex id matched more
// than one loose object, so Resolve cannot pick one without guessing.
type AmbiguousObjectError struct {
	Prefix string
	Count  int
}

func (e *AmbiguousObjectError) Error() string {
	return fmt.Sprintf("nanogit: %s is ambiguous (%d matching objects)", e.Prefix, e.Count)
}

// IsAmbiguousObject reports whether err is an AmbiguousObjectError.
func IsAmbiguousObject(err error) bool {
	_, ok := err.(*AmbiguousObjectError)
	return ok
}
