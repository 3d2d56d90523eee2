package relations

import "errors"

// Relationship operations fail with one of these sentinel errors; handlers
// match them with errors.Is and map them to HTTP statuses. Anything else is
// a storage fault.
var (
	// ErrSelfReference is returned when a user targets themselves.
	ErrSelfReference = errors.New("cannot target yourself")

	// ErrDuplicateRequest is returned when a relationship between the pair
	// already exists, in either direction.
	ErrDuplicateRequest = errors.New("relationship already exists")

	// ErrForbidden is returned when the actor does not own the side of the
	// relationship required for the operation.
	ErrForbidden = errors.New("not allowed to act on this request")

	// ErrNotFound is returned when the referenced user or request does not exist.
	ErrNotFound = errors.New("user or request not found")
)
