package core

import (
	"errors"
	"fmt"
)

// Common errors. Layers wrap these sentinels with fmt.Errorf("%w: ...")
// so callers can branch with errors.Is.
var (
	// ErrNotFound means an object or type id, or a path, does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument means malformed caller input: a missing required
	// parameter, a cardinality mismatch, an unknown property id, or an
	// unresolvable object type.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownType means wire data names a base type this runtime does
	// not recognize.
	ErrUnknownType = errors.New("unknown base type")

	// ErrInvariant means an invariant this runtime guarantees was violated,
	// e.g. an object id that cannot be resolved from its own properties.
	ErrInvariant = errors.New("invariant violated")

	// ErrUnsupported means the binding or repository does not support a
	// requested capability.
	ErrUnsupported = errors.New("operation not supported")
)

// ErrObjectGone signals that a previously fetched object no longer exists
// on the repository. Refresh translates a binding not-found into this so
// callers can tell a stale handle from any other fetch failure. It still
// matches ErrNotFound under errors.Is.
var ErrObjectGone = fmt.Errorf("%w: object no longer exists", ErrNotFound)
