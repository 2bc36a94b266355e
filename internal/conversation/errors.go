package conversation

import "errors"

var (
	// ErrDetailNotFound is returned when a classified conversation no longer
	// contains a message matching its outcome. The classifier only buckets a
	// conversation after seeing such a message, so this signals an
	// inconsistent classification rather than an empty detail.
	ErrDetailNotFound = errors.New("conversation: no message matches the classified outcome")
)
