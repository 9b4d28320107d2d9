package model

import "strings"

// Operation is one entry of `jj op log`. Immutable within a snapshot.
type Operation struct {
	ID          string
	User        string
	Timestamp   string
	Tags        string
	Description string
	// IsCurrent marks the first entry of the op log.
	IsCurrent bool
}

// ShortID returns the 12-char prefix used for display and `op restore`.
func (o *Operation) ShortID() string {
	if len(o.ID) <= 12 {
		return o.ID
	}
	return o.ID[:12]
}

// IsUndoLike reports whether this operation is an undo or restore, which is
// what the redo chain detection keys on.
func (o *Operation) IsUndoLike() bool {
	desc := strings.ToLower(o.Description)
	return strings.HasPrefix(desc, "undo") || strings.HasPrefix(desc, "restore")
}
