// Package model holds the typed records parsed out of jj's templated output.
// Records are plain values owned by the app root; cross-view references are
// change ids and paths, never pointers.
package model

import "strings"

// RootChangeID is the change id of jj's root commit (all 'z').
const RootChangeID = "zzzzzzzzzzzz"

// Change is one commit as rendered by the log template.
type Change struct {
	ChangeID    string
	CommitID    string
	AuthorName  string
	AuthorEmail string
	Timestamp   string
	Description string
	Bookmarks   []string
	Parents     []string
	// GraphPrefix is jj's pre-rendered glyph column for this row, preserved
	// verbatim so the DAG renders stably across refreshes.
	GraphPrefix string
	// GraphTail holds glyph-only continuation lines (elided revisions etc.)
	// that followed this row in the graph output.
	GraphTail []string

	IsWorkingCopy bool
	IsEmpty       bool
	IsConflicted  bool
	IsImmutable   bool
}

// IsRoot reports whether this is the repository root commit.
func (c *Change) IsRoot() bool {
	return c.ChangeID != "" && strings.Trim(c.ChangeID, "z") == ""
}

// ShortDescription returns the first line of the description, or a
// placeholder for empty descriptions.
func (c *Change) ShortDescription() string {
	line, _, _ := strings.Cut(c.Description, "\n")
	if strings.TrimSpace(line) == "" {
		return "(no description set)"
	}
	return line
}

// HasBookmark reports whether name is attached to this change.
func (c *Change) HasBookmark(name string) bool {
	for _, b := range c.Bookmarks {
		if b == name {
			return true
		}
	}
	return false
}
