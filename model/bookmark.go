package model

import (
	"fmt"
	"sort"
)

// Bookmark aggregates the local ref and all remote refs of one bookmark name.
type Bookmark struct {
	Name string
	// Target is the change id of the local ref; empty if the bookmark only
	// exists on remotes (or was deleted locally).
	Target string
	// Remotes maps remote name to the change id that remote points at. A
	// remote target may differ from the local one.
	Remotes map[string]string
	// Tracked maps remote name to whether the remote ref is tracked locally.
	Tracked map[string]bool
	// Conflicted means the local ref has conflicting targets.
	Conflicted bool
}

// IsLocal reports whether a local ref exists.
func (b *Bookmark) IsLocal() bool {
	return b.Target != ""
}

// RemoteNames returns the remotes carrying this bookmark, sorted.
func (b *Bookmark) RemoteNames() []string {
	names := make([]string, 0, len(b.Remotes))
	for r := range b.Remotes {
		names = append(names, r)
	}
	sort.Strings(names)
	return names
}

// UntrackedRemotes returns remotes whose ref exists but is not tracked.
func (b *Bookmark) UntrackedRemotes() []string {
	var out []string
	for _, r := range b.RemoteNames() {
		if !b.Tracked[r] {
			out = append(out, r)
		}
	}
	return out
}

// FullName formats name@remote, or the bare name for the local ref.
func (b *Bookmark) FullName(remote string) string {
	if remote == "" {
		return b.Name
	}
	return fmt.Sprintf("%s@%s", b.Name, remote)
}

// OutOfSync reports whether any tracked remote points somewhere other than
// the local target.
func (b *Bookmark) OutOfSync() bool {
	if b.Target == "" {
		return false
	}
	for r, target := range b.Remotes {
		if b.Tracked[r] && target != b.Target {
			return true
		}
	}
	return false
}
