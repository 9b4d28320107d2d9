package jj

import "strings"

// Push dry-run preview grammar. Only consulted when the dry-run exits 0;
// non-zero exits go through the error taxonomy instead.

// PushActionKind classifies one bookmark movement in a push preview.
type PushActionKind int

const (
	// PushMoveForward is a safe fast-forward.
	PushMoveForward PushActionKind = iota
	// PushMoveSideways is a diverged move (after rebase); needs force.
	PushMoveSideways
	// PushMoveBackward is a regression (after reset); needs force.
	PushMoveBackward
	// PushAdd creates a new remote bookmark.
	PushAdd
	// PushDelete removes a remote bookmark.
	PushDelete
)

func (k PushActionKind) String() string {
	switch k {
	case PushMoveForward:
		return "move forward"
	case PushMoveSideways:
		return "move sideways"
	case PushMoveBackward:
		return "move backward"
	case PushAdd:
		return "add"
	case PushDelete:
		return "delete"
	}
	return "unknown"
}

// PushAction is one line of the dry-run preview.
type PushAction struct {
	Kind     PushActionKind
	Bookmark string
	From     string
	To       string
}

// ForceRequired reports whether executing this action rewrites remote history.
func (a PushAction) ForceRequired() bool {
	return a.Kind == PushMoveSideways || a.Kind == PushMoveBackward
}

// PushPreview is the parsed result of `jj git push --dry-run`.
type PushPreview struct {
	Actions []PushAction
	// NothingChanged means the remote is already up to date.
	NothingChanged bool
	// Unparsed means the output matched no known pattern (newer jj wording);
	// the raw output is still shown to the user in the confirmation.
	Unparsed bool
}

// ForceRequired reports whether any previewed action needs a force push.
func (p *PushPreview) ForceRequired() bool {
	for _, a := range p.Actions {
		if a.ForceRequired() {
			return true
		}
	}
	return false
}

// Bookmarks returns the distinct bookmark names the preview touches.
func (p *PushPreview) Bookmarks() []string {
	seen := map[string]bool{}
	var names []string
	for _, a := range p.Actions {
		if !seen[a.Bookmark] {
			seen[a.Bookmark] = true
			names = append(names, a.Bookmark)
		}
	}
	return names
}

// ParsePushDryRun parses dry-run output. Recognized lines:
//
//	Move forward bookmark NAME from HASH to HASH
//	Move sideways bookmark NAME from HASH to HASH
//	Move backward bookmark NAME from HASH to HASH
//	Add bookmark NAME to HASH
//	Delete bookmark NAME from HASH
//	Nothing changed.
//
// "Changes to push to REMOTE:" and "Dry-run requested, not pushing." are
// ignored.
func ParsePushDryRun(output string) PushPreview {
	if strings.Contains(output, "Nothing changed.") {
		return PushPreview{NothingChanged: true}
	}

	var actions []PushAction
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case hasMovePrefix(line, "Move forward bookmark "):
			if a, ok := parseMove(line, "Move forward bookmark ", PushMoveForward); ok {
				actions = append(actions, a)
			}
		case hasMovePrefix(line, "Move sideways bookmark "):
			if a, ok := parseMove(line, "Move sideways bookmark ", PushMoveSideways); ok {
				actions = append(actions, a)
			}
		case hasMovePrefix(line, "Move backward bookmark "):
			if a, ok := parseMove(line, "Move backward bookmark ", PushMoveBackward); ok {
				actions = append(actions, a)
			}
		case hasMovePrefix(line, "Add bookmark "):
			rest := strings.TrimPrefix(line, "Add bookmark ")
			if name, hash, found := strings.Cut(rest, " to "); found {
				actions = append(actions, PushAction{Kind: PushAdd, Bookmark: name, To: hash})
			}
		case hasMovePrefix(line, "Delete bookmark "):
			rest := strings.TrimPrefix(line, "Delete bookmark ")
			if name, hash, found := strings.Cut(rest, " from "); found {
				actions = append(actions, PushAction{Kind: PushDelete, Bookmark: name, From: hash})
			}
		}
	}

	if len(actions) == 0 {
		return PushPreview{Unparsed: true}
	}
	return PushPreview{Actions: actions}
}

func hasMovePrefix(line, prefix string) bool {
	return strings.HasPrefix(line, prefix)
}

func parseMove(line, prefix string, kind PushActionKind) (PushAction, bool) {
	rest := strings.TrimPrefix(line, prefix)
	name, hashes, found := strings.Cut(rest, " from ")
	if !found {
		return PushAction{}, false
	}
	from, to, found := strings.Cut(hashes, " to ")
	if !found {
		return PushAction{}, false
	}
	return PushAction{Kind: kind, Bookmark: name, From: from, To: to}, true
}
