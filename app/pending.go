package app

import (
	"github.com/nakamura-shuta/tij/jj"
	"github.com/nakamura-shuta/tij/model"
)

// PendingKind tags the action a ConfirmYN dialog will dispatch. The pending
// action is a tag plus a parameter struct, not a live closure capturing
// mutable state; on confirmation the dispatcher switches on the tag.
type PendingKind int

const (
	PendingAbandon PendingKind = iota
	PendingBookmarkDelete
	PendingBookmarkMove
	PendingOpRestore
	PendingRevert
	PendingRestore
	PendingPush
	PendingParallelize
)

func (k PendingKind) String() string {
	switch k {
	case PendingAbandon:
		return "abandon"
	case PendingBookmarkDelete:
		return "bookmark-delete"
	case PendingBookmarkMove:
		return "bookmark-move"
	case PendingOpRestore:
		return "op-restore"
	case PendingRevert:
		return "revert"
	case PendingRestore:
		return "restore"
	case PendingPush:
		return "push"
	case PendingParallelize:
		return "parallelize"
	}
	return "unknown"
}

// Pending carries the operands a confirmed action needs.
type Pending struct {
	Kind PendingKind

	ChangeID string
	Bookmark string
	Names    []string
	OpID     string
	Paths    []string
	From     string
	To       string

	// Push intent, carried between remote selection, dry-run and execute so
	// every step reads the same target.
	Push *PushIntent

	// Severity of the confirmation prompt (warn for a force push or a push
	// touching a protected bookmark; error for a force push to, or deletion
	// of, a protected bookmark).
	Severity model.Severity
}

// PushIntent is the classified push flow state.
type PushIntent struct {
	Opts jj.PushOptions
	// PreviewText is the raw dry-run output shown in the confirmation.
	PreviewText string
	Preview     jj.PushPreview
	Force       bool
	Protected   bool
	// DryRunFailed notes the dry-run was rejected (private commit / empty
	// description); execute will apply the allow-flag retry ladder.
	DryRunFailed bool
}

// confirm enters ConfirmYN with a pending action.
func (a *App) confirm(prompt, message string, severity model.Severity, p Pending) {
	p.Severity = severity
	a.pending = &p
	a.EnterMode(ModeConfirmYN, InputState{Prompt: prompt, Message: message})
}

// PendingAction exposes the pending confirmation for rendering.
func (a *App) PendingAction() *Pending {
	return a.pending
}
