package app

// InputMode is the modal attached to the current view. Exactly one mode is
// active at any time; Esc cancels the active mode before any other handler
// sees the key.
type InputMode int

const (
	ModeNone InputMode = iota
	ModeRevset
	ModeSearch
	ModeRename
	ModeCreate
	ModeConfirmYN
	ModeSelectRemote
	ModeSelectBranch
	ModeSelectDiffFrom
	ModeSelectDiffTo
	ModeSelectRebaseDest
	ModeSelectParallelizeEnd
	ModeDescribe
	ModePushBulk
	ModeFetchBranch
)

func (m InputMode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeRevset:
		return "revset"
	case ModeSearch:
		return "search"
	case ModeRename:
		return "rename"
	case ModeCreate:
		return "create"
	case ModeConfirmYN:
		return "confirm"
	case ModeSelectRemote:
		return "select-remote"
	case ModeSelectBranch:
		return "select-branch"
	case ModeSelectDiffFrom:
		return "select-diff-from"
	case ModeSelectDiffTo:
		return "select-diff-to"
	case ModeSelectRebaseDest:
		return "select-rebase-dest"
	case ModeSelectParallelizeEnd:
		return "select-parallelize-end"
	case ModeDescribe:
		return "describe"
	case ModePushBulk:
		return "push-bulk"
	case ModeFetchBranch:
		return "fetch-branch"
	}
	return "unknown"
}

// IsTextEntry reports whether the mode edits a text buffer.
func (m InputMode) IsTextEntry() bool {
	switch m {
	case ModeRevset, ModeSearch, ModeRename, ModeCreate, ModeDescribe, ModeFetchBranch:
		return true
	}
	return false
}

// IsListSelect reports whether the mode picks from a pre-resolved list.
func (m InputMode) IsListSelect() bool {
	switch m {
	case ModeSelectRemote, ModeSelectBranch, ModePushBulk:
		return true
	}
	return false
}

// IsLogPicker reports whether the mode picks a second revision by moving the
// log selection.
func (m InputMode) IsLogPicker() bool {
	switch m {
	case ModeSelectDiffFrom, ModeSelectDiffTo, ModeSelectRebaseDest, ModeSelectParallelizeEnd:
		return true
	}
	return false
}

// InputState carries the active mode's working data: a text buffer with
// cursor for text modes, an option list for select modes, and the pending
// action a confirmation will dispatch.
type InputState struct {
	Prompt string
	// Text buffer state.
	Buffer string
	Cursor int
	// List state.
	Options  []string
	Selected int
	// Target operand gathered when the mode was entered (change id for
	// Create/Describe, old name for Rename, anchor for two-point pickers).
	Target string
	// Message shown in a confirmation dialog, possibly multi-line.
	Message string
}

// EnterMode activates a mode with fresh input state.
func (a *App) EnterMode(mode InputMode, state InputState) {
	a.Mode = mode
	a.Input = state
}

// CancelMode returns to ModeNone, discarding mode state. Push-related modes
// also clear the remote selection so an abandoned flow never leaks its
// target into the next one.
func (a *App) CancelMode() {
	if a.Mode == ModeSelectRemote || a.Mode == ModePushBulk ||
		(a.Mode == ModeConfirmYN && a.pending != nil && a.pending.Kind == PendingPush) {
		a.pushRemote = ""
		a.pendingPushOpts = nil
	}
	a.Mode = ModeNone
	a.Input = InputState{}
	a.pending = nil
	a.rebase = rebaseIntent{}
}

// Text buffer editing for text-entry modes.

func (a *App) insertRune(r rune) {
	b := []rune(a.Input.Buffer)
	if a.Input.Cursor > len(b) {
		a.Input.Cursor = len(b)
	}
	b = append(b[:a.Input.Cursor], append([]rune{r}, b[a.Input.Cursor:]...)...)
	a.Input.Buffer = string(b)
	a.Input.Cursor++
}

func (a *App) backspace() {
	b := []rune(a.Input.Buffer)
	if a.Input.Cursor == 0 || len(b) == 0 {
		return
	}
	b = append(b[:a.Input.Cursor-1], b[a.Input.Cursor:]...)
	a.Input.Buffer = string(b)
	a.Input.Cursor--
}

func (a *App) cursorLeft() {
	if a.Input.Cursor > 0 {
		a.Input.Cursor--
	}
}

func (a *App) cursorRight() {
	if a.Input.Cursor < len([]rune(a.Input.Buffer)) {
		a.Input.Cursor++
	}
}

// SetInputBuffer syncs the buffer from the UI's text widget.
func (a *App) SetInputBuffer(value string) {
	a.Input.Buffer = value
	a.Input.Cursor = len([]rune(value))
}

func (a *App) listUp() {
	if a.Input.Selected > 0 {
		a.Input.Selected--
	}
}

func (a *App) listDown() {
	if a.Input.Selected < len(a.Input.Options)-1 {
		a.Input.Selected++
	}
}

func (a *App) listChoice() string {
	if a.Input.Selected < 0 || a.Input.Selected >= len(a.Input.Options) {
		return ""
	}
	return a.Input.Options[a.Input.Selected]
}
