// Package app holds the application core: the view stack, input modes,
// dirty-flag refresh orchestration, the preview cache, and the mutation
// protocols. It has no terminal dependency; the ui package renders from it
// and feeds key names in.
package app

import (
	"os/exec"
	"strings"

	"github.com/nakamura-shuta/tij/config"
	"github.com/nakamura-shuta/tij/jj"
	"github.com/nakamura-shuta/tij/model"
)

// App is the single root of all state. The UI reads through it; nothing else
// holds references into its slices.
type App struct {
	JJ  *jj.Executor
	Cfg config.Config

	Running  bool
	ExitCode int

	stack []View
	Mode  InputMode
	Input InputState

	Changes   []model.Change
	Bookmarks []model.Bookmark
	Status    model.Status
	Ops       []model.Operation
	Evolog    []model.EvologEntry
	Blame     model.Annotation
	Conflicts []model.Conflict

	// DiffContent is the full diff/show text of the open Diff view.
	DiffContent jj.Preview

	Dirty        DirtyFlags
	Cache        *PreviewCache
	Notification *model.Notification

	PreviewEnabled bool
	DiffFormat     jj.DiffFormat

	// pushRemote is the selected push target; dry-run and execute both read
	// it, and every flow exit clears it.
	pushRemote      string
	pendingPushOpts *jj.PushOptions
	pending         *Pending
	rebase          rebaseIntent

	// previewPending is the change id whose preview should be fetched when
	// the loop goes idle; superseded by any newer selection.
	previewPending string

	// children maps change id to child change ids, rebuilt on log refresh.
	children map[string][]string
}

// New builds the app and performs the initial load.
func New(executor *jj.Executor, cfg config.Config) (*App, error) {
	a := &App{
		JJ:             executor,
		Cfg:            cfg,
		Running:        true,
		stack:          []View{{Kind: ViewLog}},
		Cache:          NewPreviewCache(cfg.PreviewCapacity),
		PreviewEnabled: cfg.PreviewEnabled,
	}

	// Protected bookmark names also come from jj's own config; re-read
	// whenever the op log changes.
	a.Cfg.MergeProtected(executor.ConfigList("tij.protected-bookmarks"))

	a.Dirty.Set(DirtyLog | DirtyBookmarks)
	if err := a.Refresh(); err != nil {
		return nil, err
	}
	return a, nil
}

// Notify replaces the visible notification; posting supersedes.
func (a *App) Notify(n model.Notification) {
	a.Notification = &n
}

// ClearExpiredNotification drops the notification past its advisory TTL.
func (a *App) ClearExpiredNotification() {
	if a.Notification != nil && a.Notification.Expired() {
		a.Notification = nil
	}
}

// SelectedChange returns the change under the cursor of the nearest log view.
func (a *App) SelectedChange() *model.Change {
	v := a.findView(ViewLog)
	if v == nil || v.Selected < 0 || v.Selected >= len(a.Changes) {
		return nil
	}
	return &a.Changes[v.Selected]
}

// ChangeByID finds a change in the current log slice.
func (a *App) ChangeByID(changeID string) *model.Change {
	for i := range a.Changes {
		if a.Changes[i].ChangeID == changeID {
			return &a.Changes[i]
		}
	}
	return nil
}

// SelectChangePrefix moves the log selection to the first change whose id
// has the given prefix. Returns false when it is not in the current revset.
func (a *App) SelectChangePrefix(prefix string) bool {
	if prefix == "" {
		return false
	}
	v := a.findView(ViewLog)
	if v == nil {
		return false
	}
	for i := range a.Changes {
		if strings.HasPrefix(a.Changes[i].ChangeID, prefix) {
			v.Selected = i
			a.markPreviewPending()
			return true
		}
	}
	return false
}

// SelectedBookmark returns the bookmark under the cursor of the bookmark view.
func (a *App) SelectedBookmark() *model.Bookmark {
	v := a.findView(ViewBookmark)
	if v == nil || v.Selected < 0 || v.Selected >= len(a.Bookmarks) {
		return nil
	}
	return &a.Bookmarks[v.Selected]
}

// SelectedFile returns the file under the cursor of the status view.
func (a *App) SelectedFile() *model.FileStatus {
	v := a.findView(ViewStatus)
	if v == nil || v.Selected < 0 || v.Selected >= len(a.Status.Files) {
		return nil
	}
	return &a.Status.Files[v.Selected]
}

// SelectedOperation returns the op under the cursor of the op log view.
func (a *App) SelectedOperation() *model.Operation {
	v := a.findView(ViewOpLog)
	if v == nil || v.Selected < 0 || v.Selected >= len(a.Ops) {
		return nil
	}
	return &a.Ops[v.Selected]
}

// IsProtected consults the merged protected-bookmark list.
func (a *App) IsProtected(name string) bool {
	return a.Cfg.IsProtected(name)
}

// PushTargetRemote exposes the selected remote for rendering and tests.
func (a *App) PushTargetRemote() string {
	return a.pushRemote
}

// Effect tells the event loop what to do after a key was handled. External
// commands hand the terminal to a child process; the loop reports completion
// via CompleteExternal.
type Effect struct {
	Quit bool
	Exec *ExternalAction
}

// ExternalKind tags what an external command was for, so completion knows
// which protocol to finish.
type ExternalKind int

const (
	ExternalSplit ExternalKind = iota
	ExternalSquash
	ExternalDiffedit
	ExternalResolve
	ExternalDescribeEditor
)

// ExternalAction is a child process that needs the terminal.
type ExternalAction struct {
	Kind     ExternalKind
	Cmd      *exec.Cmd
	ChangeID string
	Path     string
}

// surfaceDeprecations posts queued deprecation warnings once per session.
func (a *App) surfaceDeprecations() {
	for _, d := range a.JJ.TakeDeprecations() {
		a.Notify(model.Info(d))
	}
}
