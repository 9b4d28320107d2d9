package app

import (
	"fmt"
	"strings"

	"github.com/nakamura-shuta/tij/model"
)

// Bookmark management protocols.

func (a *App) startBookmarkCreate() {
	target := a.Status.WorkingCopyID
	if c := a.SelectedChange(); c != nil && a.Top().Kind == ViewLog {
		target = c.ChangeID
	}
	if target == "" {
		target = "@"
	}
	a.EnterMode(ModeCreate, InputState{
		Prompt: "create bookmark at " + target,
		Target: target,
	})
}

func (a *App) submitBookmarkCreate(name, changeID string) {
	name = strings.TrimSpace(name)
	if name == "" {
		a.Notify(model.Error("Bookmark name is empty"))
		return
	}
	if _, err := a.JJ.BookmarkCreate(name, changeID); err != nil {
		a.Notify(model.Error(err.Error()))
		return
	}
	a.markDirtyAndRefresh(DirtyBookmarks|DirtyLog, model.Success("Created bookmark "+name))
}

func (a *App) startBookmarkRename() {
	b := a.SelectedBookmark()
	if b == nil {
		return
	}
	a.EnterMode(ModeRename, InputState{
		Prompt: "rename bookmark " + b.Name,
		Target: b.Name,
		Buffer: b.Name,
		Cursor: len([]rune(b.Name)),
	})
}

func (a *App) submitBookmarkRename(oldName, newName string) {
	newName = strings.TrimSpace(newName)
	if newName == "" || newName == oldName {
		return
	}
	if _, err := a.JJ.BookmarkRename(oldName, newName); err != nil {
		a.Notify(model.Error(err.Error()))
		return
	}
	a.markDirtyAndRefresh(DirtyBookmarks|DirtyLog,
		model.Success(fmt.Sprintf("Renamed %s to %s", oldName, newName)))
}

func (a *App) startBookmarkDelete() {
	b := a.SelectedBookmark()
	if b == nil {
		return
	}
	severity := model.SeverityWarn
	message := fmt.Sprintf("Delete bookmark %s? The deletion propagates to remotes on push.", b.Name)
	if a.IsProtected(b.Name) {
		severity = model.SeverityError
		message = fmt.Sprintf("%s is a PROTECTED bookmark. Delete anyway?", b.Name)
	}
	a.confirm("Delete bookmark?", message, severity,
		Pending{Kind: PendingBookmarkDelete, Names: []string{b.Name}})
}

func (a *App) executeBookmarkDelete(names []string) {
	if len(names) == 0 {
		return
	}
	if _, err := a.JJ.BookmarkDelete(names...); err != nil {
		a.Notify(model.Error(err.Error()))
		return
	}
	a.markDirtyAndRefresh(DirtyBookmarks|DirtyLog,
		model.Success("Deleted "+strings.Join(names, ", ")))
}

// startBookmarkMove points the selected bookmark at the working copy.
func (a *App) startBookmarkMove() {
	b := a.SelectedBookmark()
	if b == nil {
		return
	}
	target := a.Status.WorkingCopyID
	if target == "" {
		target = "@"
	}
	a.confirm("Move bookmark?",
		fmt.Sprintf("Point %s at %s?", b.Name, target),
		model.SeverityWarn,
		Pending{Kind: PendingBookmarkMove, Bookmark: b.Name, ChangeID: target})
}

// executeBookmarkMove moves the pointer. Success dirties both bookmarks and
// log: the DAG annotations change when the pointer moves.
func (a *App) executeBookmarkMove(name, changeID string) {
	if _, err := a.JJ.BookmarkSet(name, changeID); err != nil {
		a.Notify(model.Error(err.Error()))
		return
	}
	a.markDirtyAndRefresh(DirtyBookmarks|DirtyLog,
		model.Success(fmt.Sprintf("Moved %s to %s", name, changeID)))
}

// toggleBookmarkTracking tracks the first untracked remote ref, or untracks
// all tracked ones when none are untracked.
func (a *App) toggleBookmarkTracking() {
	b := a.SelectedBookmark()
	if b == nil {
		return
	}
	if untracked := b.UntrackedRemotes(); len(untracked) > 0 {
		full := b.FullName(untracked[0])
		if _, err := a.JJ.BookmarkTrack(full); err != nil {
			a.Notify(model.Error(err.Error()))
			return
		}
		a.markDirtyAndRefresh(DirtyBookmarks, model.Success("Tracking "+full))
		return
	}

	var tracked []string
	for _, r := range b.RemoteNames() {
		if b.Tracked[r] {
			tracked = append(tracked, b.FullName(r))
		}
	}
	if len(tracked) == 0 {
		a.Notify(model.Info("No remote refs to track or untrack"))
		return
	}
	if _, err := a.JJ.BookmarkUntrack(tracked...); err != nil {
		a.Notify(model.Error(err.Error()))
		return
	}
	a.markDirtyAndRefresh(DirtyBookmarks, model.Success("Untracked "+strings.Join(tracked, ", ")))
}
