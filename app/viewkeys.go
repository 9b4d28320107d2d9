package app

import (
	"github.com/nakamura-shuta/tij/model"
)

// Per-view key handlers. Returning handled=false lets the key fall through
// to the global handler.

func (a *App) handleLogKey(key string) (Effect, bool) {
	v := a.Top()
	switch key {
	case "j", "down":
		if v.Selected < len(a.Changes)-1 {
			v.Selected++
			a.markPreviewPending()
		}
	case "k", "up":
		if v.Selected > 0 {
			v.Selected--
			a.markPreviewPending()
		}
	case "g", "home":
		v.Selected = 0
		a.markPreviewPending()
	case "G", "end":
		v.Selected = max(0, len(a.Changes)-1)
		a.markPreviewPending()
	case "]":
		a.selectChild()
	case "[":
		a.selectParent()
	case "enter":
		if c := a.SelectedChange(); c != nil {
			a.openDiff(c.ChangeID)
		}
	case "/":
		a.EnterMode(ModeSearch, InputState{Prompt: "search"})
	case "n":
		a.searchNext(1)
	case "r":
		a.EnterMode(ModeRevset, InputState{Prompt: "revset", Buffer: v.Revset, Cursor: len([]rune(v.Revset))})
	case "V":
		a.toggleReversed()
	case "e":
		a.executeEdit()
	case "d":
		a.startDescribe()
	case "ctrl+e":
		return a.startDescribeEditor(), true
	case "N":
		a.executeNew()
	case "c":
		a.startCommit()
	case "s":
		return a.startSquash(), true
	case "A":
		a.startAbandon()
	case "S":
		return a.startSplit(), true
	case "D":
		return a.startDiffedit(), true
	case "R":
		a.startRebase()
	case "B":
		a.startRebaseInsertBefore()
	case "a":
		a.executeAbsorb()
	case "Y":
		a.executeDuplicate()
	case "!":
		a.startRevert()
	case "x":
		a.startRestore()
	case "X":
		a.openResolve()
	case "z":
		a.startParallelize()
	case "Z":
		a.executeSimplifyParents()
	case "P":
		a.startPushSelectedBookmark()
	case "p":
		a.startPushChange()
	case "ctrl+p":
		a.startPushBulkSelect()
	case "M":
		a.openBookmarks()
	case "o":
		a.openOpLog()
	case "v":
		a.openEvolog()
	case "y":
		a.yankChangeID()
	case "w":
		a.yankPatch()
	case "C":
		a.startCompare()
	case "m":
		a.cycleDiffFormat()
	case "t":
		a.togglePreview()
	default:
		return Effect{}, false
	}
	return Effect{}, true
}

func (a *App) handleDiffKey(key string) (Effect, bool) {
	v := a.Top()
	switch key {
	case "j", "down":
		v.Scroll++
	case "k", "up":
		if v.Scroll > 0 {
			v.Scroll--
		}
	case "g", "home":
		v.Scroll = 0
	case "G", "end":
		v.Scroll = max(0, lineCount(a.DiffContent.Content)-1)
	case "m":
		a.cycleDiffFormat()
	case "w":
		a.yankPatch()
	default:
		return Effect{}, false
	}
	return Effect{}, true
}

func (a *App) handleStatusKey(key string) (Effect, bool) {
	v := a.Top()
	switch key {
	case "j", "down":
		if v.Selected < len(a.Status.Files)-1 {
			v.Selected++
		}
	case "k", "up":
		if v.Selected > 0 {
			v.Selected--
		}
	case "g":
		v.Selected = 0
	case "G":
		v.Selected = max(0, len(a.Status.Files)-1)
	case "enter":
		a.openDiff("@")
	case "b":
		if f := a.SelectedFile(); f != nil {
			a.openBlame(f.Path, "")
		}
	case "X":
		if f := a.SelectedFile(); f != nil && f.Kind == model.FileConflicted {
			a.openResolveFor(a.Status.WorkingCopyID)
		}
	case "x":
		a.startRestoreFile()
	default:
		return Effect{}, false
	}
	return Effect{}, true
}

func (a *App) handleBookmarkKey(key string) (Effect, bool) {
	v := a.Top()
	switch key {
	case "j", "down":
		if v.Selected < len(a.Bookmarks)-1 {
			v.Selected++
		}
	case "k", "up":
		if v.Selected > 0 {
			v.Selected--
		}
	case "g":
		v.Selected = 0
	case "G":
		v.Selected = max(0, len(a.Bookmarks)-1)
	case "enter":
		a.jumpToBookmarkTarget()
	case "c":
		a.startBookmarkCreate()
	case "r":
		a.startBookmarkRename()
	case "d":
		a.startBookmarkDelete()
	case "t":
		a.toggleBookmarkTracking()
	case "m":
		a.startBookmarkMove()
	case "P":
		if b := a.SelectedBookmark(); b != nil {
			a.StartPushBookmark(b.Name)
		}
	default:
		return Effect{}, false
	}
	return Effect{}, true
}

func (a *App) handleOpLogKey(key string) (Effect, bool) {
	v := a.Top()
	switch key {
	case "j", "down":
		if v.Selected < len(a.Ops)-1 {
			v.Selected++
		}
	case "k", "up":
		if v.Selected > 0 {
			v.Selected--
		}
	case "g":
		v.Selected = 0
	case "G":
		v.Selected = max(0, len(a.Ops)-1)
	case "enter":
		a.startOpRestore()
	default:
		return Effect{}, false
	}
	return Effect{}, true
}

func (a *App) handleEvologKey(key string) (Effect, bool) {
	v := a.Top()
	switch key {
	case "j", "down":
		if v.Selected < len(a.Evolog)-1 {
			v.Selected++
		}
	case "k", "up":
		if v.Selected > 0 {
			v.Selected--
		}
	default:
		return Effect{}, false
	}
	return Effect{}, true
}

func (a *App) handleBlameKey(key string) (Effect, bool) {
	v := a.Top()
	switch key {
	case "j", "down":
		if v.Selected < len(a.Blame.Lines)-1 {
			v.Selected++
		}
	case "k", "up":
		if v.Selected > 0 {
			v.Selected--
		}
	case "g":
		v.Selected = 0
	case "G":
		v.Selected = max(0, len(a.Blame.Lines)-1)
	case "enter":
		a.jumpFromBlame()
	default:
		return Effect{}, false
	}
	return Effect{}, true
}

func (a *App) handleResolveKey(key string) (Effect, bool) {
	v := a.Top()
	switch key {
	case "j", "down":
		if v.Selected < len(a.Conflicts)-1 {
			v.Selected++
		}
	case "k", "up":
		if v.Selected > 0 {
			v.Selected--
		}
	case "o":
		a.resolveWithTool(":ours")
	case "t":
		a.resolveWithTool(":theirs")
	case "enter":
		return a.startResolveInteractive(), true
	default:
		return Effect{}, false
	}
	return Effect{}, true
}

func lineCount(s string) int {
	n := 1
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}
