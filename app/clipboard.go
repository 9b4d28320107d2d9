package app

import (
	"github.com/atotto/clipboard"

	"github.com/nakamura-shuta/tij/jj"
	"github.com/nakamura-shuta/tij/model"
)

// Clipboard sinks. Yank failures are notifications, never fatal.

// yankChangeID copies the selected change id.
func (a *App) yankChangeID() {
	c := a.SelectedChange()
	if c == nil {
		return
	}
	if err := clipboard.WriteAll(c.ChangeID); err != nil {
		a.Notify(model.Error("clipboard: " + err.Error()))
		return
	}
	a.Notify(model.Info("Yanked " + c.ChangeID))
}

// yankPatch copies the selected change as a git-format patch.
func (a *App) yankPatch() {
	changeID := ""
	if v := a.findView(ViewDiff); v != nil && v.ChangeID != "" {
		changeID = v.ChangeID
	} else if c := a.SelectedChange(); c != nil {
		changeID = c.ChangeID
	}
	if changeID == "" {
		return
	}
	p, err := a.JJ.Show(changeID, jj.DiffFormatGit)
	if err != nil {
		a.Notify(model.Error(err.Error()))
		return
	}
	if err := clipboard.WriteAll(p.Content); err != nil {
		a.Notify(model.Error("clipboard: " + err.Error()))
		return
	}
	a.Notify(model.Info("Yanked patch for " + changeID))
}
