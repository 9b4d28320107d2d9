package app

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nakamura-shuta/tij/jj"
	"github.com/nakamura-shuta/tij/model"
)

// Refresh re-reads whatever the dirty flags say is stale, in a fixed
// dependency order. Each flag is cleared only after its re-read succeeds; a
// failed re-read leaves the flag set so the next refresh retries it.
func (a *App) Refresh() error {
	// Consuming preview-all wipes the cache wholly; a mutation that declared
	// only log leaves the cache warm and lets Validate catch stale entries.
	if a.Dirty.Has(DirtyPreviewAll) {
		a.Cache.Clear()
		a.Dirty.Clear(DirtyPreviewAll)
	}

	steps := []struct {
		flag DirtyFlags
		run  func() error
	}{
		{DirtyOpLog, a.refreshOpLog},
		{DirtyLog, a.refreshLog},
		{DirtyBookmarks, a.refreshBookmarks},
		{DirtyStatus, a.refreshStatus},
		{DirtyEvolog, a.refreshEvolog},
		{DirtyBlame, a.refreshBlame},
	}

	for _, step := range steps {
		if !a.Dirty.Has(step.flag) {
			continue
		}
		if err := step.run(); err != nil {
			log.Warn("refresh failed", "artifact", step.flag.String(), "err", err)
			return err
		}
		a.Dirty.Clear(step.flag)
	}
	return nil
}

// refreshLog re-reads the log with the active revset and order, preserving
// the selection by change id, never by index.
func (a *App) refreshLog() error {
	v := a.findView(ViewLog)
	if v == nil {
		return nil
	}

	opts := jj.LogOptions{Revset: v.Revset, Reversed: v.Reversed}
	if v.Revset == "" {
		opts.Limit = a.Cfg.LogLimit
	}

	var selectedID string
	if v.Selected >= 0 && v.Selected < len(a.Changes) {
		selectedID = a.Changes[v.Selected].ChangeID
	}

	changes, err := a.JJ.Log(opts)
	if err != nil {
		return err
	}
	a.Changes = changes
	a.rebuildChildren()

	v.Selected = 0
	for i := range changes {
		if changes[i].ChangeID == selectedID {
			v.Selected = i
			break
		}
	}
	a.markPreviewPending()
	return nil
}

func (a *App) refreshBookmarks() error {
	bookmarks, err := a.JJ.Bookmarks()
	if err != nil {
		return err
	}
	a.Bookmarks = bookmarks
	if v := a.findView(ViewBookmark); v != nil && v.Selected >= len(bookmarks) {
		v.Selected = max(0, len(bookmarks)-1)
	}
	return nil
}

func (a *App) refreshStatus() error {
	status, err := a.JJ.Status()
	if err != nil {
		return err
	}
	a.Status = status
	if v := a.findView(ViewStatus); v != nil && v.Selected >= len(status.Files) {
		v.Selected = max(0, len(status.Files)-1)
	}
	return nil
}

func (a *App) refreshOpLog() error {
	ops, err := a.JJ.OpLog(a.Cfg.OpLogLimit)
	if err != nil {
		return err
	}
	a.Ops = ops
	// The protected list lives in jj's config; re-read on op-log change.
	a.Cfg.MergeProtected(a.JJ.ConfigList("tij.protected-bookmarks"))
	return nil
}

func (a *App) refreshEvolog() error {
	v := a.findView(ViewEvolog)
	if v == nil || v.ChangeID == "" {
		return nil
	}
	entries, err := a.JJ.Evolog(v.ChangeID)
	if err != nil {
		return err
	}
	a.Evolog = entries
	return nil
}

func (a *App) refreshBlame() error {
	v := a.findView(ViewBlame)
	if v == nil || v.FilePath == "" {
		return nil
	}
	annotation, err := a.JJ.Annotate(v.FilePath, v.Revision)
	if err != nil {
		return err
	}
	a.Blame = annotation
	return nil
}

// markDirtyAndRefresh is the tail of every mutation protocol: union the
// declared flags, refresh, and post the success notification only if the
// refresh succeeded — a refresh failure must never hide behind a stale
// success message.
func (a *App) markDirtyAndRefresh(flags DirtyFlags, success model.Notification) {
	a.Dirty.Set(flags)
	if err := a.Refresh(); err != nil {
		a.Notify(model.Error("refresh failed: " + err.Error()))
		return
	}
	a.surfaceDeprecations()
	a.Notify(success)
}

// refreshDiffView re-reads the content of an open diff view.
func (a *App) refreshDiffView() error {
	v := a.findView(ViewDiff)
	if v == nil {
		return nil
	}
	var (
		preview jj.Preview
		err     error
	)
	if v.DiffFrom != "" {
		preview, err = a.JJ.Diff(v.DiffFrom, v.DiffTo, a.DiffFormat)
	} else {
		preview, err = a.JJ.Show(v.ChangeID, a.DiffFormat)
	}
	if err != nil {
		return err
	}
	a.DiffContent = preview
	return nil
}

// refreshResolveList re-reads the conflict list of an open resolve view.
// When the list drains the view pops with a success notification.
func (a *App) refreshResolveList() error {
	v := a.findView(ViewResolve)
	if v == nil {
		return nil
	}
	conflicts, err := a.JJ.ResolveList(v.ChangeID)
	if err != nil {
		return err
	}
	if len(conflicts) == 0 {
		a.Conflicts = nil
		if a.Top().Kind == ViewResolve {
			a.Pop()
		}
		a.Dirty.Set(DirtyLog | DirtyStatus)
		if err := a.Refresh(); err != nil {
			return err
		}
		a.Notify(model.Success("All conflicts resolved"))
		return nil
	}
	// Marker ranges come from the materialized working-copy files.
	for i := range conflicts {
		data, readErr := os.ReadFile(filepath.Join(a.JJ.Root(), conflicts[i].Path))
		if readErr == nil {
			conflicts[i].MarkerRanges = model.ScanMarkerRanges(string(data))
		}
	}
	a.Conflicts = conflicts
	if v.Selected >= len(conflicts) {
		v.Selected = len(conflicts) - 1
	}
	return nil
}
