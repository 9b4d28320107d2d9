package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nakamura-shuta/tij/jj"
	"github.com/nakamura-shuta/tij/model"
)

// View openers. Navigation pushes onto the stack preserving the source's
// selection; cross-view jumps carry change ids or paths.

func (a *App) openDiff(changeID string) {
	a.Push(View{Kind: ViewDiff, ChangeID: changeID})
	if err := a.refreshDiffView(); err != nil {
		a.Pop()
		a.Notify(model.Error(err.Error()))
	}
}

func (a *App) openCompareDiff(from, to string) {
	a.Push(View{Kind: ViewDiff, DiffFrom: from, DiffTo: to})
	if err := a.refreshDiffView(); err != nil {
		a.Pop()
		a.Notify(model.Error(err.Error()))
	}
}

func (a *App) openStatus() {
	a.Push(View{Kind: ViewStatus})
	a.Dirty.Set(DirtyStatus)
	if err := a.Refresh(); err != nil {
		a.Pop()
		a.Notify(model.Error(err.Error()))
	}
}

func (a *App) openBookmarks() {
	a.Push(View{Kind: ViewBookmark})
	a.Dirty.Set(DirtyBookmarks)
	if err := a.Refresh(); err != nil {
		a.Pop()
		a.Notify(model.Error(err.Error()))
	}
}

func (a *App) openOpLog() {
	a.Push(View{Kind: ViewOpLog})
	a.Dirty.Set(DirtyOpLog)
	if err := a.Refresh(); err != nil {
		a.Pop()
		a.Notify(model.Error(err.Error()))
	}
}

func (a *App) openEvolog() {
	c := a.SelectedChange()
	if c == nil {
		return
	}
	a.Push(View{Kind: ViewEvolog, ChangeID: c.ChangeID})
	a.Dirty.Set(DirtyEvolog)
	if err := a.Refresh(); err != nil {
		a.Pop()
		a.Notify(model.Error(err.Error()))
	}
}

func (a *App) openBlame(path, revision string) {
	a.Push(View{Kind: ViewBlame, FilePath: path, Revision: revision})
	a.Dirty.Set(DirtyBlame)
	if err := a.Refresh(); err != nil {
		a.Pop()
		a.Notify(model.Error(err.Error()))
	}
}

func (a *App) openResolve() {
	c := a.SelectedChange()
	if c == nil {
		return
	}
	if !c.IsConflicted {
		a.Notify(model.Info("No conflicts in selected change"))
		return
	}
	a.openResolveFor(c.ChangeID)
}

func (a *App) openResolveFor(changeID string) {
	a.Push(View{Kind: ViewResolve, ChangeID: changeID})
	if err := a.refreshResolveList(); err != nil {
		if a.Top().Kind == ViewResolve {
			a.Pop()
		}
		a.Notify(model.Error(err.Error()))
	}
}

// jumpFromBlame pushes a log view with the blamed change selected and
// focused.
func (a *App) jumpFromBlame() {
	v := a.Top()
	if v.Selected < 0 || v.Selected >= len(a.Blame.Lines) {
		return
	}
	changeID := a.Blame.Lines[v.Selected].ChangeID
	if changeID == "" {
		return
	}
	a.Push(View{Kind: ViewLog, Revset: a.findView(ViewLog).Revset})
	if !a.SelectChangePrefix(changeID) {
		a.Pop()
		a.Notify(model.Info(fmt.Sprintf("Change %s not in current revset", changeID)))
	}
}

func (a *App) jumpToBookmarkTarget() {
	b := a.SelectedBookmark()
	if b == nil || b.Target == "" {
		return
	}
	for a.Top().Kind != ViewLog && a.Pop() {
	}
	if !a.SelectChangePrefix(b.Target) {
		a.Notify(model.Info(fmt.Sprintf("Target %s not in current revset", b.Target)))
	}
}

// Revset / search / ordering.

func (a *App) applyRevset(revset string) {
	v := a.findView(ViewLog)
	v.Revset = strings.TrimSpace(revset)
	a.Dirty.Set(DirtyLog)
	if err := a.Refresh(); err != nil {
		a.Notify(model.Error(err.Error()))
		return
	}
	if v.Revset == "" {
		a.Notify(model.Info("Revset cleared"))
	} else {
		a.Notify(model.Info("Revset: " + v.Revset))
	}
}

func (a *App) applySearch(query string) {
	v := a.findView(ViewLog)
	v.Search = query
	if query != "" {
		a.searchNext(1)
	}
}

// searchNext moves the selection to the next change matching the query in
// description, change id, or bookmark names.
func (a *App) searchNext(dir int) {
	v := a.findView(ViewLog)
	if v == nil || v.Search == "" || len(a.Changes) == 0 {
		return
	}
	query := strings.ToLower(v.Search)
	n := len(a.Changes)
	for step := 1; step <= n; step++ {
		i := ((v.Selected+dir*step)%n + n) % n
		c := &a.Changes[i]
		if strings.Contains(strings.ToLower(c.Description), query) ||
			strings.Contains(strings.ToLower(c.ChangeID), query) ||
			strings.Contains(strings.ToLower(strings.Join(c.Bookmarks, ",")), query) {
			v.Selected = i
			a.markPreviewPending()
			return
		}
	}
	a.Notify(model.Info("No match: " + v.Search))
}

// toggleReversed flips the log order; the selection survives the flip
// because refreshLog re-finds it by change id.
func (a *App) toggleReversed() {
	v := a.findView(ViewLog)
	v.Reversed = !v.Reversed
	a.Dirty.Set(DirtyLog)
	if err := a.Refresh(); err != nil {
		a.Notify(model.Error(err.Error()))
	}
}

// Describe.

func (a *App) startDescribe() {
	c := a.SelectedChange()
	if c == nil {
		return
	}
	if c.IsImmutable || a.JJ.IsImmutable(c.ChangeID) {
		a.Notify(model.Error("Cannot describe: commit is immutable"))
		return
	}
	desc, err := a.JJ.FullDescription(c.ChangeID)
	if err != nil {
		desc = c.Description
	}
	desc = strings.TrimRight(desc, "\n")
	line, _, _ := strings.Cut(desc, "\n")
	a.EnterMode(ModeDescribe, InputState{
		Prompt: "describe " + c.ChangeID,
		Target: c.ChangeID,
		Buffer: line,
		Cursor: len([]rune(line)),
	})
}

func (a *App) submitDescribe(changeID, message string) {
	if changeID == "" {
		// Describe mode with no target is the commit flow.
		a.submitCommit(message)
		return
	}
	if _, err := a.JJ.Describe(changeID, message); err != nil {
		a.Notify(model.Error(err.Error()))
		return
	}
	// The commit id changed but the change id did not; drop exactly this
	// preview entry and let the rest of the cache stay warm.
	a.Cache.Remove(changeID)
	a.markDirtyAndRefresh(DirtyLog, model.Success("Description updated"))
}

// startDescribeEditor opens $EDITOR on the full description.
func (a *App) startDescribeEditor() Effect {
	c := a.SelectedChange()
	if c == nil {
		return Effect{}
	}
	if c.IsImmutable || a.JJ.IsImmutable(c.ChangeID) {
		a.Notify(model.Error("Cannot describe: commit is immutable"))
		return Effect{}
	}
	a.Input = InputState{Target: c.ChangeID}
	return a.describeInEditor()
}

// describeInEditor writes the buffer to a temp file and hands the terminal
// to the editor. Completion lands in CompleteExternal.
func (a *App) describeInEditor() Effect {
	changeID := a.Input.Target
	buffer := a.Input.Buffer
	a.Mode = ModeNone
	a.Input = InputState{}

	if buffer == "" && changeID != "" {
		if full, err := a.JJ.FullDescription(changeID); err == nil {
			buffer = strings.TrimRight(full, "\n")
		}
	}

	tmp, err := os.CreateTemp("", "tij-describe-*.txt")
	if err != nil {
		a.Notify(model.Error("editor: " + err.Error()))
		return Effect{}
	}
	if _, err := tmp.WriteString(buffer); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		a.Notify(model.Error("editor: " + err.Error()))
		return Effect{}
	}
	tmp.Close()

	return Effect{Exec: &ExternalAction{
		Kind:     ExternalDescribeEditor,
		Cmd:      jj.EditorCmd(tmp.Name()),
		ChangeID: changeID,
		Path:     tmp.Name(),
	}}
}

// CompleteExternal finishes a protocol whose middle step ran outside the
// TUI. A non-zero editor exit discards the buffer; it is a notification,
// never a crash.
func (a *App) CompleteExternal(action ExternalAction, runErr error) {
	switch action.Kind {
	case ExternalDescribeEditor:
		defer os.Remove(action.Path)
		if runErr != nil {
			a.Notify(model.Warn("Editor aborted; description unchanged"))
			return
		}
		data, err := os.ReadFile(action.Path)
		if err != nil {
			a.Notify(model.Error("editor: " + err.Error()))
			return
		}
		a.submitDescribe(action.ChangeID, strings.TrimRight(string(data), "\n"))

	case ExternalSplit:
		if runErr != nil {
			a.Notify(model.Warn("Split cancelled"))
			return
		}
		a.markDirtyAndRefresh(DirtyLog|DirtyStatus|DirtyPreviewAll, model.Success("Split "+action.ChangeID))

	case ExternalSquash:
		if runErr != nil {
			a.Notify(model.Warn("Squash cancelled"))
			return
		}
		a.markDirtyAndRefresh(DirtyLog|DirtyStatus|DirtyPreviewAll, model.Success("Squashed "+action.ChangeID))

	case ExternalDiffedit:
		if runErr != nil {
			a.Notify(model.Warn("Diff edit cancelled"))
			return
		}
		a.markDirtyAndRefresh(DirtyLog|DirtyStatus|DirtyPreviewAll, model.Success("Edited diff of "+action.ChangeID))

	case ExternalResolve:
		if runErr != nil {
			a.Notify(model.Warn("Resolve cancelled"))
			return
		}
		if err := a.refreshResolveList(); err != nil {
			a.Notify(model.Error(err.Error()))
		}
	}
}

// Commit.

func (a *App) startCommit() {
	if len(a.Status.Files) == 0 {
		if st, err := a.JJ.Status(); err == nil {
			a.Status = st
		}
	}
	a.EnterMode(ModeDescribe, InputState{Prompt: "commit message"})
}

func (a *App) submitCommit(message string) {
	if strings.TrimSpace(message) == "" {
		a.Notify(model.Error("Commit message is empty"))
		return
	}
	if _, err := a.JJ.Commit(message); err != nil {
		a.Notify(model.Error(err.Error()))
		return
	}
	a.markDirtyAndRefresh(DirtyLog|DirtyStatus|DirtyPreviewAll, model.Success("Committed"))
}

// New / edit.

func (a *App) executeNew() {
	parent := ""
	if c := a.SelectedChange(); c != nil {
		parent = c.ChangeID
	}
	if _, err := a.JJ.New(parent); err != nil {
		a.Notify(model.Error(err.Error()))
		return
	}
	a.markDirtyAndRefresh(DirtyLog|DirtyStatus, model.Success("Created new change"))
}

func (a *App) executeEdit() {
	c := a.SelectedChange()
	if c == nil {
		return
	}
	if _, err := a.JJ.Edit(c.ChangeID); err != nil {
		a.Notify(model.Error(err.Error()))
		return
	}
	a.markDirtyAndRefresh(DirtyLog|DirtyStatus, model.Success("Now editing "+c.ChangeID))
}

// Abandon.

func (a *App) startAbandon() {
	c := a.SelectedChange()
	if c == nil {
		return
	}
	if c.IsRoot() {
		a.Notify(model.Error("Cannot abandon the root commit"))
		return
	}
	a.confirm("Abandon change?",
		fmt.Sprintf("Abandon %s %q? Descendants are rebased onto its parent.", c.ChangeID, c.ShortDescription()),
		model.SeverityWarn,
		Pending{Kind: PendingAbandon, ChangeID: c.ChangeID})
}

// Absorb.

func (a *App) executeAbsorb() {
	out, err := a.JJ.Absorb()
	if err != nil {
		a.Notify(model.Error(err.Error()))
		return
	}
	msg := "Absorbed working copy changes"
	if strings.Contains(out.Stdout+out.Stderr, "Nothing changed") {
		a.Notify(model.Info("Nothing to absorb"))
		return
	}
	a.markDirtyAndRefresh(DirtyLog|DirtyStatus|DirtyPreviewAll, model.Success(msg))
}

// Duplicate. After success, try to select the new change by prefix; the
// notification branch is decided by what the selection helper actually
// found, not guessed.
func (a *App) executeDuplicate() {
	c := a.SelectedChange()
	if c == nil {
		return
	}
	out, err := a.JJ.Duplicate(c.ChangeID)
	if err != nil {
		a.Notify(model.Error(err.Error()))
		return
	}
	newID := jj.ParseDuplicated(out.Stdout + out.Stderr)

	a.Dirty.Set(DirtyLog)
	if err := a.Refresh(); err != nil {
		a.Notify(model.Error("refresh failed: " + err.Error()))
		return
	}
	if newID != "" && a.SelectChangePrefix(newID) {
		a.Notify(model.Success("Duplicated as " + newID))
	} else {
		a.Notify(model.Success("Duplicated successfully (not in current revset)"))
	}
}

// Revert / restore.

func (a *App) startRevert() {
	c := a.SelectedChange()
	if c == nil {
		return
	}
	a.confirm("Revert change?",
		fmt.Sprintf("Create a change backing out %s %q?", c.ChangeID, c.ShortDescription()),
		model.SeverityWarn,
		Pending{Kind: PendingRevert, ChangeID: c.ChangeID})
}

func (a *App) startRestore() {
	c := a.SelectedChange()
	if c == nil {
		return
	}
	a.confirm("Restore working copy?",
		fmt.Sprintf("Restore the working copy from %s? Uncommitted edits to those paths are lost.", c.ChangeID),
		model.SeverityWarn,
		Pending{Kind: PendingRestore, From: c.ChangeID})
}

func (a *App) startRestoreFile() {
	f := a.SelectedFile()
	if f == nil {
		return
	}
	a.confirm("Restore file?",
		fmt.Sprintf("Discard working-copy changes to %s?", f.Path),
		model.SeverityWarn,
		Pending{Kind: PendingRestore, Paths: []string{f.Path}})
}

// Parallelize. Two-point selection: the anchor is the current change, the
// end is picked in the log.
func (a *App) startParallelize() {
	c := a.SelectedChange()
	if c == nil {
		return
	}
	a.EnterMode(ModeSelectParallelizeEnd, InputState{
		Prompt: "parallelize: pick the other end",
		Target: c.ChangeID,
	})
}

func (a *App) confirmParallelize(from, to string) {
	if from == to {
		a.Notify(model.Info("Pick two different changes to parallelize"))
		return
	}
	a.confirm("Parallelize?",
		fmt.Sprintf("Make %s::%s siblings?", from, to),
		model.SeverityWarn,
		Pending{Kind: PendingParallelize, From: from, To: to})
}

func (a *App) executeParallelize(from, to string) {
	out, err := a.JJ.Parallelize(from, to)
	if err != nil {
		a.Notify(model.Error(err.Error()))
		return
	}
	// Unrelated revisions: jj reports there is nothing to do. Info, not
	// success, and no refresh.
	if strings.Contains(strings.ToLower(out.Stdout+out.Stderr), "nothing to parallelize") {
		a.Notify(model.Info("Nothing to parallelize"))
		return
	}
	a.markDirtyAndRefresh(DirtyLog, model.Success("Parallelized "+from+"::"+to))
}

func (a *App) executeSimplifyParents() {
	c := a.SelectedChange()
	if c == nil {
		return
	}
	if _, err := a.JJ.SimplifyParents(c.ChangeID); err != nil {
		a.Notify(model.Error(err.Error()))
		return
	}
	a.markDirtyAndRefresh(DirtyLog, model.Success("Simplified parents of "+c.ChangeID))
}

// Undo / redo.

func (a *App) executeUndo() {
	out, err := a.JJ.Undo()
	if err != nil {
		a.Notify(model.Error(err.Error()))
		return
	}
	msg := strings.TrimSpace(strings.Split(out.Stdout+out.Stderr, "\n")[0])
	if msg == "" {
		msg = "Undone"
	}
	a.markDirtyAndRefresh(DirtyAll, model.Success(msg))
}

func (a *App) executeRedo() {
	target, err := a.JJ.RedoTarget()
	if err != nil {
		a.Notify(model.Error(err.Error()))
		return
	}
	if target == "" {
		a.Notify(model.Info("Nothing to redo"))
		return
	}
	if _, err := a.JJ.OpRestore(target); err != nil {
		a.Notify(model.Error(err.Error()))
		return
	}
	a.markDirtyAndRefresh(DirtyAll, model.Success("Redone (restored operation "+target+")"))
}

func (a *App) startOpRestore() {
	op := a.SelectedOperation()
	if op == nil {
		return
	}
	if op.IsCurrent {
		a.Notify(model.Info("Already at this operation"))
		return
	}
	a.confirm("Restore operation?",
		fmt.Sprintf("Restore repository state to %s %q?", op.ShortID(), op.Description),
		model.SeverityWarn,
		Pending{Kind: PendingOpRestore, OpID: op.ShortID()})
}

// Fetch.

func (a *App) startFetch(branch string) {
	remotes, err := a.JJ.GitRemotes()
	if err != nil {
		a.Notify(model.Error(err.Error()))
		return
	}
	if len(remotes) > 1 {
		names := make([]string, len(remotes))
		for i, r := range remotes {
			names[i] = r.Name
		}
		a.EnterMode(ModeSelectBranch, InputState{
			Prompt:  "fetch from remote",
			Options: names,
			Target:  branch,
		})
		return
	}
	a.executeFetch("", branch)
}

func (a *App) startFetchBranch() {
	a.EnterMode(ModeFetchBranch, InputState{Prompt: "fetch branch (glob)"})
}

// fetchRemoteChosen completes the fetch remote selection.
func (a *App) fetchRemoteChosen(remote, branch string) {
	if remote == "" {
		return
	}
	a.executeFetch(remote, branch)
}

func (a *App) executeFetch(remote, branch string) {
	out, err := a.JJ.GitFetch(remote, branch)
	if err != nil {
		a.Notify(model.Error(err.Error()))
		return
	}
	combined := strings.TrimSpace(out.Stdout + out.Stderr)
	if combined == "" || strings.Contains(combined, "Nothing changed") {
		a.Notify(model.Info("Already up to date"))
		return
	}
	a.markDirtyAndRefresh(DirtyLog|DirtyBookmarks, model.Success("Fetched"))
}

// Interactive externals.

func (a *App) startSplit() Effect {
	c := a.SelectedChange()
	if c == nil {
		return Effect{}
	}
	return Effect{Exec: &ExternalAction{Kind: ExternalSplit, Cmd: a.JJ.SplitCmd(c.ChangeID), ChangeID: c.ChangeID}}
}

func (a *App) startSquash() Effect {
	c := a.SelectedChange()
	if c == nil {
		return Effect{}
	}
	if c.IsRoot() {
		a.Notify(model.Error("Cannot squash the root commit"))
		return Effect{}
	}
	return Effect{Exec: &ExternalAction{Kind: ExternalSquash, Cmd: a.JJ.SquashCmd(c.ChangeID), ChangeID: c.ChangeID}}
}

func (a *App) startDiffedit() Effect {
	c := a.SelectedChange()
	if c == nil {
		return Effect{}
	}
	return Effect{Exec: &ExternalAction{Kind: ExternalDiffedit, Cmd: a.JJ.DiffeditCmd(c.ChangeID), ChangeID: c.ChangeID}}
}

func (a *App) startResolveInteractive() Effect {
	v := a.Top()
	if v.Selected < 0 || v.Selected >= len(a.Conflicts) {
		return Effect{}
	}
	path := a.Conflicts[v.Selected].Path
	return Effect{Exec: &ExternalAction{Kind: ExternalResolve, Cmd: a.JJ.ResolveCmd(path, v.ChangeID), Path: path}}
}

func (a *App) resolveWithTool(tool string) {
	v := a.Top()
	if v.Selected < 0 || v.Selected >= len(a.Conflicts) {
		return
	}
	path := a.Conflicts[v.Selected].Path
	if _, err := a.JJ.ResolveWithTool(path, tool, v.ChangeID); err != nil {
		a.Notify(model.Error(err.Error()))
		return
	}
	if err := a.refreshResolveList(); err != nil {
		a.Notify(model.Error(err.Error()))
		return
	}
	if a.Top().Kind == ViewResolve {
		a.Notify(model.Success("Resolved " + filepath.Base(path) + " with " + tool))
	}
}

// Compare mode: pick from, then to.

func (a *App) startCompare() {
	a.EnterMode(ModeSelectDiffFrom, InputState{Prompt: "compare: pick FROM revision"})
}

func (a *App) diffFromChosen(from string) {
	a.EnterMode(ModeSelectDiffTo, InputState{Prompt: "compare: pick TO revision", Target: from})
}

// Preview and diff format toggles.

func (a *App) togglePreview() {
	// Toggling off keeps the cache; toggling back on reuses it.
	a.PreviewEnabled = !a.PreviewEnabled
	if a.PreviewEnabled {
		a.markPreviewPending()
		a.Notify(model.Info("Preview on"))
	} else {
		a.Notify(model.Info("Preview off"))
	}
}

func (a *App) cycleDiffFormat() {
	a.DiffFormat = (a.DiffFormat + 1) % 4
	a.Cache.Clear()
	if a.findView(ViewDiff) != nil {
		if err := a.refreshDiffView(); err != nil {
			a.Notify(model.Error(err.Error()))
			return
		}
	}
	a.markPreviewPending()
	a.Notify(model.Info("Diff format: " + a.DiffFormat.String()))
}

// executePending dispatches a confirmed action on its tag.
func (a *App) executePending(p Pending) Effect {
	switch p.Kind {
	case PendingAbandon:
		if _, err := a.JJ.Abandon(p.ChangeID); err != nil {
			a.Notify(model.Error(err.Error()))
			return Effect{}
		}
		a.Cache.Remove(p.ChangeID)
		a.markDirtyAndRefresh(DirtyLog|DirtyStatus, model.Success("Abandoned "+p.ChangeID))

	case PendingRevert:
		if _, err := a.JJ.Revert(p.ChangeID); err != nil {
			a.Notify(model.Error(err.Error()))
			return Effect{}
		}
		a.markDirtyAndRefresh(DirtyLog|DirtyStatus, model.Success("Reverted "+p.ChangeID))

	case PendingRestore:
		if _, err := a.JJ.Restore(p.From, p.Paths...); err != nil {
			a.Notify(model.Error(err.Error()))
			return Effect{}
		}
		a.markDirtyAndRefresh(DirtyLog|DirtyStatus|DirtyPreviewAll, model.Success("Restored"))

	case PendingOpRestore:
		if _, err := a.JJ.OpRestore(p.OpID); err != nil {
			a.Notify(model.Error(err.Error()))
			return Effect{}
		}
		a.markDirtyAndRefresh(DirtyAll, model.Success("Restored operation "+p.OpID))

	case PendingParallelize:
		a.executeParallelize(p.From, p.To)

	case PendingBookmarkDelete:
		a.executeBookmarkDelete(p.Names)

	case PendingBookmarkMove:
		a.executeBookmarkMove(p.Bookmark, p.ChangeID)

	case PendingPush:
		a.executePush(p.Push)
	}
	return Effect{}
}
