package app

import (
	"fmt"
	"strings"

	"github.com/nakamura-shuta/tij/jj"
	"github.com/nakamura-shuta/tij/model"
)

// Push flow: Idle → PickTarget → DryRun → Classify → Confirm → Execute →
// Done. The confirmation preview must reflect the same remote the execute
// step will use: both read pushRemote, and every exit path clears it.

// StartPushBookmark begins the flow for one named bookmark.
func (a *App) StartPushBookmark(name string) {
	if name == "" {
		a.Notify(model.Error("No bookmark to push"))
		return
	}
	a.beginPush(jj.PushOptions{Bookmark: name})
}

// startPushSelectedBookmark pushes the bookmark on the selected change.
func (a *App) startPushSelectedBookmark() {
	c := a.SelectedChange()
	if c == nil {
		return
	}
	if len(c.Bookmarks) == 0 {
		a.Notify(model.Info("Selected change has no bookmark; use p to push by change"))
		return
	}
	a.StartPushBookmark(c.Bookmarks[0])
}

// startPushChange pushes the selected change via --change.
func (a *App) startPushChange() {
	c := a.SelectedChange()
	if c == nil {
		return
	}
	a.beginPush(jj.PushOptions{ChangeID: c.ChangeID, AllowNew: true})
}

// StartPushRevisions pushes a revset via --revisions.
func (a *App) StartPushRevisions(revset string) {
	if revset == "" {
		return
	}
	a.beginPush(jj.PushOptions{Revisions: revset})
}

// startPushBulkSelect enters the bulk mode list (--all / --tracked /
// --deleted).
func (a *App) startPushBulkSelect() {
	a.EnterMode(ModePushBulk, InputState{
		Prompt:  "bulk push",
		Options: []string{"--all", "--tracked", "--deleted"},
	})
}

func (a *App) bulkModeChosen(choice string) {
	var mode jj.PushBulkMode
	switch choice {
	case "--all":
		mode = jj.PushBulkAll
	case "--tracked":
		mode = jj.PushBulkTracked
	case "--deleted":
		mode = jj.PushBulkDeleted
	default:
		return
	}
	a.beginPush(jj.PushOptions{Bulk: mode})
}

// beginPush resolves the target remote, prompting when several are
// configured and none is selected yet, then continues to the dry-run.
func (a *App) beginPush(opts jj.PushOptions) {
	a.pendingPushOpts = &opts

	if a.pushRemote == "" {
		remotes, err := a.JJ.GitRemotes()
		if err != nil {
			a.pendingPushOpts = nil
			a.Notify(model.Error(err.Error()))
			return
		}
		switch len(remotes) {
		case 0:
			a.pendingPushOpts = nil
			a.Notify(model.Error("No git remotes configured"))
			return
		case 1:
			// Unambiguous: use it silently.
			a.pushRemote = remotes[0].Name
		default:
			names := make([]string, len(remotes))
			for i, r := range remotes {
				names[i] = r.Name
			}
			a.EnterMode(ModeSelectRemote, InputState{Prompt: "push to remote", Options: names})
			return
		}
	}
	a.dryRunPush()
}

// remoteChosen completes the remote selection and resumes the flow.
func (a *App) remoteChosen(remote string) {
	if remote == "" || a.pendingPushOpts == nil {
		a.pushRemote = ""
		a.pendingPushOpts = nil
		return
	}
	a.pushRemote = remote
	a.dryRunPush()
}

// dryRunPush previews the push and classifies the result as normal, force
// needed, protected, or nothing to do.
func (a *App) dryRunPush() {
	opts := a.pendingPushOpts
	a.pendingPushOpts = nil
	if opts == nil {
		return
	}
	opts.Remote = a.pushRemote
	opts.DryRun = true

	intent := &PushIntent{Opts: *opts}

	out, err := a.JJ.GitPush(*opts)
	if err != nil {
		stderr := pushErrStderr(err)
		if jj.IsPrivateCommitError(stderr) || jj.IsEmptyDescriptionError(stderr) {
			// The dry-run was rejected for a condition the execute step can
			// lift with allow-flags; confirm with a warning instead of
			// failing the flow.
			intent.DryRunFailed = true
			intent.PreviewText = strings.TrimSpace(stderr)
			a.confirm(a.pushPrompt(intent),
				intent.PreviewText+"\n\nPush will retry with the needed --allow flags.",
				model.SeverityWarn,
				Pending{Kind: PendingPush, Push: intent})
			return
		}
		a.pushRemote = ""
		a.Notify(model.Error(err.Error()))
		return
	}

	preview := jj.ParsePushDryRun(out.Stdout + out.Stderr)
	intent.Preview = preview
	intent.PreviewText = strings.TrimSpace(out.Stdout + out.Stderr)

	if preview.NothingChanged {
		a.pushRemote = ""
		a.Notify(model.Info("Nothing to push"))
		return
	}

	intent.Force = preview.ForceRequired()
	for _, name := range preview.Bookmarks() {
		if a.IsProtected(name) {
			intent.Protected = true
			break
		}
	}

	severity := model.SeverityInfo
	message := intent.PreviewText
	switch {
	case intent.Force && intent.Protected:
		severity = model.SeverityError
		message = fmt.Sprintf("FORCE PUSH to protected bookmark!\n%s\n\nForce pushing to a protected bookmark rewrites shared history.", intent.PreviewText)
	case intent.Force:
		severity = model.SeverityWarn
		message = fmt.Sprintf("Force push required:\n%s", intent.PreviewText)
	case intent.Protected:
		severity = model.SeverityWarn
		message = fmt.Sprintf("Push touches a protected bookmark:\n%s", intent.PreviewText)
	}

	a.confirm(a.pushPrompt(intent), message, severity, Pending{Kind: PendingPush, Push: intent})
}

func (a *App) pushPrompt(intent *PushIntent) string {
	target := "bookmarks"
	switch {
	case intent.Opts.Bookmark != "":
		target = "bookmark " + intent.Opts.Bookmark
	case intent.Opts.ChangeID != "":
		target = "change " + intent.Opts.ChangeID
	case intent.Opts.Revisions != "":
		target = "revisions " + intent.Opts.Revisions
	case intent.Opts.Bulk != jj.PushBulkNone:
		target = intent.Opts.Bulk.String()
	}
	return fmt.Sprintf("Push %s to %s?", target, a.pushRemote)
}

// executePush runs the real push with the same remote the dry-run used, and
// walks the allow-flag retry ladder on private-commit / empty-description
// rejections. Exactly one retry per condition.
func (a *App) executePush(intent *PushIntent) {
	if intent == nil {
		return
	}
	opts := intent.Opts
	opts.DryRun = false
	opts.Remote = a.pushRemote

	var retryNotes []string
	_, err := a.JJ.GitPush(opts)
	for attempt := 0; err != nil && attempt < 2; attempt++ {
		stderr := pushErrStderr(err)
		retried := false
		if jj.IsPrivateCommitError(stderr) && !opts.AllowPrivate {
			opts.AllowPrivate = true
			retryNotes = append(retryNotes, "private commit allowed")
			retried = true
		}
		if jj.IsEmptyDescriptionError(stderr) && !opts.AllowEmptyDescription {
			opts.AllowEmptyDescription = true
			retryNotes = append(retryNotes, "empty description allowed")
			retried = true
		}
		if !retried {
			break
		}
		_, err = a.JJ.GitPush(opts)
	}

	// Every exit path clears the remote selection.
	a.pushRemote = ""

	if err != nil {
		a.Notify(model.Error(err.Error()))
		return
	}

	msg := "Pushed to " + opts.Remote
	if opts.Remote == "" {
		msg = "Pushed"
	}
	if n := len(intent.Preview.Actions); n > 0 {
		msg = fmt.Sprintf("%s (%d bookmark update(s))", msg, n)
	}
	if len(retryNotes) > 0 {
		msg += " (" + strings.Join(retryNotes, " + ") + ")"
	}

	severity := model.SeveritySuccess
	if len(retryNotes) > 0 {
		severity = model.SeverityWarn
	}

	a.Dirty.Set(DirtyLog | DirtyBookmarks)
	if refreshErr := a.Refresh(); refreshErr != nil {
		a.Notify(model.Error("refresh failed: " + refreshErr.Error()))
		return
	}
	a.surfaceDeprecations()
	a.Notify(model.NewNotification(severity, msg))
}

// pushErrStderr digs the stderr text out of a classified push error.
func pushErrStderr(err error) string {
	switch e := err.(type) {
	case *jj.CommandError:
		return e.Stderr
	case *jj.ProtectedError:
		return e.Stderr
	case *jj.ConflictError:
		return e.Stderr
	case *jj.FlagUnsupportedError:
		return e.Stderr
	case *jj.ImmutableError:
		return e.Stderr
	}
	return err.Error()
}
