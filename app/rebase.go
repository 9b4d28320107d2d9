package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nakamura-shuta/tij/jj"
	"github.com/nakamura-shuta/tij/model"
)

// Rebase flow: pick a destination in the log, then Try(flagset) →
// Fail(FlagUnsupported) → Retry(flagset minus the flag) → Done. Any other
// failure ends the flow with an error notification.

// rebaseIntent is the in-flight rebase, mutated by the destination picker's
// flavor keys before execution.
type rebaseIntent struct {
	Mode        jj.RebaseMode
	Source      string
	SkipEmptied bool
}

func (a *App) startRebase() {
	c := a.SelectedChange()
	if c == nil {
		return
	}
	if c.IsRoot() {
		a.Notify(model.Error("Cannot rebase the root commit"))
		return
	}
	a.rebase = rebaseIntent{Mode: jj.RebaseSource, Source: c.ChangeID}
	a.EnterMode(ModeSelectRebaseDest, InputState{
		Prompt: a.rebasePrompt(),
		Target: c.ChangeID,
	})
}

func (a *App) startRebaseInsertBefore() {
	c := a.SelectedChange()
	if c == nil {
		return
	}
	a.rebase = rebaseIntent{Mode: jj.RebaseInsertBefore, Source: c.ChangeID}
	a.EnterMode(ModeSelectRebaseDest, InputState{
		Prompt: a.rebasePrompt(),
		Target: c.ChangeID,
	})
}

func (a *App) rebasePrompt() string {
	skip := ""
	if a.rebase.SkipEmptied {
		skip = " --skip-emptied"
	}
	return fmt.Sprintf("rebase %s %s%s: pick destination (s/b/r/A/B mode, e toggle)",
		a.rebase.Mode, a.rebase.Source, skip)
}

func (a *App) setRebaseFlavor(key string) {
	switch key {
	case "s":
		a.rebase.Mode = jj.RebaseSource
	case "b":
		a.rebase.Mode = jj.RebaseBranch
	case "r":
		a.rebase.Mode = jj.RebaseRevisions
	}
	a.Input.Prompt = a.rebasePrompt()
}

func (a *App) setRebaseInsert(key string) {
	switch key {
	case "A":
		a.rebase.Mode = jj.RebaseInsertAfter
	case "B":
		a.rebase.Mode = jj.RebaseInsertBefore
	}
	a.Input.Prompt = a.rebasePrompt()
}

func (a *App) toggleSkipEmptied() {
	a.rebase.SkipEmptied = !a.rebase.SkipEmptied
	a.Input.Prompt = a.rebasePrompt()
}

// executeRebase runs the rebase with the picked destination, retrying once
// without --skip-emptied when the installed jj rejects a flag. The retry's
// notification keeps the fallback severity: the user must see the command
// did not run the way they asked.
func (a *App) executeRebase(destination string) {
	intent := a.rebase
	a.rebase = rebaseIntent{}

	if destination == intent.Source {
		a.Notify(model.Info("Source and destination are the same"))
		return
	}

	opts := jj.RebaseOptions{
		Mode:        intent.Mode,
		Source:      intent.Source,
		Destination: destination,
		SkipEmptied: intent.SkipEmptied,
	}

	out, err := a.JJ.Rebase(opts)
	note := ""
	if err != nil {
		var fe *jj.FlagUnsupportedError
		if !errors.As(err, &fe) || !opts.SkipEmptied {
			a.Notify(model.Error(err.Error()))
			return
		}
		// The flag rejection may be for --skip-emptied or for the mode flag
		// itself on old jj; retry without --skip-emptied and let a second
		// rejection end the flow.
		opts.SkipEmptied = false
		out, err = a.JJ.Rebase(opts)
		if err != nil {
			a.Notify(model.Error(err.Error()))
			return
		}
		note = " (--skip-emptied not supported, empty commits may remain)"
	}

	severity := model.SeveritySuccess
	msg := fmt.Sprintf("Rebased %s onto %s", intent.Source, destination)
	if strings.Contains(out.Stdout+out.Stderr, "conflict") {
		severity = model.SeverityWarn
		msg += " (conflicts created)"
	}
	if note != "" {
		// The fallback note preserves the severity it lands on; a warn stays
		// a warn.
		if severity == model.SeveritySuccess {
			severity = model.SeverityWarn
		}
		msg += note
	}

	a.Dirty.Set(DirtyLog | DirtyStatus | DirtyPreviewAll)
	if refreshErr := a.Refresh(); refreshErr != nil {
		a.Notify(model.Error("refresh failed: " + refreshErr.Error()))
		return
	}
	a.surfaceDeprecations()
	a.Notify(model.NewNotification(severity, msg))
}
