// Package interactive is the quick-action mode behind `tij -i`: a couple of
// one-shot huh forms for people who want a jj operation without the full TUI.
package interactive

import (
	"github.com/charmbracelet/huh"

	"github.com/nakamura-shuta/tij/jj"
)

// Run shows the action picker and executes the chosen flow.
func Run(executor *jj.Executor) error {
	var action string

	err := huh.NewSelect[string]().
		Title("tij - Quick Actions").
		Options(
			huh.NewOption("Edit - Switch working copy to revision", "edit"),
			huh.NewOption("Rebase - Move revision onto new parent", "rebase"),
		).
		Value(&action).
		Run()
	if err != nil {
		return nil // User cancelled.
	}

	switch action {
	case "edit":
		return runEdit(executor)
	case "rebase":
		return runRebase(executor)
	}
	return nil
}
