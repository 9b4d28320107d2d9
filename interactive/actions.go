package interactive

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/nakamura-shuta/tij/jj"
	"github.com/nakamura-shuta/tij/model"
)

func runEdit(executor *jj.Executor) error {
	changes, err := executor.Log(jj.LogOptions{Limit: 50})
	if err != nil {
		return fmt.Errorf("failed to get log: %w", err)
	}

	options := buildRevisionOptions(changes)
	if len(options) == 0 {
		fmt.Println("No revisions available")
		return nil
	}

	var revision string
	err = huh.NewSelect[string]().
		Title("Select revision to edit").
		Options(options...).
		Value(&revision).
		Run()
	if err != nil {
		return nil // Cancelled.
	}

	if _, err := executor.Edit(revision); err != nil {
		return fmt.Errorf("edit failed: %w", err)
	}
	fmt.Printf("Now editing %s\n", revision)
	return nil
}

func runRebase(executor *jj.Executor) error {
	changes, err := executor.Log(jj.LogOptions{Limit: 50})
	if err != nil {
		return fmt.Errorf("failed to get log: %w", err)
	}

	options := buildRevisionOptions(changes)
	if len(options) < 2 {
		fmt.Println("Need at least 2 revisions to rebase")
		return nil
	}

	var source string
	err = huh.NewSelect[string]().
		Title("Select revision to rebase (source)").
		Options(options...).
		Value(&source).
		Run()
	if err != nil {
		return nil
	}

	var dest string
	err = huh.NewSelect[string]().
		Title("Select destination (new parent)").
		Description(fmt.Sprintf("Rebasing %s onto...", source)).
		Options(options...).
		Value(&dest).
		Run()
	if err != nil {
		return nil
	}

	if source == dest {
		fmt.Println("Source and destination cannot be the same")
		return nil
	}

	if _, err := executor.Rebase(jj.RebaseOptions{
		Mode:        jj.RebaseSource,
		Source:      source,
		Destination: dest,
	}); err != nil {
		return fmt.Errorf("rebase failed: %w", err)
	}
	fmt.Printf("Rebased %s onto %s\n", source, dest)
	return nil
}

func buildRevisionOptions(changes []model.Change) []huh.Option[string] {
	var options []huh.Option[string]
	for i := range changes {
		c := &changes[i]
		if c.ChangeID == "?" {
			continue
		}
		label := c.ChangeID
		if c.IsWorkingCopy {
			label += " @"
		}
		if len(c.Bookmarks) > 0 {
			label += " [" + strings.Join(c.Bookmarks, ", ") + "]"
		}
		label += " " + c.ShortDescription()
		options = append(options, huh.NewOption(label, c.ChangeID))
	}
	return options
}
