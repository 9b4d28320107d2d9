package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nakamura-shuta/tij/app"
	"github.com/nakamura-shuta/tij/config"
	"github.com/nakamura-shuta/tij/interactive"
	"github.com/nakamura-shuta/tij/internal/logging"
	"github.com/nakamura-shuta/tij/jj"
	"github.com/nakamura-shuta/tij/ui"
)

// Exit codes: 0 normal quit, 1 startup error, 2 unrecoverable runtime error.
func main() {
	os.Exit(run())
}

func run() int {
	interactiveMode := flag.Bool("i", false, "Run in interactive mode (quick actions)")
	flag.Parse()

	closer := logging.Setup()
	defer closer.Close()

	path := "."
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	executor, err := jj.NewExecutor(path)
	if err != nil {
		switch {
		case errors.Is(err, jj.ErrJjAbsent):
			fmt.Fprintln(os.Stderr, "tij: jj binary not found in PATH")
		case errors.Is(err, jj.ErrNotAJjRepo):
			fmt.Fprintf(os.Stderr, "tij: %s is not a jj repository\n", path)
		default:
			fmt.Fprintf(os.Stderr, "tij: %v\n", err)
		}
		return 1
	}

	if *interactiveMode {
		if err := interactive.Run(executor); err != nil {
			fmt.Fprintf(os.Stderr, "tij: %v\n", err)
			return 1
		}
		return 0
	}

	cfg, err := config.Load(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "tij: config: %v\n", err)
		return 1
	}

	a, err := app.New(executor, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tij: %v\n", err)
		return 1
	}

	program := tea.NewProgram(ui.New(a), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tij: %v\n", err)
		return 2
	}
	return a.ExitCode
}
