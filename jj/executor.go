package jj

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// Captured is the raw result of one jj invocation.
type Captured struct {
	Stdout   string
	Stderr   string
	ExitCode int
	// SnapshotRefused lists paths from a "Refused to snapshot some files"
	// warning on stderr. Informational; the command still succeeded.
	SnapshotRefused []string
}

// Runner spawns jj once and captures its output. The production runner uses
// os/exec; tests substitute a scripted one.
type Runner interface {
	Run(dir string, args []string) (stdout, stderr []byte, exitCode int, err error)
}

type execRunner struct{}

func (execRunner) Run(dir string, args []string) ([]byte, []byte, int, error) {
	cmd := exec.Command("jj", args...)
	cmd.Dir = dir
	// Stdin stays attached to the empty sentinel so jj can never block on an
	// interactive prompt.
	cmd.Stdin = bytes.NewReader(nil)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
			err = nil
		} else if errors.Is(err, exec.ErrNotFound) {
			return nil, nil, -1, ErrJjAbsent
		}
	}
	return stdout.Bytes(), stderr.Bytes(), exitCode, err
}

// Executor is a typed façade over the jj CLI. Every invocation runs in the
// workspace root with --color=never --no-pager prepended; the process is
// spawned fresh per call.
type Executor struct {
	root   string
	runner Runner

	// Deprecation warnings are stripped from the error path but surfaced
	// once per session as an info notification.
	deprecations     []string
	seenDeprecations map[string]bool
}

// NewExecutor resolves the workspace root for path and returns an executor
// bound to it. Fails with ErrJjAbsent or ErrNotAJjRepo.
func NewExecutor(path string) (*Executor, error) {
	return newExecutor(path, execRunner{})
}

// NewExecutorWithRunner is the test seam: it skips root resolution and binds
// the executor to the given runner.
func NewExecutorWithRunner(root string, r Runner) *Executor {
	return &Executor{root: root, runner: r, seenDeprecations: map[string]bool{}}
}

func newExecutor(path string, r Runner) (*Executor, error) {
	e := &Executor{root: path, runner: r, seenDeprecations: map[string]bool{}}
	out, err := e.Run("workspace", "root")
	if err != nil {
		if errors.Is(err, ErrJjAbsent) {
			return nil, ErrJjAbsent
		}
		return nil, ErrNotAJjRepo
	}
	root := strings.TrimSpace(out.Stdout)
	if root == "" {
		return nil, ErrNotAJjRepo
	}
	e.root = root
	return e, nil
}

// Root returns the workspace root all commands run in.
func (e *Executor) Root() string {
	return e.root
}

// Run executes one jj command. Deprecation warnings are stripped from stderr
// and queued on every call. On non-zero exit the remaining stderr is
// classified into the error taxonomy; on success snapshot-refused warnings
// are attached to the result.
func (e *Executor) Run(args ...string) (Captured, error) {
	argv := append([]string{"--color=never", "--no-pager"}, args...)
	log.Debug("jj", "args", strings.Join(args, " "))

	stdout, stderr, exitCode, err := e.runner.Run(e.root, argv)
	if err != nil {
		if errors.Is(err, ErrJjAbsent) {
			return Captured{}, ErrJjAbsent
		}
		return Captured{}, err
	}

	stderrStr := string(stderr)
	cleaned, deprecations := splitDeprecations(stderrStr)
	for _, d := range deprecations {
		if !e.seenDeprecations[d] {
			e.seenDeprecations[d] = true
			e.deprecations = append(e.deprecations, d)
		}
	}

	if exitCode != 0 {
		cerr := classifyStderr(args, cleaned, exitCode)
		log.Warn("jj failed", "args", strings.Join(args, " "), "exit", exitCode, "err", cerr)
		return Captured{Stdout: string(stdout), Stderr: cleaned, ExitCode: exitCode}, cerr
	}

	return Captured{
		Stdout:          string(stdout),
		Stderr:          cleaned,
		ExitCode:        0,
		SnapshotRefused: extractSnapshotRefused(stderrStr),
	}, nil
}

// TakeDeprecations drains deprecation warnings collected since the last call.
func (e *Executor) TakeDeprecations() []string {
	d := e.deprecations
	e.deprecations = nil
	return d
}

// splitDeprecations removes deprecation warning lines from stderr. jj emits
// these with exit 0 (e.g. "Warning: `jj describe --edit` is deprecated").
func splitDeprecations(stderr string) (cleaned string, deprecations []string) {
	var kept []string
	for _, line := range strings.Split(stderr, "\n") {
		if strings.Contains(strings.ToLower(line), "is deprecated") {
			deprecations = append(deprecations, strings.TrimSpace(line))
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n"), deprecations
}

// extractSnapshotRefused parses the "Refused to snapshot some files" warning,
// collecting the indented path lines that follow it.
func extractSnapshotRefused(stderr string) []string {
	var paths []string
	inBlock := false
	for _, line := range strings.Split(stderr, "\n") {
		if strings.Contains(line, "Refused to snapshot") {
			inBlock = true
			continue
		}
		if !inBlock {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !strings.HasPrefix(line, " ") {
			inBlock = false
			continue
		}
		if strings.HasPrefix(trimmed, "Hint:") {
			inBlock = false
			continue
		}
		paths = append(paths, trimmed)
	}
	return paths
}
