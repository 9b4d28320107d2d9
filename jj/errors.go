package jj

import (
	"errors"
	"fmt"
	"strings"
)

// Startup errors. Both abort before the TUI opens.
var (
	// ErrJjAbsent means the jj binary is not on PATH.
	ErrJjAbsent = errors.New("jj binary not found in PATH")
	// ErrNotAJjRepo means `jj workspace root` failed for the given path.
	ErrNotAJjRepo = errors.New("not a jj repository")
)

// CommandError is the default failure: jj exited non-zero and stderr did not
// match any more specific pattern.
type CommandError struct {
	Args     []string
	Stderr   string
	ExitCode int
}

func (e *CommandError) Error() string {
	msg := firstErrorLine(e.Stderr)
	if msg == "" {
		msg = fmt.Sprintf("exit code %d", e.ExitCode)
	}
	return fmt.Sprintf("jj %s: %s", strings.Join(e.Args, " "), msg)
}

// FlagUnsupportedError means the installed jj rejected a flag. Callers use
// the Flag to decide whether a fallback retry without it makes sense.
type FlagUnsupportedError struct {
	Flag   string
	Stderr string
}

func (e *FlagUnsupportedError) Error() string {
	if e.Flag != "" {
		return fmt.Sprintf("flag %s not supported by installed jj", e.Flag)
	}
	return "flag not supported by installed jj"
}

// ImmutableError means jj refused to rewrite an immutable commit.
type ImmutableError struct {
	CommitID string
	Stderr   string
}

func (e *ImmutableError) Error() string {
	if e.CommitID != "" {
		return fmt.Sprintf("commit %s is immutable", e.CommitID)
	}
	return "commit is immutable"
}

// ProtectedError means a push was rejected because the bookmark is protected
// on the remote side.
type ProtectedError struct {
	Name   string
	Stderr string
}

func (e *ProtectedError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("bookmark %q is protected", e.Name)
	}
	return "bookmark is protected"
}

// ConflictError covers refs conflicts and non-fast-forward rejections.
type ConflictError struct {
	Stderr string
}

func (e *ConflictError) Error() string {
	return firstErrorLine(e.Stderr)
}

// flagUnsupportedPatterns are the stderr signatures different jj (and clap)
// versions emit for an unknown flag.
var flagUnsupportedPatterns = []string{
	"unrecognized argument",
	"unrecognized option",
	"unexpected argument",
	"unknown flag",
	"unknown option",
	"no such option",
}

// classifyStderr maps a non-zero jj exit onto the error taxonomy.
func classifyStderr(args []string, stderr string, exitCode int) error {
	lower := strings.ToLower(stderr)

	for _, pat := range flagUnsupportedPatterns {
		if strings.Contains(lower, pat) {
			return &FlagUnsupportedError{
				Flag:   extractOffendingFlag(stderr),
				Stderr: stderr,
			}
		}
	}

	if strings.Contains(lower, "is immutable") {
		return &ImmutableError{
			CommitID: extractImmutableCommit(stderr),
			Stderr:   stderr,
		}
	}

	if strings.Contains(lower, "protected branch") || strings.Contains(lower, "protected bookmark") {
		return &ProtectedError{
			Name:   extractQuoted(stderr),
			Stderr: stderr,
		}
	}

	if strings.Contains(lower, "non-fast-forward") ||
		strings.Contains(lower, "refs conflict") ||
		strings.Contains(lower, "failed to push some refs") {
		return &ConflictError{Stderr: stderr}
	}

	return &CommandError{Args: args, Stderr: stderr, ExitCode: exitCode}
}

// extractOffendingFlag pulls the quoted flag out of messages like
// "error: unexpected argument '--skip-emptied' found".
func extractOffendingFlag(stderr string) string {
	for _, q := range []string{"'", "\""} {
		start := strings.Index(stderr, q)
		if start < 0 {
			continue
		}
		rest := stderr[start+1:]
		end := strings.Index(rest, q)
		if end < 0 {
			continue
		}
		candidate := rest[:end]
		if strings.HasPrefix(candidate, "-") {
			return candidate
		}
	}
	return ""
}

// extractImmutableCommit pulls the commit id out of
// "Commit abc123 is immutable".
func extractImmutableCommit(stderr string) string {
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		rest, ok := strings.CutPrefix(line, "Error: Commit ")
		if !ok {
			rest, ok = strings.CutPrefix(line, "Commit ")
		}
		if !ok {
			continue
		}
		if id, _, found := strings.Cut(rest, " is immutable"); found {
			return strings.TrimSpace(id)
		}
	}
	return ""
}

func extractQuoted(s string) string {
	start := strings.IndexAny(s, "\"'")
	if start < 0 {
		return ""
	}
	q := s[start]
	rest := s[start+1:]
	end := strings.IndexByte(rest, q)
	if end < 0 {
		return ""
	}
	return rest[:end]
}

// IsPrivateCommitError reports whether a push failed because a commit is
// private. jj's message: "Won't push commit abc123 since it is private".
// The push protocol retries once with --allow-private.
func IsPrivateCommitError(stderr string) bool {
	lower := strings.ToLower(stderr)
	return strings.Contains(lower, "won't push") && strings.Contains(lower, "private")
}

// IsEmptyDescriptionError reports whether a push failed because a commit has
// no description. Retried once with --allow-empty-description.
func IsEmptyDescriptionError(stderr string) bool {
	lower := strings.ToLower(stderr)
	return strings.Contains(lower, "empty description")
}

// IsFlagUnsupported reports whether err (anywhere in its chain) is a
// FlagUnsupportedError.
func IsFlagUnsupported(err error) bool {
	var fe *FlagUnsupportedError
	return errors.As(err, &fe)
}

// firstErrorLine returns the most useful single line of a stderr blob:
// the first line starting with "Error:" if any, else the first non-empty line.
func firstErrorLine(stderr string) string {
	var first string
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if first == "" {
			first = line
		}
		if rest, ok := strings.CutPrefix(line, "Error: "); ok {
			return rest
		}
	}
	return first
}
