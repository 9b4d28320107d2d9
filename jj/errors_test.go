package jj

import (
	"errors"
	"testing"
)

func TestClassifyFlagUnsupported(t *testing.T) {
	tests := []string{
		"error: unexpected argument '--skip-emptied' found",
		"error: unrecognized option '-b'",
		"error: unknown flag '--skip-emptied'",
		"error: unknown option '--skip-emptied'",
		"error: no such option: --allow-new",
	}
	for _, stderr := range tests {
		err := classifyStderr([]string{"rebase"}, stderr, 2)
		var fe *FlagUnsupportedError
		if !errors.As(err, &fe) {
			t.Errorf("%q not classified as FlagUnsupported: %v", stderr, err)
		}
	}
}

func TestClassifyFlagUnsupportedExtractsFlag(t *testing.T) {
	err := classifyStderr([]string{"rebase"}, "error: unexpected argument '--skip-emptied' found", 2)
	var fe *FlagUnsupportedError
	if !errors.As(err, &fe) {
		t.Fatalf("wrong type: %v", err)
	}
	if fe.Flag != "--skip-emptied" {
		t.Errorf("flag = %q", fe.Flag)
	}
}

func TestClassifyImmutable(t *testing.T) {
	err := classifyStderr([]string{"describe"}, "Error: Commit 8b7ea4df is immutable", 1)
	var ie *ImmutableError
	if !errors.As(err, &ie) {
		t.Fatalf("wrong type: %v", err)
	}
	if ie.CommitID != "8b7ea4df" {
		t.Errorf("commit = %q", ie.CommitID)
	}
}

func TestClassifyProtected(t *testing.T) {
	err := classifyStderr([]string{"git", "push"},
		`remote: error: GH006: Protected branch update failed for "main"`, 1)
	var pe *ProtectedError
	if !errors.As(err, &pe) {
		t.Fatalf("wrong type: %v", err)
	}
}

func TestClassifyConflict(t *testing.T) {
	err := classifyStderr([]string{"git", "push"},
		"Error: failed to push some refs: non-fast-forward update rejected", 1)
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("wrong type: %v", err)
	}
}

func TestClassifyDefault(t *testing.T) {
	err := classifyStderr([]string{"log"}, "Error: something novel went wrong", 1)
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("wrong type: %v", err)
	}
	if cmdErr.ExitCode != 1 {
		t.Errorf("exit = %d", cmdErr.ExitCode)
	}
}

func TestPrivateCommitError(t *testing.T) {
	if !IsPrivateCommitError("Won't push commit abc123 since it is private") {
		t.Error("standard message not detected")
	}
	if !IsPrivateCommitError("error: won't push ... it is private") {
		t.Error("lowercase variant not detected")
	}
	if IsPrivateCommitError("private key error") {
		t.Error("false positive: no won't-push")
	}
	if IsPrivateCommitError("Push failed: network error") {
		t.Error("false positive: unrelated error")
	}
}

func TestEmptyDescriptionError(t *testing.T) {
	if !IsEmptyDescriptionError("Won't push commit abc since it has no description (empty description)") {
		t.Error("not detected")
	}
	if IsEmptyDescriptionError("network timeout") {
		t.Error("false positive")
	}
}

func TestFirstErrorLinePrefersErrorPrefix(t *testing.T) {
	stderr := "Hint: do something\nError: the actual problem\nmore noise"
	if got := firstErrorLine(stderr); got != "the actual problem" {
		t.Errorf("got %q", got)
	}
}
