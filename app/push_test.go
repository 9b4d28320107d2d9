package app

import (
	"strings"
	"testing"

	"github.com/nakamura-shuta/tij/model"
)

func twoRemotes() *stub {
	return &stub{
		contains: "git remote list",
		stdout:   "origin https://example.com/repo.git\nupstream https://example.com/up.git",
	}
}

func oneRemote() *stub {
	return &stub{contains: "git remote list", stdout: "origin https://example.com/repo.git"}
}

// Scenario: two remotes configured, the user selects upstream. The dry-run,
// the confirmation preview, and the execute step must all use upstream, and
// the selection must be cleared afterwards.
func TestPushRemoteConsistency(t *testing.T) {
	a, runner := newTestApp(t,
		twoRemotes(),
		&stub{contains: "--dry-run", stdout: "Move forward bookmark main from aaa to bbb\nDry-run requested, not pushing."},
	)

	a.StartPushBookmark("main")
	if a.Mode != ModeSelectRemote {
		t.Fatalf("mode = %s, want remote selection", a.Mode)
	}

	// Pick upstream (second option).
	a.HandleKey("j")
	a.HandleKey("enter")

	if a.Mode != ModeConfirmYN {
		t.Fatalf("mode after dry-run = %s", a.Mode)
	}
	if a.PushTargetRemote() != "upstream" {
		t.Fatalf("push target remote = %q", a.PushTargetRemote())
	}
	dryRun := runner.lastCall("--dry-run")
	if !strings.Contains(dryRun, "--remote upstream") {
		t.Errorf("dry-run remote mismatch: %q", dryRun)
	}

	a.HandleKey("y")

	var execute string
	for _, c := range runner.calls {
		if strings.Contains(c, "git push") && !strings.Contains(c, "--dry-run") {
			execute = c
		}
	}
	if !strings.Contains(execute, "--remote upstream") {
		t.Errorf("execute remote mismatch: %q", execute)
	}
	if a.PushTargetRemote() != "" {
		t.Errorf("push target remote not cleared on success: %q", a.PushTargetRemote())
	}
	if a.Notification == nil || a.Notification.Severity != model.SeveritySuccess {
		t.Errorf("notification = %+v", a.Notification)
	}
}

func TestPushCancelClearsRemote(t *testing.T) {
	a, _ := newTestApp(t,
		twoRemotes(),
		&stub{contains: "--dry-run", stdout: "Move forward bookmark main from aaa to bbb"},
	)

	a.StartPushBookmark("main")
	a.HandleKey("j")
	a.HandleKey("enter")
	if a.Mode != ModeConfirmYN {
		t.Fatalf("mode = %s", a.Mode)
	}

	a.HandleKey("esc")
	if a.PushTargetRemote() != "" {
		t.Errorf("push target remote not cleared on cancel: %q", a.PushTargetRemote())
	}
	if a.Mode != ModeNone {
		t.Errorf("mode = %s", a.Mode)
	}
}

func TestPushSingleRemoteSkipsSelection(t *testing.T) {
	a, runner := newTestApp(t,
		oneRemote(),
		&stub{contains: "--dry-run", stdout: "Move forward bookmark main from aaa to bbb"},
	)

	a.StartPushBookmark("main")
	if a.Mode != ModeConfirmYN {
		t.Fatalf("single remote should go straight to confirm, mode = %s", a.Mode)
	}
	if !strings.Contains(runner.lastCall("--dry-run"), "--remote origin") {
		t.Errorf("dry-run = %q", runner.lastCall("--dry-run"))
	}
}

func TestPushForcePreviewElevatesSeverity(t *testing.T) {
	a, _ := newTestApp(t,
		oneRemote(),
		&stub{contains: "--dry-run", stdout: "Move sideways bookmark feature from aaa to bbb"},
	)

	a.StartPushBookmark("feature")
	if a.Mode != ModeConfirmYN {
		t.Fatalf("mode = %s", a.Mode)
	}
	p := a.PendingAction()
	if p == nil || p.Push == nil || !p.Push.Force {
		t.Fatalf("pending = %+v", p)
	}
	if p.Severity != model.SeverityWarn {
		t.Errorf("severity = %s, want warn", p.Severity)
	}
}

func TestPushForceProtectedIsStrongestWarning(t *testing.T) {
	a, _ := newTestApp(t,
		oneRemote(),
		&stub{contains: "--dry-run", stdout: "Move backward bookmark main from aaa to bbb"},
	)

	a.StartPushBookmark("main")
	p := a.PendingAction()
	if p == nil || p.Push == nil || !p.Push.Force || !p.Push.Protected {
		t.Fatalf("pending = %+v", p)
	}
	if p.Severity != model.SeverityError {
		t.Errorf("severity = %s, want error", p.Severity)
	}
}

func TestPushNothingChangedIsInfo(t *testing.T) {
	a, _ := newTestApp(t,
		oneRemote(),
		&stub{contains: "--dry-run", stdout: "Nothing changed."},
	)

	a.StartPushBookmark("main")
	if a.Mode != ModeNone {
		t.Fatalf("nothing-to-push must not confirm, mode = %s", a.Mode)
	}
	if a.Notification == nil || a.Notification.Severity != model.SeverityInfo {
		t.Errorf("notification = %+v", a.Notification)
	}
	if a.PushTargetRemote() != "" {
		t.Error("remote selection leaked")
	}
}

// Private-commit rejection: the execute step retries once with
// --allow-private and the final notification notes the retry at warn
// severity.
func TestPushPrivateCommitRetryLadder(t *testing.T) {
	a, runner := newTestApp(t,
		oneRemote(),
		&stub{contains: "--dry-run", stdout: "Move forward bookmark main from aaa to bbb"},
		&stub{
			contains: "git push --bookmark main --remote origin",
			stderr:   "Error: Won't push commit abc123 since it is private",
			exit:     1,
			once:     true,
		},
	)

	a.StartPushBookmark("main")
	if a.Mode != ModeConfirmYN {
		t.Fatalf("mode = %s", a.Mode)
	}
	a.HandleKey("y")

	retry := runner.lastCall("--allow-private")
	if retry == "" {
		t.Fatal("no --allow-private retry happened")
	}
	if a.Notification == nil || a.Notification.Severity != model.SeverityWarn {
		t.Fatalf("notification = %+v", a.Notification)
	}
	if !strings.Contains(a.Notification.Message, "private commit allowed") {
		t.Errorf("message = %q", a.Notification.Message)
	}
	if a.PushTargetRemote() != "" {
		t.Error("remote not cleared")
	}
}

// Bulk push with several remotes and none selected prompts rather than
// guessing.
func TestBulkPushPromptsForRemote(t *testing.T) {
	a, _ := newTestApp(t, twoRemotes())

	a.HandleKey("ctrl+p")
	if a.Mode != ModePushBulk {
		t.Fatalf("mode = %s", a.Mode)
	}
	a.HandleKey("enter") // --all
	if a.Mode != ModeSelectRemote {
		t.Fatalf("multiple remotes must prompt, mode = %s", a.Mode)
	}
}
