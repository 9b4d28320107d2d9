package app

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

var allViewKinds = []ViewKind{
	ViewLog, ViewDiff, ViewStatus, ViewBookmark, ViewOpLog,
	ViewEvolog, ViewBlame, ViewHelp, ViewResolve,
}

var allModes = []InputMode{
	ModeRevset, ModeSearch, ModeRename, ModeCreate, ModeConfirmYN,
	ModeSelectRemote, ModeSelectBranch, ModeSelectDiffFrom, ModeSelectDiffTo,
	ModeSelectRebaseDest, ModeSelectParallelizeEnd, ModeDescribe,
	ModePushBulk, ModeFetchBranch,
}

// TestEscCancelsModeNeverPopsView: for every (view, mode != None), Esc
// returns to (view, None) and never pops the view stack.
func TestEscCancelsModeNeverPopsView(t *testing.T) {
	for _, kind := range allViewKinds {
		for _, mode := range allModes {
			a, _ := newTestApp(t)
			if kind != ViewLog {
				a.Push(View{Kind: kind})
			}
			depth := a.Depth()
			a.EnterMode(mode, InputState{Prompt: "x"})

			a.HandleKey("esc")

			if a.Mode != ModeNone {
				t.Errorf("(%s, %s): mode after esc = %s", kind, mode, a.Mode)
			}
			if a.Depth() != depth {
				t.Errorf("(%s, %s): esc changed stack depth %d -> %d", kind, mode, depth, a.Depth())
			}
			if a.Top().Kind != kind {
				t.Errorf("(%s, %s): esc changed top view to %s", kind, mode, a.Top().Kind)
			}
		}
	}
}

// TestViewStackSymmetry: push(v); q equals identity when input mode is None.
func TestViewStackSymmetry(t *testing.T) {
	for _, kind := range allViewKinds[1:] {
		a, _ := newTestApp(t)
		depth := a.Depth()
		top := a.Top().Kind

		a.Push(View{Kind: kind})
		a.HandleKey("q")

		if a.Depth() != depth || a.Top().Kind != top {
			t.Errorf("push(%s); q: depth %d top %s, want depth %d top %s",
				kind, a.Depth(), a.Top().Kind, depth, top)
		}
	}
}

func TestQuitFromBaseView(t *testing.T) {
	a, _ := newTestApp(t)
	eff := a.HandleKey("q")
	if !eff.Quit || a.Running {
		t.Errorf("q on base view should quit: eff=%+v running=%v", eff, a.Running)
	}
}

func TestHelpPushAndBack(t *testing.T) {
	a, _ := newTestApp(t)
	a.HandleKey("?")
	if a.Top().Kind != ViewHelp {
		t.Fatalf("top = %s", a.Top().Kind)
	}
	a.HandleKey("q")
	if a.Top().Kind != ViewLog {
		t.Errorf("top after q = %s", a.Top().Kind)
	}
}

// TestEscSequencesProperty drives random key sequences and checks the two
// standing invariants: exactly one input mode at a time (by construction)
// and Esc always landing in ModeNone with the stack intact.
func TestEscSequencesProperty(t *testing.T) {
	keys := []string{"j", "k", "g", "G", "enter", "/", "r", "?", "tab", "M", "o", "esc", "q", "V", "n"}
	rapid.Check(t, func(rt *rapid.T) {
		a, _ := newTestApp(t)
		n := rapid.IntRange(1, 30).Draw(rt, "n")
		for i := 0; i < n; i++ {
			key := rapid.SampledFrom(keys).Draw(rt, "key")
			if !a.Running {
				break
			}
			depthBefore := a.Depth()
			modeBefore := a.Mode
			a.HandleKey(key)
			if key == "esc" && modeBefore != ModeNone {
				if a.Mode != ModeNone {
					rt.Fatalf("esc left mode %s active", a.Mode)
				}
				if a.Depth() != depthBefore {
					rt.Fatalf("esc popped the view stack")
				}
			}
			if a.Depth() < 1 {
				rt.Fatalf("view stack underflow")
			}
		}
	})
}

func TestNotificationDismissedByKeypress(t *testing.T) {
	a, _ := newTestApp(t)
	a.HandleKey("ctrl+l")
	if a.Notification == nil {
		t.Fatal("ctrl+l should post a notification")
	}
	a.HandleKey("j")
	if a.Notification != nil {
		t.Error("any keypress should dismiss the notification")
	}
}

func TestSearchJumpsToMatch(t *testing.T) {
	a, _ := newTestApp(t)
	a.HandleKey("/")
	if a.Mode != ModeSearch {
		t.Fatalf("mode = %s", a.Mode)
	}
	for _, r := range "first" {
		a.HandleKey(string(r))
	}
	a.HandleKey("enter")
	if a.Mode != ModeNone {
		t.Fatalf("mode after enter = %s", a.Mode)
	}
	if got := a.SelectedChange(); got == nil || got.ChangeID != "kkkkkkkkkkkk" {
		t.Errorf("selection after search = %+v", got)
	}
}

func TestRevsetEntryRefreshesLog(t *testing.T) {
	a, runner := newTestApp(t)
	before := runner.countCalls("log -T")

	a.HandleKey("r")
	for _, r := range "all()" {
		a.HandleKey(string(r))
	}
	a.HandleKey("enter")

	if a.findView(ViewLog).Revset != "all()" {
		t.Errorf("revset = %q", a.findView(ViewLog).Revset)
	}
	after := runner.countCalls("log -T")
	if after != before+1 {
		t.Errorf("log calls %d -> %d", before, after)
	}
	// A user revset disables the default limit.
	if call := runner.lastCall("log -T"); strings.Contains(call, "--limit") {
		t.Errorf("revset query should not carry --limit: %q", call)
	}
}
