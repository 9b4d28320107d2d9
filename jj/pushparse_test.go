package jj

import "testing"

func TestParsePushDryRunForward(t *testing.T) {
	output := `Changes to push to origin:
  Move forward bookmark main from 8b7ea4dff1e3 to 5ab1e2f5d7c9
Dry-run requested, not pushing.`

	preview := ParsePushDryRun(output)
	if preview.NothingChanged || preview.Unparsed {
		t.Fatalf("unexpected preview: %+v", preview)
	}
	if len(preview.Actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(preview.Actions))
	}
	a := preview.Actions[0]
	if a.Kind != PushMoveForward || a.Bookmark != "main" || a.From != "8b7ea4dff1e3" || a.To != "5ab1e2f5d7c9" {
		t.Errorf("action = %+v", a)
	}
	if preview.ForceRequired() {
		t.Error("fast-forward must not require force")
	}
}

func TestParsePushDryRunForceVariants(t *testing.T) {
	tests := []struct {
		line string
		kind PushActionKind
	}{
		{"Move sideways bookmark feature from aaa to bbb", PushMoveSideways},
		{"Move backward bookmark feature from aaa to bbb", PushMoveBackward},
	}
	for _, tc := range tests {
		preview := ParsePushDryRun(tc.line)
		if len(preview.Actions) != 1 || preview.Actions[0].Kind != tc.kind {
			t.Errorf("%q parsed as %+v", tc.line, preview)
			continue
		}
		if !preview.ForceRequired() {
			t.Errorf("%q should require force", tc.line)
		}
	}
}

func TestParsePushDryRunAddDelete(t *testing.T) {
	output := "Add bookmark new-feature to 5ab1e2f5\nDelete bookmark stale from 8b7ea4df"

	preview := ParsePushDryRun(output)
	if len(preview.Actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(preview.Actions))
	}
	if preview.Actions[0].Kind != PushAdd || preview.Actions[0].To != "5ab1e2f5" {
		t.Errorf("add = %+v", preview.Actions[0])
	}
	if preview.Actions[1].Kind != PushDelete || preview.Actions[1].From != "8b7ea4df" {
		t.Errorf("delete = %+v", preview.Actions[1])
	}
	if got := preview.Bookmarks(); len(got) != 2 {
		t.Errorf("bookmarks = %v", got)
	}
}

func TestParsePushDryRunNothingChanged(t *testing.T) {
	preview := ParsePushDryRun("Nothing changed.")
	if !preview.NothingChanged {
		t.Errorf("preview = %+v", preview)
	}
}

func TestParsePushDryRunUnparsed(t *testing.T) {
	preview := ParsePushDryRun("Some future jj wording we do not know")
	if !preview.Unparsed {
		t.Errorf("preview = %+v", preview)
	}
}
