package jj

import (
	"strings"
	"testing"

	"github.com/nakamura-shuta/tij/model"
)

func logLine(graph, changeID, commitID, name, email, ts, bookmarks, flags, parents, desc string) string {
	return graph + changeID + "\t" + commitID + "\t" + name + "\t" + email + "\t" + ts +
		"\t" + bookmarks + "\t" + flags + "\t" + parents + "\t" + desc
}

func TestParseLogRecord(t *testing.T) {
	line := logLine("@  ", "qpvuntsmwlqt", strings.Repeat("a", 40),
		"Alice", "alice@example.com", "2026-01-29T15:30:00+0900",
		"main,feature", "EW", "kkmpptxzrspx", "Initial commit")

	changes := ParseLog(line)
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}

	c := changes[0]
	if c.ChangeID != "qpvuntsmwlqt" {
		t.Errorf("change id = %q", c.ChangeID)
	}
	if c.GraphPrefix != "@  " {
		t.Errorf("graph prefix = %q", c.GraphPrefix)
	}
	if c.AuthorName != "Alice" || c.AuthorEmail != "alice@example.com" {
		t.Errorf("author = %q <%q>", c.AuthorName, c.AuthorEmail)
	}
	if !c.IsWorkingCopy || !c.IsEmpty || c.IsConflicted || c.IsImmutable {
		t.Errorf("flags: wc=%v empty=%v conflict=%v immutable=%v",
			c.IsWorkingCopy, c.IsEmpty, c.IsConflicted, c.IsImmutable)
	}
	if len(c.Bookmarks) != 2 || c.Bookmarks[0] != "main" {
		t.Errorf("bookmarks = %v", c.Bookmarks)
	}
	if len(c.Parents) != 1 || c.Parents[0] != "kkmpptxzrspx" {
		t.Errorf("parents = %v", c.Parents)
	}
}

func TestParseLogTabInDescription(t *testing.T) {
	// Tabs inside the description must join back into the last field.
	line := logLine("○  ", "mzvwutvlkqwt", strings.Repeat("b", 40),
		"Bob", "bob@example.com", "2026-01-29T15:30:00+0900",
		"", "", "qpvuntsmwlqt", "fix\tindentation\tbug")

	changes := ParseLog(line)
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	if changes[0].Description != "fix\tindentation\tbug" {
		t.Errorf("description = %q", changes[0].Description)
	}
}

func TestParseLogGraphContinuationLines(t *testing.T) {
	output := strings.Join([]string{
		logLine("@  ", "qpvuntsmwlqt", strings.Repeat("a", 40), "A", "a@x", "t", "", "W", "mzvw", "top"),
		"│",
		"~",
		logLine("○  ", "mzvwutvlkqwt", strings.Repeat("b", 40), "B", "b@x", "t", "", "", "", "base"),
	}, "\n")

	changes := ParseLog(output)
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d: %+v", len(changes), changes)
	}
	if len(changes[0].GraphTail) != 2 {
		t.Errorf("graph tail = %v", changes[0].GraphTail)
	}
}

func TestParseLogTotalOnMalformedLines(t *testing.T) {
	// A garbage line must produce a placeholder, never be dropped.
	output := "this is not a log line at all\n" +
		logLine("○  ", "mzvwutvlkqwt", strings.Repeat("b", 40), "B", "b@x", "t", "", "", "", "ok")

	changes := ParseLog(output)
	if len(changes) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(changes))
	}
	if changes[0].ChangeID != "?" {
		t.Errorf("placeholder change id = %q", changes[0].ChangeID)
	}
	if !strings.Contains(changes[0].Description, "<unparseable:") {
		t.Errorf("placeholder description = %q", changes[0].Description)
	}
}

func TestParseLogRootCommit(t *testing.T) {
	line := logLine("◆  ", "zzzzzzzzzzzz", strings.Repeat("0", 40), "", "", "1970-01-01T00:00:00+0000", "", "EI", "", "")
	changes := ParseLog(line)
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	if !changes[0].IsRoot() {
		t.Error("root commit not detected")
	}
	if changes[0].ShortDescription() != "(no description set)" {
		t.Errorf("short description = %q", changes[0].ShortDescription())
	}
}

func TestParseBookmarksAggregatesRemotes(t *testing.T) {
	output := strings.Join([]string{
		"main\t\tfalse\tfalse\tqpvuntsmwlqt",
		"main\torigin\ttrue\tfalse\tqpvuntsmwlqt",
		"main\tupstream\ttrue\tfalse\tmzvwutvlkqwt",
		"feature\torigin\tfalse\tfalse\tkkmpptxzrspx",
	}, "\n")

	bookmarks := ParseBookmarks(output)
	if len(bookmarks) != 2 {
		t.Fatalf("expected 2 bookmarks, got %d", len(bookmarks))
	}

	main := bookmarks[0]
	if main.Name != "main" || main.Target != "qpvuntsmwlqt" {
		t.Errorf("main = %+v", main)
	}
	if main.Remotes["upstream"] != "mzvwutvlkqwt" {
		t.Errorf("upstream target = %q", main.Remotes["upstream"])
	}
	if !main.OutOfSync() {
		t.Error("main should be out of sync (upstream differs)")
	}

	feature := bookmarks[1]
	if feature.IsLocal() {
		t.Error("feature has no local ref")
	}
	if got := feature.UntrackedRemotes(); len(got) != 1 || got[0] != "origin" {
		t.Errorf("untracked remotes = %v", got)
	}
}

func TestParseOpLogMarksCurrent(t *testing.T) {
	output := "75ea3c2331bf\tuser@host\t2026-02-02 11:25:54\t\tsnapshot working copy\n" +
		"9a2e4f118c3d\tuser@host\t2026-02-02 11:20:11\t\tnew empty commit"

	ops := ParseOpLog(output)
	if len(ops) != 2 {
		t.Fatalf("expected 2 ops, got %d", len(ops))
	}
	if !ops[0].IsCurrent || ops[1].IsCurrent {
		t.Errorf("current flags wrong: %v %v", ops[0].IsCurrent, ops[1].IsCurrent)
	}
	if ops[0].ShortID() != "75ea3c2331bf" {
		t.Errorf("short id = %q", ops[0].ShortID())
	}
}

func TestParseStatus(t *testing.T) {
	output := strings.Join([]string{
		"Working copy changes:",
		"M src/main.go",
		"A docs/new.md",
		"D old.txt",
		"R pkg/a.go -> pkg/b.go",
		"C conflicted.go",
		"Working copy  (@) : pzoqtwuv 5ab1e2f5 wip",
		"Parent commit (@-): qpvuntsm 9be0cfbd base",
	}, "\n")

	st := ParseStatus(output)
	if len(st.Files) != 5 {
		t.Fatalf("expected 5 files, got %d: %+v", len(st.Files), st.Files)
	}
	if !st.HasConflicts {
		t.Error("conflicts not detected")
	}
	if st.WorkingCopyID != "pzoqtwuv" || st.ParentID != "qpvuntsm" {
		t.Errorf("ids = %q / %q", st.WorkingCopyID, st.ParentID)
	}

	renamed := st.Files[3]
	if renamed.Kind != model.FileRenamed || renamed.Path != "pkg/b.go" || renamed.RenamedFrom != "pkg/a.go" {
		t.Errorf("renamed = %+v", renamed)
	}
}

func TestParseResolveList(t *testing.T) {
	output := "src/main.go    2-sided conflict\nsrc/other.go    3-sided conflict including 1 deletion"

	conflicts := ParseResolveList(output)
	if len(conflicts) != 2 {
		t.Fatalf("expected 2 conflicts, got %d", len(conflicts))
	}
	if conflicts[0].Path != "src/main.go" || conflicts[0].Sides != 2 {
		t.Errorf("first = %+v", conflicts[0])
	}
	if conflicts[1].Sides != 3 {
		t.Errorf("second sides = %d", conflicts[1].Sides)
	}
}

func TestParseEvolog(t *testing.T) {
	output := strings.Repeat("c", 40) + "\t2026-02-01T10:00:00+0900\tsecond draft\n" +
		strings.Repeat("d", 40) + "\t2026-02-01T09:00:00+0900\tfirst draft"

	entries := ParseEvolog(output)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].Description != "first draft" {
		t.Errorf("description = %q", entries[1].Description)
	}
}

func TestParseDuplicated(t *testing.T) {
	output := "Duplicated 0193efbd0b2d as nyowntnw 6abd63b3 no-bookmark change (plain)"
	if got := ParseDuplicated(output); got != "nyowntnw" {
		t.Errorf("duplicated id = %q", got)
	}

	multi := "Working copy now at: abc\nDuplicated abc1234567890 as xyzwqrst def5678901 test description"
	if got := ParseDuplicated(multi); got != "xyzwqrst" {
		t.Errorf("duplicated id = %q", got)
	}

	if got := ParseDuplicated("Nothing here"); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestParseAnnotate(t *testing.T) {
	output := "qpvuntsm alice 2026-01-01 1: package main\nqpvuntsm alice 2026-01-01 2: " +
		"\nmzvwutvl bob 2026-01-02 3: func main() {}"

	ann := ParseAnnotate("main.go", output)
	if len(ann.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(ann.Lines))
	}
	if ann.Lines[0].ChangeID != "qpvuntsm" || ann.Lines[0].Content != "package main" {
		t.Errorf("first = %+v", ann.Lines[0])
	}
	if ann.Lines[2].ChangeID != "mzvwutvl" || ann.Lines[2].LineNo != 3 {
		t.Errorf("third = %+v", ann.Lines[2])
	}
}

func TestCountShownFiles(t *testing.T) {
	output := strings.Join([]string{
		"Commit ID: abc",
		"Modified regular file src/main.go:",
		"   1    1: package main",
		"Added regular file docs/new.md:",
	}, "\n")
	if got := CountShownFiles(output); got != 2 {
		t.Errorf("file count = %d", got)
	}
}
