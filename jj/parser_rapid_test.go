package jj

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// Change ids use jj's reverse-hex alphabet.
var changeIDGen = rapid.StringMatching(`[k-z]{12}`)
var commitIDGen = rapid.StringMatching(`[0-9a-f]{40}`)

// Field content free of tabs and newlines (tabs are only legal in the final
// description field).
var fieldGen = rapid.StringMatching(`[ -~]{0,20}`).Filter(func(s string) bool {
	return !strings.ContainsAny(s, "\t\n")
})

// TestParseLogTotalAndRoundTrip renders a synthesised commit with the log
// template's field layout and re-parses it; the record must survive intact
// and no input line may be dropped.
func TestParseLogTotalAndRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		changeID := changeIDGen.Draw(t, "changeID")
		commitID := commitIDGen.Draw(t, "commitID")
		name := fieldGen.Draw(t, "name")
		email := fieldGen.Draw(t, "email")
		ts := fieldGen.Draw(t, "ts")
		bookmarks := rapid.SliceOfN(rapid.StringMatching(`[a-z][a-z0-9-]{0,8}`), 0, 3).Draw(t, "bookmarks")
		parents := rapid.SliceOfN(changeIDGen, 0, 2).Draw(t, "parents")
		// Description may contain tabs; they must degrade gracefully.
		desc := rapid.StringMatching(`[ -~\t]{0,40}`).Filter(func(s string) bool {
			return !strings.Contains(s, "\n")
		}).Draw(t, "desc")
		empty := rapid.Bool().Draw(t, "empty")
		conflict := rapid.Bool().Draw(t, "conflict")

		flags := ""
		if empty {
			flags += "E"
		}
		if conflict {
			flags += "C"
		}

		line := logLine("○  ", changeID, commitID, name, email, ts,
			strings.Join(bookmarks, ","), flags, strings.Join(parents, ","), desc)

		changes := ParseLog(line)
		if len(changes) != 1 {
			t.Fatalf("expected exactly 1 change, got %d", len(changes))
		}
		c := changes[0]
		if c.ChangeID != changeID || c.CommitID != commitID {
			t.Fatalf("ids: %q/%q != %q/%q", c.ChangeID, c.CommitID, changeID, commitID)
		}
		if c.Description != desc {
			t.Fatalf("description %q != %q", c.Description, desc)
		}
		if c.IsEmpty != empty || c.IsConflicted != conflict {
			t.Fatalf("flags mismatch")
		}
		if len(c.Bookmarks) != len(bookmarks) {
			t.Fatalf("bookmarks %v != %v", c.Bookmarks, bookmarks)
		}
		if c.GraphPrefix != "○  " {
			t.Fatalf("graph prefix %q", c.GraphPrefix)
		}
	})
}

// TestParseLogNeverDropsLines feeds arbitrary line soup to the parser; every
// non-blank, non-graph-only line must yield a record.
func TestParseLogNeverDropsLines(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.SliceOfN(rapid.StringMatching(`[ -~]{1,60}`), 1, 10).Draw(t, "lines")
		output := strings.Join(lines, "\n")

		expected := 0
		for _, l := range lines {
			if strings.TrimSpace(l) == "" {
				continue
			}
			// Graph-only lines attach to a predecessor when one exists.
			if isGraphOnly(l) && expected > 0 {
				continue
			}
			expected++
		}

		changes := ParseLog(output)
		if len(changes) != expected {
			t.Fatalf("expected %d records for %q, got %d", expected, output, len(changes))
		}
	})
}
