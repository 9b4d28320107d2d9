package model

import "testing"

func TestIsRoot(t *testing.T) {
	root := Change{ChangeID: "zzzzzzzzzzzz"}
	if !root.IsRoot() {
		t.Error("all-z change id should be root")
	}
	normal := Change{ChangeID: "qpvuntsmwlqt"}
	if normal.IsRoot() {
		t.Error("normal change id flagged as root")
	}
	unknown := Change{ChangeID: "?"}
	if unknown.IsRoot() {
		t.Error("placeholder flagged as root")
	}
}

func TestShortDescription(t *testing.T) {
	c := Change{Description: "first line\nsecond line"}
	if got := c.ShortDescription(); got != "first line" {
		t.Errorf("got %q", got)
	}
	empty := Change{}
	if got := empty.ShortDescription(); got != "(no description set)" {
		t.Errorf("got %q", got)
	}
}

func TestHasBookmark(t *testing.T) {
	c := Change{Bookmarks: []string{"main", "feature"}}
	if !c.HasBookmark("feature") || c.HasBookmark("other") {
		t.Error("bookmark lookup wrong")
	}
}
