package app

import "testing"

func TestDirtyFlagsSetClearHas(t *testing.T) {
	var d DirtyFlags
	if d.Any() {
		t.Error("fresh flags should be clean")
	}
	d.Set(DirtyLog | DirtyBookmarks)
	if !d.Has(DirtyLog) || !d.Has(DirtyBookmarks) || d.Has(DirtyStatus) {
		t.Errorf("flags = %s", d)
	}
	d.Clear(DirtyLog)
	if d.Has(DirtyLog) || !d.Has(DirtyBookmarks) {
		t.Errorf("after clear: %s", d)
	}
}

// TestFailedRefreshKeepsFlag: flags are cleared only by a successful refresh
// of the flagged artifact; a failed re-read leaves the flag set.
func TestFailedRefreshKeepsFlag(t *testing.T) {
	a, runner := newTestApp(t)

	// Poison the next log read.
	runner.stubs = append([]*stub{
		{contains: "log -T", stderr: "Error: revset parse failure", exit: 1, once: true},
	}, runner.stubs...)

	a.Dirty.Set(DirtyLog)
	if err := a.Refresh(); err == nil {
		t.Fatal("refresh should have failed")
	}
	if !a.Dirty.Has(DirtyLog) {
		t.Fatal("failed refresh must leave the flag set")
	}

	// The poison stub is spent; the retry succeeds and clears the flag.
	if err := a.Refresh(); err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	if a.Dirty.Has(DirtyLog) {
		t.Error("successful refresh must clear the flag")
	}
}

// TestPreviewAllWipesCache: a mutation that declared preview-all clears the
// whole cache; one that declared only log leaves it warm.
func TestPreviewAllWipesCache(t *testing.T) {
	a, _ := newTestApp(t)

	a.Cache.Insert(entry("qqqqqqqqqqqq", "c1"))
	a.Cache.Insert(entry("mmmmmmmmmmmm", "c2"))

	a.Dirty.Set(DirtyLog)
	if err := a.Refresh(); err != nil {
		t.Fatal(err)
	}
	if a.Cache.Len() != 2 {
		t.Fatalf("log-only refresh must leave the cache warm, len = %d", a.Cache.Len())
	}

	a.Dirty.Set(DirtyPreviewAll)
	if err := a.Refresh(); err != nil {
		t.Fatal(err)
	}
	if a.Cache.Len() != 0 {
		t.Errorf("preview-all must wipe the cache, len = %d", a.Cache.Len())
	}
}
