package app

import (
	"testing"
)

// Scenario: log open, j/k navigation. The first visit of a commit fetches
// its preview; revisiting hits the cache via commit-id validation and runs
// no new `jj show`.
func TestPreviewCacheHitOnNavigation(t *testing.T) {
	a, runner := newTestApp(t)

	// Initial selection.
	a.ResolvePendingPreview()
	if got := runner.countCalls("show -r"); got != 1 {
		t.Fatalf("show calls after initial = %d", got)
	}

	a.HandleKey("j")
	a.ResolvePendingPreview()
	if got := runner.countCalls("show -r"); got != 2 {
		t.Fatalf("show calls after j = %d", got)
	}

	// Going back and forth must be all cache hits.
	a.HandleKey("k")
	a.ResolvePendingPreview()
	a.HandleKey("j")
	a.ResolvePendingPreview()

	if got := runner.countCalls("show -r"); got != 2 {
		t.Errorf("show calls after k,j = %d, want 2 (cache hits)", got)
	}

	if _, ok := a.CurrentPreview(); !ok {
		t.Error("current preview should be served from cache")
	}
}

func TestPreviewToggleOffKeepsCache(t *testing.T) {
	a, _ := newTestApp(t)
	a.ResolvePendingPreview()
	if a.Cache.Len() == 0 {
		t.Fatal("cache empty after resolve")
	}

	a.HandleKey("t") // off
	if a.Cache.Len() == 0 {
		t.Error("toggling preview off must not clear the cache")
	}
	if _, ok := a.CurrentPreview(); ok {
		t.Error("disabled preview should not serve entries")
	}

	a.HandleKey("t") // back on: reuse
	if _, ok := a.CurrentPreview(); !ok {
		t.Error("re-enabled preview should reuse the cache")
	}
}

// A stale preview result whose change id no longer matches the selection is
// kept from the current preview by validation, not by interrupting the worker.
func TestStalePreviewResultDiscardedByValidation(t *testing.T) {
	a, _ := newTestApp(t)

	req, ok := a.TakePendingPreview()
	if !ok {
		t.Fatal("no pending preview after startup")
	}

	// Selection moves while the fetch is in flight.
	a.HandleKey("j")

	preview, err := a.JJ.Show(req.ChangeID, a.DiffFormat)
	if err != nil {
		t.Fatal(err)
	}
	a.ApplyPreview(req, preview, nil)

	// The entry is cached for a later revisit but must not surface as the
	// current preview.
	if _, ok := a.CurrentPreview(); ok {
		t.Error("stale result surfaced for the wrong selection")
	}
}

// The reversed flip preserves the selection by change id, not by index.
func TestReversedFlipPreservesSelectionByChangeID(t *testing.T) {
	reversedLog := logRow("○  ", "kkkkkkkkkkkk", "3333333333333333333333333333333333333333", "", "", "", "first commit") + "\n" +
		logRow("○  ", "mmmmmmmmmmmm", "2222222222222222222222222222222222222222", "", "kkkkkkkkkkkk", "main", "middle commit") + "\n" +
		logRow("@  ", "qqqqqqqqqqqq", "1111111111111111111111111111111111111111", "W", "mmmmmmmmmmmm", "", "working copy")

	a, runner := newTestApp(t)

	a.HandleKey("j") // select the middle commit (index 1 either way)
	a.HandleKey("j") // select first commit (index 2)
	selected := a.SelectedChange().ChangeID

	runner.stubs = append([]*stub{
		{contains: "--reversed", stdout: reversedLog},
	}, runner.stubs...)

	a.HandleKey("V")

	v := a.findView(ViewLog)
	if !v.Reversed {
		t.Fatal("reversed flag not set")
	}
	if got := a.SelectedChange(); got == nil || got.ChangeID != selected {
		t.Errorf("selection after flip = %+v, want %s", got, selected)
	}
	if v.Selected != 0 {
		t.Errorf("selected index = %d, want 0 (same change, new position)", v.Selected)
	}
}
