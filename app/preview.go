package app

import (
	"github.com/nakamura-shuta/tij/jj"
)

// Background preview fetch. The selection marks a pending request; the event
// loop fetches while the UI is quiescent and merges the result at the next
// Update. A result whose change id no longer matches the selection is cached
// but never surfaced as the current preview — the worker is never interrupted.

// PreviewRequest identifies one fetch: the commit id is the validation key.
type PreviewRequest struct {
	ChangeID string
	CommitID string
}

// markPreviewPending records the current selection for the idle fetcher.
func (a *App) markPreviewPending() {
	if !a.PreviewEnabled {
		return
	}
	if c := a.SelectedChange(); c != nil {
		a.previewPending = c.ChangeID
	}
}

// TakePendingPreview hands the pending fetch to the event loop, skipping it
// when the cache already holds a valid entry. Returns ok=false when there is
// nothing to fetch.
func (a *App) TakePendingPreview() (PreviewRequest, bool) {
	if !a.PreviewEnabled || a.previewPending == "" {
		return PreviewRequest{}, false
	}
	pendingID := a.previewPending
	a.previewPending = ""

	c := a.SelectedChange()
	if c == nil || c.ChangeID != pendingID {
		// Selection moved on; the outstanding request is abandoned.
		return PreviewRequest{}, false
	}
	if _, ok := a.Cache.Validate(c.ChangeID, c.CommitID); ok {
		return PreviewRequest{}, false
	}
	return PreviewRequest{ChangeID: c.ChangeID, CommitID: c.CommitID}, true
}

// ApplyPreview merges a completed fetch. Results for a selection that has
// since changed are still cached (j/k often comes back), but a failed fetch
// drops any stale entry.
func (a *App) ApplyPreview(req PreviewRequest, p jj.Preview, err error) {
	if err != nil {
		a.Cache.Remove(req.ChangeID)
		return
	}
	a.Cache.Insert(PreviewEntry{
		ChangeID:  req.ChangeID,
		CommitID:  req.CommitID,
		Content:   p.Content,
		FileCount: p.FileCount,
	})
}

// ResolvePendingPreview fetches the pending preview synchronously. The UI
// uses the Take/Apply pair with a background command instead; this is the
// idle-loop path.
func (a *App) ResolvePendingPreview() {
	req, ok := a.TakePendingPreview()
	if !ok {
		return
	}
	p, err := a.JJ.Show(req.ChangeID, a.DiffFormat)
	a.ApplyPreview(req, p, err)
}

// CurrentPreview returns the cached preview for the selected change, if the
// cache holds a validated entry.
func (a *App) CurrentPreview() (PreviewEntry, bool) {
	if !a.PreviewEnabled {
		return PreviewEntry{}, false
	}
	c := a.SelectedChange()
	if c == nil {
		return PreviewEntry{}, false
	}
	return a.Cache.Validate(c.ChangeID, c.CommitID)
}
