package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/nakamura-shuta/tij/app"
	"github.com/nakamura-shuta/tij/model"
	"github.com/nakamura-shuta/tij/ui/floating"
)

func (m *Model) render() string {
	contentHeight := m.height - 2 // title bar + status bar

	var body string
	switch m.app.Top().Kind {
	case app.ViewLog:
		body = m.renderLog(contentHeight)
	case app.ViewDiff:
		body = m.renderDiff(contentHeight)
	case app.ViewStatus:
		body = m.renderStatus(contentHeight)
	case app.ViewBookmark:
		body = m.renderBookmarks(contentHeight)
	case app.ViewOpLog:
		body = m.renderOpLog(contentHeight)
	case app.ViewEvolog:
		body = m.renderEvolog(contentHeight)
	case app.ViewBlame:
		body = m.renderBlame(contentHeight)
	case app.ViewHelp:
		body = m.renderHelp(contentHeight)
	case app.ViewResolve:
		body = m.renderResolve(contentHeight)
	}

	screen := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitleBar(),
		body,
		m.renderStatusBar(),
	)

	if overlay := m.renderOverlay(); overlay != "" {
		screen = mergeOverlay(screen, overlay)
	}
	return screen
}

func (m *Model) renderTitleBar() string {
	v := m.app.Top()
	title := " tij · " + v.Kind.String()
	if v.Kind == app.ViewLog && v.Revset != "" {
		title += "  [" + v.Revset + "]"
	}
	if v.Kind == app.ViewLog && v.Reversed {
		title += "  (reversed)"
	}
	if v.Kind == app.ViewDiff {
		if v.DiffFrom != "" {
			title += fmt.Sprintf("  %s..%s", v.DiffFrom, v.DiffTo)
		} else {
			title += "  " + v.ChangeID
		}
	}
	if m.app.Mode.IsLogPicker() {
		title += "  · " + m.app.Input.Prompt
		return PromptStyle.Render(truncate(title, m.width))
	}
	return TitleStyle.Render(truncate(title, m.width))
}

// renderLog draws the DAG rows, splitting the screen with the preview pane
// when one is cached for the selection.
func (m *Model) renderLog(height int) string {
	v := m.app.Top()
	preview, hasPreview := m.app.CurrentPreview()

	logWidth := m.width
	if hasPreview {
		logWidth = m.width / 2
	}

	rows := make([]string, 0, len(m.app.Changes))
	for i := range m.app.Changes {
		rows = append(rows, m.renderLogRow(&m.app.Changes[i], i == v.Selected, logWidth))
		for _, tail := range m.app.Changes[i].GraphTail {
			rows = append(rows, DimmedStyle.Render(truncate(tail, logWidth)))
		}
	}
	if len(rows) == 0 {
		rows = append(rows, DimmedStyle.Render("  (no changes in revset)"))
	}

	left := clipRows(rows, selectionRow(m.app.Changes, v.Selected), height)

	if !hasPreview {
		return lipgloss.NewStyle().Height(height).Render(strings.Join(left, "\n"))
	}

	right := m.renderPreviewPane(preview, m.width-logWidth-1, height)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(logWidth).Height(height).Render(strings.Join(left, "\n")),
		lipgloss.NewStyle().Height(height).Render(right),
	)
}

// selectionRow maps the selected change index onto its display row, counting
// graph tail lines.
func selectionRow(changes []model.Change, selected int) int {
	row := 0
	for i := range changes {
		if i == selected {
			return row
		}
		row += 1 + len(changes[i].GraphTail)
	}
	return row
}

func (m *Model) renderLogRow(c *model.Change, selected bool, width int) string {
	var b strings.Builder
	b.WriteString(c.GraphPrefix)
	b.WriteString(ChangeIDStyle.Render(c.ChangeID))
	b.WriteString(" ")
	if c.IsWorkingCopy {
		b.WriteString(WorkingCopyStyle.Render("@ "))
	}
	if c.IsConflicted {
		b.WriteString(ConflictStyle.Render("conflict "))
	}
	if len(c.Bookmarks) > 0 {
		b.WriteString(BookmarkStyle.Render(strings.Join(c.Bookmarks, " ")))
		b.WriteString(" ")
	}
	if c.IsEmpty {
		b.WriteString(EmptyStyle.Render("(empty) "))
	}
	desc := c.ShortDescription()
	if c.ChangeID == "?" {
		desc = c.Description
	}
	b.WriteString(desc)

	line := truncate(b.String(), width)
	if selected {
		return SelectedLineStyle.Render(truncate(
			stripStyles(c, desc), width))
	}
	return line
}

// stripStyles rebuilds the row unstyled so the selection background covers
// the whole line.
func stripStyles(c *model.Change, desc string) string {
	var b strings.Builder
	b.WriteString(c.GraphPrefix)
	b.WriteString(c.ChangeID)
	b.WriteString(" ")
	if c.IsWorkingCopy {
		b.WriteString("@ ")
	}
	if c.IsConflicted {
		b.WriteString("conflict ")
	}
	if len(c.Bookmarks) > 0 {
		b.WriteString(strings.Join(c.Bookmarks, " "))
		b.WriteString(" ")
	}
	if c.IsEmpty {
		b.WriteString("(empty) ")
	}
	b.WriteString(desc)
	return b.String()
}

func (m *Model) renderPreviewPane(p app.PreviewEntry, width, height int) string {
	header := DimmedStyle.Render(truncate(fmt.Sprintf("─ preview · %d file(s) ", p.FileCount), width))
	lines := []string{header}
	for _, l := range strings.Split(p.Content, "\n") {
		if len(lines) >= height {
			break
		}
		lines = append(lines, styleDiffLine(truncate(l, width)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderDiff(height int) string {
	v := m.app.Top()
	lines := strings.Split(m.app.DiffContent.Content, "\n")

	start := v.Scroll
	if start > len(lines)-1 {
		start = max(0, len(lines)-1)
	}
	end := min(len(lines), start+height)

	out := make([]string, 0, height)
	for _, l := range lines[start:end] {
		out = append(out, styleDiffLine(truncate(l, m.width)))
	}
	return lipgloss.NewStyle().Height(height).Render(strings.Join(out, "\n"))
}

func styleDiffLine(l string) string {
	switch {
	case strings.HasPrefix(l, "+"):
		return DiffAddStyle.Render(l)
	case strings.HasPrefix(l, "-"):
		return DiffDelStyle.Render(l)
	case strings.HasPrefix(l, "diff ") || strings.HasPrefix(l, "Modified ") ||
		strings.HasPrefix(l, "Added ") || strings.HasPrefix(l, "Deleted ") ||
		strings.HasPrefix(l, "Renamed ") || strings.HasPrefix(l, "Commit ID:") ||
		strings.HasPrefix(l, "Change ID:"):
		return DiffHeaderStyle.Render(l)
	case strings.Contains(l, ": -"):
		return DiffDelStyle.Render(l)
	case strings.Contains(l, ": +"):
		return DiffAddStyle.Render(l)
	}
	return DiffContextStyle.Render(l)
}

func (m *Model) renderStatus(height int) string {
	v := m.app.Top()
	st := m.app.Status

	var rows []string
	rows = append(rows, DimmedStyle.Render(fmt.Sprintf("  working copy %s · parent %s", st.WorkingCopyID, st.ParentID)))
	rows = append(rows, "")
	if len(st.Files) == 0 {
		rows = append(rows, DimmedStyle.Render("  (working copy is clean)"))
	}
	for i, f := range st.Files {
		marker := f.Kind.Marker()
		style := ModifiedStyle
		switch f.Kind {
		case model.FileAdded:
			style = AddedStyle
		case model.FileDeleted:
			style = DeletedStyle
		case model.FileRenamed:
			style = RenamedStyle
		case model.FileConflicted:
			style = ConflictStyle
		}
		line := "  " + style.Render(marker) + " " + f.Path
		if f.Kind == model.FileRenamed {
			line = "  " + style.Render(marker) + " " + f.RenamedFrom + " -> " + f.Path
		}
		if i == v.Selected {
			line = SelectedLineStyle.Render(truncate("  "+marker+" "+f.Path, m.width))
		}
		rows = append(rows, truncate(line, m.width))
	}
	return lipgloss.NewStyle().Height(height).Render(strings.Join(clipRows(rows, v.Selected+2, height), "\n"))
}

func (m *Model) renderBookmarks(height int) string {
	v := m.app.Top()
	var rows []string
	if len(m.app.Bookmarks) == 0 {
		rows = append(rows, DimmedStyle.Render("  (no bookmarks)"))
	}
	for i := range m.app.Bookmarks {
		b := &m.app.Bookmarks[i]
		var parts []string
		parts = append(parts, BookmarkStyle.Render(b.Name))
		if b.Target != "" {
			parts = append(parts, ChangeIDStyle.Render(b.Target))
		} else {
			parts = append(parts, DimmedStyle.Render("(deleted locally)"))
		}
		for _, r := range b.RemoteNames() {
			tag := "@" + r
			if !b.Tracked[r] {
				tag += " (untracked)"
			}
			if b.Remotes[r] != b.Target {
				tag += " -> " + b.Remotes[r]
			}
			parts = append(parts, DimmedStyle.Render(tag))
		}
		if b.Conflicted {
			parts = append(parts, ConflictStyle.Render("(conflicted)"))
		}
		if m.app.IsProtected(b.Name) {
			parts = append(parts, DimmedStyle.Render("[protected]"))
		}
		line := "  " + strings.Join(parts, " ")
		if i == v.Selected {
			line = SelectedLineStyle.Render(truncate("  "+b.Name, m.width))
		}
		rows = append(rows, truncate(line, m.width))
	}
	return lipgloss.NewStyle().Height(height).Render(strings.Join(clipRows(rows, v.Selected, height), "\n"))
}

func (m *Model) renderOpLog(height int) string {
	v := m.app.Top()
	var rows []string
	for i := range m.app.Ops {
		op := &m.app.Ops[i]
		current := "  "
		if op.IsCurrent {
			current = WorkingCopyStyle.Render("@ ")
		}
		line := current + CommitIDStyle.Render(op.ShortID()) + " " +
			TimestampStyle.Render(op.Timestamp) + " " + op.Description
		if i == v.Selected {
			line = SelectedLineStyle.Render(truncate("  "+op.ShortID()+" "+op.Description, m.width))
		}
		rows = append(rows, truncate(line, m.width))
	}
	return lipgloss.NewStyle().Height(height).Render(strings.Join(clipRows(rows, v.Selected, height), "\n"))
}

func (m *Model) renderEvolog(height int) string {
	v := m.app.Top()
	var rows []string
	rows = append(rows, DimmedStyle.Render("  evolution of "+v.ChangeID))
	rows = append(rows, "")
	for i := range m.app.Evolog {
		e := &m.app.Evolog[i]
		line := "  " + CommitIDStyle.Render(short(e.CommitID, 12)) + " " +
			TimestampStyle.Render(e.Timestamp) + " " + e.Description
		if i == v.Selected {
			line = SelectedLineStyle.Render(truncate("  "+short(e.CommitID, 12)+" "+e.Description, m.width))
		}
		rows = append(rows, truncate(line, m.width))
	}
	return lipgloss.NewStyle().Height(height).Render(strings.Join(clipRows(rows, v.Selected+2, height), "\n"))
}

func (m *Model) renderBlame(height int) string {
	v := m.app.Top()
	var rows []string
	rows = append(rows, DimmedStyle.Render("  blame "+v.FilePath))
	for i := range m.app.Blame.Lines {
		l := &m.app.Blame.Lines[i]
		line := fmt.Sprintf("  %s %4d  %s", ChangeIDStyle.Render(l.ChangeID), l.LineNo, l.Content)
		if i == v.Selected {
			line = SelectedLineStyle.Render(truncate(fmt.Sprintf("  %s %4d  %s", l.ChangeID, l.LineNo, l.Content), m.width))
		}
		rows = append(rows, truncate(line, m.width))
	}
	return lipgloss.NewStyle().Height(height).Render(strings.Join(clipRows(rows, v.Selected+1, height), "\n"))
}

func (m *Model) renderResolve(height int) string {
	v := m.app.Top()
	var rows []string
	rows = append(rows, DimmedStyle.Render("  conflicts in "+v.ChangeID+" · o ours · t theirs · enter merge tool"))
	rows = append(rows, "")
	for i, c := range m.app.Conflicts {
		line := fmt.Sprintf("  %s %s", ConflictStyle.Render(fmt.Sprintf("%d-sided", c.Sides)), c.Path)
		if n := len(c.MarkerRanges); n > 0 {
			line += DimmedStyle.Render(fmt.Sprintf(" (%d region(s))", n))
		}
		if i == v.Selected {
			line = SelectedLineStyle.Render(truncate(fmt.Sprintf("  %d-sided %s", c.Sides, c.Path), m.width))
		}
		rows = append(rows, truncate(line, m.width))
	}
	return lipgloss.NewStyle().Height(height).Render(strings.Join(clipRows(rows, v.Selected+2, height), "\n"))
}

func (m *Model) renderHelp(height int) string {
	var rows []string
	rows = append(rows, TitleStyle.Render("  Key bindings"))
	rows = append(rows, "")
	for _, group := range m.keys.FullHelp() {
		for _, b := range group {
			rows = append(rows, fmt.Sprintf("  %s  %s",
				HelpKeyStyle.Render(padRight(b.Help().Key, 8)),
				HelpDescStyle.Render(b.Help().Desc)))
		}
		rows = append(rows, "")
	}
	return lipgloss.NewStyle().Height(height).Render(strings.Join(rows, "\n"))
}

func (m *Model) renderStatusBar() string {
	if n := m.app.Notification; n != nil {
		style := NotifyInfoStyle
		switch n.Severity {
		case model.SeveritySuccess:
			style = NotifySuccessStyle
		case model.SeverityWarn:
			style = NotifyWarnStyle
		case model.SeverityError:
			style = NotifyErrorStyle
		}
		return StatusBarStyle.Width(m.width).Render(style.Render(truncate(" "+n.Message, m.width)))
	}

	var items []string
	for _, b := range m.keys.ShortHelp() {
		items = append(items, HelpKeyStyle.Render(b.Help().Key)+" "+HelpDescStyle.Render(b.Help().Desc))
	}
	return StatusBarStyle.Width(m.width).Render(truncate(" "+strings.Join(items, "  "), m.width))
}

// renderOverlay draws the active input mode as a floating window.
func (m *Model) renderOverlay() string {
	in := m.app.Input
	switch {
	case m.app.Mode == app.ModeConfirmYN:
		danger := false
		if p := m.app.PendingAction(); p != nil {
			danger = p.Severity == model.SeverityError
		}
		return floating.Confirm(in.Prompt, in.Message, m.width, m.height, false, danger)
	case m.app.Mode.IsTextEntry():
		return floating.TextInput(in.Prompt, in.Buffer, in.Cursor, m.width, m.height)
	case m.app.Mode.IsListSelect():
		return floating.SelectList(in.Prompt, in.Options, in.Selected, m.width, m.height)
	case m.app.Mode.IsLogPicker():
		// Pickers keep the log visible; just show the prompt as a banner.
		return ""
	}
	return ""
}

// mergeOverlay lays the overlay's non-empty lines over the background.
func mergeOverlay(background, overlay string) string {
	bg := strings.Split(background, "\n")
	ov := strings.Split(overlay, "\n")
	for i, line := range ov {
		if i < len(bg) && strings.TrimSpace(line) != "" {
			bg[i] = line
		}
	}
	return strings.Join(bg, "\n")
}

// clipRows windows the rows around the selection so it stays visible.
func clipRows(rows []string, selected, height int) []string {
	if height <= 0 || len(rows) <= height {
		return rows
	}
	start := 0
	if selected >= height {
		start = selected - height + 1
	}
	if start+height > len(rows) {
		start = len(rows) - height
	}
	return rows[start : start+height]
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width-1, "…")
}

func short(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
