// Package floating renders centered overlay windows on top of a background
// view: confirmation dialogs, text prompts, and selection lists.
package floating

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	borderColor = lipgloss.Color("220")
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(borderColor)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	selStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("236"))
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// Confirm renders a Yes/No dialog. yesSelected highlights the Yes button;
// danger renders the message in the warning style.
func Confirm(title, message string, width, height int, yesSelected, danger bool) string {
	msgStyle := lipgloss.NewStyle()
	if danger {
		msgStyle = warnStyle
	}

	var lines []string
	lines = append(lines, "")
	for _, l := range strings.Split(message, "\n") {
		lines = append(lines, "  "+msgStyle.Render(l))
	}
	lines = append(lines, "")

	yes, no := dimStyle.Render("[ Yes ]"), selStyle.Render("[ No ]")
	if yesSelected {
		yes, no = selStyle.Render("[ Yes ]"), dimStyle.Render("[ No ]")
	}
	lines = append(lines, "        "+yes+"    "+no)
	lines = append(lines, "")
	lines = append(lines, dimStyle.Render("  y confirm · n/esc cancel"))

	return Frame(title, strings.Join(lines, "\n"), width, height, widthFor(message, 60))
}

// TextInput renders a single-line prompt with a cursor.
func TextInput(title, buffer string, cursor int, width, height int) string {
	runes := []rune(buffer)
	if cursor > len(runes) {
		cursor = len(runes)
	}
	line := string(runes[:cursor]) + selStyle.Render(" ") + string(runes[cursor:])

	var lines []string
	lines = append(lines, "")
	lines = append(lines, "  > "+line)
	lines = append(lines, "")
	lines = append(lines, dimStyle.Render("  enter submit · esc cancel"))

	return Frame(title, strings.Join(lines, "\n"), width, height, 64)
}

// SelectList renders an option list with the selected row highlighted.
func SelectList(title string, options []string, selected int, width, height int) string {
	var lines []string
	lines = append(lines, "")
	for i, opt := range options {
		if i == selected {
			lines = append(lines, "  "+selStyle.Render("> "+opt))
		} else {
			lines = append(lines, "    "+opt)
		}
	}
	lines = append(lines, "")
	lines = append(lines, dimStyle.Render("  j/k move · enter select · esc cancel"))

	return Frame(title, strings.Join(lines, "\n"), width, height, 48)
}

func widthFor(message string, min int) int {
	w := min
	for _, l := range strings.Split(message, "\n") {
		if lw := lipgloss.Width(l) + 6; lw > w {
			w = lw
		}
	}
	return w
}

// Frame centers a bordered window with the title embedded in the top border.
func Frame(title, content string, screenWidth, screenHeight, windowWidth int) string {
	if windowWidth > screenWidth-4 {
		windowWidth = screenWidth - 4
	}
	if windowWidth < 20 {
		windowWidth = 20
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(windowWidth - 2)

	bordered := borderStyle.Render(content)
	lines := strings.Split(bordered, "\n")

	// Embed the title in the top border.
	if len(lines) > 0 && title != "" {
		styled := titleStyle.Render(" " + title + " ")
		remaining := windowWidth - 3 - lipgloss.Width(styled)
		if remaining < 0 {
			remaining = 0
		}
		borderLine := lipgloss.NewStyle().Foreground(borderColor)
		lines[0] = borderLine.Render("╭─") + styled + borderLine.Render(strings.Repeat("─", remaining)+"╮")
	}

	window := strings.Join(lines, "\n")
	x := (screenWidth - windowWidth) / 2
	if x < 0 {
		x = 0
	}
	y := (screenHeight - len(lines)) / 2
	if y < 0 {
		y = 0
	}

	padded := make([]string, 0, len(lines)+y)
	for i := 0; i < y; i++ {
		padded = append(padded, "")
	}
	for _, l := range strings.Split(window, "\n") {
		padded = append(padded, strings.Repeat(" ", x)+l)
	}
	return strings.Join(padded, "\n")
}
