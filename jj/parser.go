package jj

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nakamura-shuta/tij/model"
)

// Parsers for jj's templated output. All parsers are total: a malformed line
// becomes a placeholder record rather than being dropped, so the log never
// goes blank on unexpected output.

// splitFields splits a record into at most n fields. jj templates put
// tab-capable fields (description) last, so overflow joins back into the
// final field.
func splitFields(line string, n int) []string {
	return strings.SplitN(line, fieldSeparator, n)
}

// ParseLog parses graph-enabled `jj log` output rendered with logTemplate.
//
// Node lines carry the full field payload after jj's glyph column; glyph-only
// lines (elided revisions, padding) attach to the preceding change so the DAG
// renders stably.
func ParseLog(output string) []model.Change {
	var changes []model.Change

	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := splitFields(line, logFieldCount)
		if len(fields) < logFieldCount {
			if isGraphOnly(line) && len(changes) > 0 {
				last := &changes[len(changes)-1]
				last.GraphTail = append(last.GraphTail, line)
				continue
			}
			changes = append(changes, model.Change{
				ChangeID:    "?",
				Description: fmt.Sprintf("<unparseable: %s>", strings.TrimSpace(line)),
				GraphPrefix: "",
			})
			continue
		}

		graphPrefix, changeID := splitGraphPrefix(fields[0])
		flags := fields[6]

		c := model.Change{
			ChangeID:      changeID,
			CommitID:      fields[1],
			AuthorName:    fields[2],
			AuthorEmail:   fields[3],
			Timestamp:     fields[4],
			Bookmarks:     splitList(fields[5]),
			Parents:       splitList(fields[7]),
			Description:   fields[8],
			GraphPrefix:   graphPrefix,
			IsEmpty:       strings.Contains(flags, "E"),
			IsConflicted:  strings.Contains(flags, "C"),
			IsWorkingCopy: strings.Contains(flags, "W"),
			IsImmutable:   strings.Contains(flags, "I"),
		}
		if c.ChangeID == "" {
			c.ChangeID = "?"
			c.Description = fmt.Sprintf("<unparseable: %s>", strings.TrimSpace(line))
		}
		changes = append(changes, c)
	}

	return changes
}

// splitGraphPrefix separates jj's glyph column from the change id in the
// first field of a node line. The change id is the last whitespace-separated
// token; everything before it (glyphs and spacing) is the prefix, verbatim.
func splitGraphPrefix(field string) (prefix, changeID string) {
	idx := strings.LastIndex(field, " ")
	if idx < 0 {
		return "", field
	}
	return field[:idx+1], field[idx+1:]
}

// isGraphOnly reports whether a line is purely graph glyphs (continuation
// rows between nodes, elided-revision markers).
func isGraphOnly(line string) bool {
	for _, r := range strings.TrimSpace(line) {
		switch {
		case r == ' ' || r == '~' || r == '.':
		case r == '|' || r == '/' || r == '\\' || r == '-' || r == '+':
		case r >= 0x2500 && r <= 0x257f: // box drawing
		case r == '○' || r == '◆' || r == '◇' || r == '@' || r == '×':
		default:
			return false
		}
	}
	return strings.TrimSpace(line) != ""
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// ParseBookmarks aggregates `jj bookmark list --all-remotes` template rows
// (one per ref) into one record per bookmark name.
func ParseBookmarks(output string) []model.Bookmark {
	var order []string
	byName := map[string]*model.Bookmark{}

	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitFields(line, bookmarkFieldCount)
		if len(fields) < bookmarkFieldCount {
			continue
		}
		name, remote := fields[0], fields[1]
		tracked := fields[2] == "true"
		conflicted := fields[3] == "true"
		target := fields[4]

		b, ok := byName[name]
		if !ok {
			b = &model.Bookmark{
				Name:    name,
				Remotes: map[string]string{},
				Tracked: map[string]bool{},
			}
			byName[name] = b
			order = append(order, name)
		}
		if remote == "" {
			b.Target = target
			b.Conflicted = b.Conflicted || conflicted
		} else {
			b.Remotes[remote] = target
			b.Tracked[remote] = tracked
		}
	}

	out := make([]model.Bookmark, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out
}

// ParseOpLog parses `jj op log --no-graph` rendered with opLogTemplate.
// The first entry is the current operation.
func ParseOpLog(output string) []model.Operation {
	var ops []model.Operation
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitFields(line, opLogFieldCount)
		op := model.Operation{ID: fields[0]}
		if len(fields) > 1 {
			op.User = fields[1]
		}
		if len(fields) > 2 {
			op.Timestamp = fields[2]
		}
		if len(fields) > 3 {
			op.Tags = fields[3]
		}
		if len(fields) > 4 {
			op.Description = fields[4]
		}
		op.IsCurrent = len(ops) == 0
		ops = append(ops, op)
	}
	return ops
}

// ParseEvolog parses `jj evolog --no-graph` rendered with evologTemplate.
func ParseEvolog(output string) []model.EvologEntry {
	var entries []model.EvologEntry
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitFields(line, evologFieldCount)
		e := model.EvologEntry{CommitID: fields[0]}
		if len(fields) > 1 {
			e.Timestamp = fields[1]
		}
		if len(fields) > 2 {
			e.Description = fields[2]
		}
		entries = append(entries, e)
	}
	return entries
}

// ParseStatus parses plain `jj status` output: file markers plus the
// "Working copy" / "Parent commit" summary lines.
func ParseStatus(output string) model.Status {
	var st model.Status
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if fs, ok := parseStatusLine(line); ok {
			if fs.Kind == model.FileConflicted {
				st.HasConflicts = true
			}
			st.Files = append(st.Files, fs)
			continue
		}
		if id := parseSummaryLine(line, "Working copy"); id != "" {
			st.WorkingCopyID = id
		}
		if id := parseSummaryLine(line, "Parent commit"); id != "" {
			st.ParentID = id
		}
		if strings.Contains(line, "unresolved conflict") {
			st.HasConflicts = true
		}
	}
	return st
}

func parseStatusLine(line string) (model.FileStatus, bool) {
	if len(line) < 3 || line[1] != ' ' {
		return model.FileStatus{}, false
	}
	rest := strings.TrimSpace(line[2:])
	if rest == "" {
		return model.FileStatus{}, false
	}
	switch line[0] {
	case 'A':
		return model.FileStatus{Path: rest, Kind: model.FileAdded}, true
	case 'M':
		return model.FileStatus{Path: rest, Kind: model.FileModified}, true
	case 'D':
		return model.FileStatus{Path: rest, Kind: model.FileDeleted}, true
	case 'C':
		return model.FileStatus{Path: rest, Kind: model.FileConflicted}, true
	case 'R':
		from, to, found := strings.Cut(rest, " -> ")
		if !found {
			return model.FileStatus{}, false
		}
		return model.FileStatus{Path: to, Kind: model.FileRenamed, RenamedFrom: from}, true
	}
	return model.FileStatus{}, false
}

// parseSummaryLine extracts the change id from lines like
// "Working copy  (@) : pzoqtwuv 5ab1e2f5 description".
func parseSummaryLine(line, prefix string) string {
	if !strings.HasPrefix(line, prefix) {
		return ""
	}
	_, rest, found := strings.Cut(line, ":")
	if !found {
		return ""
	}
	tokens := strings.Fields(rest)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}

// ParseResolveList parses `jj resolve --list` lines like
// "src/main.go    2-sided conflict".
func ParseResolveList(output string) []model.Conflict {
	var conflicts []model.Conflict
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sides := 2
		path := line
		if idx := strings.LastIndex(line, "-sided conflict"); idx >= 0 {
			head := strings.TrimSpace(line[:idx])
			if sp := strings.LastIndexAny(head, " \t"); sp >= 0 {
				if n, err := strconv.Atoi(head[sp+1:]); err == nil {
					sides = n
					path = strings.TrimSpace(head[:sp])
				}
			}
		}
		conflicts = append(conflicts, model.Conflict{Path: path, Sides: sides})
	}
	return conflicts
}

// ParseAnnotate parses default `jj file annotate` output. Each line is
// "changeid author timestamp lineno: content"; anything that does not match
// still yields a line so blame view row numbers stay aligned with the file.
func ParseAnnotate(path, output string) model.Annotation {
	ann := model.Annotation{Path: path}
	lineNo := 0
	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}
		lineNo++
		meta, content, found := strings.Cut(line, ": ")
		if !found {
			ann.Lines = append(ann.Lines, model.AnnotationLine{LineNo: lineNo, Content: line})
			continue
		}
		tokens := strings.Fields(meta)
		al := model.AnnotationLine{LineNo: lineNo, Content: content}
		if len(tokens) > 0 {
			al.ChangeID = tokens[0]
		}
		if len(tokens) > 1 {
			al.Author = tokens[1]
		}
		if n := len(tokens); n > 0 {
			if parsed, err := strconv.Atoi(tokens[n-1]); err == nil {
				al.LineNo = parsed
			}
		}
		ann.Lines = append(ann.Lines, al)
	}
	return ann
}

// ParseDuplicated extracts the new change id from `jj duplicate` output:
// "Duplicated <commit> as <change> <commit> <description>".
func ParseDuplicated(output string) string {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		rest, ok := strings.CutPrefix(line, "Duplicated ")
		if !ok {
			continue
		}
		_, after, found := strings.Cut(rest, " as ")
		if !found {
			continue
		}
		tokens := strings.Fields(after)
		if len(tokens) > 0 {
			return tokens[0]
		}
	}
	return ""
}

// CountShownFiles counts file headers in `jj show` / `jj diff` output for the
// preview summary line.
func CountShownFiles(output string) int {
	count := 0
	for _, line := range strings.Split(output, "\n") {
		for _, prefix := range []string{
			"Modified regular file ",
			"Added regular file ",
			"Deleted regular file ",
			"Renamed regular file ",
			"Copied regular file ",
			"diff --git ",
		} {
			if strings.HasPrefix(line, prefix) {
				count++
				break
			}
		}
	}
	return count
}
