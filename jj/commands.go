package jj

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/nakamura-shuta/tij/model"
)

// Typed wrappers over the jj CLI. Read commands that list commits, bookmarks
// or operations pass a template so output is stable and parseable; the others
// parse jj's plain output. Mutations return the raw captured output for
// notification text.

// LogOptions control the log query.
type LogOptions struct {
	// Revset filters the log. Empty means jj's default revset.
	Revset string
	// Limit bounds the result. Ignored (no limit) when Revset is set: the
	// revset itself bounds the result.
	Limit int
	// Reversed toggles --reversed.
	Reversed bool
}

// Log runs `jj log` with the stable template and parses the result.
func (e *Executor) Log(opts LogOptions) ([]model.Change, error) {
	args := []string{"log", "-T", logTemplate}
	if opts.Revset != "" {
		args = append(args, "-r", opts.Revset)
	} else if opts.Limit > 0 {
		args = append(args, "--limit", strconv.Itoa(opts.Limit))
	}
	if opts.Reversed {
		args = append(args, "--reversed")
	}
	out, err := e.Run(args...)
	if err != nil {
		return nil, err
	}
	return ParseLog(out.Stdout), nil
}

// Preview is rendered show/diff text for one commit plus a file summary.
type Preview struct {
	Content   string
	FileCount int
}

// DiffFormat selects how diffs are rendered.
type DiffFormat int

const (
	DiffFormatDefault DiffFormat = iota
	DiffFormatGit
	DiffFormatStat
	DiffFormatSummary
)

func (f DiffFormat) String() string {
	switch f {
	case DiffFormatGit:
		return "git"
	case DiffFormatStat:
		return "stat"
	case DiffFormatSummary:
		return "summary"
	}
	return "default"
}

func (f DiffFormat) flag() string {
	switch f {
	case DiffFormatGit:
		return "--git"
	case DiffFormatStat:
		return "--stat"
	case DiffFormatSummary:
		return "--summary"
	}
	return ""
}

// Show runs `jj show` for one change.
func (e *Executor) Show(changeID string, format DiffFormat) (Preview, error) {
	args := []string{"show", "-r", changeID}
	if f := format.flag(); f != "" {
		args = append(args, f)
	}
	out, err := e.Run(args...)
	if err != nil {
		return Preview{}, err
	}
	return Preview{Content: out.Stdout, FileCount: CountShownFiles(out.Stdout)}, nil
}

// Diff runs `jj diff --from --to` for compare mode.
func (e *Executor) Diff(from, to string, format DiffFormat) (Preview, error) {
	args := []string{"diff", "--from", from, "--to", to}
	if f := format.flag(); f != "" {
		args = append(args, f)
	}
	out, err := e.Run(args...)
	if err != nil {
		return Preview{}, err
	}
	return Preview{Content: out.Stdout, FileCount: CountShownFiles(out.Stdout)}, nil
}

// Status runs `jj status`.
func (e *Executor) Status() (model.Status, error) {
	out, err := e.Run("status")
	if err != nil {
		return model.Status{}, err
	}
	return ParseStatus(out.Stdout), nil
}

// Bookmarks runs `jj bookmark list --all-remotes` with the stable template.
func (e *Executor) Bookmarks() ([]model.Bookmark, error) {
	out, err := e.Run("bookmark", "list", "--all-remotes", "-T", bookmarkTemplate)
	if err != nil {
		return nil, err
	}
	return ParseBookmarks(out.Stdout), nil
}

// OpLog runs `jj op log --no-graph`.
func (e *Executor) OpLog(limit int) ([]model.Operation, error) {
	args := []string{"op", "log", "--no-graph", "-T", opLogTemplate}
	if limit > 0 {
		args = append(args, "--limit", strconv.Itoa(limit))
	}
	out, err := e.Run(args...)
	if err != nil {
		return nil, err
	}
	return ParseOpLog(out.Stdout), nil
}

// Evolog runs `jj evolog` for one change.
func (e *Executor) Evolog(changeID string) ([]model.EvologEntry, error) {
	out, err := e.Run("evolog", "-r", changeID, "--no-graph", "-T", evologTemplate)
	if err != nil {
		return nil, err
	}
	return ParseEvolog(out.Stdout), nil
}

// Annotate runs `jj file annotate` for blame.
func (e *Executor) Annotate(path, revision string) (model.Annotation, error) {
	args := []string{"file", "annotate"}
	if revision != "" {
		args = append(args, "-r", revision)
	}
	args = append(args, path)
	out, err := e.Run(args...)
	if err != nil {
		return model.Annotation{}, err
	}
	return ParseAnnotate(path, out.Stdout), nil
}

// FullDescription fetches the complete multi-line description of a change.
func (e *Executor) FullDescription(changeID string) (string, error) {
	out, err := e.Run("log", "--no-graph", "-r", changeID, "-T", "description")
	if err != nil {
		return "", err
	}
	return out.Stdout, nil
}

// IsImmutable queries the immutable template keyword for one change.
func (e *Executor) IsImmutable(changeID string) bool {
	out, err := e.Run("log", "--no-graph", "-r", changeID, "-T", `if(immutable, "true", "false")`)
	if err != nil {
		return false
	}
	return strings.TrimSpace(out.Stdout) == "true"
}

// Describe sets a change's description.
func (e *Executor) Describe(changeID, message string) (Captured, error) {
	return e.Run("describe", changeID, "-m", message)
}

// New creates a new empty change on top of parent (or @ when empty).
func (e *Executor) New(parent string) (Captured, error) {
	if parent == "" {
		return e.Run("new")
	}
	return e.Run("new", parent)
}

// Commit finalizes the working copy with a message.
func (e *Executor) Commit(message string) (Captured, error) {
	return e.Run("commit", "-m", message)
}

// Abandon abandons a change; descendants rebase onto its parent.
func (e *Executor) Abandon(changeID string) (Captured, error) {
	return e.Run("abandon", changeID)
}

// Edit sets the working copy to a revision.
func (e *Executor) Edit(changeID string) (Captured, error) {
	return e.Run("edit", changeID)
}

// Absorb moves working-copy hunks into the closest mutable ancestors.
func (e *Executor) Absorb() (Captured, error) {
	return e.Run("absorb")
}

// Duplicate copies a change. The new change id is in the output.
func (e *Executor) Duplicate(changeID string) (Captured, error) {
	return e.Run("duplicate", changeID)
}

// Revert creates a change that backs out changeID, inserted onto @.
func (e *Executor) Revert(changeID string) (Captured, error) {
	return e.Run("revert", "-r", changeID, "-d", "@")
}

// Restore restores paths in the working copy from a source revision.
func (e *Executor) Restore(from string, paths ...string) (Captured, error) {
	args := []string{"restore"}
	if from != "" {
		args = append(args, "--from", from)
	}
	args = append(args, paths...)
	return e.Run(args...)
}

// Parallelize makes the range from::to into siblings.
func (e *Executor) Parallelize(from, to string) (Captured, error) {
	return e.Run("parallelize", fmt.Sprintf("%s::%s", from, to))
}

// SimplifyParents removes redundant parent edges.
func (e *Executor) SimplifyParents(changeID string) (Captured, error) {
	return e.Run("simplify-parents", "-r", changeID)
}

// RebaseMode selects which rebase flag carries the source selection.
type RebaseMode int

const (
	// RebaseSource moves the revision and its descendants (-s).
	RebaseSource RebaseMode = iota
	// RebaseBranch moves the whole branch (-b).
	RebaseBranch
	// RebaseRevisions moves exactly the listed revisions (-r).
	RebaseRevisions
	// RebaseInsertAfter inserts after the destination (-A).
	RebaseInsertAfter
	// RebaseInsertBefore inserts before the destination (-B).
	RebaseInsertBefore
)

func (m RebaseMode) String() string {
	switch m {
	case RebaseSource:
		return "-s"
	case RebaseBranch:
		return "-b"
	case RebaseRevisions:
		return "-r"
	case RebaseInsertAfter:
		return "-A"
	case RebaseInsertBefore:
		return "-B"
	}
	return "?"
}

// RebaseOptions describe one rebase invocation.
type RebaseOptions struct {
	Mode        RebaseMode
	Source      string
	Destination string
	SkipEmptied bool
}

// Rebase runs `jj rebase`. FlagUnsupportedError surfaces when the installed
// jj rejects a flag; the protocol layer owns the fallback retry.
func (e *Executor) Rebase(opts RebaseOptions) (Captured, error) {
	var args []string
	switch opts.Mode {
	case RebaseInsertAfter:
		args = []string{"rebase", "-r", opts.Source, "-A", opts.Destination}
	case RebaseInsertBefore:
		args = []string{"rebase", "-r", opts.Source, "-B", opts.Destination}
	default:
		args = []string{"rebase", opts.Mode.String(), opts.Source, "-d", opts.Destination}
	}
	if opts.SkipEmptied {
		args = append(args, "--skip-emptied")
	}
	return e.Run(args...)
}

// Bookmark management.

func (e *Executor) BookmarkCreate(name, changeID string) (Captured, error) {
	return e.Run("bookmark", "create", name, "-r", changeID)
}

// BookmarkSet moves an existing bookmark; --allow-backwards permits moving in
// any direction.
func (e *Executor) BookmarkSet(name, changeID string) (Captured, error) {
	return e.Run("bookmark", "set", name, "-r", changeID, "--allow-backwards")
}

func (e *Executor) BookmarkRename(old, new string) (Captured, error) {
	return e.Run("bookmark", "rename", old, new)
}

func (e *Executor) BookmarkDelete(names ...string) (Captured, error) {
	return e.Run(append([]string{"bookmark", "delete"}, names...)...)
}

func (e *Executor) BookmarkForget(names ...string) (Captured, error) {
	return e.Run(append([]string{"bookmark", "forget"}, names...)...)
}

// BookmarkTrack tracks remote refs given as name@remote.
func (e *Executor) BookmarkTrack(fullNames ...string) (Captured, error) {
	return e.Run(append([]string{"bookmark", "track"}, fullNames...)...)
}

func (e *Executor) BookmarkUntrack(fullNames ...string) (Captured, error) {
	return e.Run(append([]string{"bookmark", "untrack"}, fullNames...)...)
}

// Operation log.

func (e *Executor) Undo() (Captured, error) {
	return e.Run("undo")
}

func (e *Executor) OpRestore(opID string) (Captured, error) {
	return e.Run("op", "restore", opID)
}

// RedoTarget inspects the op log for a redo target: if the latest operation
// is an undo or restore, the one before it can be restored. Returns "" when
// there is nothing to redo, including after consecutive undos (a chain this
// heuristic cannot safely unwind).
func (e *Executor) RedoTarget() (string, error) {
	ops, err := e.OpLog(2)
	if err != nil {
		return "", err
	}
	if len(ops) < 2 {
		return "", nil
	}
	if !ops[0].IsUndoLike() || ops[1].IsUndoLike() {
		return "", nil
	}
	return ops[1].ShortID(), nil
}

// Conflict resolution.

func (e *Executor) ResolveList(changeID string) ([]model.Conflict, error) {
	args := []string{"resolve", "--list"}
	if changeID != "" {
		args = append(args, "-r", changeID)
	}
	out, err := e.Run(args...)
	if err != nil {
		return nil, err
	}
	return ParseResolveList(out.Stdout), nil
}

// ResolveWithTool resolves one file non-interactively (:ours or :theirs).
func (e *Executor) ResolveWithTool(path, tool, changeID string) (Captured, error) {
	args := []string{"resolve", "--tool", tool}
	if changeID != "" {
		args = append(args, "-r", changeID)
	}
	args = append(args, path)
	return e.Run(args...)
}

// Git remote operations.

// Remote is one configured git remote.
type Remote struct {
	Name string
	URL  string
}

// GitRemotes lists configured remotes.
func (e *Executor) GitRemotes() ([]Remote, error) {
	out, err := e.Run("git", "remote", "list")
	if err != nil {
		return nil, err
	}
	var remotes []Remote
	for _, line := range strings.Split(out.Stdout, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, url, _ := strings.Cut(line, " ")
		remotes = append(remotes, Remote{Name: name, URL: strings.TrimSpace(url)})
	}
	return remotes, nil
}

// GitFetch fetches from remotes. Both arguments are optional.
func (e *Executor) GitFetch(remote, branch string) (Captured, error) {
	args := []string{"git", "fetch"}
	if remote != "" {
		args = append(args, "--remote", remote)
	}
	if branch != "" {
		args = append(args, "--branch", branch)
	}
	return e.Run(args...)
}

// PushBulkMode selects the bulk push axis.
type PushBulkMode int

const (
	PushBulkNone PushBulkMode = iota
	PushBulkAll
	PushBulkTracked
	PushBulkDeleted
)

func (m PushBulkMode) flag() string {
	switch m {
	case PushBulkAll:
		return "--all"
	case PushBulkTracked:
		return "--tracked"
	case PushBulkDeleted:
		return "--deleted"
	}
	return ""
}

func (m PushBulkMode) String() string {
	if f := m.flag(); f != "" {
		return f
	}
	return "none"
}

// PushOptions compose the orthogonal push axes: target selection (bookmark |
// change | revisions | bulk), remote, dry-run, and the retry allow-flags.
type PushOptions struct {
	Bookmark  string
	ChangeID  string
	Revisions string
	Bulk      PushBulkMode

	Remote string
	DryRun bool

	AllowNew              bool
	AllowPrivate          bool
	AllowEmptyDescription bool
}

func (o PushOptions) args() []string {
	args := []string{"git", "push"}
	switch {
	case o.Bookmark != "":
		args = append(args, "--bookmark", o.Bookmark)
	case o.ChangeID != "":
		args = append(args, "--change", o.ChangeID)
	case o.Revisions != "":
		args = append(args, "--revisions", o.Revisions)
	case o.Bulk != PushBulkNone:
		args = append(args, o.Bulk.flag())
	}
	if o.Remote != "" {
		args = append(args, "--remote", o.Remote)
	}
	if o.AllowNew {
		args = append(args, "--allow-new")
	}
	if o.AllowPrivate {
		args = append(args, "--allow-private")
	}
	if o.AllowEmptyDescription {
		args = append(args, "--allow-empty-description")
	}
	if o.DryRun {
		args = append(args, "--dry-run")
	}
	return args
}

// GitPush runs `jj git push` with the composed options.
func (e *Executor) GitPush(opts PushOptions) (Captured, error) {
	return e.Run(opts.args()...)
}

// ConfigList reads a jj config key as a comma/newline separated list.
// Missing keys are not an error; they return nil.
func (e *Executor) ConfigList(key string) []string {
	out, err := e.Run("config", "get", key)
	if err != nil {
		return nil
	}
	raw := strings.TrimSpace(out.Stdout)
	raw = strings.Trim(raw, "[]")
	var values []string
	for _, tok := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n'
	}) {
		tok = strings.Trim(strings.TrimSpace(tok), `"`)
		if tok != "" {
			values = append(values, tok)
		}
	}
	return values
}

// Interactive commands hand the terminal to jj (or the user's editor). The
// caller runs these through the event loop's process-exec facility so raw
// mode is dropped and restored around the child.

func (e *Executor) interactiveCmd(args ...string) *exec.Cmd {
	cmd := exec.Command("jj", args...)
	cmd.Dir = e.root
	return cmd
}

// SplitCmd opens the configured diff editor to split a change.
func (e *Executor) SplitCmd(changeID string) *exec.Cmd {
	return e.interactiveCmd("split", "-r", changeID)
}

// SquashCmd squashes a change into its parent. Interactive because jj may
// open an editor when both descriptions are non-empty.
func (e *Executor) SquashCmd(changeID string) *exec.Cmd {
	return e.interactiveCmd("squash", "-r", changeID)
}

// DiffeditCmd opens the diff editor on a change.
func (e *Executor) DiffeditCmd(changeID string) *exec.Cmd {
	return e.interactiveCmd("diffedit", "-r", changeID)
}

// ResolveCmd opens the external merge tool on a conflicted file.
func (e *Executor) ResolveCmd(path, changeID string) *exec.Cmd {
	args := []string{"resolve"}
	if changeID != "" {
		args = append(args, "-r", changeID)
	}
	args = append(args, path)
	return e.interactiveCmd(args...)
}

// EditorCmd spawns $EDITOR (or $VISUAL, falling back to vi) on a file.
func EditorCmd(path string) *exec.Cmd {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	parts = append(parts, path)
	return exec.Command(parts[0], parts[1:]...)
}
