package app

import (
	"strings"
	"testing"

	"github.com/nakamura-shuta/tij/config"
	"github.com/nakamura-shuta/tij/jj"
)

// scriptedRunner matches invocations by substring and replays canned
// results. Stubs are consulted in order; `once` stubs are consumed.
type scriptedRunner struct {
	stubs []*stub
	calls []string
}

type stub struct {
	contains string
	stdout   string
	stderr   string
	exit     int
	once     bool
	spent    bool
}

func (r *scriptedRunner) Run(dir string, args []string) ([]byte, []byte, int, error) {
	joined := strings.Join(args, " ")
	r.calls = append(r.calls, joined)
	for _, s := range r.stubs {
		if s.spent || !strings.Contains(joined, s.contains) {
			continue
		}
		if s.once {
			s.spent = true
		}
		return []byte(s.stdout), []byte(s.stderr), s.exit, nil
	}
	return nil, nil, 0, nil
}

func (r *scriptedRunner) countCalls(substr string) int {
	n := 0
	for _, c := range r.calls {
		if strings.Contains(c, substr) {
			n++
		}
	}
	return n
}

func (r *scriptedRunner) lastCall(substr string) string {
	for i := len(r.calls) - 1; i >= 0; i-- {
		if strings.Contains(r.calls[i], substr) {
			return r.calls[i]
		}
	}
	return ""
}

// logRow renders one node line the way the log template does.
func logRow(graph, changeID, commitID, flags, parents, bookmarks, desc string) string {
	return graph + changeID + "\t" + commitID + "\tAlice\talice@example.com\t" +
		"2026-02-01T10:00:00+0900\t" + bookmarks + "\t" + flags + "\t" + parents + "\t" + desc
}

// threeCommitLog is a working copy on top of two ancestors.
func threeCommitLog() string {
	return strings.Join([]string{
		logRow("@  ", "qqqqqqqqqqqq", strings.Repeat("1", 40), "W", "mmmmmmmmmmmm", "", "working copy"),
		logRow("○  ", "mmmmmmmmmmmm", strings.Repeat("2", 40), "", "kkkkkkkkkkkk", "main", "middle commit"),
		logRow("○  ", "kkkkkkkkkkkk", strings.Repeat("3", 40), "", "", "", "first commit"),
	}, "\n")
}

func newTestApp(t *testing.T, extraStubs ...*stub) (*App, *scriptedRunner) {
	t.Helper()
	runner := &scriptedRunner{}
	runner.stubs = append(runner.stubs, extraStubs...)
	runner.stubs = append(runner.stubs,
		&stub{contains: "log -T", stdout: threeCommitLog()},
		&stub{contains: "show -r", stdout: "Commit ID: x\nModified regular file a.go:"},
		&stub{contains: "bookmark list", stdout: "main\t\tfalse\tfalse\tmmmmmmmmmmmm\nmain\torigin\ttrue\tfalse\tmmmmmmmmmmmm"},
		&stub{contains: "op log", stdout: "aaaaaaaaaaaa\tuser\t2026-02-01 10:00:00\t\tsnapshot working copy"},
		&stub{contains: "status", stdout: "M a.go\nWorking copy  (@) : qqqqqqqqqqqq 11111111 working copy\nParent commit (@-): mmmmmmmmmmmm 22222222 middle"},
	)

	a, err := New(jj.NewExecutorWithRunner("/repo", runner), config.Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a, runner
}
