package model

import "testing"

func TestBookmarkFullName(t *testing.T) {
	b := Bookmark{Name: "feature"}
	if b.FullName("") != "feature" {
		t.Errorf("local full name = %q", b.FullName(""))
	}
	if b.FullName("origin") != "feature@origin" {
		t.Errorf("remote full name = %q", b.FullName("origin"))
	}
}

func TestBookmarkOutOfSync(t *testing.T) {
	b := Bookmark{
		Name:    "main",
		Target:  "aaa",
		Remotes: map[string]string{"origin": "aaa", "upstream": "bbb"},
		Tracked: map[string]bool{"origin": true, "upstream": true},
	}
	if !b.OutOfSync() {
		t.Error("diverged tracked remote should flag out-of-sync")
	}

	b.Remotes["upstream"] = "aaa"
	if b.OutOfSync() {
		t.Error("converged remotes flagged out-of-sync")
	}

	// Untracked remotes do not count.
	b.Remotes["fork"] = "ccc"
	b.Tracked["fork"] = false
	if b.OutOfSync() {
		t.Error("untracked remote counted for sync state")
	}
}

func TestUntrackedRemotesSorted(t *testing.T) {
	b := Bookmark{
		Name:    "x",
		Remotes: map[string]string{"zeta": "a", "alpha": "b"},
		Tracked: map[string]bool{},
	}
	got := b.UntrackedRemotes()
	if len(got) != 2 || got[0] != "alpha" || got[1] != "zeta" {
		t.Errorf("untracked = %v", got)
	}
}
