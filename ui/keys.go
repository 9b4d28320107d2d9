package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap drives the help bar and help view. Dispatch itself happens on raw
// key names inside the app package; these bindings are the documentation.
type KeyMap struct {
	Quit           key.Binding
	Help           key.Binding
	Up             key.Binding
	Down           key.Binding
	Top            key.Binding
	Bottom         key.Binding
	Open           key.Binding
	Switch         key.Binding
	Search         key.Binding
	Revset         key.Binding
	Reverse        key.Binding
	Next           key.Binding
	Prev           key.Binding
	Edit           key.Binding
	Describe       key.Binding
	EditorDescribe key.Binding
	New            key.Binding
	Commit         key.Binding
	Squash         key.Binding
	Abandon        key.Binding
	Split          key.Binding
	Rebase         key.Binding
	Absorb         key.Binding
	Duplicate      key.Binding
	Push           key.Binding
	Fetch          key.Binding
	Undo           key.Binding
	Redo           key.Binding
	Bookmarks      key.Binding
	OpLog          key.Binding
	Evolog         key.Binding
	Yank           key.Binding
	Format         key.Binding
	Preview        key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "back/quit")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("j/k", "move")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/k", "move")),
		Top:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g/G", "top/bottom")),
		Bottom:   key.NewBinding(key.WithKeys("G"), key.WithHelp("g/G", "top/bottom")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Switch:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "log/status")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Revset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "revset")),
		Reverse:  key.NewBinding(key.WithKeys("V"), key.WithHelp("V", "reverse")),
		Next:     key.NewBinding(key.WithKeys("]"), key.WithHelp("]/[", "child/parent")),
		Prev:     key.NewBinding(key.WithKeys("["), key.WithHelp("]/[", "child/parent")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Describe: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "describe")),
		EditorDescribe: key.NewBinding(
			key.WithKeys("ctrl+e"), key.WithHelp("C-e", "describe in $EDITOR")),
		New:      key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "new")),
		Commit:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "commit")),
		Squash:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "squash")),
		Abandon:  key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "abandon")),
		Split:    key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "split")),
		Rebase:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "rebase")),
		Absorb:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "absorb")),
		Duplicate: key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "duplicate")),
		Push:     key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "push")),
		Fetch:    key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "fetch")),
		Undo:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Redo:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("C-r", "redo")),
		Bookmarks: key.NewBinding(key.WithKeys("M"), key.WithHelp("M", "bookmarks")),
		OpLog:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "op log")),
		Evolog:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "evolog")),
		Yank:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y/w", "yank id/patch")),
		Format:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "diff format")),
		Preview:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "preview")),
	}
}

// ShortHelp is the always-visible help bar content.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Open, k.Describe, k.New, k.Push, k.Undo, k.Help, k.Quit}
}

// FullHelp feeds the help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Top, k.Next, k.Open, k.Switch, k.Search, k.Revset, k.Reverse},
		{k.Edit, k.Describe, k.EditorDescribe, k.New, k.Commit, k.Squash, k.Abandon, k.Split},
		{k.Rebase, k.Absorb, k.Duplicate, k.Push, k.Fetch, k.Undo, k.Redo},
		{k.Bookmarks, k.OpLog, k.Evolog, k.Yank, k.Format, k.Preview, k.Help, k.Quit},
	}
}
