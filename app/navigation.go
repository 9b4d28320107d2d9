package app

// Change-graph navigation: ]/[ walk to a child or parent of the selection.
// The children index is the reverse of the parent edges, rebuilt on every
// log refresh.

func (a *App) rebuildChildren() {
	a.children = make(map[string][]string, len(a.Changes))
	for i := range a.Changes {
		c := &a.Changes[i]
		for _, parent := range c.Parents {
			a.children[parent] = append(a.children[parent], c.ChangeID)
		}
	}
}

// selectChild moves to the first child of the selected change.
func (a *App) selectChild() {
	c := a.SelectedChange()
	if c == nil {
		return
	}
	kids := a.children[c.ChangeID]
	if len(kids) == 0 {
		return
	}
	a.SelectChangePrefix(kids[0])
}

// selectParent moves to the first parent of the selected change.
func (a *App) selectParent() {
	c := a.SelectedChange()
	if c == nil || len(c.Parents) == 0 {
		return
	}
	a.SelectChangePrefix(c.Parents[0])
}
