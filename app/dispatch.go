package app

import "github.com/nakamura-shuta/tij/model"

// Key dispatch. For each key event the active input mode gets first refusal;
// Esc always cancels the mode and never travels further. Only when no mode
// is active does the key reach the view handler, and only unhandled keys
// fall through to the global handler.

// HandleKey routes one key (bubbletea key-name syntax) and returns the
// effect the event loop must apply.
func (a *App) HandleKey(key string) Effect {
	// Any keypress dismisses the visible notification; the key itself still
	// gets processed.
	a.Notification = nil

	if a.Mode != ModeNone {
		return a.handleModeKey(key)
	}
	if eff, handled := a.handleViewKey(key); handled {
		return eff
	}
	return a.handleGlobalKey(key)
}

func (a *App) handleModeKey(key string) Effect {
	if key == "esc" {
		a.CancelMode()
		return Effect{}
	}

	switch {
	case a.Mode == ModeConfirmYN:
		return a.handleConfirmKey(key)
	case a.Mode.IsTextEntry():
		return a.handleTextEntryKey(key)
	case a.Mode.IsListSelect():
		return a.handleListSelectKey(key)
	case a.Mode.IsLogPicker():
		return a.handleLogPickerKey(key)
	}
	return Effect{}
}

func (a *App) handleConfirmKey(key string) Effect {
	switch key {
	case "y", "Y", "enter":
		pending := a.pending
		a.pending = nil
		a.Mode = ModeNone
		a.Input = InputState{}
		if pending != nil {
			return a.executePending(*pending)
		}
	case "n", "N", "q":
		a.CancelMode()
	}
	return Effect{}
}

func (a *App) handleTextEntryKey(key string) Effect {
	switch key {
	case "enter":
		return a.submitTextEntry()
	case "backspace":
		a.backspace()
	case "left":
		a.cursorLeft()
	case "right":
		a.cursorRight()
	case "ctrl+e":
		if a.Mode == ModeDescribe {
			return a.describeInEditor()
		}
	case "space":
		a.insertRune(' ')
	default:
		runes := []rune(key)
		if len(runes) == 1 {
			a.insertRune(runes[0])
		}
	}
	return Effect{}
}

func (a *App) submitTextEntry() Effect {
	mode, input := a.Mode, a.Input
	a.Mode = ModeNone
	a.Input = InputState{}

	switch mode {
	case ModeRevset:
		a.applyRevset(input.Buffer)
	case ModeSearch:
		a.applySearch(input.Buffer)
	case ModeRename:
		a.submitBookmarkRename(input.Target, input.Buffer)
	case ModeCreate:
		a.submitBookmarkCreate(input.Buffer, input.Target)
	case ModeDescribe:
		a.submitDescribe(input.Target, input.Buffer)
	case ModeFetchBranch:
		a.executeFetch(input.Target, input.Buffer)
	}
	return Effect{}
}

func (a *App) handleListSelectKey(key string) Effect {
	switch key {
	case "j", "down":
		a.listDown()
	case "k", "up":
		a.listUp()
	case "enter":
		choice := a.listChoice()
		mode, input := a.Mode, a.Input
		a.Mode = ModeNone
		a.Input = InputState{}
		switch mode {
		case ModeSelectRemote:
			a.remoteChosen(choice)
		case ModeSelectBranch:
			a.fetchRemoteChosen(choice, input.Target)
		case ModePushBulk:
			a.bulkModeChosen(choice)
		}
	}
	return Effect{}
}

// Log pickers move the log selection to choose a second revision.
func (a *App) handleLogPickerKey(key string) Effect {
	v := a.findView(ViewLog)
	if v == nil {
		a.CancelMode()
		return Effect{}
	}
	switch key {
	case "j", "down":
		if v.Selected < len(a.Changes)-1 {
			v.Selected++
		}
	case "k", "up":
		if v.Selected > 0 {
			v.Selected--
		}
	case "g":
		v.Selected = 0
	case "G":
		v.Selected = max(0, len(a.Changes)-1)
	case "s", "b", "r":
		if a.Mode == ModeSelectRebaseDest {
			a.setRebaseFlavor(key)
		}
	case "A", "B":
		if a.Mode == ModeSelectRebaseDest {
			a.setRebaseInsert(key)
		}
	case "e":
		if a.Mode == ModeSelectRebaseDest {
			a.toggleSkipEmptied()
		}
	case "enter":
		mode, input := a.Mode, a.Input
		a.Mode = ModeNone
		a.Input = InputState{}
		selected := a.SelectedChange()
		if selected == nil {
			return Effect{}
		}
		switch mode {
		case ModeSelectDiffFrom:
			a.diffFromChosen(selected.ChangeID)
		case ModeSelectDiffTo:
			a.openCompareDiff(input.Target, selected.ChangeID)
		case ModeSelectRebaseDest:
			a.executeRebase(selected.ChangeID)
		case ModeSelectParallelizeEnd:
			a.confirmParallelize(input.Target, selected.ChangeID)
		}
	}
	return Effect{}
}

func (a *App) handleViewKey(key string) (Effect, bool) {
	switch a.Top().Kind {
	case ViewLog:
		return a.handleLogKey(key)
	case ViewDiff:
		return a.handleDiffKey(key)
	case ViewStatus:
		return a.handleStatusKey(key)
	case ViewBookmark:
		return a.handleBookmarkKey(key)
	case ViewOpLog:
		return a.handleOpLogKey(key)
	case ViewEvolog:
		return a.handleEvologKey(key)
	case ViewBlame:
		return a.handleBlameKey(key)
	case ViewResolve:
		return a.handleResolveKey(key)
	case ViewHelp:
		return Effect{}, false
	}
	return Effect{}, false
}

func (a *App) handleGlobalKey(key string) Effect {
	switch key {
	case "q":
		if !a.Pop() {
			a.Running = false
			return Effect{Quit: true}
		}
	case "ctrl+c":
		a.Running = false
		return Effect{Quit: true}
	case "?":
		if a.Top().Kind != ViewHelp {
			a.Push(View{Kind: ViewHelp})
		}
	case "tab":
		a.toggleLogStatus()
	case "u":
		a.executeUndo()
	case "ctrl+r":
		a.executeRedo()
	case "ctrl+l":
		a.refreshCurrentView()
	case "F":
		a.startFetch("")
	case "f":
		a.startFetchBranch()
	}
	return Effect{}
}

// toggleLogStatus switches between the log and status views the way Tab
// does in tig.
func (a *App) toggleLogStatus() {
	switch a.Top().Kind {
	case ViewLog:
		a.openStatus()
	case ViewStatus:
		a.Pop()
	default:
		// From any other view Tab returns to the log.
		for a.Top().Kind != ViewLog && a.Pop() {
		}
	}
}

func (a *App) refreshCurrentView() {
	switch a.Top().Kind {
	case ViewLog:
		a.Dirty.Set(DirtyLog)
	case ViewStatus:
		a.Dirty.Set(DirtyStatus)
	case ViewBookmark:
		a.Dirty.Set(DirtyBookmarks)
	case ViewOpLog:
		a.Dirty.Set(DirtyOpLog)
	case ViewEvolog:
		a.Dirty.Set(DirtyEvolog)
	case ViewBlame:
		a.Dirty.Set(DirtyBlame)
	case ViewDiff:
		if err := a.refreshDiffView(); err != nil {
			a.Notify(model.Error(err.Error()))
			return
		}
	case ViewResolve:
		if err := a.refreshResolveList(); err != nil {
			a.Notify(model.Error(err.Error()))
			return
		}
	case ViewHelp:
		return
	}
	if a.Dirty.Any() {
		if err := a.Refresh(); err != nil {
			a.Notify(model.Error(err.Error()))
			return
		}
	}
	a.Notify(model.Info("Refreshed"))
}
