package ui

// action is what a key press does in the view tab.
type action string

const (
	actionNone     action = ""
	actionUp       action = "up"
	actionDown     action = "down"
	actionTop      action = "top"
	actionBottom   action = "bottom"
	actionEnter    action = "enter"
	actionCopy     action = "copy"
	actionSearch   action = "search"
	actionNote     action = "note"
	actionTab      action = "tab"
	actionClear    action = "clear"
	actionQuit     action = "quit"
	actionPageUp   action = "page_up"
	actionPageDown action = "page_down"
)

var keyActions = map[string]action{
	"up":     actionUp,
	"k":      actionUp,
	"down":   actionDown,
	"j":      actionDown,
	"home":   actionTop,
	"g":      actionTop,
	"end":    actionBottom,
	"G":      actionBottom,
	"pgup":   actionPageUp,
	"pgdown": actionPageDown,
	"enter":  actionEnter,
	"space":  actionEnter,
	"c":      actionCopy,
	"/":      actionSearch,
	"n":      actionNote,
	"tab":    actionTab,
	"esc":    actionClear,
	"q":      actionQuit,
	"ctrl+c": actionQuit,
}

func actionFor(key string) action {
	return keyActions[key]
}

const helpLine = "↑/↓ move  enter expand  c copy  / search  n note  tab raw  q quit"
