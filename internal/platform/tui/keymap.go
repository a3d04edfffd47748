package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-shmup/internal/core"
)

// playBindings lists the keys, as reported by tea.KeyMsg.String, for each
// game action.
var playBindings = []struct {
	action core.Action
	keys   []string
}{
	{core.ActionUp, []string{"up", "w", "k"}},
	{core.ActionDown, []string{"down", "s", "j"}},
	{core.ActionLeft, []string{"left", "a", "h"}},
	{core.ActionRight, []string{"right", "d", "l"}},
	{core.ActionShield, []string{"z", " "}},
	{core.ActionPause, []string{"p", "esc"}},
	{core.ActionRestart, []string{"r"}},
	{core.ActionQuit, []string{"q", "ctrl+c"}},
}

// MenuAction is what a key means on the stage picker.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionScores
	MenuActionBack
	MenuActionQuit
)

var menuBindings = []struct {
	action MenuAction
	keys   []string
}{
	{MenuActionUp, []string{"up", "w", "k"}},
	{MenuActionDown, []string{"down", "s", "j"}},
	{MenuActionLeft, []string{"left", "a", "h"}},
	{MenuActionRight, []string{"right", "d", "l"}},
	{MenuActionSelect, []string{"enter", " "}},
	{MenuActionScores, []string{"tab"}},
	{MenuActionBack, []string{"b", "esc"}},
	{MenuActionQuit, []string{"q", "ctrl+c"}},
}

// KeyMapper translates Bubble Tea key messages using the binding tables.
type KeyMapper struct {
	play map[string]core.Action
	menu map[string]MenuAction
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	km := &KeyMapper{
		play: make(map[string]core.Action),
		menu: make(map[string]MenuAction),
	}
	for _, b := range playBindings {
		for _, k := range b.keys {
			km.play[k] = b.action
		}
	}
	for _, b := range menuBindings {
		for _, k := range b.keys {
			km.menu[k] = b.action
		}
	}
	return km
}

// MapKey translates a key message to a game action (ActionNone when unbound)
// and reports whether it asks to quit.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	action = km.play[msg.String()]
	return action, action == core.ActionQuit
}

// MapKeyToFrame records the key's action in frame and reports a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	frame.Set(action)
	return isQuit
}

// MapKeyToMenuAction translates a key for the stage picker.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	return km.menu[msg.String()]
}
