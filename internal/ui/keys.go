package ui

import (
	"unicode"

	"golang.org/x/mobile/event/key"
)

// KeyShortcut identifies a key combination. Printable keys match on Rune,
// everything else on Code. Shift is ignored so '+' works on any layout.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

func ctrl(r rune) KeyShortcut { return KeyShortcut{Rune: r, Modifiers: key.ModControl} }

func plain(r rune) KeyShortcut { return KeyShortcut{Rune: r} }

func code(c key.Code) KeyShortcut { return KeyShortcut{Code: c} }

// shortcutOf normalises a key event into the form used by the keymap.
func shortcutOf(e key.Event) KeyShortcut {
	mods := e.Modifiers &^ key.ModShift
	r := e.Rune
	// Some drivers report Ctrl+letter as the ASCII control character.
	if mods&key.ModControl != 0 && r > 0 && r < 0x20 {
		r += 'a' - 1
	}
	if r <= 0x20 || r == 0x7f {
		return KeyShortcut{Code: e.Code, Modifiers: mods}
	}
	return KeyShortcut{Rune: unicode.ToLower(r), Modifiers: mods}
}
