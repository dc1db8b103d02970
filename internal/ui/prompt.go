package ui

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/mobile/event/key"
)

// Prompt collects a single line of text in the status bar.
type Prompt struct {
	Label  string
	Text   string
	submit func(string)
}

// HandleKey applies a key press to the prompt. It reports true once the
// prompt is finished, either submitted with Enter or dismissed with Escape.
func (p *Prompt) HandleKey(e key.Event) bool {
	if e.Direction == key.DirRelease {
		return false
	}
	switch e.Code {
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		text := strings.TrimSpace(p.Text)
		if text != "" && p.submit != nil {
			p.submit(text)
		}
		return true
	case key.CodeEscape:
		return true
	case key.CodeDeleteBackspace:
		if p.Text != "" {
			_, n := utf8.DecodeLastRuneInString(p.Text)
			p.Text = p.Text[:len(p.Text)-n]
		}
		return false
	}
	if e.Modifiers&key.ModControl != 0 {
		if e.Rune == 'u' || e.Rune == 'U' {
			p.Text = ""
		}
		return false
	}
	if e.Rune >= 0x20 && e.Rune != 0x7f {
		p.Text += string(e.Rune)
	}
	return false
}

// String renders the prompt line with a cursor.
func (p *Prompt) String() string {
	return p.Label + ": " + p.Text + "|"
}
