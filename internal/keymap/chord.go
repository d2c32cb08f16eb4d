// Package keymap binds key chords to command names.
//
// Key specifications follow two notations:
//
//	"Ctrl+G", "Alt+G", "Ctrl+Shift+P", "Enter", "Delete", "q"
//	"<C-g>", "<A-g>", "<CR>", "<Del>"
//
// Letters combined with Ctrl, Alt or Meta are case-insensitive; a lone
// upper-case letter means Shift plus that letter.
package keymap

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Chord is one key press with its modifiers.
type Chord struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// namedKeys maps lower-case key names to tcell keys.
var namedKeys = map[string]tcell.Key{
	"enter":     tcell.KeyEnter,
	"return":    tcell.KeyEnter,
	"cr":        tcell.KeyEnter,
	"esc":       tcell.KeyEscape,
	"escape":    tcell.KeyEscape,
	"tab":       tcell.KeyTab,
	"backspace": tcell.KeyBackspace2,
	"bs":        tcell.KeyBackspace2,
	"delete":    tcell.KeyDelete,
	"del":       tcell.KeyDelete,
	"insert":    tcell.KeyInsert,
	"ins":       tcell.KeyInsert,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pageup":    tcell.KeyPgUp,
	"pgup":      tcell.KeyPgUp,
	"pagedown":  tcell.KeyPgDn,
	"pgdn":      tcell.KeyPgDn,
	"f1":        tcell.KeyF1,
	"f2":        tcell.KeyF2,
	"f3":        tcell.KeyF3,
	"f4":        tcell.KeyF4,
	"f5":        tcell.KeyF5,
	"f6":        tcell.KeyF6,
	"f7":        tcell.KeyF7,
	"f8":        tcell.KeyF8,
	"f9":        tcell.KeyF9,
	"f10":       tcell.KeyF10,
	"f11":       tcell.KeyF11,
	"f12":       tcell.KeyF12,
}

// keyNames is the display name for each named key.
var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "Enter",
	tcell.KeyEscape:     "Esc",
	tcell.KeyTab:        "Tab",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyDelete:     "Delete",
	tcell.KeyInsert:     "Insert",
	tcell.KeyUp:         "Up",
	tcell.KeyDown:       "Down",
	tcell.KeyLeft:       "Left",
	tcell.KeyRight:      "Right",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PageUp",
	tcell.KeyPgDn:       "PageDown",
}

// Parse turns a key specification into a Chord.
func Parse(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, ErrEmptySpec
	}
	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseVim(spec[1 : len(spec)-1])
	}
	if len(spec) > 1 && strings.Contains(spec, "+") {
		return parsePlus(spec)
	}
	return parseKey(spec, tcell.ModNone)
}

// MustParse is Parse for specs known to be valid.
func MustParse(spec string) Chord {
	c, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return c
}

func parseVim(inner string) (Chord, error) {
	parts := strings.Split(strings.TrimSpace(inner), "-")
	var mods tcell.ModMask
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "c":
			mods |= tcell.ModCtrl
		case "a", "m":
			mods |= tcell.ModAlt
		case "s":
			mods |= tcell.ModShift
		case "d":
			mods |= tcell.ModMeta
		default:
			return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
	}
	return parseKey(parts[len(parts)-1], mods)
}

func parsePlus(spec string) (Chord, error) {
	parts := strings.Split(spec, "+")
	var mods tcell.ModMask
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "ctrl", "control", "c":
			mods |= tcell.ModCtrl
		case "alt", "option", "opt", "a":
			mods |= tcell.ModAlt
		case "shift", "s":
			mods |= tcell.ModShift
		case "meta", "cmd", "super", "win", "m":
			mods |= tcell.ModMeta
		default:
			return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
	}
	return parseKey(parts[len(parts)-1], mods)
}

func parseKey(part string, mods tcell.ModMask) (Chord, error) {
	part = strings.TrimSpace(part)
	if part == "" {
		return Chord{}, ErrInvalidSpec
	}
	lower := strings.ToLower(part)
	if k, ok := namedKeys[lower]; ok {
		return Chord{Key: k, Mod: mods}, nil
	}
	if lower == "space" {
		part = " "
	}

	runes := []rune(part)
	if len(runes) != 1 {
		return Chord{}, fmt.Errorf("%w: %q", ErrInvalidSpec, part)
	}
	return runeChord(runes[0], mods), nil
}

// runeChord builds the canonical chord for a printable key. Shift is
// folded into the rune's case, and letters under Ctrl, Alt or Meta are
// lower-cased.
func runeChord(r rune, mods tcell.ModMask) Chord {
	if mods&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0 {
		if mods&tcell.ModShift != 0 && mods&tcell.ModCtrl == 0 {
			r = unicode.ToUpper(r)
		} else {
			r = unicode.ToLower(r)
		}
	} else if mods&tcell.ModShift != 0 {
		r = unicode.ToUpper(r)
	}
	mods &^= tcell.ModShift
	return Chord{Key: tcell.KeyRune, Rune: r, Mod: mods}
}

// FromEvent converts a terminal key event into its canonical chord.
func FromEvent(ev *tcell.EventKey) Chord {
	k, mods := ev.Key(), ev.Modifiers()
	switch {
	case k == tcell.KeyRune:
		return runeChord(ev.Rune(), mods)
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ && isControlPress(k, mods):
		return Chord{Key: tcell.KeyRune, Rune: rune('a' + (k - tcell.KeyCtrlA)), Mod: mods | tcell.ModCtrl}
	case k == tcell.KeyBackspace:
		return Chord{Key: tcell.KeyBackspace2, Mod: mods}
	}
	return Chord{Key: k, Mod: mods}
}

// isControlPress reports whether a control code came from Ctrl plus a
// letter rather than from a key that sends the same code on its own.
func isControlPress(k tcell.Key, mods tcell.ModMask) bool {
	if mods&tcell.ModCtrl != 0 {
		return true
	}
	switch k {
	case tcell.KeyBackspace, tcell.KeyTab, tcell.KeyEnter:
		return false
	}
	return true
}

// String renders the chord in "Ctrl+G" notation.
func (c Chord) String() string {
	var b strings.Builder
	if c.Mod&tcell.ModCtrl != 0 {
		b.WriteString("Ctrl+")
	}
	if c.Mod&tcell.ModAlt != 0 {
		b.WriteString("Alt+")
	}
	if c.Mod&tcell.ModMeta != 0 {
		b.WriteString("Meta+")
	}
	if c.Mod&tcell.ModShift != 0 {
		b.WriteString("Shift+")
	}
	switch {
	case c.Key == tcell.KeyRune && c.Rune == ' ':
		b.WriteString("Space")
	case c.Key == tcell.KeyRune && c.Mod&tcell.ModCtrl != 0:
		b.WriteRune(unicode.ToUpper(c.Rune))
	case c.Key == tcell.KeyRune:
		b.WriteRune(c.Rune)
	default:
		if name, ok := keyNames[c.Key]; ok {
			b.WriteString(name)
		} else if name, ok := tcell.KeyNames[c.Key]; ok {
			b.WriteString(name)
		} else {
			fmt.Fprintf(&b, "Key(%d)", c.Key)
		}
	}
	return b.String()
}
