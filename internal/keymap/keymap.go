package keymap

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/gdamore/tcell/v2"
)

// Command names understood by the host.
const (
	CmdPrevious  = "selection.previous"
	CmdNext      = "selection.next"
	CmdClear     = "selection.clear"
	CmdUp        = "list.up"
	CmdDown      = "list.down"
	CmdSelect    = "object.select"
	CmdDelete    = "object.delete"
	CmdCreate    = "object.create"
	CmdReload    = "scene.reload"
	CmdCleanup   = "history.cleanup"
	CmdResetHist = "history.reset"
	CmdQuit      = "app.quit"
)

// ErrUnknownCommand indicates a binding to a command the host does not have.
var ErrUnknownCommand = errors.New("unknown command")

var knownCommands = []string{
	CmdPrevious, CmdNext, CmdClear, CmdUp, CmdDown, CmdSelect,
	CmdDelete, CmdCreate, CmdReload, CmdCleanup, CmdResetHist, CmdQuit,
}

// IsCommand reports whether name is a command the host understands.
func IsCommand(name string) bool {
	return slices.Contains(knownCommands, name)
}

func checkCommand(command string) error {
	if !IsCommand(command) {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
	return nil
}

// DefaultBindings are the bindings of a fresh keymap. The two navigation
// commands keep the editor shortcuts Ctrl+G and Alt+G.
var DefaultBindings = []Binding{
	{Keys: "Ctrl+G", Command: CmdPrevious},
	{Keys: "Alt+G", Command: CmdNext},
	{Keys: "Up", Command: CmdUp},
	{Keys: "k", Command: CmdUp},
	{Keys: "Down", Command: CmdDown},
	{Keys: "j", Command: CmdDown},
	{Keys: "Enter", Command: CmdSelect},
	{Keys: "Space", Command: CmdSelect},
	{Keys: "Delete", Command: CmdDelete},
	{Keys: "d", Command: CmdDelete},
	{Keys: "n", Command: CmdCreate},
	{Keys: "Esc", Command: CmdClear},
	{Keys: "r", Command: CmdReload},
	{Keys: "c", Command: CmdCleanup},
	{Keys: "X", Command: CmdResetHist},
	{Keys: "q", Command: CmdQuit},
	{Keys: "Ctrl+C", Command: CmdQuit},
}

// Binding pairs a key specification with a command.
type Binding struct {
	Keys    string
	Command string
}

// Keymap resolves chords to commands.
type Keymap struct {
	bindings map[Chord]string
}

// New returns an empty keymap.
func New() *Keymap {
	return &Keymap{bindings: make(map[Chord]string)}
}

// Default returns a keymap holding DefaultBindings.
func Default() *Keymap {
	km := New()
	for _, b := range DefaultBindings {
		km.bindings[MustParse(b.Keys)] = b.Command
	}
	return km
}

// Bind maps a key specification to command, replacing whatever the chord
// was bound to.
func (km *Keymap) Bind(spec, command string) error {
	if err := checkCommand(command); err != nil {
		return err
	}
	c, err := Parse(spec)
	if err != nil {
		return fmt.Errorf("bind %s: %w", command, err)
	}
	km.bindings[c] = command
	return nil
}

// Rebind makes spec the only chord for command.
func (km *Keymap) Rebind(command, spec string) error {
	if err := checkCommand(command); err != nil {
		return err
	}
	c, err := Parse(spec)
	if err != nil {
		return fmt.Errorf("bind %s: %w", command, err)
	}
	km.Unbind(command)
	km.bindings[c] = command
	return nil
}

// Unbind removes every chord bound to command.
func (km *Keymap) Unbind(command string) {
	for c, cmd := range km.bindings {
		if cmd == command {
			delete(km.bindings, c)
		}
	}
}

// Lookup returns the command bound to chord.
func (km *Keymap) Lookup(c Chord) (string, bool) {
	cmd, ok := km.bindings[c]
	return cmd, ok
}

// LookupEvent returns the command bound to a terminal key event.
func (km *Keymap) LookupEvent(ev *tcell.EventKey) (string, bool) {
	return km.Lookup(FromEvent(ev))
}

// KeysFor returns the chords bound to command, sorted for display.
func (km *Keymap) KeysFor(command string) []string {
	var keys []string
	for c, cmd := range km.bindings {
		if cmd == command {
			keys = append(keys, c.String())
		}
	}
	sort.Strings(keys)
	return keys
}

// Commands returns every bound command name, sorted.
func (km *Keymap) Commands() []string {
	var cmds []string
	for _, cmd := range km.bindings {
		if !slices.Contains(cmds, cmd) {
			cmds = append(cmds, cmd)
		}
	}
	sort.Strings(cmds)
	return cmds
}
