// Package plugin runs user Lua scripts against the selection history.
//
// Scripts see a global table named selnav:
//
//	selnav.previous()          -- step back; returns true if the cursor moved
//	selnav.next()              -- step forward; returns true if the cursor moved
//	selnav.offset()            -- steps back from the newest entry
//	selnav.history()           -- array of {id=, name=, valid=}, oldest first
//	selnav.cleanup()           -- drop dangling entries
//	selnav.bind(key, command)  -- bind a key specification to a command
//	selnav.on_select(fn)       -- fn(id, name) after each recorded selection
//	selnav.log(msg)            -- write to the selnav log
//
// Only the base, table, string and math libraries are available; file
// loading functions are removed. Every call into Lua runs under a timeout.
//
// An Engine is not goroutine-safe; call it from the host's event loop.
package plugin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/selnav/internal/history"
)

// DefaultTimeout bounds each script execution or callback.
const DefaultTimeout = 2 * time.Second

// ErrClosed indicates use of a closed engine.
var ErrClosed = errors.New("plugin engine closed")

// Entry is one history entry as scripts see it.
type Entry struct {
	Ref   history.Ref
	Name  string
	Valid bool
}

// Host is what scripts can drive.
type Host interface {
	Previous() bool
	Next() bool
	Offset() int
	History() []Entry
	Cleanup()
	Bind(spec, command string) error
}

// Logger receives script output and callback failures.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Engine is a sandboxed Lua state bound to a Host.
type Engine struct {
	L        *lua.LState
	host     Host
	log      Logger
	timeout  time.Duration
	onSelect []*lua.LFunction
	closed   bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the per-call execution limit.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// New creates an engine with the selnav table installed.
func New(host Host, log Logger, opts ...Option) *Engine {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	e := &Engine{
		L:       L,
		host:    host,
		log:     log,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	openSafeLibraries(L)
	e.install()
	return e
}

// openSafeLibraries opens only libraries without file or process access.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}

func (e *Engine) install() {
	mod := e.L.SetFuncs(e.L.NewTable(), map[string]lua.LGFunction{
		"previous":  e.luaPrevious,
		"next":      e.luaNext,
		"offset":    e.luaOffset,
		"history":   e.luaHistory,
		"cleanup":   e.luaCleanup,
		"bind":      e.luaBind,
		"on_select": e.luaOnSelect,
		"log":       e.luaLog,
	})
	e.L.SetGlobal("selnav", mod)
	e.L.SetGlobal("print", e.L.NewFunction(e.luaLog))
}

// DoFile runs a script file.
func (e *Engine) DoFile(path string) error {
	return e.run(func() error { return e.L.DoFile(path) })
}

// DoString runs a chunk of Lua.
func (e *Engine) DoString(code string) error {
	return e.run(func() error { return e.L.DoString(code) })
}

// NotifySelect runs every on_select callback. Failures are logged and do
// not stop later callbacks.
func (e *Engine) NotifySelect(ref history.Ref, name string) {
	for _, fn := range e.onSelect {
		err := e.run(func() error {
			return e.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, lua.LString(ref), lua.LString(name))
		})
		if err != nil && e.log != nil {
			e.log.Warn("on_select callback: %v", err)
		}
	}
}

// Callbacks returns the number of registered on_select callbacks.
func (e *Engine) Callbacks() int {
	return len(e.onSelect)
}

// Close releases the Lua state.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.L.Close()
}

func (e *Engine) run(fn func() error) error {
	if e.closed {
		return ErrClosed
	}
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()

	if err := fn(); err != nil {
		return fmt.Errorf("lua: %w", err)
	}
	return nil
}

func (e *Engine) luaPrevious(L *lua.LState) int {
	L.Push(lua.LBool(e.host.Previous()))
	return 1
}

func (e *Engine) luaNext(L *lua.LState) int {
	L.Push(lua.LBool(e.host.Next()))
	return 1
}

func (e *Engine) luaOffset(L *lua.LState) int {
	L.Push(lua.LNumber(e.host.Offset()))
	return 1
}

func (e *Engine) luaHistory(L *lua.LState) int {
	entries := e.host.History()
	tbl := L.CreateTable(len(entries), 0)
	for _, entry := range entries {
		item := L.CreateTable(0, 3)
		item.RawSetString("id", lua.LString(entry.Ref))
		item.RawSetString("name", lua.LString(entry.Name))
		item.RawSetString("valid", lua.LBool(entry.Valid))
		tbl.Append(item)
	}
	L.Push(tbl)
	return 1
}

func (e *Engine) luaCleanup(L *lua.LState) int {
	e.host.Cleanup()
	return 0
}

func (e *Engine) luaBind(L *lua.LState) int {
	spec := L.CheckString(1)
	command := L.CheckString(2)
	if err := e.host.Bind(spec, command); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func (e *Engine) luaOnSelect(L *lua.LState) int {
	e.onSelect = append(e.onSelect, L.CheckFunction(1))
	return 0
}

func (e *Engine) luaLog(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	if e.log != nil {
		e.log.Info("script: %s", strings.Join(parts, " "))
	}
	return 0
}
