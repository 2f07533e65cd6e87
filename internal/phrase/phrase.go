// Package phrase generates hail and message text from Lua scripts.
// Scripts register entries in a global `phrases` table; an entry is
// either a literal string or a function returning one, so data authors
// can go from canned lines to generated ones without touching Go.
package phrase

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// New loads every .lua file under dir, in name order so script authors
// can rely on load sequence. A missing directory yields an empty engine.
func New(dir string, log *zap.Logger) (*Engine, error) {
	e := &Engine{
		vm:  lua.NewState(),
		log: log,
	}
	e.vm.SetGlobal("phrases", e.vm.NewTable())

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return e, nil
		}
		e.vm.Close()
		return nil, fmt.Errorf("read scripts dir %s: %w", dir, err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".lua") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := e.vm.DoFile(path); err != nil {
			e.vm.Close()
			return nil, fmt.Errorf("load script %s: %w", path, err)
		}
		log.Debug("loaded phrase script", zap.String("file", name))
	}
	return e, nil
}

// LoadString executes a script from memory. Used by tests and embedders.
func (e *Engine) LoadString(src string) error {
	return e.vm.DoString(src)
}

// Expand resolves a phrase name to text. The second return is false when
// no phrase by that name exists, so callers can fall back to using the
// name as literal text.
func (e *Engine) Expand(name string) (string, bool) {
	tbl, ok := e.vm.GetGlobal("phrases").(*lua.LTable)
	if !ok {
		return "", false
	}
	switch v := e.vm.GetField(tbl, name).(type) {
	case lua.LString:
		return string(v), true
	case *lua.LFunction:
		if err := e.vm.CallByParam(lua.P{Fn: v, NRet: 1, Protect: true}); err != nil {
			e.log.Warn("phrase script failed", zap.String("phrase", name), zap.Error(err))
			return "", false
		}
		ret := e.vm.Get(-1)
		e.vm.Pop(1)
		if s, ok := ret.(lua.LString); ok {
			return string(s), true
		}
		return "", false
	}
	return "", false
}

func (e *Engine) Close() {
	e.vm.Close()
}
