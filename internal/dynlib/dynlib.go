// Package dynlib loads shared libraries and resolves symbols from them.
// The default loader wraps the system dynamic linker; tests and exotic
// deployments can override the three primitives before initialization.
package dynlib

import (
	"fmt"
	"strings"

	"github.com/venster-gl/venster/internal/verr"
)

// Module is an opaque handle to a loaded shared library.
type Module interface {
	// Lookup resolves a symbol and reports whether it exists.
	Lookup(symbol string) (uintptr, bool)
	// Name returns the soname the module was opened with.
	Name() string
	// Close unloads the library. The handle is unusable afterwards.
	Close() error
}

// Loader opens shared libraries by soname.
type Loader interface {
	Open(name string) (Module, error)
}

var active Loader = systemLoader{}

// SetLoader overrides the process loader. Passing nil restores the
// system loader. Must be called before any library is opened.
func SetLoader(l Loader) {
	if l == nil {
		active = systemLoader{}
		return
	}
	active = l
}

// FunctionLoader is a user override of the dynamic linker: an open,
// close and resolve triple plus an opaque cookie handed back to every
// callback.
type FunctionLoader struct {
	Open    func(cookie any, path string) uintptr
	Close   func(cookie any, handle uintptr)
	Resolve func(cookie any, handle uintptr, symbol string) uintptr
	Cookie  any
}

// Install registers l as the process loader. A triple with any callback
// absent is rejected, leaving the previous loader in place. Passing nil
// restores the system loader. Must be called before any library is
// opened.
func Install(l *FunctionLoader) error {
	if l == nil {
		active = systemLoader{}
		return nil
	}
	if l.Open == nil || l.Close == nil || l.Resolve == nil {
		return verr.Errorf(verr.InvalidValue,
			"dynlib: a loader must provide open, close and resolve callbacks")
	}
	active = &functionLoader{fn: *l}
	return nil
}

// functionLoader adapts a callback triple to the Loader seam.
type functionLoader struct {
	fn FunctionLoader
}

func (l *functionLoader) Open(name string) (Module, error) {
	h := l.fn.Open(l.fn.Cookie, name)
	if h == 0 {
		return nil, fmt.Errorf("dynlib: loader could not open %s", name)
	}
	return &functionModule{loader: l, name: name, handle: h}, nil
}

type functionModule struct {
	loader *functionLoader
	name   string
	handle uintptr
}

func (m *functionModule) Lookup(symbol string) (uintptr, bool) {
	addr := m.loader.fn.Resolve(m.loader.fn.Cookie, m.handle, symbol)
	return addr, addr != 0
}

func (m *functionModule) Name() string { return m.name }

func (m *functionModule) Close() error {
	if m.handle != 0 {
		m.loader.fn.Close(m.loader.fn.Cookie, m.handle)
		m.handle = 0
	}
	return nil
}

// Open loads the first library from names that the active loader can
// open. The returned error lists every soname that was tried.
func Open(names ...string) (Module, error) {
	var tried []string
	for _, name := range names {
		m, err := active.Open(name)
		if err == nil {
			return m, nil
		}
		tried = append(tried, name)
	}
	return nil, fmt.Errorf("dynlib: no loadable library among [%s]", strings.Join(tried, " "))
}

// Sym resolves a symbol or returns a descriptive error.
func Sym(m Module, symbol string) (uintptr, error) {
	addr, ok := m.Lookup(symbol)
	if !ok {
		return 0, fmt.Errorf("dynlib: %s has no symbol %q", m.Name(), symbol)
	}
	return addr, nil
}
