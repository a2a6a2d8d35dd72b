package dynlib

import (
	"strings"
	"testing"
)

type fakeModule struct {
	name   string
	syms   map[string]uintptr
	closed bool
}

func (m *fakeModule) Lookup(symbol string) (uintptr, bool) {
	addr, ok := m.syms[symbol]
	return addr, ok
}

func (m *fakeModule) Name() string { return m.name }

func (m *fakeModule) Close() error {
	m.closed = true
	return nil
}

type fakeLoader struct {
	modules map[string]*fakeModule
	opened  []string
}

func (l *fakeLoader) Open(name string) (Module, error) {
	l.opened = append(l.opened, name)
	if m, ok := l.modules[name]; ok {
		return m, nil
	}
	return nil, &openError{name}
}

type openError struct{ name string }

func (e *openError) Error() string { return "no such library " + e.name }

func TestOpenTriesNamesInOrder(t *testing.T) {
	loader := &fakeLoader{modules: map[string]*fakeModule{
		"libEGL.so.1": {name: "libEGL.so.1"},
	}}
	SetLoader(loader)
	defer SetLoader(nil)

	m, err := Open("libEGL.so", "libEGL.so.1")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if m.Name() != "libEGL.so.1" {
		t.Fatalf("opened %q, want libEGL.so.1", m.Name())
	}
	if len(loader.opened) != 2 || loader.opened[0] != "libEGL.so" {
		t.Fatalf("unexpected open order %v", loader.opened)
	}
}

func TestOpenReportsAllCandidates(t *testing.T) {
	SetLoader(&fakeLoader{})
	defer SetLoader(nil)

	_, err := Open("libGL.so.1", "libGL.so")
	if err == nil {
		t.Fatal("expected an error when nothing is loadable")
	}
	if !strings.Contains(err.Error(), "libGL.so.1") || !strings.Contains(err.Error(), "libGL.so") {
		t.Fatalf("error must list every candidate, got %q", err)
	}
}

func TestInstallRejectsPartialTriple(t *testing.T) {
	loader := &fakeLoader{modules: map[string]*fakeModule{
		"libEGL.so.1": {name: "libEGL.so.1"},
	}}
	SetLoader(loader)
	defer SetLoader(nil)

	err := Install(&FunctionLoader{
		Open: func(any, string) uintptr { return 1 },
	})
	if err == nil {
		t.Fatal("a triple without close and resolve must be rejected")
	}

	// The previous loader must still be active after the rejection.
	if _, err := Open("libEGL.so.1"); err != nil {
		t.Fatalf("previous loader was replaced: %v", err)
	}
	if len(loader.opened) != 1 {
		t.Fatalf("open did not go through the previous loader: %v", loader.opened)
	}
}

func TestInstallRoutesCallbacks(t *testing.T) {
	type call struct {
		what   string
		cookie any
	}
	var calls []call
	cookie := "opaque"

	err := Install(&FunctionLoader{
		Open: func(c any, path string) uintptr {
			calls = append(calls, call{"open " + path, c})
			return 0x10
		},
		Close: func(c any, handle uintptr) {
			calls = append(calls, call{"close", c})
		},
		Resolve: func(c any, handle uintptr, symbol string) uintptr {
			calls = append(calls, call{"resolve " + symbol, c})
			return 0x20
		},
		Cookie: cookie,
	})
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	defer Install(nil)

	m, err := Open("libEGL.so.1")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if addr, ok := m.Lookup("eglGetError"); !ok || addr != 0x20 {
		t.Fatalf("Lookup = %#x, %v", addr, ok)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	want := []string{"open libEGL.so.1", "resolve eglGetError", "close"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i, c := range calls {
		if c.what != want[i] {
			t.Fatalf("call %d = %q, want %q", i, c.what, want[i])
		}
		if c.cookie != cookie {
			t.Fatalf("call %d got cookie %v, want %v", i, c.cookie, cookie)
		}
	}
}

func TestInstallFailedOpen(t *testing.T) {
	err := Install(&FunctionLoader{
		Open:    func(any, string) uintptr { return 0 },
		Close:   func(any, uintptr) {},
		Resolve: func(any, uintptr, string) uintptr { return 0 },
	})
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	defer Install(nil)

	if _, err := Open("libGL.so.1"); err == nil {
		t.Fatal("a zero handle from the loader must fail the open")
	}
}

func TestSym(t *testing.T) {
	m := &fakeModule{name: "libEGL.so.1", syms: map[string]uintptr{"eglGetError": 0x1000}}

	addr, err := Sym(m, "eglGetError")
	if err != nil {
		t.Fatalf("Sym: %v", err)
	}
	if addr != 0x1000 {
		t.Fatalf("addr = %#x, want 0x1000", addr)
	}

	if _, err := Sym(m, "eglMissing"); err == nil {
		t.Fatal("expected an error for a missing symbol")
	} else if !strings.Contains(err.Error(), "eglMissing") || !strings.Contains(err.Error(), "libEGL.so.1") {
		t.Fatalf("error must name symbol and module, got %q", err)
	}
}
