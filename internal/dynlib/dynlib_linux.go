package dynlib

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// systemLoader opens libraries through the platform dynamic linker.
type systemLoader struct{}

func (systemLoader) Open(name string) (Module, error) {
	h, err := purego.Dlopen(name, purego.RTLD_LAZY|purego.RTLD_LOCAL)
	if err != nil {
		return nil, fmt.Errorf("dynlib: dlopen %s: %w", name, err)
	}
	return &systemModule{name: name, handle: h}, nil
}

type systemModule struct {
	name   string
	handle uintptr
}

func (m *systemModule) Lookup(symbol string) (uintptr, bool) {
	addr, err := purego.Dlsym(m.handle, symbol)
	if err != nil || addr == 0 {
		return 0, false
	}
	return addr, true
}

func (m *systemModule) Name() string { return m.name }

func (m *systemModule) Close() error {
	if m.handle == 0 {
		return nil
	}
	err := purego.Dlclose(m.handle)
	m.handle = 0
	return err
}
