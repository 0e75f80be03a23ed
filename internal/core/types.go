package core

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// ErrUnknownSim is returned by New for names nothing registered.
var ErrUnknownSim = errors.New("core: unknown sim")

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim is what a host needs to drive and display an automaton.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
	Generation() int
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var (
	simsMu sync.RWMutex
	sims   = map[string]Factory{}
)

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	simsMu.Lock()
	sims[name] = f
	simsMu.Unlock()
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	simsMu.RLock()
	defer simsMu.RUnlock()
	f, ok := sims[name]
	return f, ok
}

// Names lists registered simulations in sorted order.
func Names() []string {
	simsMu.RLock()
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	simsMu.RUnlock()
	slices.Sort(names)
	return names
}

// New builds the sim registered under name. Unknown names report the
// registered ones.
func New(name string, cfg map[string]string) (Sim, error) {
	f, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownSim, name, strings.Join(Names(), ", "))
	}
	return f(cfg)
}
