package calculator

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Registry maps calculator names to runners.
type Registry struct {
	mu      sync.RWMutex
	runners map[string]Runner
}

// NewRegistry creates a registry holding the given runners. It panics on a duplicate name.
func NewRegistry(runners ...Runner) *Registry {
	r := &Registry{runners: make(map[string]Runner, len(runners))}
	for _, runner := range runners {
		if err := r.Register(runner); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a runner.
func (r *Registry) Register(runner Runner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := runner.Name()
	if name == "" {
		return errors.New("calculator name must not be empty")
	}
	if _, exists := r.runners[name]; exists {
		return fmt.Errorf("calculator %q already registered", name)
	}
	r.runners[name] = runner
	return nil
}

// Get returns the named runner, or an error wrapping ErrUnknownCalculator.
func (r *Registry) Get(name string) (Runner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	runner, ok := r.runners[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCalculator, name)
	}
	return runner, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.runners))
	for name := range r.runners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List describes every registered calculator in name order.
func (r *Registry) List() []Info {
	names := r.Names()

	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]Info, 0, len(names))
	for _, name := range names {
		runner := r.runners[name]
		infos = append(infos, Info{Name: name, Title: runner.Title(), Description: runner.Description()})
	}
	return infos
}

// Wrap returns a registry whose runners are decorated by wrap. The receiver is unchanged.
func (r *Registry) Wrap(wrap func(Runner) Runner) *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wrapped := &Registry{runners: make(map[string]Runner, len(r.runners))}
	for name, runner := range r.runners {
		wrapped.runners[name] = wrap(runner)
	}
	return wrapped
}
