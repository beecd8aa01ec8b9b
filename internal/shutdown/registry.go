// Package shutdown implements the process-wide destructor registry: the
// scoped-acquisition discipline from spec.md §5, where every resource a
// command allocates (readers, patterns, interval lists, string buffers)
// registers its closer and the registry runs them in reverse order on
// exit — the same teardown shape cmd/searcher/main.go's
// shutdownOnSIGINT uses for its one *http.Server, generalized to an
// arbitrary stack of resources.
package shutdown

import "sync"

// Registry is a LIFO stack of destructors.
type Registry struct {
	mu      sync.Mutex
	closers []func() error
}

// New returns an empty registry.
func New() *Registry { return &Registry{} }

// Push registers closer to run during Close, after everything already
// registered.
func (r *Registry) Push(closer func() error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closers = append(r.closers, closer)
}

// Close runs every registered closer in reverse registration order,
// continuing past individual failures and returning the first error
// encountered (if any) after all closers have run.
func (r *Registry) Close() error {
	r.mu.Lock()
	closers := r.closers
	r.closers = nil
	r.mu.Unlock()

	var first error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Len reports how many destructors are currently registered.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.closers)
}
