// Package tools hosts the data capabilities the analyst dispatches to by
// name. Each capability takes an argument map and returns a JSON envelope
// string; failures are encoded in the envelope, never raised.
package tools

import (
	"context"
	"fmt"
	"sort"

	"github.com/arkline/fxquant/consts"
)

// Args carries the keyword arguments of one capability invocation.
type Args map[string]any

// DataFunc is a name-addressed data capability.
type DataFunc func(ctx context.Context, args Args) string

// knownCapabilities is the closed set of registrable names.
var knownCapabilities = map[string]bool{
	consts.CapRiskMetrics:         true,
	consts.CapVolatility:          true,
	consts.CapCorrelation:         true,
	consts.CapStrategyPerformance: true,
	consts.CapForexReturns:        true,
}

// Registry maps capability names to functions. It is populated once at
// construction and read-only afterwards.
type Registry struct {
	funcs map[string]DataFunc
}

// NewRegistry builds a registry. A name outside the known capability set
// is a wiring bug and fails construction rather than degrading at call
// time.
func NewRegistry(entries map[string]DataFunc) (*Registry, error) {
	funcs := make(map[string]DataFunc, len(entries))
	for name, fn := range entries {
		if !knownCapabilities[name] {
			return nil, fmt.Errorf("unknown capability %q", name)
		}
		if fn == nil {
			return nil, fmt.Errorf("nil capability %q", name)
		}
		funcs[name] = fn
	}
	return &Registry{funcs: funcs}, nil
}

// Has reports whether a capability is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.funcs[name]
	return ok
}

// Names lists registered capabilities, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call dispatches by exact name. A missing capability yields the fixed
// unavailable string; callers see it as a result, not an error.
func (r *Registry) Call(ctx context.Context, name string, args Args) string {
	fn, ok := r.funcs[name]
	if !ok {
		return Unavailable(name)
	}
	return fn(ctx, args)
}

// Unavailable is the sentinel result for a capability that is not
// registered.
func Unavailable(name string) string {
	return fmt.Sprintf("⚠️ Capability unavailable: %s", name)
}
