package call

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Meta contains identity metadata for a Callable.
type Meta struct {
	Name      string // Callable name (required)
	Doc       string // One-line description (optional)
	Namespace string // Grouping namespace (optional)
	Version   string // Callable version (optional)
}

// ID returns the fully qualified identifier.
// Format: <namespace>.<name> or just <name>.
func (m Meta) ID() string {
	if m.Namespace != "" {
		return m.Namespace + "." + m.Name
	}
	return m.Name
}

// Args carries the arguments of a single invocation: an ordered
// positional list plus a name-to-value mapping for keyword-style
// arguments.
type Args struct {
	Positional []any
	Named      map[string]any
}

// Positional creates Args from positional values only.
func Positional(values ...any) Args {
	return Args{Positional: values}
}

// With returns a copy of the Args with a named argument set.
// The receiver is not modified.
func (a Args) With(name string, value any) Args {
	named := make(map[string]any, len(a.Named)+1)
	for k, v := range a.Named {
		named[k] = v
	}
	named[name] = value
	return Args{Positional: a.Positional, Named: named}
}

// Len returns the total number of arguments.
func (a Args) Len() int {
	return len(a.Positional) + len(a.Named)
}

// String returns a stable human-readable representation: positional
// values in order, then named values sorted by name.
// Format: (1, 2, name=John)
func (a Args) String() string {
	parts := make([]string, 0, a.Len())
	for _, v := range a.Positional {
		parts = append(parts, fmt.Sprintf("%v", v))
	}

	names := make([]string, 0, len(a.Named))
	for name := range a.Named {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%v", name, a.Named[name]))
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

// Callable is an opaque unit of work.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Invoke must honor cancellation/deadlines where applicable.
// - Errors: Invoke returns either a result or an error, never panics.
type Callable interface {
	// Meta returns the identity metadata of this callable.
	Meta() Meta

	// Invoke runs the unit of work with the given arguments.
	Invoke(ctx context.Context, args Args) (any, error)
}

// InvokeFunc is the function signature adapted by Func.
type InvokeFunc func(ctx context.Context, args Args) (any, error)

// Func adapts an ordinary function to the Callable interface.
type Func struct {
	meta Meta
	fn   InvokeFunc
}

// NewFunc creates a Callable from a function and its metadata.
func NewFunc(meta Meta, fn InvokeFunc) *Func {
	return &Func{meta: meta, fn: fn}
}

// Meta returns the metadata bound at construction.
func (f *Func) Meta() Meta {
	return f.meta
}

// Invoke calls the underlying function.
func (f *Func) Invoke(ctx context.Context, args Args) (any, error) {
	if f.fn == nil {
		return nil, ErrNilCallable
	}
	return f.fn(ctx, args)
}

// Ensure Func implements Callable
var _ Callable = (*Func)(nil)
