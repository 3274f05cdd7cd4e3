package validate

import (
	"context"
	"fmt"

	"github.com/jonwraymond/callops/call"
)

// Param declares a single parameter of a callable.
type Param struct {
	// Name is the parameter name (required).
	Name string

	// Default is used when the argument is not supplied.
	// A nil Default means the parameter is required.
	Default any
}

// Config configures a Validator.
type Config struct {
	// Params is the ordered parameter declaration. Positional arguments
	// bind to params by position; named arguments bind by name.
	Params []Param

	// Fields maps parameter names to expected kinds. Parameters not
	// listed here are bound but not type-checked.
	Fields map[string]Kind
}

// Error reports an argument type mismatch.
type Error struct {
	// Param is the offending parameter name.
	Param string

	// Want is the expected kind.
	Want Kind

	// Got is the actual Go type of the supplied value.
	Got string
}

func (e *Error) Error() string {
	return fmt.Sprintf("validate: %s must be %s, got %s", e.Param, e.Want, e.Got)
}

// Validator checks invocation arguments against a parameter declaration
// before the inner callable runs.
type Validator struct {
	config Config
}

// New creates a new Validator.
func New(config Config) *Validator {
	return &Validator{config: config}
}

// Bind resolves the invocation's arguments against the declared
// parameters: positional arguments bind by position, named arguments by
// name, and defaults fill the rest. Errors surface for excess positional
// arguments, unknown or duplicate names, and missing required
// parameters.
func (v *Validator) Bind(args call.Args) (map[string]any, error) {
	params := v.config.Params

	if len(args.Positional) > len(params) {
		return nil, fmt.Errorf("validate: too many positional arguments: got %d, declared %d",
			len(args.Positional), len(params))
	}

	bound := make(map[string]any, len(params))
	for i, value := range args.Positional {
		bound[params[i].Name] = value
	}

	declared := make(map[string]bool, len(params))
	for _, p := range params {
		declared[p.Name] = true
	}

	for name, value := range args.Named {
		if !declared[name] {
			return nil, fmt.Errorf("validate: unknown argument %q", name)
		}
		if _, dup := bound[name]; dup {
			return nil, fmt.Errorf("validate: argument %q supplied twice", name)
		}
		bound[name] = value
	}

	// Apply defaults
	for _, p := range params {
		if _, ok := bound[p.Name]; ok {
			continue
		}
		if p.Default == nil {
			return nil, fmt.Errorf("validate: missing required argument %q", p.Name)
		}
		bound[p.Name] = p.Default
	}

	return bound, nil
}

// Check binds the arguments and verifies every configured field against
// its expected kind. The first mismatch is returned as an *Error.
func (v *Validator) Check(args call.Args) error {
	bound, err := v.Bind(args)
	if err != nil {
		return err
	}

	// Check fields in declaration order for deterministic reporting.
	for _, p := range v.config.Params {
		kind, ok := v.config.Fields[p.Name]
		if !ok {
			continue
		}
		value := bound[p.Name]
		if !kind.Matches(value) {
			return &Error{
				Param: p.Name,
				Want:  kind,
				Got:   fmt.Sprintf("%T", value),
			}
		}
	}

	return nil
}

// Wrap produces a Callable that validates arguments before invoking the
// inner callable. On validation failure the inner callable is not
// invoked. Arguments are forwarded unchanged.
func (v *Validator) Wrap(inner call.Callable) call.Callable {
	return &validated{validator: v, inner: inner}
}

type validated struct {
	validator *Validator
	inner     call.Callable
}

func (c *validated) Meta() call.Meta {
	return c.inner.Meta()
}

func (c *validated) Invoke(ctx context.Context, args call.Args) (any, error) {
	if err := c.validator.Check(args); err != nil {
		return nil, err
	}
	return c.inner.Invoke(ctx, args)
}
