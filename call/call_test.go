package call

import (
	"context"
	"errors"
	"testing"
)

func TestMeta_ID(t *testing.T) {
	tests := []struct {
		name string
		meta Meta
		want string
	}{
		{"name only", Meta{Name: "greet"}, "greet"},
		{"with namespace", Meta{Namespace: "users", Name: "create"}, "users.create"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.meta.ID(); got != tt.want {
				t.Errorf("ID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArgs_String(t *testing.T) {
	tests := []struct {
		name string
		args Args
		want string
	}{
		{"empty", Args{}, "()"},
		{"positional", Positional(1, 2), "(1, 2)"},
		{"named sorted", Args{}.With("b", 2).With("a", 1), "(a=1, b=2)"},
		{"mixed", Positional("x").With("name", "John"), "(x, name=John)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.args.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArgs_WithDoesNotMutate(t *testing.T) {
	base := Positional(1).With("a", 1)
	derived := base.With("b", 2)

	if len(base.Named) != 1 {
		t.Errorf("base Named len = %d, want 1", len(base.Named))
	}
	if len(derived.Named) != 2 {
		t.Errorf("derived Named len = %d, want 2", len(derived.Named))
	}
}

func TestArgs_Len(t *testing.T) {
	args := Positional(1, 2).With("a", 3)
	if got := args.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
}

func TestFunc_Invoke(t *testing.T) {
	fn := NewFunc(Meta{Name: "double"}, func(ctx context.Context, args Args) (any, error) {
		return args.Positional[0].(int) * 2, nil
	})

	result, err := fn.Invoke(context.Background(), Positional(21))
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if result != 42 {
		t.Errorf("Invoke() = %v, want 42", result)
	}
	if fn.Meta().Name != "double" {
		t.Errorf("Meta().Name = %q, want %q", fn.Meta().Name, "double")
	}
}

func TestFunc_NilFn(t *testing.T) {
	fn := NewFunc(Meta{Name: "empty"}, nil)

	_, err := fn.Invoke(context.Background(), Args{})
	if !errors.Is(err, ErrNilCallable) {
		t.Errorf("Invoke() error = %v, want ErrNilCallable", err)
	}
}
