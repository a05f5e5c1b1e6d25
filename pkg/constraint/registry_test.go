package constraint

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistry_BuiltinsAndAliases(t *testing.T) {
	reg := NewRegistry()

	for _, kind := range []string{KindNotBlank, KindLength, KindTimezone, `Assert\NotBlank`, `Assert\Regex`} {
		if !reg.CanResolve(kind) {
			t.Fatalf("expected %q to resolve", kind)
		}
	}
	if reg.CanResolve("NotAConstraint") {
		t.Fatalf("unknown kind should not resolve")
	}

	for _, kind := range []string{`Assert\NotBlank`, `Symfony\Component\Validator\Constraints\NotBlank`} {
		c, err := reg.Construct(kind, nil)
		if err != nil {
			t.Fatalf("construct %s: %v", kind, err)
		}
		if c.Kind() != KindNotBlank {
			t.Fatalf("%s should build canonical kind, got %q", kind, c.Kind())
		}
	}
}

func TestRegistry_RegisterDuplicates(t *testing.T) {
	reg := NewEmptyRegistry()
	ctor := func(map[string]any) (Constraint, error) { return &NotNull{}, nil }

	if err := reg.Register("Custom", ctor); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("Custom", ctor); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := reg.Register(" ", ctor); err == nil {
		t.Fatalf("expected blank kind to fail")
	}
	if err := reg.Register("Nil", nil); err == nil {
		t.Fatalf("expected nil constructor to fail")
	}
	if diff := cmp.Diff([]string{"Custom"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_ConstructUnknown(t *testing.T) {
	reg := NewEmptyRegistry()
	_, err := reg.Construct("Missing", map[string]any{})

	var notFound *NotFoundError
	if !errors.As(err, &notFound) || notFound.Kind != "Missing" {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if err.Error() != `constraint class "Missing" not found` {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestRegistry_ConstructPassesParams(t *testing.T) {
	reg := NewEmptyRegistry()
	var seen map[string]any
	reg.MustRegister("Spy", func(params map[string]any) (Constraint, error) {
		seen = params
		return &NotNull{}, nil
	})

	if _, err := reg.Construct("Spy", map[string]any{"min": 3}); err != nil {
		t.Fatalf("construct: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"min": 3}, seen); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}

	if _, err := reg.Construct("Spy", nil); err != nil {
		t.Fatalf("construct nil params: %v", err)
	}
	if seen == nil {
		t.Fatalf("constructors must receive a non-nil params map")
	}
}

func TestRegistry_ConstructorErrorsAreWrapped(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Construct(KindLength, map[string]any{})
	if err == nil {
		t.Fatalf("expected Length without bounds to fail")
	}
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		t.Fatalf("parameter errors must not look like missing constraints")
	}
}
