package fieldtype

import (
	"errors"
	"testing"
)

func TestResolve_ShortTokens(t *testing.T) {
	resolver := NewResolver(nil)

	cases := map[string]ID{
		"base":       Base,
		"birthday":   Birthday,
		"button":     Button,
		"checkbox":   Checkbox,
		"choice":     Choice,
		"collection": Collection,
		"country":    Country,
		"currency":   Currency,
		"date":       Date,
		"datetime":   DateTime,
		"email":      Email,
		"file":       File,
		"form":       Form,
		"hidden":     Hidden,
		"integer":    Integer,
		"language":   Language,
		"locale":     Locale,
		"money":      Money,
		"number":     Number,
		"password":   Password,
		"percent":    Percent,
		"radio":      Radio,
		"range":      Range,
		"repeated":   Repeated,
		"reset":      Reset,
		"search":     Search,
		"submit":     Submit,
		"text":       Text,
		"textarea":   Textarea,
		"time":       Time,
		"timezone":   Timezone,
		"url":        URL,
	}

	if len(cases) != len(Tokens()) {
		t.Fatalf("expected %d tokens, table has %d", len(cases), len(Tokens()))
	}

	for token, want := range cases {
		token, want := token, want
		t.Run(token, func(t *testing.T) {
			t.Parallel()
			got, err := resolver.Resolve(token)
			if err != nil {
				t.Fatalf("resolve %q: %v", token, err)
			}
			if got != want {
				t.Fatalf("resolve %q: want %q, got %q", token, want, got)
			}
		})
	}
}

func TestResolve_PassesThroughResolvableIdentifiers(t *testing.T) {
	resolver := NewResolver(NewRegistry("app.ColorPickerType"))

	got, err := resolver.Resolve("app.ColorPickerType")
	if err != nil {
		t.Fatalf("resolve custom: %v", err)
	}
	if got != "app.ColorPickerType" {
		t.Fatalf("expected custom identifier unchanged, got %q", got)
	}

	got, err = resolver.Resolve(string(DateTime))
	if err != nil {
		t.Fatalf("resolve core identifier: %v", err)
	}
	if got != DateTime {
		t.Fatalf("expected core identifier unchanged, got %q", got)
	}
}

func TestResolve_UnknownToken(t *testing.T) {
	resolver := NewResolver(NewRegistry())

	for _, token := range []string{"", "Text", "colour", "app.Missing"} {
		_, err := resolver.Resolve(token)
		var unknown *UnknownTypeError
		if !errors.As(err, &unknown) {
			t.Fatalf("resolve %q: expected UnknownTypeError, got %v", token, err)
		}
		if unknown.Token != token {
			t.Fatalf("resolve %q: error carries token %q", token, unknown.Token)
		}
	}
}

func TestUnknownTypeError_Message(t *testing.T) {
	err := &UnknownTypeError{Token: "colour"}
	if err.Error() != `unknown type "colour"` {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestTable_ReturnsCopy(t *testing.T) {
	copied := Table()
	copied["text"] = "tampered"

	if id, _ := Lookup("text"); id != Text {
		t.Fatalf("table mutated through copy: %q", id)
	}
}

func TestRegistry_RegisterAndList(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("  "); err == nil {
		t.Fatalf("expected blank identifier to be rejected")
	}
	if err := reg.Register("app.B"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("app.A"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_ = reg.Register("app.A")

	list := reg.List()
	if len(list) != 2 || list[0] != "app.A" || list[1] != "app.B" {
		t.Fatalf("unexpected list %v", list)
	}
	if !reg.Has(Text) {
		t.Fatalf("core identifiers must always resolve")
	}
	if reg.Has("app.C") {
		t.Fatalf("unregistered identifier resolved")
	}
}
