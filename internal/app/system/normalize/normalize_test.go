package normalize

import "testing"

func TestStringFuncs(t *testing.T) {
	cases := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"email/plain", Email, "ana@example.com", "ana@example.com"},
		{"email/keeps case", Email, "Ana@Example.COM", "Ana@Example.COM"},
		{"email/trims", Email, "\t ana@example.com \n", "ana@example.com"},
		{"email/blank", Email, "   ", ""},
		{"name/collapses", Name, " Ana \t  Maria\nSilva ", "Ana Maria Silva"},
		{"name/blank", Name, "\n", ""},
		{"text/keeps inner space", Text, "  12  Main   St ", "12  Main   St"},
		{"local/simple", LocalPart, "ana@example.com", "ana"},
		{"local/no at", LocalPart, "ana", "ana"},
		{"local/leading at", LocalPart, "@example.com", ""},
		{"local/first at wins", LocalPart, "a@b@c", "a"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.fn(c.in); got != c.want {
				t.Fatalf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestStringPtr(t *testing.T) {
	if got := StringPtr(nil, Name); got != nil {
		t.Fatalf("nil input produced %q", *got)
	}

	orig := "  Ana   Maria "
	got := StringPtr(&orig, Name)
	if got == nil || *got != "Ana Maria" {
		t.Fatalf("StringPtr = %v", got)
	}
	if got == &orig {
		t.Fatal("expected a fresh pointer")
	}
	if orig != "  Ana   Maria " {
		t.Fatalf("input mutated to %q", orig)
	}
}
