package strings

import (
	"testing"

	kit "xferlock/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	in := []string{"https://app.example"}
	if got := IfEmpty(in, []string{"*"}); len(got) != 1 || got[0] != "https://app.example" {
		t.Fatalf("IfEmpty returned wrong slice: %#v", got)
	}

	var empty []string
	if got := IfEmpty(empty, []string{"*"}); len(got) != 1 || got[0] != "*" {
		t.Fatalf("IfEmpty did not return default: %#v", got)
	}
}

func TestMustString(t *testing.T) {
	if got := MustString("transfers", "name"); got != "transfers" {
		t.Fatalf("want transfers got %q", got)
	}
	kit.MustPanic(t, func() { _ = MustString("   ", "name") })
}

func TestMustPrefix(t *testing.T) {
	cases := map[string]string{
		"/transfers/":   "/transfers",
		" meta  ":       "/meta",
		"//transfers//": "/transfers",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("in %q want %q got %q", in, want, got)
		}
	}
	for _, in := range []string{"/", "", "  "} {
		kit.MustPanic(t, func() { _ = MustPrefix(in) })
	}
}
