package raw

import (
	"testing"
	"time"
)

func TestConfGet(t *testing.T) {
	t.Setenv("XFER_NAME", " xferlock ")
	t.Setenv("LOG_LEVEL", " info ")

	root := New()
	logs := root.Prefix("LOG_")

	tests := []struct {
		name string
		conf Conf
		key  string
		def  string
		want string
	}{
		{name: "root hit", conf: root, key: "XFER_NAME", def: "x", want: "xferlock"},
		{name: "prefixed hit", conf: logs, key: "LEVEL", def: "x", want: "info"},
		{name: "missing returns default", conf: logs, key: "MISSING", def: "defv", want: "defv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.conf.Get(tt.key, tt.def); got != tt.want {
				t.Fatalf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestConfGetBool(t *testing.T) {
	c := New().Prefix("B_")
	for _, v := range []string{"1", "true", "YES", " on "} {
		t.Setenv("B_FLAG", v)
		if !c.GetBool("FLAG", false) {
			t.Fatalf("GetBool(%q) = false, want true", v)
		}
	}
	t.Setenv("B_FLAG", "nope")
	if c.GetBool("FLAG", true) {
		t.Fatalf("GetBool(nope) = true, want false")
	}
	if !c.GetBool("UNSET", true) {
		t.Fatalf("GetBool(unset) should return default")
	}
}

func TestConfGetInt(t *testing.T) {
	c := New().Prefix("I_")
	t.Setenv("I_N", " 42 ")
	if got := c.GetInt("N", 1); got != 42 {
		t.Fatalf("GetInt = %d, want 42", got)
	}
	t.Setenv("I_BAD", "-3")
	if got := c.GetInt("BAD", 7); got != 7 {
		t.Fatalf("GetInt(bad) = %d, want 7", got)
	}
}

func TestConfGetDuration(t *testing.T) {
	c := New().Prefix("D_")
	t.Setenv("D_WAIT", "250ms")
	if got := c.GetDuration("WAIT", time.Second); got != 250*time.Millisecond {
		t.Fatalf("GetDuration = %v", got)
	}
	t.Setenv("D_BAD", "soon")
	if got := c.GetDuration("BAD", time.Second); got != time.Second {
		t.Fatalf("GetDuration(bad) = %v", got)
	}
}
