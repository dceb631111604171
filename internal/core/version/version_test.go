package version

import (
	"testing"

	kit "xferlock/internal/platform/testkit"
)

func TestInfo(t *testing.T) {
	kit.Swap(t, &version, "v1.2.3")
	kit.Swap(t, &commit, "abc123")

	got := Info()
	if got.Service != Service || got.Version != "v1.2.3" || got.Commit != "abc123" || got.GoVersion == "" {
		t.Fatalf("Info() = %+v", got)
	}
	if s := For("xferlock").String(); s != "xferlock v1.2.3 (abc123, unknown)" {
		t.Fatalf("String() = %q", s)
	}
}
