package i18n

import "testing"

func TestCatalog_ForAndFallback(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	es := c.For("es-MX")
	if es.Locale() != "es" {
		t.Fatalf("Locale = %q, want es", es.Locale())
	}
	if got := es.T(MsgDuplicate); got != Spanish[MsgDuplicate] {
		t.Fatalf("es duplicate = %q", got)
	}
	// missing in Spanish, present in English
	if got := es.T(NoticeDotBlogSubdomain, "x.blog"); got != "x.blog is a .blog subdomain and cannot be transferred." {
		t.Fatalf("english fallback = %q", got)
	}
	// missing everywhere
	if got := es.T("no.such.key"); got != "no.such.key" {
		t.Fatalf("key passthrough = %q", got)
	}

	if got := c.For("fr").Locale(); got != DefaultLocale {
		t.Fatalf("unsupported locale should fall back to en, got %q", got)
	}
}

func TestCatalog_Params(t *testing.T) {
	tr := Default().For("en")
	got := tr.T(NoticeRegisteredSameSiteNamed, "example.com", "My Blog")
	if got != "example.com is already registered on My Blog." {
		t.Fatalf("params = %q", got)
	}
}

func TestCatalog_Match(t *testing.T) {
	c := Default()
	cases := []struct {
		header string
		want   string
	}{
		{"", "en"},
		{"es-ES,es;q=0.9,en;q=0.8", "es"},
		{"en-GB,en;q=0.9", "en"},
		{"fr-FR,fr;q=0.9", "en"},
		{"de;q=0.5, es;q=0.9", "es"},
		{"!!garbage", "en"},
	}
	for _, tc := range cases {
		if got := c.Match(tc.header).Locale(); got != tc.want {
			t.Fatalf("Match(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}

func TestNewWith_RequiresEnglish(t *testing.T) {
	if _, err := NewWith(map[string]map[string]string{"es": Spanish}); err == nil {
		t.Fatalf("expected error without en table")
	}
	if _, err := NewWith(map[string]map[string]string{"en": English, "xx": {}}); err == nil {
		t.Fatalf("expected error for unsupported locale")
	}
}

func TestIdentity(t *testing.T) {
	if Identity.T(MsgChecking, "ignored") != MsgChecking {
		t.Fatalf("Identity should echo the key")
	}
}
