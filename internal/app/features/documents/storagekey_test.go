package documents

import (
	"strings"
	"testing"
	"time"
)

func TestStorageKey_GroupsByCategoryAndMonth(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

	key := storageKey("Safety Permits", "site plan.pdf", now)
	if !strings.HasPrefix(key, "documents/safety_permits/2026-08/") {
		t.Errorf("key prefix: got %q", key)
	}
	if !strings.HasSuffix(key, "_site_plan.pdf") {
		t.Errorf("key filename: got %q", key)
	}

	// Keys embed a random component, so two uploads of the same file
	// never collide.
	if other := storageKey("Safety Permits", "site plan.pdf", now); other == key {
		t.Error("expected distinct keys for repeated uploads")
	}
}

func TestStorageKey_UncategorizedLandsUnderGeneral(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	key := storageKey("", "notes.txt", now)
	if !strings.HasPrefix(key, "documents/general/") {
		t.Errorf("key: got %q", key)
	}
}

func TestSafeFileName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"report.pdf", "report.pdf"},
		{"../../etc/passwd", "passwd"},
		{"weird name!.txt", "weird_name_.txt"},
		{"", "file"},
		{"...", "file"},
	}
	for _, c := range cases {
		if got := safeFileName(c.in); got != c.want {
			t.Errorf("safeFileName(%q): got %q, want %q", c.in, got, c.want)
		}
	}

	long := strings.Repeat("a", 200) + ".pdf"
	got := safeFileName(long)
	if len(got) > maxKeyNameLen {
		t.Errorf("long name not truncated: %d bytes", len(got))
	}
	if !strings.HasSuffix(got, ".pdf") {
		t.Errorf("truncation dropped extension: %q", got)
	}
}
