package status_test

import (
	"testing"

	"github.com/dalemusser/opshub/internal/app/system/status"
)

func TestIsValid(t *testing.T) {
	for _, s := range []string{status.Active, status.Inactive} {
		if !status.IsValid(s) {
			t.Errorf("IsValid(%q) = false", s)
		}
	}
	for _, s := range []string{"", "Active", "disabled"} {
		if status.IsValid(s) {
			t.Errorf("IsValid(%q) = true", s)
		}
	}
}

func TestFromActiveRoundTrip(t *testing.T) {
	if got := status.FromActive(true); got != status.Active {
		t.Errorf("FromActive(true) = %q", got)
	}
	if got := status.FromActive(false); got != status.Inactive {
		t.Errorf("FromActive(false) = %q", got)
	}
	if !status.IsActive(status.Active) || status.IsActive(status.Inactive) {
		t.Error("IsActive mapping mismatch")
	}
}
