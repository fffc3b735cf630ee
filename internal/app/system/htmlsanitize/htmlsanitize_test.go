package htmlsanitize_test

import (
	"testing"

	"github.com/dalemusser/opshub/internal/app/system/htmlsanitize"
)

func TestText(t *testing.T) {
	cases := []struct{ in, want string }{
		{"plain text", "plain text"},
		{"<b>bold</b> text", "bold text"},
		{"<script>alert(1)</script>leak", "leak"},
		{"  padded  ", "padded"},
		{"", ""},
	}
	for _, c := range cases {
		if got := htmlsanitize.Text(c.in); got != c.want {
			t.Errorf("Text(%q): got %q, want %q", c.in, got, c.want)
		}
	}
}
