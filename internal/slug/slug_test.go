package slug

import (
	"strings"
	"testing"
)

func TestValid(t *testing.T) {
	good := []string{"pages", "home-page", "a1", "2024-news"}
	bad := []string{"", "Pages", "home page", "-home", "home-", "home--page", "home_page", strings.Repeat("a", MaxLen+1)}

	for _, s := range good {
		if !Valid(s) {
			t.Errorf("Valid(%q) = false", s)
		}
	}
	for _, s := range bad {
		if Valid(s) {
			t.Errorf("Valid(%q) = true", s)
		}
	}
}
