package message

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type origin struct{ Browser, OS, Country string }

type contact struct {
	FirstName, LastName, Email, Phone, Message string
	Origin                                     *origin
}

func TestRenderContactEmail(t *testing.T) {
	tpls, err := LoadTemplates()
	if err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}

	body, err := tpls.Render("contact-us-email", contact{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Message:   "<script>alert(1)</script>",
		Origin:    &origin{Browser: "Firefox", OS: "Linux", Country: "GB"},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{"Ada Lovelace", "ada@example.com", "&lt;script&gt;", "Firefox on Linux, GB"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(body, "Phone") {
		t.Error("empty phone row rendered")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	tpls, err := LoadTemplates()
	if err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}
	if _, err := tpls.Render("welcome", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestBuildRejectsBadAddress(t *testing.T) {
	if _, err := build(Email{From: "not an address", To: []string{"a@example.com"}}); err == nil {
		t.Fatal("expected from error")
	}
	if _, err := build(Email{From: "info@example.com", To: []string{"a@example.com"}, Subject: "hi", Body: "x", HTML: true}); err != nil {
		t.Fatalf("build: %v", err)
	}
}

func TestUnconfiguredSender(t *testing.T) {
	var s Sender = Unconfigured{}
	if err := s.Send(context.Background(), Email{}); !errors.Is(err, ErrNoRelay) {
		t.Fatalf("err = %v", err)
	}
}
