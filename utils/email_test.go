package utils

import (
	"strings"
	"testing"

	"github.com/pedrosilva76986974-afk/Back-birthday-fund/config"
)

func TestMailerSkipsWhenNotConfigured(t *testing.T) {
	m := NewMailer(&config.Config{})
	if m.Configured() {
		t.Fatal("empty config should not be configured")
	}
	if err := m.Send("a@example.com", "hi", "body"); err != nil {
		t.Fatalf("unconfigured send should be a no-op, got %v", err)
	}
}

func TestMailerMessageHeaders(t *testing.T) {
	m := NewMailer(&config.Config{SMTPUsername: "bot@example.com", SMTPFromName: "Birthday Fund"})
	msg := string(m.message("guest@example.com", "Invite", "see you"))

	if !strings.Contains(msg, "From: Birthday Fund <bot@example.com>\r\n") {
		t.Fatalf("sender should fall back to username: %q", msg)
	}
	if !strings.HasSuffix(msg, "\r\n\r\nsee you") {
		t.Fatalf("body should follow a blank line: %q", msg)
	}
}
