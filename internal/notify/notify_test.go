package notify

import (
	"errors"
	"strings"
	"testing"

	"ime-indicator/internal/i18n"
)

type sent struct {
	title, message string
}

func newRecorder(enabled bool) (*Notifier, *[]sent) {
	var got []sent
	n := New(enabled)
	n.send = func(title, message, _ string) error {
		got = append(got, sent{title, message})
		return nil
	}
	return n, &got
}

func TestUpdateAvailable(t *testing.T) {
	i18n.SetLanguage(i18n.EN)
	n, got := newRecorder(true)

	n.UpdateAvailable("1.2.0")

	if len(*got) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(*got))
	}
	if !strings.HasPrefix((*got)[0].title, "IME Indicator: ") {
		t.Errorf("title = %q", (*got)[0].title)
	}
	if !strings.Contains((*got)[0].message, "1.2.0") {
		t.Errorf("message = %q, want version", (*got)[0].message)
	}
}

func TestDisabled(t *testing.T) {
	n, got := newRecorder(false)

	n.Error("boom")
	if len(*got) != 0 {
		t.Fatalf("sent %d notifications while disabled", len(*got))
	}

	n.SetEnabled(true)
	n.Error("boom")
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications after enabling, want 1", len(*got))
	}
}

func TestSendErrorIgnored(t *testing.T) {
	n := New(true)
	n.send = func(string, string, string) error {
		return errors.New("no notification daemon")
	}
	n.Error("boom")
}
