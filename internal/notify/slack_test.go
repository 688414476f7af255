package notify

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/minefleet/minefleet/internal/models"
	"github.com/slack-go/slack"
)

func TestSlack_Disabled(t *testing.T) {
	var nilNotifier *Slack
	if nilNotifier.Enabled() {
		t.Error("nil notifier reports enabled")
	}

	empty := NewSlack("", "")
	if empty.Enabled() {
		t.Error("notifier without webhook reports enabled")
	}

	// A disabled notifier never posts.
	empty.post = func(string, *slack.WebhookMessage) error {
		t.Fatal("post called on disabled notifier")
		return nil
	}
	driver := &models.Driver{ID: 1, FullName: "John Doe"}
	check := &models.MedicalCheck{ShiftID: 2, CheckTime: time.Now()}
	if err := empty.UnfitDriver(driver, check); err != nil {
		t.Errorf("disabled UnfitDriver() = %v, want nil", err)
	}
}

func TestSlack_UnfitDriver(t *testing.T) {
	n := NewSlack("https://hooks.slack.com/services/T00/B00/xyz", "#fleet-alerts")

	var gotURL string
	var gotMsg *slack.WebhookMessage
	n.post = func(url string, msg *slack.WebhookMessage) error {
		gotURL = url
		gotMsg = msg
		return nil
	}

	driver := &models.Driver{ID: 7, FullName: "John Doe"}
	check := &models.MedicalCheck{
		ShiftID:   3,
		CheckTime: time.Date(2026, 3, 1, 7, 30, 0, 0, time.UTC),
		Result:    "unfit",
		Notes:     "elevated heart rate",
	}
	if err := n.UnfitDriver(driver, check); err != nil {
		t.Fatalf("UnfitDriver() error: %v", err)
	}

	if gotURL != "https://hooks.slack.com/services/T00/B00/xyz" {
		t.Errorf("webhook url = %q", gotURL)
	}
	if gotMsg.Channel != "#fleet-alerts" {
		t.Errorf("channel = %q", gotMsg.Channel)
	}
	for _, want := range []string{"John Doe", "shift 3", "elevated heart rate"} {
		if !strings.Contains(gotMsg.Text, want) {
			t.Errorf("message %q missing %q", gotMsg.Text, want)
		}
	}
}

func TestSlack_PostFailure(t *testing.T) {
	n := NewSlack("https://hooks.slack.com/services/T00/B00/xyz", "")
	n.post = func(string, *slack.WebhookMessage) error {
		return errors.New("rate limited")
	}

	driver := &models.Driver{ID: 1, FullName: "John Doe"}
	check := &models.MedicalCheck{ShiftID: 1, CheckTime: time.Now()}
	err := n.UnfitDriver(driver, check)
	if err == nil {
		t.Fatal("UnfitDriver() = nil, want error")
	}
	if !strings.Contains(err.Error(), "notify:") {
		t.Errorf("error = %q, want notify: prefix", err.Error())
	}
}
