// Package notify pushes operational alerts to Slack. Alerts are
// best-effort: a failed post never fails the request that triggered it.
package notify

import (
	"fmt"

	"github.com/minefleet/minefleet/internal/models"
	"github.com/slack-go/slack"
)

// Slack posts alert messages to an incoming webhook. The zero value is a
// disabled notifier; every method is a no-op on it.
type Slack struct {
	webhookURL string
	channel    string

	// post is swappable in tests.
	post func(url string, msg *slack.WebhookMessage) error
}

// NewSlack builds a notifier for the given webhook. An empty URL yields
// a disabled notifier.
func NewSlack(webhookURL, channel string) *Slack {
	return &Slack{
		webhookURL: webhookURL,
		channel:    channel,
		post:       slack.PostWebhook,
	}
}

// Enabled reports whether alerts will actually be sent.
func (s *Slack) Enabled() bool {
	return s != nil && s.webhookURL != ""
}

// UnfitDriver alerts that a driver failed a medical check.
func (s *Slack) UnfitDriver(driver *models.Driver, check *models.MedicalCheck) error {
	if !s.Enabled() {
		return nil
	}

	text := fmt.Sprintf(":rotating_light: Driver *%s* (id %d) failed the medical check for shift %d at %s.",
		driver.FullName, driver.ID, check.ShiftID, check.CheckTime.Format("2006-01-02 15:04 MST"))
	if check.Notes != "" {
		text += "\n> " + check.Notes
	}

	msg := &slack.WebhookMessage{
		Channel:  s.channel,
		Username: "minefleet",
		Text:     text,
	}
	if err := s.post(s.webhookURL, msg); err != nil {
		return fmt.Errorf("notify: post unfit alert: %w", err)
	}
	return nil
}
