// Package notify mails the list of imported pages that declared a recipe
// the importer could not parse.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/dtnitsch/recipe-web-parser/models"
	"github.com/dtnitsch/recipe-web-parser/pkg/config"
	"github.com/jordan-wright/email"
)

const subjectPrefix = "[recipe-web-parser]"

// sendFunc matches (*email.Email).Send so tests can capture messages.
type sendFunc func(mail *email.Email, addr string, auth smtp.Auth) error

type Mailer struct {
	cfg    config.SMTP
	logger *slog.Logger
	send   sendFunc
}

func NewMailer(cfg config.SMTP, logger *slog.Logger) *Mailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mailer{
		cfg:    cfg,
		logger: logger,
		send: func(mail *email.Email, addr string, auth smtp.Auth) error {
			return mail.Send(addr, auth)
		},
	}
}

// Enabled reports whether a report would actually be sent.
func (m *Mailer) Enabled() bool {
	return m.cfg.Enabled && m.cfg.Server != "" && len(m.cfg.Recipients) > 0
}

// BuildReviewReport lists each recipe with its URL and, when known, the page excerpt.
func BuildReviewReport(from string, to []string, recipes []*models.Recipe, excerpts map[string]string) *email.Email {
	mail := email.NewEmail()
	mail.From = fmt.Sprintf("Recipe Importer <%s>", from)
	mail.To = to
	mail.Subject = fmt.Sprintf("%s %d recipe(s) need review", subjectPrefix, len(recipes))

	var body strings.Builder
	body.WriteString("The following pages declare a schema.org Recipe that could not be parsed.\n")
	body.WriteString("They were saved as links only.\n")
	for i, r := range recipes {
		title := r.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(&body, "\n%d. %s\n   %s\n", i+1, title, r.URL)
		if ex := excerpts[r.URL]; ex != "" {
			fmt.Fprintf(&body, "   %s\n", ex)
		}
	}
	mail.Text = []byte(body.String())
	return mail
}

// SendReviewReport mails the report. It does nothing when the mailer is
// disabled or there is nothing to review.
func (m *Mailer) SendReviewReport(ctx context.Context, recipes []*models.Recipe, excerpts map[string]string) error {
	if !m.Enabled() || len(recipes) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	mail := BuildReviewReport(m.cfg.EmailAddress, m.cfg.Recipients, recipes, excerpts)

	err := m.send(mail, m.cfg.Addr(), smtp.PlainAuth("", m.cfg.EmailAddress, m.cfg.Password, m.cfg.Server))
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = m.send(mail, m.cfg.Addr(), nil)
	}
	if err != nil {
		return fmt.Errorf("failed to send review report: %w", err)
	}

	m.logger.Info("Sent review report", "recipes", len(recipes), "recipients", len(m.cfg.Recipients))
	return nil
}
