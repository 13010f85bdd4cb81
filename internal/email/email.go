package email

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/katryana/airport-api/config"
	"github.com/katryana/airport-api/internal/kafka"
	"github.com/katryana/airport-api/internal/logger"
)

// Sender delivers order confirmations over SMTP. Without an SMTP host it
// degrades to logging the would-be message, which is enough for local runs.
type Sender struct {
	cfg config.SMTPConfig
	log *logger.Logger
}

func NewSender(cfg config.SMTPConfig, log *logger.Logger) *Sender {
	return &Sender{cfg: cfg, log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.OrderEvent) error {
	subject := fmt.Sprintf("Your order #%d", event.OrderID)
	body := renderBody(event)

	if s.cfg.Host == "" {
		s.log.Info("EMAIL", "smtp not configured, skipping delivery to %s: %s", event.UserEmail, subject)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.cfg.From)
	msg.SetHeader("To", event.UserEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email to %s: %w", event.UserEmail, err)
	}
	return nil
}

func renderBody(event kafka.OrderEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order #%d created at %s.\n\nTickets:\n", event.OrderID, event.CreatedAt.Format("02/01/2006 15:04"))
	for _, t := range event.Tickets {
		fmt.Fprintf(&b, "- flight %d, row %d, seat %d\n", t.FlightID, t.Row, t.Seat)
	}
	return b.String()
}
