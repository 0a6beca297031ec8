package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"skynet/internal/application/request/usecases"
	"skynet/internal/shared/config"
)

// SMTPNotifier sends the submitter a confirmation carrying the ticket code.
type SMTPNotifier struct {
	cfg    *config.EmailConfig
	dialer *gomail.Dialer
}

func NewSMTPNotifier(cfg *config.EmailConfig) *SMTPNotifier {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)

	return &SMTPNotifier{
		cfg:    cfg,
		dialer: dialer,
	}
}

var _ usecases.Notifier = (*SMTPNotifier)(nil)

func (s *SMTPNotifier) SendRequestConfirmation(ctx context.Context, to, name, ticket string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subject := fmt.Sprintf("Support request received: %s", ticket)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>We received your request</h2>
			<p>Hello %s,</p>
			<p>Your support request has been registered under ticket:</p>
			<p><strong>%s</strong></p>
			<p>Keep this code to check the status of your request.</p>
		</body>
		</html>
	`, name, ticket)

	plainBody := fmt.Sprintf(`
Hello %s,

Your support request has been registered under ticket:

%s

Keep this code to check the status of your request.
	`, name, ticket)

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.FromAddress, s.cfg.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
