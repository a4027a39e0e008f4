// Файл: pkg/mailer/mailer.go
package mailer

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"workshop-system/pkg/config"
)

// ServiceInterface - отправка почтовых уведомлений. Реализация обязана быть
// best-effort: вызывающий код никогда не откатывает операцию из-за ошибки почты.
type ServiceInterface interface {
	SendHTML(ctx context.Context, to []string, subject, htmlBody string) error
}

type Service struct {
	cfg config.SMTPConfig
}

func NewService(cfg config.SMTPConfig) ServiceInterface {
	return &Service{cfg: cfg}
}

// SendHTML отправляет HTML-письмо через SMTP (Office 365, STARTTLS на 587 порту).
func (s *Service) SendHTML(ctx context.Context, to []string, subject, htmlBody string) error {
	if len(to) == 0 {
		return nil
	}
	if s.cfg.Username == "" || s.cfg.Password == "" {
		return fmt.Errorf("SMTP не сконфигурирован")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}

	headers := []string{
		fmt.Sprintf("From: %s <%s>", mime.QEncoding.Encode("utf-8", s.cfg.FromName), from),
		fmt.Sprintf("To: %s", strings.Join(to, ", ")),
		fmt.Sprintf("Subject: %s", mime.QEncoding.Encode("utf-8", subject)),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="utf-8"`,
	}
	msg := strings.Join(headers, "\r\n") + "\r\n\r\n" + htmlBody

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	return smtp.SendMail(addr, auth, from, to, []byte(msg))
}
