package services

import (
	"financeTracker/config"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

// EmailService предоставляет методы для отправки email
type EmailService struct {
	dialer  *gomail.Dialer
	from    string
	enabled bool
}

// NewEmailService создает новый экземпляр EmailService
func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
	)

	return &EmailService{
		dialer:  dialer,
		from:    cfg.SMTP.From,
		enabled: cfg.SMTP.Enabled,
	}
}

// Enabled сообщает, настроена ли отправка email
func (s *EmailService) Enabled() bool {
	return s.enabled
}

// SendEmail отправляет email
func (s *EmailService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("ошибка отправки email: %v", err)
	}

	return nil
}

// SendWelcomeNotification отправляет приветственное письмо после регистрации
func (s *EmailService) SendWelcomeNotification(to string) error {
	subject := "Добро пожаловать в финансовый трекер"
	body := fmt.Sprintf(`
		<h2>Регистрация завершена</h2>
		<p>Аккаунт: %s</p>
		<p>Войдите в приложение, чтобы начать вести учет транзакций.</p>
		<p>Дата: %s</p>
	`, to, time.Now().Format("02.01.2006 15:04:05"))

	return s.SendEmail(to, subject, body)
}
