package notification

import (
	"context"
	"fmt"
	"net/smtp"

	"folio/config"

	"go.uber.org/zap"
)

// NotificationService sends booking-related messages to the visitor.
type NotificationService interface {
	SendBookingConfirmation(ctx context.Context, toEmail, toName, date, slot, purpose string) error
	SendCallReminder(ctx context.Context, toEmail, toName, date, slot string) error
}

// SMTPNotificationService is the production implementation over plain SMTP.
type SMTPNotificationService struct {
	Host   string
	Port   int
	Sender string
	Auth   smtp.Auth
	Logger *zap.Logger
}

// NewSMTPNotificationService builds the mailer from app config.
func NewSMTPNotificationService(logger *zap.Logger) *SMTPNotificationService {
	cfg := config.AppConfig
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}
	return &SMTPNotificationService{
		Host:   cfg.SMTPHost,
		Port:   cfg.SMTPPort,
		Sender: cfg.SMTPSender,
		Auth:   auth,
		Logger: logger,
	}
}

// SendBookingConfirmation emails the visitor the echo of their booked call.
func (s *SMTPNotificationService) SendBookingConfirmation(ctx context.Context, toEmail, toName, date, slot, purpose string) error {
	subject := "Your call is scheduled"
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nYour call has been scheduled for %s at %s.\r\n\r\nPurpose: %s\r\n\r\nTalk soon!\r\n",
		toName, date, slot, purpose,
	)
	msg := []byte(fmt.Sprintf("To: %s\r\nFrom: %s\r\nSubject: %s\r\n\r\n%s", toEmail, s.Sender, subject, body))

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	if err := smtp.SendMail(addr, s.Auth, s.Sender, []string{toEmail}, msg); err != nil {
		s.Logger.Error("notification: confirmation email failed",
			zap.String("to", toEmail), zap.Error(err))
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	s.Logger.Info("notification: confirmation email sent", zap.String("to", toEmail))
	return nil
}

// SendCallReminder emails the visitor the day before the call.
func (s *SMTPNotificationService) SendCallReminder(ctx context.Context, toEmail, toName, date, slot string) error {
	subject := "Reminder: your call is tomorrow"
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nA quick reminder that your call is scheduled for %s at %s.\r\n\r\nTalk soon!\r\n",
		toName, date, slot,
	)
	msg := []byte(fmt.Sprintf("To: %s\r\nFrom: %s\r\nSubject: %s\r\n\r\n%s", toEmail, s.Sender, subject, body))

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	if err := smtp.SendMail(addr, s.Auth, s.Sender, []string{toEmail}, msg); err != nil {
		s.Logger.Error("notification: reminder email failed",
			zap.String("to", toEmail), zap.Error(err))
		return fmt.Errorf("failed to send reminder email: %w", err)
	}
	s.Logger.Info("notification: reminder email sent", zap.String("to", toEmail))
	return nil
}
