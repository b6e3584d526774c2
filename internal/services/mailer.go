package services

import "paisa/internal/logger"

// Mailer delivers one-time verification codes. The delivery provider is
// deliberately opaque: production deployments plug in a real provider,
// development and tests use the logging implementation.
type Mailer interface {
	SendOTP(email, code string) error
}

// logMailer writes the code to the application log instead of sending mail.
type logMailer struct{}

// NewLogMailer returns a Mailer that logs codes instead of delivering them.
func NewLogMailer() Mailer {
	return &logMailer{}
}

func (m *logMailer) SendOTP(email, code string) error {
	logger.Get().Infow("otp issued", "email", email, "code", code)
	return nil
}
