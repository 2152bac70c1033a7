package mail

import (
	"context"
	"fmt"
	"log"
)

// Mailer dispatches outbound notifications. The backend only ever needs one
// kind: the password-reset message.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// LogMailer simulates delivery by printing the message to the server log.
// Real SMTP is deliberately out of scope.
type LogMailer struct {
	BaseURL string
}

func NewLogMailer(baseURL string) *LogMailer {
	return &LogMailer{BaseURL: baseURL}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	log.Printf("[mail] password reset sent to %s", email)
	log.Printf("[mail] reset token: %s", token)
	log.Printf("[mail] reset link: %s", fmt.Sprintf("%s/reset-password?token=%s", m.BaseURL, token))
	return nil
}
