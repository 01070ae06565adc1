package core

import "net/mail"

type (
	// EmailMessage is a plain-text outbound email.
	EmailMessage struct {
		From    mail.Address
		To      []mail.Address
		Subject string
		Body    string
	}

	// EmailService is any service that can send emails.
	EmailService interface {
		// SendMessages sends messages concurrently; failures are logged,
		// not returned.
		SendMessages(messages ...*EmailMessage)
		// SendMessage sends a single message synchronously and reports
		// its outcome. The underlying session is released on every exit
		// path.
		SendMessage(message *EmailMessage) error
	}
)

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool    { return m.Body != "" }
