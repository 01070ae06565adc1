package suggestion

import (
	"fmt"
	"net/mail"

	"github.com/ewanblake/aihub/core"
)

// Service dispatches suggestion submissions over an injected mail transport.
// Delivery is at-most-once with synchronous user-visible feedback; there is
// no queuing and no automatic retry.
type Service struct {
	mailer core.EmailService
	from   mail.Address
	logger core.Logger
}

func NewService(conf *core.Config, mailer core.EmailService, logger core.Logger) *Service {
	return &Service{
		mailer: mailer,
		from:   conf.DefaultFromEmail(),
		logger: logger,
	}
}

// Submit builds the self-addressed message and sends it through the mail
// transport. Any failure at any step is caught here and converted to the
// user-facing status string; no structured error crosses this boundary.
func (svc *Service) Submit(ns NewSuggestion) Submission {
	msg := &core.EmailMessage{
		From:    svc.from,
		To:      []mail.Address{svc.from},
		Subject: "New Website Suggestion: " + ns.Subject,
		Body:    ns.body(),
	}

	if err := svc.mailer.SendMessage(msg); err != nil {
		svc.logger.Error(fmt.Sprintf("dispatching suggestion: %v", err), err)
		return Submission{Status: FailureStatus(err.Error())}
	}
	return Submission{Status: StatusSuccess, Sent: true}
}
