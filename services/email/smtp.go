package emailsvc

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/ewanblake/aihub/core"
)

// smtpService submits messages to a mail-submission endpoint over a STARTTLS
// session, one session per message.
type smtpService struct {
	addr    string // host:port
	host    string // for the TLS handshake and AUTH
	auth    smtp.Auth
	timeout time.Duration
	logger  core.Logger
}

var _ core.EmailService = (*smtpService)(nil)

func NewSMTPService(conf *core.Config, logger core.Logger) *smtpService {
	return &smtpService{
		addr:    conf.Mail.Addr(),
		host:    conf.Mail.Host,
		auth:    smtp.PlainAuth("", conf.Mail.Username, conf.Mail.Password, conf.Mail.Host),
		timeout: conf.Mail.Timeout,
		logger:  logger,
	}
}

func (svc smtpService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		msg := msg
		go func() {
			if err := svc.SendMessage(msg); err != nil {
				svc.logger.Error(fmt.Sprintf("sending email: %v", err), err)
			}
		}()
	}
}

// SendMessage opens a session, upgrades it, authenticates, sends one message
// and releases the session on every exit path. The whole round trip is bounded
// by the configured timeout; a timeout surfaces as a send failure.
func (svc smtpService) SendMessage(msg *core.EmailMessage) error {
	if !msg.HasRecipients() || !msg.HasContent() {
		return nil
	}

	conn, err := net.DialTimeout("tcp", svc.addr, svc.timeout)
	if err != nil {
		return errors.Wrap(err, "connecting to "+svc.addr)
	}
	_ = conn.SetDeadline(time.Now().Add(svc.timeout))

	client, err := smtp.NewClient(conn, svc.host)
	if err != nil {
		_ = conn.Close()
		return errors.Wrap(err, "opening session")
	}
	defer func() { _ = client.Close() }()

	if err = client.StartTLS(&tls.Config{ServerName: svc.host}); err != nil {
		return errors.Wrap(err, "upgrading to TLS")
	}
	if err = client.Auth(svc.auth); err != nil {
		return errors.Wrap(err, "authenticating")
	}

	if err = client.Mail(msg.From.Address); err != nil {
		return errors.Wrap(err, "setting sender")
	}
	for _, to := range msg.To {
		if err = client.Rcpt(to.Address); err != nil {
			return errors.Wrap(err, "setting recipient "+to.Address)
		}
	}

	w, err := client.Data()
	if err != nil {
		return errors.Wrap(err, "opening data stream")
	}
	if _, err = fmt.Fprint(w, svc.encode(msg)); err != nil {
		return errors.Wrap(err, "writing message")
	}
	if err = w.Close(); err != nil {
		return errors.Wrap(err, "closing data stream")
	}

	return client.Quit()
}

func (svc smtpService) encode(msg *core.EmailMessage) string {
	body := new(strings.Builder)
	_, _ = fmt.Fprintf(body, "From: %s\r\n", msg.From.String())
	_, _ = fmt.Fprintf(body, "To: %s\r\n", joinAddresses(msg.To))
	// subjects go out verbatim; callers own the full subject line
	_, _ = fmt.Fprintf(body, "Subject: %s\r\n", msg.Subject)
	_, _ = fmt.Fprintf(body, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	_, _ = fmt.Fprint(body, "MIME-Version: 1.0\r\n")
	_, _ = fmt.Fprint(body, "Content-Type: text/plain; charset=utf-8\r\n")
	_, _ = fmt.Fprint(body, "\r\n")
	_, _ = fmt.Fprintf(body, "%s\r\n", msg.Body)
	return body.String()
}
