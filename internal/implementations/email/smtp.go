package email

import (
	"context"
	"errors"
	"net/textproto"
	"time"

	"github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// SMTP delivers every message over a fresh STARTTLS connection to a single
// relay. Plain connections are refused.
type SMTP struct {
	config SMTPConfig
}

func NewSMTP(config SMTPConfig) *SMTP {
	return &SMTP{config: config}
}

func (s *SMTP) Send(ctx context.Context, message Message) error {
	msg, err := s.newMsg(message)
	if err != nil {
		return newSendError(ReasonInvalidMessage, err)
	}

	client, err := mail.NewClient(
		s.config.Host,
		mail.WithPort(s.config.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.config.Username),
		mail.WithPassword(s.config.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(s.config.Timeout),
	)
	if err != nil {
		return newSendError(ReasonInvalidMessage, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return newSendError(classifySMTPError(err), err)
	}
	return nil
}

func (s *SMTP) newMsg(message Message) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(s.config.From); err != nil {
		return nil, err
	}
	if err := msg.To(message.To); err != nil {
		return nil, err
	}
	msg.Subject(message.Subject)
	msg.SetDate()
	msg.SetMessageID()
	if message.IsHTML {
		msg.SetBodyString(mail.TypeTextHTML, message.Body)
	} else {
		msg.SetBodyString(mail.TypeTextPlain, message.Body)
	}
	return msg, nil
}

func classifySMTPError(err error) Reason {
	if isTimeout(err) {
		return ReasonTimeout
	}
	var mailErr *mail.SendError
	if errors.As(err, &mailErr) {
		if mailErr.IsTemp() {
			return ReasonTransport
		}
		return ReasonRejected
	}
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) && protoErr.Code >= 500 {
		return ReasonRejected
	}
	return ReasonTransport
}
