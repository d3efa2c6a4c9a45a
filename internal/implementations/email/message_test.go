package email

import (
	"context"
	"errors"
	"fmt"
	"net/textproto"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

func TestSendErrorTemporary(t *testing.T) {
	require.True(t, newSendError(ReasonTimeout, nil).Temporary())
	require.True(t, newSendError(ReasonTransport, nil).Temporary())
	require.False(t, newSendError(ReasonRejected, nil).Temporary())
	require.False(t, newSendError(ReasonInvalidMessage, nil).Temporary())
}

func TestClassifySMTPError(t *testing.T) {
	type testcase struct {
		err    error
		reason Reason
	}
	cases := []testcase{
		{err: context.DeadlineExceeded, reason: ReasonTimeout},
		{err: fmt.Errorf("dial: %w", context.DeadlineExceeded), reason: ReasonTimeout},
		{err: &textproto.Error{Code: 550, Msg: "mailbox unavailable"}, reason: ReasonRejected},
		{err: fmt.Errorf("send: %w", &textproto.Error{Code: 535, Msg: "auth failed"}), reason: ReasonRejected},
		{err: &textproto.Error{Code: 421, Msg: "try later"}, reason: ReasonTransport},
		{err: errors.New("connection reset"), reason: ReasonTransport},
		{err: &mail.SendError{Reason: mail.ErrSMTPRcptTo}, reason: ReasonRejected},
		{err: fmt.Errorf("send: %w", &mail.SendError{Reason: mail.ErrSMTPMailFrom}), reason: ReasonRejected},
	}
	for ix, c := range cases {
		t.Run(fmt.Sprint(ix), func(t *testing.T) {
			require.Equal(t, c.reason, classifySMTPError(c.err))
		})
	}
}

func TestSMTPInvalidMessage(t *testing.T) {
	transport := NewSMTP(SMTPConfig{
		Host:    "127.0.0.1",
		Port:    1,
		From:    "not an address",
		Timeout: time.Second,
	})

	err := transport.Send(context.Background(), Message{To: "alice@example.com", Subject: "s", Body: "b"})

	var sendErr *SendError
	require.ErrorAs(t, err, &sendErr)
	require.Equal(t, ReasonInvalidMessage, sendErr.Reason)
}

type fakeSESAPI struct {
	input       *ses.SendEmailInput
	returnError error
}

func (f *fakeSESAPI) SendEmail(
	ctx context.Context,
	params *ses.SendEmailInput,
	optFns ...func(*ses.Options),
) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.returnError != nil {
		return nil, f.returnError
	}
	return &ses.SendEmailOutput{MessageId: aws.String("m-1")}, nil
}

func TestSESSendHTML(t *testing.T) {
	assert := require.New(t)
	api := &fakeSESAPI{}
	transport := &SES{api: api, sender: "no-reply@secureauth.dev", timeout: time.Second}

	err := transport.Send(context.Background(), Message{
		To: "alice@example.com", Subject: "Hello", Body: "<p>hi</p>", IsHTML: true,
	})
	assert.Nil(err)
	assert.Equal("no-reply@secureauth.dev", *api.input.Source)
	assert.Equal([]string{"alice@example.com"}, api.input.Destination.ToAddresses)
	assert.Equal("Hello", *api.input.Message.Subject.Data)
	assert.Equal("<p>hi</p>", *api.input.Message.Body.Html.Data)
	assert.Nil(api.input.Message.Body.Text)
}

func TestSESSendPlain(t *testing.T) {
	assert := require.New(t)
	api := &fakeSESAPI{}
	transport := &SES{api: api, sender: "no-reply@secureauth.dev", timeout: time.Second}

	err := transport.Send(context.Background(), Message{To: "alice@example.com", Subject: "Hello", Body: "hi"})
	assert.Nil(err)
	assert.Equal("hi", *api.input.Message.Body.Text.Data)
	assert.Nil(api.input.Message.Body.Html)
}

func TestSESErrors(t *testing.T) {
	type testcase struct {
		err    error
		reason Reason
	}
	cases := []testcase{
		{err: &types.MessageRejected{Message: aws.String("rejected")}, reason: ReasonRejected},
		{err: &types.MailFromDomainNotVerifiedException{Message: aws.String("nope")}, reason: ReasonRejected},
		{err: context.DeadlineExceeded, reason: ReasonTimeout},
		{err: errors.New("connection refused"), reason: ReasonTransport},
	}
	for ix, c := range cases {
		t.Run(fmt.Sprint(ix), func(t *testing.T) {
			transport := &SES{api: &fakeSESAPI{returnError: c.err}, sender: "s@x.io", timeout: time.Second}
			err := transport.Send(context.Background(), Message{To: "a@x.io"})

			var sendErr *SendError
			require.ErrorAs(t, err, &sendErr)
			require.Equal(t, c.reason, sendErr.Reason)
		})
	}
}

func TestSESMissingRecipient(t *testing.T) {
	api := &fakeSESAPI{}
	transport := &SES{api: api, sender: "s@x.io", timeout: time.Second}

	err := transport.Send(context.Background(), Message{})

	var sendErr *SendError
	require.ErrorAs(t, err, &sendErr)
	require.Equal(t, ReasonInvalidMessage, sendErr.Reason)
	require.Nil(t, api.input)
}
