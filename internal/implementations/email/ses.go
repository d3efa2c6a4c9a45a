package email

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charset = "UTF-8"

type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SES struct {
	api sesAPI
	// This address must be verified with Amazon SES.
	sender  string
	timeout time.Duration
}

func NewSES(awsConfig aws.Config, sender string, timeout time.Duration) *SES {
	return &SES{api: ses.NewFromConfig(awsConfig), sender: sender, timeout: timeout}
}

func (s *SES) Send(ctx context.Context, message Message) error {
	if message.To == "" {
		return newSendError(ReasonInvalidMessage, errors.New("recipient is not defined"))
	}

	content := &types.Content{Data: aws.String(message.Body), Charset: aws.String(charset)}
	body := &types.Body{}
	if message.IsHTML {
		body.Html = content
	} else {
		body.Text = content
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.api.SendEmail(
		ctx,
		&ses.SendEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{message.To},
			},
			Message: &types.Message{
				Subject: &types.Content{Data: aws.String(message.Subject), Charset: aws.String(charset)},
				Body:    body,
			},
		},
	)
	if err != nil {
		return newSendError(classifySESError(err), err)
	}
	return nil
}

func classifySESError(err error) Reason {
	if isTimeout(err) {
		return ReasonTimeout
	}
	var rejected *types.MessageRejected
	var notVerified *types.MailFromDomainNotVerifiedException
	if errors.As(err, &rejected) || errors.As(err, &notVerified) {
		return ReasonRejected
	}
	return ReasonTransport
}
