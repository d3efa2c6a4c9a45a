package registeraccount

import (
	"context"
	"errors"
	"secureauth/internal/core/domain/account"
	e "secureauth/internal/core/domain/errors"
	"secureauth/internal/core/domain/logging"
	"secureauth/internal/core/services"
	"time"
)

type serviceWithCredentialsSending struct {
	log    logging.Logger
	sender account.CredentialsSender
	inner  services.Service[Input, Result]
	now    func() time.Time
}

// NewWithCredentialsSending emails the issued credentials after inner has
// persisted the account. A delivery failure leaves the account in place.
func NewWithCredentialsSending(
	log logging.Logger,
	sender account.CredentialsSender,
	inner services.Service[Input, Result],
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &serviceWithCredentialsSending{
		log:    log,
		sender: sender,
		inner:  inner,
		now:    now,
	}
}

func (s *serviceWithCredentialsSending) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Info(ctx, "Skip sending credentials.", logging.Entry("err", err))
		return result, err
	}

	err = s.sender.SendCredentials(ctx, account.CredentialsIssued, account.Credentials{
		ID:       result.Account.ID,
		Email:    result.Account.Email,
		Password: result.Password,
		IssuedAt: s.now(),
	})
	if err != nil {
		s.log.Error(
			ctx,
			"Account created but credentials could not be delivered.",
			logging.Entry("accountID", result.Account.ID),
			logging.Entry("email", result.Account.Email),
			logging.Entry("err", err),
		)
		return result, account.NewFailure(account.ErrCredentialsNotDelivered, err)
	}

	s.log.Info(ctx, "Credentials have been sent.", logging.Entry("accountID", result.Account.ID))
	return result, nil
}
