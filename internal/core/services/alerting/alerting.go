package alerting

import (
	"context"
	"errors"
	"secureauth/internal/core/domain/account"
	e "secureauth/internal/core/domain/errors"
	"secureauth/internal/core/domain/logging"
	"secureauth/internal/core/services"
	"time"
)

const alertTimeout = 10 * time.Second

type hasAccount interface {
	GetAccount() account.Account
}

type serviceWithDeliveryFailureAlert[T any, S hasAccount] struct {
	log     logging.Logger
	alerter account.DeliveryFailureAlerter
	kind    account.CredentialsKind
	inner   services.Service[T, S]
	now     func() time.Time
}

// WithDeliveryFailureAlert raises an administrative alert whenever inner
// reports that credentials were persisted but not delivered. The outcome
// returned to the caller is never changed by the alert.
func WithDeliveryFailureAlert[T any, S hasAccount](
	log logging.Logger,
	alerter account.DeliveryFailureAlerter,
	kind account.CredentialsKind,
	inner services.Service[T, S],
	now func() time.Time,
) services.Service[T, S] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if alerter == nil {
		panic(e.NewNilArgumentError("alerter"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &serviceWithDeliveryFailureAlert[T, S]{
		log:     log,
		alerter: alerter,
		kind:    kind,
		inner:   inner,
		now:     now,
	}
}

func (s *serviceWithDeliveryFailureAlert[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	result, err = s.inner.Run(ctx, input)
	if !errors.Is(err, account.ErrCredentialsNotDelivered) {
		return result, err
	}

	a := result.GetAccount()
	failure := account.DeliveryFailure{
		AccountID: a.ID,
		Email:     a.Email,
		Kind:      s.kind,
		Reason:    err.Error(),
		At:        s.now(),
	}
	// Detached from ctx, which may already be close to its deadline.
	alertCtx, cancel := context.WithTimeout(context.Background(), alertTimeout)
	defer cancel()
	if alertErr := s.alerter.AlertDeliveryFailure(alertCtx, failure); alertErr != nil {
		s.log.Error(
			ctx,
			"Could not raise delivery failure alert.",
			logging.Entry("accountID", a.ID),
			logging.Entry("err", alertErr),
		)
	} else {
		s.log.Warning(ctx, "Delivery failure alert raised.", logging.Entry("accountID", a.ID))
	}
	return result, err
}
