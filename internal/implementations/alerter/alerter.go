package alerter

import (
	"context"
	"errors"
	"secureauth/internal/core/domain/account"
	e "secureauth/internal/core/domain/errors"
	"secureauth/internal/core/domain/logging"
)

// Log writes the failure to the application log. It never fails.
type Log struct {
	log logging.Logger
}

func NewLog(log logging.Logger) *Log {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &Log{log: log}
}

func (a *Log) AlertDeliveryFailure(ctx context.Context, failure account.DeliveryFailure) error {
	a.log.Error(
		ctx,
		"Credentials were not delivered, manual action required.",
		logging.Entry("accountID", failure.AccountID),
		logging.Entry("email", failure.Email),
		logging.Entry("workflow", failure.Kind.String()),
		logging.Entry("reason", failure.Reason),
		logging.Entry("at", failure.At),
	)
	return nil
}

// Multi hands the failure to every alerter, even when some of them fail.
type Multi struct {
	log      logging.Logger
	alerters []account.DeliveryFailureAlerter
}

func NewMulti(log logging.Logger, alerters ...account.DeliveryFailureAlerter) *Multi {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	for _, alerter := range alerters {
		if alerter == nil {
			panic(e.NewNilArgumentError("alerter"))
		}
	}
	return &Multi{log: log, alerters: alerters}
}

func (m *Multi) AlertDeliveryFailure(ctx context.Context, failure account.DeliveryFailure) error {
	var errs []error
	for _, alerter := range m.alerters {
		if err := alerter.AlertDeliveryFailure(ctx, failure); err != nil {
			m.log.Warning(
				ctx,
				"Delivery failure alerter returned an error.",
				logging.Entry("accountID", failure.AccountID),
				logging.Entry("err", err),
			)
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == len(m.alerters) {
		return errors.New("all delivery failure alerters failed")
	}
	return nil
}
