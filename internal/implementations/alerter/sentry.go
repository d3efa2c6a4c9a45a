package alerter

import (
	"context"
	"errors"
	"secureauth/internal/core/domain/account"
	e "secureauth/internal/core/domain/errors"

	"github.com/getsentry/sentry-go"
)

type Sentry struct {
	hub *sentry.Hub
}

func NewSentry(hub *sentry.Hub) *Sentry {
	if hub == nil {
		panic(e.NewNilArgumentError("hub"))
	}
	return &Sentry{hub: hub}
}

func (s *Sentry) AlertDeliveryFailure(ctx context.Context, failure account.DeliveryFailure) error {
	hub := s.hub.Clone()
	scope := hub.Scope()
	scope.SetLevel(sentry.LevelError)
	scope.SetTag("workflow", failure.Kind.String())
	scope.SetUser(sentry.User{ID: string(failure.AccountID), Email: string(failure.Email)})
	scope.SetExtra("reason", failure.Reason)
	scope.SetExtra("at", failure.At)

	if eventID := hub.CaptureMessage("Credentials were not delivered"); eventID == nil {
		return errors.New("sentry event was not captured")
	}
	return nil
}
