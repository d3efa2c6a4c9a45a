package services

import (
	"secureauth/internal/app/deps"
	"secureauth/internal/core/domain/account"
	drl "secureauth/internal/core/domain/rate_limiter"
	"secureauth/internal/core/services"
	"secureauth/internal/core/services/alerting"
	ratelimiting "secureauth/internal/core/services/rate_limiting"
	registeraccount "secureauth/internal/core/services/register_account"
	resetcredentials "secureauth/internal/core/services/reset_credentials"
)

var (
	RegisterLimit = drl.Limit{Value: 5, Interval: drl.Hour}
	ResetLimit    = drl.Limit{Value: 3, Interval: drl.Hour}
)

type Services struct {
	RegisterAccount  services.Service[registeraccount.Input, registeraccount.Result]
	ResetCredentials services.Service[resetcredentials.Input, resetcredentials.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.RegisterAccount = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		RegisterLimit,
		alerting.WithDeliveryFailureAlert(
			deps.Logger,
			deps.DeliveryFailureAlerter,
			account.CredentialsIssued,
			registeraccount.NewWithCredentialsSending(
				deps.Logger,
				deps.CredentialsSender,
				registeraccount.New(
					deps.Logger,
					deps.AccountRepository,
					deps.CredentialsGenerator,
					deps.PasswordHasher,
					deps.Now,
				),
				deps.Now,
			),
			deps.Now,
		),
	)
	s.ResetCredentials = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		ResetLimit,
		alerting.WithDeliveryFailureAlert(
			deps.Logger,
			deps.DeliveryFailureAlerter,
			account.CredentialsReset,
			resetcredentials.NewWithCredentialsSending(
				deps.Logger,
				deps.CredentialsSender,
				resetcredentials.New(
					deps.Logger,
					deps.AccountRepository,
					deps.CredentialsGenerator,
					deps.PasswordHasher,
					deps.Now,
				),
				deps.Now,
			),
			deps.Now,
		),
	)

	return s
}
