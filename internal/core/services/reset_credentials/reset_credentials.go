package resetcredentials

import (
	"context"
	"errors"
	"secureauth/internal/core/domain/account"
	c "secureauth/internal/core/domain/common"
	e "secureauth/internal/core/domain/errors"
	"secureauth/internal/core/domain/logging"
	ratelimiter "secureauth/internal/core/domain/rate_limiter"
	"secureauth/internal/core/services"
	"time"
)

type Input struct {
	Email string
}

func (i Input) GetRateLimitKey() string {
	return ratelimiter.Key("forgot", string(c.NewEmail(i.Email)))
}

type Result struct {
	Account  account.Account
	Password account.RawPassword
}

func (r Result) GetAccount() account.Account {
	return r.Account
}

type service struct {
	log                  logging.Logger
	repository           account.Repository
	credentialsGenerator account.CredentialsGenerator
	passwordHasher       account.PasswordHasher
	now                  func() time.Time
}

// New rotates the password of an existing account. The account id is kept;
// only the freshly generated password is used.
func New(
	log logging.Logger,
	repository account.Repository,
	credentialsGenerator account.CredentialsGenerator,
	passwordHasher account.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if repository == nil {
		panic(e.NewNilArgumentError("repository"))
	}
	if credentialsGenerator == nil {
		panic(e.NewNilArgumentError("credentialsGenerator"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                  log,
		repository:           repository,
		credentialsGenerator: credentialsGenerator,
		passwordHasher:       passwordHasher,
		now:                  now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	email, err := c.ParseEmail(input.Email)
	if err != nil {
		s.log.Info(ctx, "Reset rejected, invalid email.", logging.Entry("err", err))
		return result, err
	}

	id, err := s.repository.GetIDByEmail(ctx, email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, account.ErrAccountDoesNotExist) {
		s.log.Info(ctx, "Account not found for reset.", logging.Entry("email", email))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not look up account for reset.",
			logging.Entry("email", email),
			logging.Entry("err", err),
		)
		if errors.Is(err, account.ErrStoreUnavailable) {
			return result, err
		}
		return result, account.NewFailure(account.ErrStoreUnavailable, err)
	}

	// Only the password of the generated pair is used.
	_, password, err := s.credentialsGenerator.GenerateCredentials()
	if err != nil {
		s.log.Error(ctx, "Could not generate credentials.", logging.Entry("err", err))
		return result, err
	}
	passwordHash, err := s.passwordHasher.HashPassword(password)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, err
	}

	now := s.now()
	err = s.repository.SetPasswordHash(ctx, email, passwordHash, now)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, account.ErrAccountDoesNotExist) {
		s.log.Info(
			ctx,
			"Could not update password, account does not exist anymore.",
			logging.Entry("accountID", id),
		)
		return result, err
	}
	if errors.Is(err, account.ErrStoreUnavailable) {
		s.log.Error(ctx, "Could not update password.", logging.Entry("accountID", id), logging.Entry("err", err))
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not update password.", logging.Entry("accountID", id), logging.Entry("err", err))
		return result, account.NewFailure(account.ErrNotPersisted, err)
	}

	s.log.Info(ctx, "Password has been reset.", logging.Entry("accountID", id))
	return Result{
		Account: account.Account{
			ID:           id,
			Email:        email,
			PasswordHash: passwordHash,
			UpdatedAt:    now,
		},
		Password: password,
	}, nil
}
