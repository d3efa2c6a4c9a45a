package registeraccount

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

// An 8-byte identifier makes a collision unlikely; a few retries make it harmless.
const maxIDAttempts = 3

type Input struct {
	Email string
}

func (i Input) GetRateLimitKey() string {
	return ratelimiter.Key("register", string(c.NewEmail(i.Email)))
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
		s.log.Info(ctx, "Registration rejected, invalid email.", logging.Entry("err", err))
		return result, err
	}

	_, err = s.repository.GetIDByEmail(ctx, email)
	if err == nil {
		s.log.Info(ctx, "Account with the email already exists.", logging.Entry("email", email))
		return result, account.ErrEmailAlreadyExists
	}
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if !errors.Is(err, account.ErrAccountDoesNotExist) {
		s.log.Error(
			ctx,
			"Could not check whether the email is registered.",
			logging.Entry("email", email),
			logging.Entry("err", err),
		)
		if errors.Is(err, account.ErrStoreUnavailable) {
			return result, err
		}
		return result, account.NewFailure(account.ErrStoreUnavailable, err)
	}

	for attempt := 1; ; attempt++ {
		id, password, err := s.credentialsGenerator.GenerateCredentials()
		if err != nil {
			s.log.Error(ctx, "Could not generate credentials.", logging.Entry("err", err))
			return result, err
		}
		passwordHash, err := s.passwordHasher.HashPassword(password)
		if err != nil {
			s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
			return result, err
		}

		created, err := s.repository.Create(ctx, account.CreateAccountInput{
			ID:           id,
			Email:        email,
			PasswordHash: passwordHash,
			CreatedAt:    s.now(),
		})
		if errors.Is(err, account.ErrIDAlreadyExists) && attempt < maxIDAttempts {
			s.log.Warning(ctx, "Generated account id is taken, retrying.", logging.Entry("attempt", attempt))
			continue
		}
		if errors.Is(err, context.Canceled) {
			return result, err
		}
		if errors.Is(err, account.ErrEmailAlreadyExists) {
			// Lost a race with a concurrent registration of the same email.
			s.log.Info(
				ctx,
				"Account with the email was created concurrently.",
				logging.Entry("email", email),
			)
			return result, err
		}
		if errors.Is(err, account.ErrStoreUnavailable) {
			s.log.Error(ctx, "Could not create account.", logging.Entry("email", email), logging.Entry("err", err))
			return result, err
		}
		if err != nil {
			s.log.Error(ctx, "Could not create account.", logging.Entry("email", email), logging.Entry("err", err))
			return result, account.NewFailure(account.ErrNotPersisted, err)
		}

		s.log.Info(ctx, "New account has been created.", logging.Entry("accountID", created.ID))
		return Result{Account: created, Password: password}, nil
	}
}
