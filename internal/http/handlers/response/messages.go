package response

import (
	"errors"
	"secureauth/internal/core/domain/account"
	c "secureauth/internal/core/domain/common"
	ratelimiter "secureauth/internal/core/domain/rate_limiter"
)

const (
	MsgRegistered         = "Registered successfully! Check your email for credentials."
	MsgReset              = "Password reset successful! Check your email for new credentials."
	MsgEmailRequired      = "Email is required"
	MsgInvalidEmail       = "Please enter a valid email address"
	MsgEmailAlreadyExists = "Email already registered"
	MsgEmailNotFound      = "Email not found"
	MsgUnavailable        = "Service is temporarily unavailable. Please try again later."
	MsgCreateFailed       = "Error creating account. Please try again."
	MsgResetFailed        = "Error resetting password. Please try again."
	MsgRegisteredNoEmail  = "Your account was created but we could not email your credentials. Please contact support."
	MsgResetNoEmail       = "Your password was reset but we could not email your new credentials. Please contact support."
	MsgRateLimitExceeded  = "Too many requests. Please try again later."
	MsgSomethingWentWrong = "Something went wrong. Please try again."
)

func RegistrationFlash(err error) Flash {
	if err == nil {
		return Success(MsgRegistered)
	}
	switch {
	case errors.Is(err, account.ErrEmailAlreadyExists):
		return Error(MsgEmailAlreadyExists)
	case errors.Is(err, account.ErrNotPersisted):
		return Error(MsgCreateFailed)
	case errors.Is(err, account.ErrCredentialsNotDelivered):
		return Error(MsgRegisteredNoEmail)
	}
	return commonFlash(err)
}

func ResetFlash(err error) Flash {
	if err == nil {
		return Success(MsgReset)
	}
	switch {
	case errors.Is(err, account.ErrAccountDoesNotExist):
		return Error(MsgEmailNotFound)
	case errors.Is(err, account.ErrNotPersisted):
		return Error(MsgResetFailed)
	case errors.Is(err, account.ErrCredentialsNotDelivered):
		return Error(MsgResetNoEmail)
	}
	return commonFlash(err)
}

func commonFlash(err error) Flash {
	switch {
	case errors.Is(err, c.ErrEmailRequired):
		return Error(MsgEmailRequired)
	case errors.Is(err, c.ErrInvalidEmail):
		return Error(MsgInvalidEmail)
	case errors.Is(err, account.ErrStoreUnavailable):
		return Error(MsgUnavailable)
	case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
		return Error(MsgRateLimitExceeded)
	default:
		return Error(MsgSomethingWentWrong)
	}
}
