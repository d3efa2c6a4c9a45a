package response

import (
	"context"
	"errors"
	"fmt"
	"secureauth/internal/core/domain/account"
	c "secureauth/internal/core/domain/common"
	ratelimiter "secureauth/internal/core/domain/rate_limiter"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistrationFlash(t *testing.T) {
	type testcase struct {
		err      error
		expected Flash
	}
	cases := []testcase{
		{err: nil, expected: Success(MsgRegistered)},
		{err: c.ErrEmailRequired, expected: Error(MsgEmailRequired)},
		{err: c.ErrInvalidEmail, expected: Error(MsgInvalidEmail)},
		{err: account.ErrEmailAlreadyExists, expected: Error(MsgEmailAlreadyExists)},
		{err: account.NewFailure(account.ErrStoreUnavailable, context.DeadlineExceeded), expected: Error(MsgUnavailable)},
		{err: account.NewFailure(account.ErrNotPersisted, errors.New("boom")), expected: Error(MsgCreateFailed)},
		{err: account.NewFailure(account.ErrCredentialsNotDelivered, errors.New("smtp")), expected: Error(MsgRegisteredNoEmail)},
		{err: ratelimiter.ErrRateLimitExceeded, expected: Error(MsgRateLimitExceeded)},
		{err: errors.New("unexpected"), expected: Error(MsgSomethingWentWrong)},
	}
	for ix, testcase := range cases {
		t.Run(fmt.Sprint(ix), func(t *testing.T) {
			require.Equal(t, testcase.expected, RegistrationFlash(testcase.err))
		})
	}
}

func TestResetFlash(t *testing.T) {
	type testcase struct {
		err      error
		expected Flash
	}
	cases := []testcase{
		{err: nil, expected: Success(MsgReset)},
		{err: c.ErrEmailRequired, expected: Error(MsgEmailRequired)},
		{err: c.ErrInvalidEmail, expected: Error(MsgInvalidEmail)},
		{err: account.ErrAccountDoesNotExist, expected: Error(MsgEmailNotFound)},
		{err: account.NewFailure(account.ErrStoreUnavailable, context.DeadlineExceeded), expected: Error(MsgUnavailable)},
		{err: account.NewFailure(account.ErrNotPersisted, errors.New("boom")), expected: Error(MsgResetFailed)},
		{err: account.NewFailure(account.ErrCredentialsNotDelivered, errors.New("smtp")), expected: Error(MsgResetNoEmail)},
		{err: ratelimiter.ErrRateLimitExceeded, expected: Error(MsgRateLimitExceeded)},
		{err: errors.New("unexpected"), expected: Error(MsgSomethingWentWrong)},
	}
	for ix, testcase := range cases {
		t.Run(fmt.Sprint(ix), func(t *testing.T) {
			require.Equal(t, testcase.expected, ResetFlash(testcase.err))
		})
	}
}
