package registeraccount

import (
	"context"
	"errors"
	"secureauth/internal/core/domain/account"
	c "secureauth/internal/core/domain/common"
	"secureauth/internal/core/domain/logging"
	"secureauth/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL    = c.Email("new@example.com")
	ID       = account.ID("0123456789abcdef")
	PASSWORD = "generated-password"
)

var NOW time.Time = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger               *logging.FakeLogger
	Repository           *account.FakeRepository
	CredentialsGenerator *account.FakeCredentialsGenerator
	PasswordHasher       *account.FakePasswordHasher
	Service              services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.Repository = account.NewFakeRepository()
	suite.CredentialsGenerator = account.NewFakeCredentialsGenerator(PASSWORD, string(ID))
	suite.PasswordHasher = account.NewFakePasswordHasher()
	suite.Service = New(
		suite.Logger,
		suite.Repository,
		suite.CredentialsGenerator,
		suite.PasswordHasher,
		func() time.Time { return NOW },
	)
}

func TestRegisterAccountService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	result, err := suite.Service.Run(context.Background(), Input{Email: "  New@Example.com "})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(ID, result.Account.ID)
	assert.Equal(EMAIL, result.Account.Email)
	assert.Equal(NOW, result.Account.CreatedAt)
	assert.Equal(account.RawPassword(PASSWORD), result.Password)
	assert.NotEqual(account.PasswordHash(PASSWORD), result.Account.PasswordHash)
	assert.True(suite.PasswordHasher.ValidatePassword(result.Password, result.Account.PasswordHash))
	assert.Equal(1, suite.Repository.Count())
	assert.Equal(result.Account, suite.Repository.MustGet(EMAIL))
}

func (suite *testSuite) TestValidationErrors() {
	type testcase struct {
		email string
		err   error
	}
	cases := []testcase{
		{email: "", err: c.ErrEmailRequired},
		{email: "   ", err: c.ErrEmailRequired},
		{email: "no-at-sign", err: c.ErrInvalidEmail},
		{email: "user@nodot", err: c.ErrInvalidEmail},
		{email: "us er@example.com", err: c.ErrInvalidEmail},
	}
	for _, testcase := range cases {
		suite.Run(testcase.email, func() {
			_, err := suite.Service.Run(context.Background(), Input{Email: testcase.email})

			assert := suite.Require()
			assert.ErrorIs(err, testcase.err)
			assert.Equal(0, suite.Repository.Count())
			assert.Equal(0, suite.CredentialsGenerator.Calls())
		})
	}
}

func (suite *testSuite) TestEmailAlreadyRegistered() {
	ctx := context.Background()
	_, err := suite.Service.Run(ctx, Input{Email: string(EMAIL)})
	suite.Require().Nil(err)

	_, err = suite.Service.Run(ctx, Input{Email: "NEW@example.com"})

	assert := suite.Require()
	assert.ErrorIs(err, account.ErrEmailAlreadyExists)
	assert.Equal(1, suite.Repository.Count())
	assert.Equal(1, suite.Repository.CreateCalls)
}

func (suite *testSuite) TestConcurrentRegistrationLosesRace() {
	suite.Repository.CreateError = account.ErrEmailAlreadyExists

	_, err := suite.Service.Run(context.Background(), Input{Email: string(EMAIL)})

	assert := suite.Require()
	assert.ErrorIs(err, account.ErrEmailAlreadyExists)
	assert.False(errors.Is(err, account.ErrNotPersisted))
}

func (suite *testSuite) TestLookupStoreUnavailable() {
	suite.Repository.GetIDByEmailError = errors.New("connection refused")

	_, err := suite.Service.Run(context.Background(), Input{Email: string(EMAIL)})

	assert := suite.Require()
	assert.ErrorIs(err, account.ErrStoreUnavailable)
	assert.Equal(0, suite.Repository.CreateCalls)
	assert.Equal(0, suite.CredentialsGenerator.Calls())
}

func (suite *testSuite) TestCreateStoreUnavailable() {
	suite.Repository.CreateError = account.NewFailure(account.ErrStoreUnavailable, context.DeadlineExceeded)

	_, err := suite.Service.Run(context.Background(), Input{Email: string(EMAIL)})

	assert := suite.Require()
	assert.ErrorIs(err, account.ErrStoreUnavailable)
	assert.ErrorIs(err, context.DeadlineExceeded)
	assert.Equal(0, suite.Repository.Count())
}

func (suite *testSuite) TestCreateNotPersisted() {
	suite.Repository.CreateError = errors.New("check constraint violated")

	_, err := suite.Service.Run(context.Background(), Input{Email: string(EMAIL)})

	assert := suite.Require()
	assert.ErrorIs(err, account.ErrNotPersisted)
	assert.Equal(0, suite.Repository.Count())
}

func (suite *testSuite) TestIDCollisionIsRetried() {
	suite.Repository.CreateErrors = []error{account.ErrIDAlreadyExists, account.ErrIDAlreadyExists}

	result, err := suite.Service.Run(context.Background(), Input{Email: string(EMAIL)})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(3, suite.CredentialsGenerator.Calls())
	assert.Equal(account.ID("id-3"), result.Account.ID)
	assert.Equal(1, suite.Repository.Count())
}

func (suite *testSuite) TestIDCollisionGivesUp() {
	suite.Repository.CreateError = account.ErrIDAlreadyExists

	_, err := suite.Service.Run(context.Background(), Input{Email: string(EMAIL)})

	assert := suite.Require()
	assert.ErrorIs(err, account.ErrNotPersisted)
	assert.Equal(maxIDAttempts, suite.CredentialsGenerator.Calls())
}

func (suite *testSuite) TestGeneratorFailure() {
	suite.CredentialsGenerator.ReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{Email: string(EMAIL)})

	assert := suite.Require()
	assert.NotNil(err)
	assert.Equal(0, suite.Repository.CreateCalls)
}

func (suite *testSuite) TestHasherFailure() {
	suite.PasswordHasher.ReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{Email: string(EMAIL)})

	assert := suite.Require()
	assert.NotNil(err)
	assert.Equal(0, suite.Repository.CreateCalls)
}

func (suite *testSuite) TestRateLimitKeyUsesNormalizedEmail() {
	suite.Equal(
		Input{Email: " NEW@example.com"}.GetRateLimitKey(),
		Input{Email: "new@example.com"}.GetRateLimitKey(),
	)
}
