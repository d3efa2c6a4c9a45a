package account

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	c "secureauth/internal/core/domain/common"
	"sync"
	"time"
)

var errFake = fmt.Errorf("fake error")

type FakeRepository struct {
	Accounts []Account

	// Errors returned instead of touching Accounts.
	GetIDByEmailError    error
	CreateError          error
	SetPasswordHashError error

	// CreateErrors are returned by successive Create calls before CreateError is considered.
	CreateErrors []error

	CreateCalls          int
	SetPasswordHashCalls int
	lock                 sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{Accounts: make([]Account, 0, 10)}
}

func (r *FakeRepository) GetIDByEmail(ctx context.Context, email c.Email) (id ID, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.GetIDByEmailError != nil {
		return id, r.GetIDByEmailError
	}
	for _, a := range r.Accounts {
		if a.Email == email {
			return a.ID, nil
		}
	}
	return id, ErrAccountDoesNotExist
}

func (r *FakeRepository) Create(ctx context.Context, input CreateAccountInput) (a Account, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.CreateCalls++
	if len(r.CreateErrors) > 0 {
		err, r.CreateErrors = r.CreateErrors[0], r.CreateErrors[1:]
		if err != nil {
			return a, err
		}
	}
	if r.CreateError != nil {
		return a, r.CreateError
	}
	for _, existing := range r.Accounts {
		if existing.Email == input.Email {
			return a, ErrEmailAlreadyExists
		}
		if existing.ID == input.ID {
			return a, ErrIDAlreadyExists
		}
	}
	a = Account{
		ID:           input.ID,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
		UpdatedAt:    input.CreatedAt,
	}
	r.Accounts = append(r.Accounts, a)
	return a, nil
}

func (r *FakeRepository) SetPasswordHash(ctx context.Context, email c.Email, hash PasswordHash, at time.Time) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.SetPasswordHashCalls++
	if r.SetPasswordHashError != nil {
		return r.SetPasswordHashError
	}
	for ix, a := range r.Accounts {
		if a.Email == email {
			r.Accounts[ix].PasswordHash = hash
			r.Accounts[ix].UpdatedAt = at
			return nil
		}
	}
	return ErrAccountDoesNotExist
}

func (r *FakeRepository) Count() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.Accounts)
}

func (r *FakeRepository) MustGet(email c.Email) Account {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, a := range r.Accounts {
		if a.Email == email {
			return a
		}
	}
	panic(fmt.Sprintf("account %s not found", email))
}

// FakeCredentialsGenerator hands out IDs in order and then "id-<n>".
type FakeCredentialsGenerator struct {
	IDs         []ID
	Password    RawPassword
	ReturnError bool
	calls       int
	lock        sync.Mutex
}

func NewFakeCredentialsGenerator(password string, ids ...string) *FakeCredentialsGenerator {
	g := &FakeCredentialsGenerator{Password: RawPassword(password)}
	for _, id := range ids {
		g.IDs = append(g.IDs, ID(id))
	}
	return g
}

func (g *FakeCredentialsGenerator) GenerateCredentials() (ID, RawPassword, error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	if g.ReturnError {
		return "", "", fmt.Errorf("could not read random bytes: %w", errFake)
	}
	g.calls++
	if g.calls <= len(g.IDs) {
		return g.IDs[g.calls-1], g.Password, nil
	}
	return ID(fmt.Sprintf("id-%d", g.calls)), RawPassword(fmt.Sprintf("%s-%d", g.Password, g.calls)), nil
}

func (g *FakeCredentialsGenerator) Calls() int {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.calls
}

type FakePasswordHasher struct {
	ReturnError bool
}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	if h.ReturnError {
		return "", fmt.Errorf("could not hash password: %w", errFake)
	}
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type SentCredentials struct {
	Kind        CredentialsKind
	Credentials Credentials
}

type FakeCredentialsSender struct {
	Sent        []SentCredentials
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeCredentialsSender() *FakeCredentialsSender {
	return &FakeCredentialsSender{}
}

func (s *FakeCredentialsSender) SendCredentials(ctx context.Context, kind CredentialsKind, credentials Credentials) error {
	if s.ReturnError {
		return fmt.Errorf("could not send credentials to %s: %w", credentials.Email, errFake)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, SentCredentials{Kind: kind, Credentials: credentials})
	return nil
}

func (s *FakeCredentialsSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

func (s *FakeCredentialsSender) LastSent() SentCredentials {
	s.lock.Lock()
	defer s.lock.Unlock()
	l := len(s.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.Sent[l-1]
}

type FakeDeliveryFailureAlerter struct {
	Alerts      []DeliveryFailure
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeDeliveryFailureAlerter() *FakeDeliveryFailureAlerter {
	return &FakeDeliveryFailureAlerter{}
}

func (a *FakeDeliveryFailureAlerter) AlertDeliveryFailure(ctx context.Context, failure DeliveryFailure) error {
	a.lock.Lock()
	defer a.lock.Unlock()
	a.Alerts = append(a.Alerts, failure)
	if a.ReturnError {
		return fmt.Errorf("could not raise alert: %w", errFake)
	}
	return nil
}

func (a *FakeDeliveryFailureAlerter) AlertCount() int {
	a.lock.Lock()
	defer a.lock.Unlock()
	return len(a.Alerts)
}
