package credentialsgenerator

import (
	"bytes"
	"encoding/hex"
	"regexp"
	"secureauth/internal/core/domain/account"
	"testing"

	"github.com/stretchr/testify/require"
)

var passwordPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{16}$`)

func TestGeneratedCredentialsAreUnique(t *testing.T) {
	generator := New()
	ids := make(map[account.ID]struct{})
	passwords := make(map[account.RawPassword]struct{})
	for i := 0; i < 1000; i++ {
		id, password, err := generator.GenerateCredentials()
		if err != nil {
			t.Fatalf("could not generate credentials: %v", err)
		}
		if _, ok := ids[id]; ok {
			t.Fatalf("id %v already generated", id)
		}
		if _, ok := passwords[password]; ok {
			t.Fatal("password already generated")
		}
		ids[id] = struct{}{}
		passwords[password] = struct{}{}
	}
}

func TestGeneratedCredentialsFormat(t *testing.T) {
	assert := require.New(t)
	id, password, err := New().GenerateCredentials()
	assert.Nil(err)

	assert.Len(string(id), 16)
	_, err = hex.DecodeString(string(id))
	assert.Nil(err)
	assert.Regexp(passwordPattern, string(password))
}

func TestGeneratorReturnsSourceError(t *testing.T) {
	generator := &Generator{source: bytes.NewReader([]byte{1, 2, 3})}
	_, _, err := generator.GenerateCredentials()
	require.NotNil(t, err)
}
