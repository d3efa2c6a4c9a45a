package credentialsgenerator

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"secureauth/internal/core/domain/account"
)

const (
	idBytes       = 8
	passwordBytes = 12
)

// Generator produces an account ID of 16 hex characters and a password of
// 16 URL-safe base64 characters, both from a cryptographically secure source.
type Generator struct {
	source io.Reader
}

func New() *Generator {
	return &Generator{source: rand.Reader}
}

func (g *Generator) GenerateCredentials() (id account.ID, password account.RawPassword, err error) {
	idRaw := make([]byte, idBytes)
	if _, err := io.ReadFull(g.source, idRaw); err != nil {
		return id, password, fmt.Errorf("could not generate account id: %w", err)
	}
	passwordRaw := make([]byte, passwordBytes)
	if _, err := io.ReadFull(g.source, passwordRaw); err != nil {
		return id, password, fmt.Errorf("could not generate password: %w", err)
	}
	id = account.ID(hex.EncodeToString(idRaw))
	password = account.RawPassword(base64.RawURLEncoding.EncodeToString(passwordRaw))
	return id, password, nil
}
