package seal

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var (
	ErrSecretRequired = errors.New("session secret is required")
	ErrMalformed      = errors.New("sealed value is malformed")
	ErrOpen           = errors.New("sealed value cannot be opened")
)

// Params controls argon2id key derivation from the configured secret.
type Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	Salt        string
}

var DefaultParams = &Params{
	Memory:      64 * 1024,
	Iterations:  2,
	Parallelism: 1,
	Salt:        "welcomehome/session/v1",
}

// Sealer encrypts bearer tokens at rest and derives storage keys for session IDs.
type Sealer struct {
	boxKey    [32]byte
	lookupKey []byte
}

func New(secret string, p *Params) (*Sealer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSecretRequired
	}
	if p == nil {
		p = DefaultParams
	}

	// One derivation yields both keys so a single secret drives the store.
	derived := argon2.IDKey([]byte(secret), []byte(p.Salt), p.Iterations, p.Memory, p.Parallelism, 64)
	s := &Sealer{lookupKey: make([]byte, 32)}
	copy(s.boxKey[:], derived[:32])
	copy(s.lookupKey, derived[32:])
	return s, nil
}

// Seal returns nonce||secretbox(plaintext).
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, err
	}
	return secretbox.Seal(nonce[:], plaintext, &nonce, &s.boxKey), nil
}

func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return nil, ErrMalformed
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	out, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.boxKey)
	if !ok {
		return nil, ErrOpen
	}
	return out, nil
}

// LookupKey maps a session ID to the key it is stored under.
func (s *Sealer) LookupKey(sessionID string) string {
	h, err := blake2b.New256(s.lookupKey)
	if err != nil {
		// blake2b only rejects keys longer than 64 bytes.
		panic(err)
	}
	_, _ = h.Write([]byte(sessionID))
	return hex.EncodeToString(h.Sum(nil))
}
