package textrsa

import (
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"time"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
)

// Source is satisfied by *rand.Rand.
type Source interface {
	// Int63n returns a value in [0, n).
	Int63n(n int64) int64
}

func TimeSource() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// PassphraseSource seeds a generator from argon2id(passphrase, salt).
func PassphraseSource(passphrase, salt string) (*rand.Rand, error) {
	// Argon2id
	key := argon2.IDKey([]byte(passphrase), []byte(salt), 1, 64*1024, 4, 32)

	r := hkdf.New(sha512.New, key, []byte(salt), []byte("textrsa seed"))
	seed := make([]byte, 8)
	if _, err := io.ReadFull(r, seed); err != nil {
		return nil, fmt.Errorf("derive seed: %w", err)
	}
	return rand.New(rand.NewSource(int64(binary.BigEndian.Uint64(seed)))), nil
}
