package credstore

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/conn-castle/pinset/internal/enroll"
	"github.com/conn-castle/pinset/internal/messages"
)

// argon2id parameters. A 4-digit PIN has little entropy, so the cost is
// the only thing slowing an offline guess.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024
	argonThreads = 2
	argonKeyLen  = 32
	saltLen      = 16
)

var randRead = rand.Read

func newSalt() ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := randRead(salt); err != nil {
		return nil, fmt.Errorf(messages.StoreSaltFailedFmt, err)
	}
	return salt, nil
}

func hashPIN(pin enroll.PIN, salt []byte) []byte {
	return argon2.IDKey(pin[:], salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

func matchesHash(pin enroll.PIN, salt []byte, want []byte) bool {
	if len(salt) == 0 || len(want) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(hashPIN(pin, salt), want) == 1
}
