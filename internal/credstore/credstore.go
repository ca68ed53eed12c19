// Package credstore persists the enrolled PIN credential.
//
// The PIN itself is never written: stores keep an argon2id hash with a
// per-enrollment random salt next to the enabled and biometric flags.
// Two backends exist, a CBOR document guarded by an advisory file lock
// and a single-row SQLite table.
package credstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/conn-castle/pinset/internal/enroll"
	"github.com/conn-castle/pinset/internal/messages"
)

var (
	// ErrNoCredential is returned when no PIN has been saved.
	ErrNoCredential = errors.New(messages.StoreNoCredential)
	// ErrCredentialDisabled is returned by Verify for a saved but disabled PIN.
	ErrCredentialDisabled = errors.New(messages.StoreCredentialDisabled)
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Record is the persisted credential. PINHash and Salt are opaque to callers.
type Record struct {
	ID               string
	PINHash          []byte
	Salt             []byte
	Enabled          bool
	BiometricEnabled bool
	UpdatedAt        time.Time
}

// Status is the secret-free part of a Record.
type Status struct {
	ID               string    `json:"id"`
	Enabled          bool      `json:"enabled"`
	BiometricEnabled bool      `json:"biometric_enabled"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Status strips the hash and salt.
func (r Record) Status() Status {
	return Status{
		ID:               r.ID,
		Enabled:          r.Enabled,
		BiometricEnabled: r.BiometricEnabled,
		UpdatedAt:        r.UpdatedAt,
	}
}

// Store is a CredentialStore that can also read back, verify and delete.
type Store interface {
	enroll.CredentialStore
	Load(ctx context.Context) (Record, error)
	// Verify reports whether pin matches the enabled credential.
	Verify(ctx context.Context, pin enroll.PIN) (bool, error)
	Delete(ctx context.Context) error
	Close() error
}

// Open returns the store for backend at path.
func Open(backend string, path string) (Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf(messages.StorePathRequired)
	}
	switch backend {
	case BackendFile:
		return NewFileStore(path), nil
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf(messages.StoreUnknownBackendFmt, backend)
	}
}

// newRecord hashes pin under a fresh salt. The result starts disabled.
func newRecord(id string, pin enroll.PIN, now time.Time) (Record, error) {
	salt, err := newSalt()
	if err != nil {
		return Record{}, err
	}
	return Record{
		ID:        id,
		PINHash:   hashPIN(pin, salt),
		Salt:      salt,
		UpdatedAt: now,
	}, nil
}

// verifyRecord checks pin against rec.
func verifyRecord(rec Record, pin enroll.PIN) (bool, error) {
	if !rec.Enabled {
		return false, ErrCredentialDisabled
	}
	return matchesHash(pin, rec.Salt, rec.PINHash), nil
}
