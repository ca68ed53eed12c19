package credstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/conn-castle/pinset/internal/enroll"
	"github.com/conn-castle/pinset/internal/messages"
)

const fileFormatVersion = 1

// fileRecord is the CBOR wire form of a Record.
type fileRecord struct {
	Version          int    `cbor:"1,keyasint"`
	ID               string `cbor:"2,keyasint"`
	PINHash          []byte `cbor:"3,keyasint"`
	Salt             []byte `cbor:"4,keyasint"`
	Enabled          bool   `cbor:"5,keyasint"`
	BiometricEnabled bool   `cbor:"6,keyasint"`
	UpdatedAtMillis  int64  `cbor:"7,keyasint"`
}

var encMode = mustEncMode()

func mustEncMode() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

// FileStore keeps the credential in a single CBOR file. Every mutation
// runs under an advisory lock on a sibling ".lock" file and replaces the
// document atomically.
type FileStore struct {
	path  string
	now   func() time.Time
	newID func() string
}

// NewFileStore returns a store for the document at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:  path,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Path returns the credential document location.
func (s *FileStore) Path() string {
	return s.path
}

// Save replaces any existing credential with pin. The record ID survives
// re-enrollment; both flags reset to false.
func (s *FileStore) Save(ctx context.Context, pin enroll.PIN) error {
	return s.update(ctx, func(rec *Record, exists bool) error {
		id := rec.ID
		if !exists || id == "" {
			id = s.newID()
		}
		fresh, err := newRecord(id, pin, s.now())
		if err != nil {
			return err
		}
		*rec = fresh
		return nil
	})
}

// SetEnabled toggles the enabled flag of the saved credential.
func (s *FileStore) SetEnabled(ctx context.Context, enabled bool) error {
	return s.update(ctx, func(rec *Record, exists bool) error {
		if !exists {
			return ErrNoCredential
		}
		rec.Enabled = enabled
		rec.UpdatedAt = s.now()
		return nil
	})
}

// SetBiometricEnabled toggles the biometric flag of the saved credential.
func (s *FileStore) SetBiometricEnabled(ctx context.Context, enabled bool) error {
	return s.update(ctx, func(rec *Record, exists bool) error {
		if !exists {
			return ErrNoCredential
		}
		rec.BiometricEnabled = enabled
		rec.UpdatedAt = s.now()
		return nil
	})
}

// Load reads the credential.
func (s *FileStore) Load(ctx context.Context) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	rec, exists, err := s.read()
	if err != nil {
		return Record{}, err
	}
	if !exists {
		return Record{}, ErrNoCredential
	}
	return rec, nil
}

// Verify checks pin against the enabled credential.
func (s *FileStore) Verify(ctx context.Context, pin enroll.PIN) (bool, error) {
	rec, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	return verifyRecord(rec, pin)
}

// Delete removes the credential. Deleting a missing credential succeeds.
func (s *FileStore) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ensureDir(); err != nil {
		return err
	}
	return withFileLock(s.lockPath(), func() error {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf(messages.StoreDeleteFailedFmt, s.path, err)
		}
		return nil
	})
}

// Close is a no-op; FileStore holds no open handles between calls.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) lockPath() string {
	return s.path + ".lock"
}

func (s *FileStore) ensureDir() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf(messages.StoreMkdirFailedFmt, dir, err)
	}
	return nil
}

// update runs mutate on the current record under the lock and writes the result.
func (s *FileStore) update(ctx context.Context, mutate func(rec *Record, exists bool) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ensureDir(); err != nil {
		return err
	}
	return withFileLock(s.lockPath(), func() error {
		rec, exists, err := s.read()
		if err != nil {
			return err
		}
		if err := mutate(&rec, exists); err != nil {
			return err
		}
		return s.write(rec)
	})
}

func (s *FileStore) read() (Record, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf(messages.StoreReadFailedFmt, s.path, err)
	}
	var wire fileRecord
	if err := cbor.Unmarshal(data, &wire); err != nil {
		return Record{}, false, fmt.Errorf(messages.StoreDecodeFailedFmt, s.path, err)
	}
	return Record{
		ID:               wire.ID,
		PINHash:          wire.PINHash,
		Salt:             wire.Salt,
		Enabled:          wire.Enabled,
		BiometricEnabled: wire.BiometricEnabled,
		UpdatedAt:        time.UnixMilli(wire.UpdatedAtMillis).UTC(),
	}, true, nil
}

// write replaces the document via a temp file and rename.
func (s *FileStore) write(rec Record) error {
	data, err := encMode.Marshal(fileRecord{
		Version:          fileFormatVersion,
		ID:               rec.ID,
		PINHash:          rec.PINHash,
		Salt:             rec.Salt,
		Enabled:          rec.Enabled,
		BiometricEnabled: rec.BiometricEnabled,
		UpdatedAtMillis:  rec.UpdatedAt.UTC().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf(messages.StoreEncodeFailedFmt, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".credential-*")
	if err != nil {
		return fmt.Errorf(messages.StoreWriteFailedFmt, s.path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf(messages.StoreWriteFailedFmt, s.path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf(messages.StoreWriteFailedFmt, s.path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf(messages.StoreWriteFailedFmt, s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		cleanup()
		return fmt.Errorf(messages.StoreWriteFailedFmt, s.path, err)
	}
	return nil
}
