package credstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/conn-castle/pinset/internal/enroll"
	"github.com/conn-castle/pinset/internal/messages"
)

// The table holds at most one row; slot pins it to 1.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS credential (
    slot INTEGER PRIMARY KEY CHECK (slot = 1),
    id TEXT NOT NULL,
    pin_hash BLOB NOT NULL,
    salt BLOB NOT NULL,
    enabled INTEGER NOT NULL DEFAULT 0,
    biometric_enabled INTEGER NOT NULL DEFAULT 0,
    updated_at INTEGER NOT NULL
);
`

// SQLiteStore keeps the credential in a SQLite database.
type SQLiteStore struct {
	sqlDB *sql.DB
	now   func() time.Time
	newID func() string
}

// OpenSQLite opens (creating when needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o700); err != nil {
		return nil, fmt.Errorf(messages.StoreMkdirFailedFmt, filepath.Dir(cleanPath), err)
	}
	dsn := "file:" + cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf(messages.StoreOpenSQLiteFmt, err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf(messages.StorePingSQLiteFmt, err)
	}
	if _, err := sqlDB.Exec(schemaSQL); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf(messages.StoreMigrateSQLiteFmt, err)
	}
	return &SQLiteStore{sqlDB: sqlDB, now: time.Now, newID: uuid.NewString}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save replaces any existing credential with pin, keeping the record ID.
func (s *SQLiteStore) Save(ctx context.Context, pin enroll.PIN) error {
	rec, err := newRecord(s.newID(), pin, s.now())
	if err != nil {
		return err
	}
	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO credential (slot, id, pin_hash, salt, enabled, biometric_enabled, updated_at)
VALUES (1, ?, ?, ?, 0, 0, ?)
ON CONFLICT(slot) DO UPDATE SET
    pin_hash = excluded.pin_hash,
    salt = excluded.salt,
    enabled = 0,
    biometric_enabled = 0,
    updated_at = excluded.updated_at`,
		rec.ID, rec.PINHash, rec.Salt, toMillis(rec.UpdatedAt))
	if err != nil {
		return fmt.Errorf(messages.StoreUpdateSQLiteFmt, err)
	}
	return nil
}

// SetEnabled toggles the enabled flag.
func (s *SQLiteStore) SetEnabled(ctx context.Context, enabled bool) error {
	return s.setFlag(ctx, "enabled", enabled)
}

// SetBiometricEnabled toggles the biometric flag.
func (s *SQLiteStore) SetBiometricEnabled(ctx context.Context, enabled bool) error {
	return s.setFlag(ctx, "biometric_enabled", enabled)
}

// setFlag updates a fixed column name; column never comes from user input.
func (s *SQLiteStore) setFlag(ctx context.Context, column string, value bool) error {
	res, err := s.sqlDB.ExecContext(ctx,
		"UPDATE credential SET "+column+" = ?, updated_at = ? WHERE slot = 1",
		value, toMillis(s.now()))
	if err != nil {
		return fmt.Errorf(messages.StoreUpdateSQLiteFmt, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf(messages.StoreUpdateSQLiteFmt, err)
	}
	if n == 0 {
		return ErrNoCredential
	}
	return nil
}

// Load reads the credential row.
func (s *SQLiteStore) Load(ctx context.Context) (Record, error) {
	var (
		rec       Record
		updatedAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx, `
SELECT id, pin_hash, salt, enabled, biometric_enabled, updated_at
FROM credential WHERE slot = 1`).Scan(
		&rec.ID, &rec.PINHash, &rec.Salt, &rec.Enabled, &rec.BiometricEnabled, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNoCredential
	}
	if err != nil {
		return Record{}, fmt.Errorf(messages.StoreQuerySQLiteFmt, err)
	}
	rec.UpdatedAt = fromMillis(updatedAt)
	return rec, nil
}

// Verify checks pin against the enabled credential.
func (s *SQLiteStore) Verify(ctx context.Context, pin enroll.PIN) (bool, error) {
	rec, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	return verifyRecord(rec, pin)
}

// Delete removes the credential row.
func (s *SQLiteStore) Delete(ctx context.Context) error {
	if _, err := s.sqlDB.ExecContext(ctx, "DELETE FROM credential"); err != nil {
		return fmt.Errorf(messages.StoreUpdateSQLiteFmt, err)
	}
	return nil
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}
