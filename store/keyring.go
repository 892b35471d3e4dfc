package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/txm073/rsa/textrsa"
)

var ErrKeyNotFound = errors.New("store: key not found")

const DefaultKeyringFile = "./keyring.db"

type Keyring struct {
	db *sql.DB
}

type Record struct {
	Fingerprint string
	Keys        *textrsa.Keys
	CreatedAt   time.Time
}

type Message struct {
	ID          int64
	Fingerprint string
	Ciphertext  string
	CreatedAt   time.Time
}

func OpenKeyring(path string) (*Keyring, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	createKeys := `
	CREATE TABLE IF NOT EXISTS keys (
		fingerprint TEXT PRIMARY KEY,
		rsa_n INTEGER NOT NULL,
		rsa_e INTEGER NOT NULL,
		rsa_d INTEGER NOT NULL,
		prime_p INTEGER NOT NULL,
		prime_q INTEGER NOT NULL,
		charmap TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);`

	createMessages := `
	CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		fingerprint TEXT NOT NULL,
		ciphertext TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY(fingerprint) REFERENCES keys(fingerprint)
	);`

	if _, err = db.Exec(createKeys); err != nil {
		db.Close()
		return nil, err
	}
	if _, err = db.Exec(createMessages); err != nil {
		db.Close()
		return nil, err
	}
	return &Keyring{db: db}, nil
}

func (kr *Keyring) Close() error {
	return kr.db.Close()
}

// Save stores keys and returns their fingerprint. Saving the same public key
// twice replaces the earlier row.
func (kr *Keyring) Save(ctx context.Context, keys *textrsa.Keys) (string, error) {
	fp := keys.Public.Fingerprint()
	_, err := kr.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO keys (fingerprint, rsa_n, rsa_e, rsa_d, prime_p, prime_q, charmap, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		fp, keys.Public.N, keys.Public.E, keys.Private.D, keys.P, keys.Q, FormatCharmap(keys.Charmap), time.Now().UTC())
	if err != nil {
		return "", err
	}
	return fp, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec     Record
		keys    textrsa.Keys
		charmap string
	)
	err := row.Scan(&rec.Fingerprint, &keys.Public.N, &keys.Public.E, &keys.Private.D,
		&keys.P, &keys.Q, &charmap, &rec.CreatedAt)
	if err != nil {
		return Record{}, err
	}
	keys.Charmap, err = ParseCharmap(charmap)
	if err != nil {
		return Record{}, fmt.Errorf("key %s: %w", rec.Fingerprint, err)
	}
	rec.Keys = &keys
	return rec, nil
}

const selectKeys = "SELECT fingerprint, rsa_n, rsa_e, rsa_d, prime_p, prime_q, charmap, created_at FROM keys"

func (kr *Keyring) Get(ctx context.Context, fingerprint string) (Record, error) {
	row := kr.db.QueryRowContext(ctx, selectKeys+" WHERE fingerprint = ?", fingerprint)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrKeyNotFound, fingerprint)
	}
	return rec, err
}

// List returns every key, newest first.
func (kr *Keyring) List(ctx context.Context) ([]Record, error) {
	rows, err := kr.db.QueryContext(ctx, selectKeys+" ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (kr *Keyring) Exists(ctx context.Context, fingerprint string) (bool, error) {
	var exists bool
	err := kr.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM keys WHERE fingerprint = ?)", fingerprint).Scan(&exists)
	return exists, err
}

// Delete removes a key together with its message history.
func (kr *Keyring) Delete(ctx context.Context, fingerprint string) error {
	if _, err := kr.db.ExecContext(ctx, "DELETE FROM messages WHERE fingerprint = ?", fingerprint); err != nil {
		return err
	}
	res, err := kr.db.ExecContext(ctx, "DELETE FROM keys WHERE fingerprint = ?", fingerprint)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, fingerprint)
	}
	return nil
}

func (kr *Keyring) Clear(ctx context.Context) error {
	if _, err := kr.db.ExecContext(ctx, "DELETE FROM messages"); err != nil {
		return err
	}
	_, err := kr.db.ExecContext(ctx, "DELETE FROM keys")
	return err
}

type Stats struct {
	Keys     int
	Messages int
}

func (kr *Keyring) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	if err := kr.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM keys").Scan(&st.Keys); err != nil {
		return Stats{}, err
	}
	if err := kr.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM messages").Scan(&st.Messages); err != nil {
		return Stats{}, err
	}
	return st, nil
}

func (kr *Keyring) RecordMessage(ctx context.Context, fingerprint, ciphertext string) error {
	_, err := kr.db.ExecContext(ctx,
		"INSERT INTO messages (fingerprint, ciphertext, created_at) VALUES (?, ?, ?)",
		fingerprint, ciphertext, time.Now().UTC())
	return err
}

// History returns the recorded ciphertexts of a key, newest first.
func (kr *Keyring) History(ctx context.Context, fingerprint string) ([]Message, error) {
	rows, err := kr.db.QueryContext(ctx, `
		SELECT id, fingerprint, ciphertext, created_at
		FROM messages
		WHERE fingerprint = ?
		ORDER BY id DESC
	`, fingerprint)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Fingerprint, &m.Ciphertext, &m.CreatedAt); err != nil {
			return nil, err
		}
		history = append(history, m)
	}
	return history, rows.Err()
}
