package storage

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Ledger tracks which markdown documents have already been logged, keyed by
// path with size and content hash, so re-logging an unchanged file is a
// cheap no-op instead of a re-parse and re-upsert.
type Ledger struct {
	db *sql.DB
}

// OpenLedger opens (or creates) the SQLite ledger at dir/ledger.db.
func OpenLedger(dir string) (*Ledger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "ledger.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS logged_documents (
		id        TEXT NOT NULL,
		path      TEXT PRIMARY KEY,
		size      INTEGER NOT NULL,
		hash      TEXT NOT NULL,
		logged_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger table: %w", err)
	}

	return &Ledger{db: db}, nil
}

// IsLogged checks whether a document was already logged with the same size
// and hash. An edited file hashes differently and will be re-logged.
func (l *Ledger) IsLogged(path string, size int64, hash string) (bool, error) {
	var count int
	err := l.db.QueryRow(
		`SELECT COUNT(*) FROM logged_documents WHERE path = ? AND size = ? AND hash = ?`,
		path, size, hash,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkLogged records that a document was parsed and merged into the log.
func (l *Ledger) MarkLogged(path string, size int64, hash string) error {
	_, err := l.db.Exec(
		`INSERT OR REPLACE INTO logged_documents (id, path, size, hash) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), path, size, hash,
	)
	return err
}

// Close closes the ledger database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// HashDocument computes the SHA-256 hash and size of a file.
func HashDocument(path string) (hash string, size int64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}
