package multicolor

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Catalog caches converted output keyed by the SHA-1 of the source image
// and the conversion options
type Catalog struct {
	db *sql.DB
}

func NewCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS conversion (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, options TEXT NOT NULL, output BLOB NOT NULL, UNIQUE(sha1, options))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

func (db *Catalog) Close() error {
	return db.db.Close()
}

// Find returns the cached output, or nil if there is none
func (db *Catalog) Find(sha, options string) ([]byte, error) {
	var output []byte
	switch err := db.db.QueryRow("SELECT output FROM conversion WHERE sha1 = ? AND options = ?", sha, options).Scan(&output); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return output, nil
	default:
		return nil, err
	}
}

// Store records the output of a conversion, replacing any previous entry
func (db *Catalog) Store(sha, options string, output []byte) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO conversion (sha1, options, output) VALUES (?, ?, ?)", sha, options, output); err != nil {
		return err
	}
	return nil
}

// Length returns the number of cached conversions
func (db *Catalog) Length() (int, error) {
	var n int
	if err := db.db.QueryRow("SELECT COUNT(*) FROM conversion").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
