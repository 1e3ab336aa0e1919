// Package imagestore persists message images in a local SQLite database,
// keyed by UUID. The parser's image resolver is an adapter over this store.
package imagestore

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
	_ "modernc.org/sqlite"

	"github.com/mvela/chatblocks/internal/message"
)

// ErrNotFound is returned when no image exists for an identifier.
var ErrNotFound = errors.New("image not found")

// Schema for the image database.
const schema = `
CREATE TABLE IF NOT EXISTS images (
    id TEXT PRIMARY KEY,
    format TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    data BLOB NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_images_created_at ON images(created_at DESC);
`

// Meta describes a stored image without its pixel data.
type Meta struct {
	ID        uuid.UUID
	Format    string
	Width     int
	Height    int
	Size      int
	CreatedAt time.Time
}

// Image is a stored image with its raw encoded bytes.
type Image struct {
	Meta
	Data []byte
}

// Store is a SQLite-backed image store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the image database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores an encoded image (png, jpeg, gif or webp) and returns its new
// identifier. The data must decode; arbitrary blobs are rejected.
func (s *Store) Put(data []byte) (uuid.UUID, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("decode image: %w", err)
	}

	id := uuid.New()
	_, err = s.db.Exec(
		`INSERT INTO images (id, format, width, height, size, data, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id.String(), format, cfg.Width, cfg.Height, len(data), data, time.Now().UTC(),
	)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("insert image: %w", err)
	}
	return id, nil
}

// Get returns a stored image by identifier.
func (s *Store) Get(id uuid.UUID) (*Image, error) {
	row := s.db.QueryRow(
		`SELECT format, width, height, size, data, created_at FROM images WHERE id = ?`,
		id.String(),
	)

	img := Image{Meta: Meta{ID: id}}
	err := row.Scan(&img.Format, &img.Width, &img.Height, &img.Size, &img.Data, &img.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query image: %w", err)
	}
	return &img, nil
}

// Has reports whether an image exists for the identifier.
func (s *Store) Has(id uuid.UUID) bool {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM images WHERE id = ?`, id.String()).Scan(&one)
	return err == nil
}

// List returns metadata for all stored images, newest first.
func (s *Store) List() ([]Meta, error) {
	rows, err := s.db.Query(
		`SELECT id, format, width, height, size, created_at FROM images ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	var metas []Meta
	for rows.Next() {
		var m Meta
		var rawID string
		if err := rows.Scan(&rawID, &m.Format, &m.Width, &m.Height, &m.Size, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan image row: %w", err)
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("parse image id %q: %w", rawID, err)
		}
		m.ID = id
		metas = append(metas, m)
	}
	return metas, rows.Err()
}

// Delete removes an image. Deleting an unknown identifier returns ErrNotFound.
func (s *Store) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM images WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Resolver adapts the store to the parser's image resolver capability.
func (s *Store) Resolver() message.Resolver {
	return message.ResolverFunc(s.Has)
}
