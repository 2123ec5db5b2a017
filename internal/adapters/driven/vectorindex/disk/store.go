// Package disk persists a vector index as two co-located artifacts
// under one logical path prefix:
//
//   - <prefix>.vec: the raw vector array, a versioned header followed
//     by little-endian IEEE 754 float32 values in record order.
//   - <prefix>.db: a SQLite database holding the parallel chunk
//     metadata, one row per record, keyed by record position.
//
// Both artifacts are required together. A missing artifact reports
// domain.ErrIndexNotFound; a header mismatch, schema mismatch, or a
// record-count disagreement between the two files reports
// domain.ErrIndexCorrupt.
package disk

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ankushsurana/shopsage/internal/core/domain"
	"github.com/ankushsurana/shopsage/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.IndexStore = (*Store)(nil)

// Vector file format constants.
const (
	vecMagic   = "SSVX"
	vecVersion = uint32(1)

	// schemaVersion is recorded in the database's user_version pragma
	// so format drift is detected instead of misread.
	schemaVersion = 1
)

// Store reads and writes index artifacts under one path prefix.
type Store struct {
	prefix string
}

// NewStore creates a store for the given logical path prefix.
// The artifacts live at <prefix>.vec and <prefix>.db.
func NewStore(prefix string) *Store {
	return &Store{prefix: prefix}
}

// VectorPath returns the raw vector artifact path.
func (s *Store) VectorPath() string {
	return s.prefix + ".vec"
}

// MetadataPath returns the chunk metadata artifact path.
func (s *Store) MetadataPath() string {
	return s.prefix + ".db"
}

// Save writes both artifacts, replacing any previously persisted index.
// The vector file is written to a temp file and renamed into place so a
// crash mid-write never leaves a truncated artifact behind.
func (s *Store) Save(ctx context.Context, records []domain.IndexRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.prefix), 0o700); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	if err := s.saveVectors(records); err != nil {
		return err
	}
	if err := s.saveMetadata(ctx, records); err != nil {
		return err
	}
	return nil
}

// Load reads both artifacts and reassembles the record sequence.
func (s *Store) Load(ctx context.Context) ([]domain.IndexRecord, error) {
	vecMissing := !fileExists(s.VectorPath())
	dbMissing := !fileExists(s.MetadataPath())
	if vecMissing && dbMissing {
		return nil, fmt.Errorf("%w: no artifacts at %s", domain.ErrIndexNotFound, s.prefix)
	}
	if vecMissing || dbMissing {
		// One artifact without the other is treated as absent, not
		// corrupt: the caller falls back to a rebuild.
		return nil, fmt.Errorf("%w: incomplete artifacts at %s", domain.ErrIndexNotFound, s.prefix)
	}

	vectors, err := s.loadVectors()
	if err != nil {
		return nil, err
	}

	chunks, err := s.loadMetadata(ctx)
	if err != nil {
		return nil, err
	}

	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("%w: %d vectors but %d chunks at %s",
			domain.ErrIndexCorrupt, len(vectors), len(chunks), s.prefix)
	}

	records := make([]domain.IndexRecord, len(vectors))
	for i := range vectors {
		records[i] = domain.IndexRecord{Vector: vectors[i], Chunk: chunks[i]}
	}
	return records, nil
}

// saveVectors writes the raw vector artifact.
func (s *Store) saveVectors(records []domain.IndexRecord) error {
	dim := 0
	if len(records) > 0 {
		dim = len(records[0].Vector)
	}

	buf := make([]byte, 0, 16+len(records)*dim*4)
	buf = append(buf, vecMagic...)
	buf = binary.LittleEndian.AppendUint32(buf, vecVersion)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(dim))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(records)))
	for _, r := range records {
		for _, v := range r.Vector {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
		}
	}

	tmp := s.VectorPath() + ".tmp"
	if err := os.WriteFile(tmp, buf, 0o600); err != nil {
		return fmt.Errorf("writing vector file: %w", err)
	}
	if err := os.Rename(tmp, s.VectorPath()); err != nil {
		return fmt.Errorf("replacing vector file: %w", err)
	}
	return nil
}

// loadVectors reads and validates the raw vector artifact.
func (s *Store) loadVectors() ([][]float32, error) {
	data, err := os.ReadFile(s.VectorPath())
	if err != nil {
		return nil, fmt.Errorf("reading vector file: %w", err)
	}

	if len(data) < 16 || string(data[:4]) != vecMagic {
		return nil, fmt.Errorf("%w: bad vector file header", domain.ErrIndexCorrupt)
	}
	version := binary.LittleEndian.Uint32(data[4:8])
	if version != vecVersion {
		return nil, fmt.Errorf("%w: vector file version %d, expected %d",
			domain.ErrIndexCorrupt, version, vecVersion)
	}
	dim := int(binary.LittleEndian.Uint32(data[8:12]))
	count := int(binary.LittleEndian.Uint32(data[12:16]))

	payload := data[16:]
	if len(payload) != count*dim*4 {
		return nil, fmt.Errorf("%w: vector payload is %d bytes, expected %d",
			domain.ErrIndexCorrupt, len(payload), count*dim*4)
	}

	vectors := make([][]float32, count)
	for i := 0; i < count; i++ {
		vec := make([]float32, dim)
		for j := 0; j < dim; j++ {
			bits := binary.LittleEndian.Uint32(payload[(i*dim+j)*4:])
			vec[j] = math.Float32frombits(bits)
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// saveMetadata rewrites the chunk metadata database from scratch.
func (s *Store) saveMetadata(ctx context.Context, records []domain.IndexRecord) error {
	// Full rebuild only: drop the old database rather than merge.
	if err := os.Remove(s.MetadataPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing old metadata: %w", err)
	}

	db, err := s.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("setting schema version: %w", err)
	}
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE chunks (
			position INTEGER PRIMARY KEY,
			content  TEXT NOT NULL,
			source   TEXT NOT NULL,
			chunk_id INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating chunks table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO chunks (position, content, source, chunk_id) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, i, r.Chunk.Content, r.Chunk.Source, r.Chunk.ChunkID); err != nil {
			return fmt.Errorf("inserting chunk %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing chunks: %w", err)
	}
	return nil
}

// loadMetadata reads the chunk rows back in record order.
func (s *Store) loadMetadata(ctx context.Context) ([]domain.Chunk, error) {
	db, err := s.openDB()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return nil, fmt.Errorf("%w: reading schema version: %v", domain.ErrIndexCorrupt, err)
	}
	if version != schemaVersion {
		return nil, fmt.Errorf("%w: metadata schema version %d, expected %d",
			domain.ErrIndexCorrupt, version, schemaVersion)
	}

	rows, err := db.QueryContext(ctx,
		"SELECT content, source, chunk_id FROM chunks ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("%w: querying chunks: %v", domain.ErrIndexCorrupt, err)
	}
	defer rows.Close()

	var chunks []domain.Chunk
	for rows.Next() {
		var c domain.Chunk
		if err := rows.Scan(&c.Content, &c.Source, &c.ChunkID); err != nil {
			return nil, fmt.Errorf("%w: scanning chunk row: %v", domain.ErrIndexCorrupt, err)
		}
		chunks = append(chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading chunk rows: %v", domain.ErrIndexCorrupt, err)
	}
	return chunks, nil
}

// openDB opens the metadata database with WAL mode.
func (s *Store) openDB() (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.MetadataPath()+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening metadata database: %w", err)
	}
	return db, nil
}

// fileExists reports whether the path exists as a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
