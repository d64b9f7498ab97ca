package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/xab-mack/contractscope/internal/model"
)

// ErrUpgradeableNotCacheable is returned when a caller attempts to persist a
// record whose upgradeability verdict is true. Upgradeable contracts can swap
// logic without an address change, so their results must never be cached.
var ErrUpgradeableNotCacheable = errors.New("store: upgradeable analysis records must not be cached")

// ErrNotFound is returned on a cache miss or an expired entry.
var ErrNotFound = errors.New("store: record not found")

// Store persists analysis records keyed by address:chainId with a TTL. It is
// an explicitly constructed handle with its own lifecycle; the analysis
// engine itself stays stateless.
type Store struct {
	conn *sql.DB
	ttl  time.Duration
}

// Open opens or creates the analysis database at dbPath.
func Open(dbPath string, ttl time.Duration) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open analysis database: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}
	s := &Store{conn: conn, ttl: ttl}
	if err := s.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS analyses (
			address TEXT NOT NULL,
			chain_id INTEGER NOT NULL,
			record TEXT NOT NULL,
			created_at TEXT NOT NULL,
			expires_at TEXT NOT NULL,
			PRIMARY KEY (address, chain_id)
		)`
	_, err := s.conn.Exec(schema)
	return err
}

// Put persists a record, replacing any previous entry for the same key.
// Upgradeable records are rejected.
func (s *Store) Put(ctx context.Context, rec *model.AnalysisRecord) error {
	if rec.Upgradeable || !rec.Cacheable {
		return ErrUpgradeableNotCacheable
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	now := time.Now().UTC()
	_, err = s.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO analyses (address, chain_id, record, created_at, expires_at) VALUES (?, ?, ?, ?, ?)`,
		rec.Address, rec.ChainID, string(data),
		now.Format(time.RFC3339Nano), now.Add(s.ttl).Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("persist record: %w", err)
	}
	return nil
}

// Get returns the cached record for address:chainId, deleting and missing on
// expired entries.
func (s *Store) Get(ctx context.Context, address string, chainID int64) (*model.AnalysisRecord, error) {
	var data, expiresAt string
	err := s.conn.QueryRowContext(ctx,
		`SELECT record, expires_at FROM analyses WHERE address = ? AND chain_id = ?`,
		address, chainID).Scan(&data, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	expiry, err := time.Parse(time.RFC3339Nano, expiresAt)
	if err != nil || time.Now().UTC().After(expiry) {
		_, _ = s.conn.ExecContext(ctx,
			`DELETE FROM analyses WHERE address = ? AND chain_id = ?`, address, chainID)
		return nil, ErrNotFound
	}
	var rec model.AnalysisRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &rec, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}
