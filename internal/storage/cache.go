package storage

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// Cache stores serialized DTS payloads keyed by root schema path and a
// content fingerprint. Payloads are zstd-compressed.
type Cache struct {
	db *DB
}

// NewCache creates a cache over the given database.
func NewCache(db *DB) *Cache {
	return &Cache{db: db}
}

// Get retrieves the cached payload for a root schema. It returns ok=false
// when no entry exists, the fingerprint differs, or the entry expired.
func (c *Cache) Get(rootPath, fingerprint string) ([]byte, bool, error) {
	var storedFingerprint string
	var payload []byte
	var expiresAt string

	err := c.db.conn.QueryRow(`
		SELECT fingerprint, payload, expires_at
		FROM dts_cache
		WHERE root_path = ?
	`, rootPath).Scan(&storedFingerprint, &payload, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	expiry, err := time.Parse(time.RFC3339, expiresAt)
	if err != nil || time.Now().After(expiry) || storedFingerprint != fingerprint {
		return nil, false, nil
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, false, err
	}
	defer decoder.Close()
	raw, err := decoder.DecodeAll(payload, nil)
	if err != nil {
		return nil, false, fmt.Errorf("corrupt cache payload for %s: %w", rootPath, err)
	}
	return raw, true, nil
}

// Put stores a payload for a root schema, replacing any previous entry.
func (c *Cache) Put(rootPath, fingerprint string, payload []byte, ttl time.Duration) error {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return err
	}
	compressed := encoder.EncodeAll(payload, nil)
	encoder.Close()

	now := time.Now()
	_, err = c.db.conn.Exec(`
		INSERT INTO dts_cache (id, root_path, fingerprint, payload, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (root_path) DO UPDATE SET
			id = excluded.id,
			fingerprint = excluded.fingerprint,
			payload = excluded.payload,
			created_at = excluded.created_at,
			expires_at = excluded.expires_at
	`, uuid.New().String(), rootPath, fingerprint, compressed,
		now.Format(time.RFC3339), now.Add(ttl).Format(time.RFC3339))
	if err != nil {
		return err
	}

	c.db.logger.Debug("cached DTS payload", map[string]interface{}{
		"root": rootPath,
		"size": len(compressed),
	})
	return nil
}

// PurgeExpired removes expired entries and returns how many were dropped.
func (c *Cache) PurgeExpired() (int64, error) {
	res, err := c.db.conn.Exec(`DELETE FROM dts_cache WHERE expires_at < ?`,
		time.Now().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Purge removes every entry and returns how many were dropped.
func (c *Cache) Purge() (int64, error) {
	res, err := c.db.conn.Exec(`DELETE FROM dts_cache`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Fingerprint hashes the content of the given files into a cache key
// component. Any unreadable file fails the fingerprint.
func Fingerprint(paths []string) (string, error) {
	h := sha256.New()
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return "", err
		}
		if _, err := io.Copy(h, f); err != nil {
			f.Close()
			return "", err
		}
		f.Close()
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
