package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const redisCacheTTL = 5 * time.Minute
const redisKeyPrefix = "catalog:key:"

// KeyStore looks up admin key metadata by hash. A nil result with a nil
// error means the key is unknown.
type KeyStore interface {
	Lookup(ctx context.Context, keyHash string) (*KeyMetadata, error)
}

// StaticKeyStore accepts a fixed set of key hashes, typically from
// catalog.yaml.
type StaticKeyStore struct {
	keys map[string]*KeyMetadata
}

func NewStaticKeyStore(hashes []string) *StaticKeyStore {
	s := &StaticKeyStore{keys: make(map[string]*KeyMetadata, len(hashes))}
	for _, h := range hashes {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			continue
		}
		s.keys[h] = &KeyMetadata{ID: h[:min(12, len(h))], Name: "config"}
	}
	return s
}

func (s *StaticKeyStore) Lookup(_ context.Context, keyHash string) (*KeyMetadata, error) {
	return s.keys[keyHash], nil
}

// Len returns the number of configured keys.
func (s *StaticKeyStore) Len() int { return len(s.keys) }

// CachedKeyStore implements KeyStore with PostgreSQL + Redis cache.
type CachedKeyStore struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func NewCachedKeyStore(db *pgxpool.Pool, rdb *redis.Client) *CachedKeyStore {
	return &CachedKeyStore{db: db, redis: rdb}
}

func (s *CachedKeyStore) Lookup(ctx context.Context, keyHash string) (*KeyMetadata, error) {
	// Check Redis cache first
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, redisKeyPrefix+keyHash).Bytes()
		if err == nil {
			var meta KeyMetadata
			if err := json.Unmarshal(cached, &meta); err == nil {
				return &meta, nil
			}
		}
	}

	meta, err := s.lookupDB(ctx, keyHash)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, nil
	}

	if s.redis != nil {
		data, err := json.Marshal(meta)
		if err == nil {
			s.redis.Set(ctx, redisKeyPrefix+keyHash, data, redisCacheTTL)
		}
	}

	return meta, nil
}

func (s *CachedKeyStore) lookupDB(ctx context.Context, keyHash string) (*KeyMetadata, error) {
	if s.db == nil {
		return nil, errors.New("admin key store has no database")
	}
	var meta KeyMetadata
	err := s.db.QueryRow(ctx, `
		SELECT id, name, expires_at
		FROM admin_keys
		WHERE key_hash = $1
		  AND status = 'active'
		  AND expires_at > NOW()
	`, keyHash).Scan(&meta.ID, &meta.Name, &meta.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query admin_keys: %w", err)
	}

	// Update last_used_at asynchronously (fire-and-forget)
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.db.Exec(bgCtx, `UPDATE admin_keys SET last_used_at = NOW() WHERE id = $1`, meta.ID)
	}()

	return &meta, nil
}

// CreateKey inserts a new active key and returns its ID. Only the hash and
// display prefix of the raw key are stored.
func (s *CachedKeyStore) CreateKey(ctx context.Context, name, keyHash, keyPrefix string, expiresAt time.Time) (string, error) {
	if s.db == nil {
		return "", errors.New("admin key store has no database")
	}
	var id string
	err := s.db.QueryRow(ctx, `
		INSERT INTO admin_keys (key_hash, key_prefix, name, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, keyHash, keyPrefix, name, expiresAt).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert admin key: %w", err)
	}
	return id, nil
}
