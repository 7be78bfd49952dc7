package repository

import (
	"cryptofolio/internal/domain"
	"encoding/binary"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

type PlatformConfigRepository interface {
	List() ([]domain.PlatformConfig, error)
	Add(cfg domain.PlatformConfig) error
}

type platformConfigRepositoryHandler struct {
	Db *bolt.DB
}

func NewPlatformConfigRepository(db *bolt.DB) PlatformConfigRepository {
	return platformConfigRepositoryHandler{Db: db}
}

// keys are bolt sequence numbers so a cursor walk returns entries in the
// order they were added
func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

// List returns every stored entry as-is, in insertion order. Entries with an
// unknown type are returned too; deciding what to do with them is up to the
// caller.
func (h platformConfigRepositoryHandler) List() ([]domain.PlatformConfig, error) {
	out := []domain.PlatformConfig{}
	err := h.Db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(platformConfigBucket)).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			cfg := domain.PlatformConfig{}
			if err := json.Unmarshal(v, &cfg); err != nil {
				return fmt.Errorf("failed to decode platform config %x: %w", k, err)
			}
			out = append(out, cfg)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list platform configs: %w", err)
	}
	return out, nil
}

func (h platformConfigRepositoryHandler) Add(cfg domain.PlatformConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid platform config: %w", err)
	}

	return h.Db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(platformConfigBucket))

		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			existing := domain.PlatformConfig{}
			if err := json.Unmarshal(v, &existing); err != nil {
				return fmt.Errorf("failed to decode platform config %x: %w", k, err)
			}
			if existing.Name == cfg.Name {
				return fmt.Errorf("%s: %w", cfg.Name, domain.ErrPlatformExists)
			}
		}

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		data, err := json.Marshal(cfg)
		if err != nil {
			return err
		}
		return b.Put(sequenceKey(seq), data)
	})
}
