// Package history keeps a log of generated tone files.
//
// Each successful generation is stored as one msgpack-encoded Record keyed
// by a time-ordered UUID, so listing in key order is listing in creation
// order. Records live in BadgerDB on disk, or in memory for tests.
package history

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("history: not found")

const recordPrefix = "run/"

// Record describes one generated file.
type Record struct {
	ID         string        `msgpack:"id" json:"id" yaml:"id"`
	CreatedAt  time.Time     `msgpack:"created_at" json:"created_at" yaml:"created_at"`
	Path       string        `msgpack:"path" json:"path" yaml:"path"`
	Location   string        `msgpack:"location" json:"location" yaml:"location"`
	Backend    string        `msgpack:"backend" json:"backend" yaml:"backend"`
	Seconds    uint32        `msgpack:"seconds" json:"seconds" yaml:"seconds"`
	Frequency  float64       `msgpack:"frequency" json:"frequency" yaml:"frequency"`
	Offset     float64       `msgpack:"offset" json:"offset" yaml:"offset"`
	Channels   int           `msgpack:"channels" json:"channels" yaml:"channels"`
	Bits       int           `msgpack:"bits" json:"bits" yaml:"bits"`
	SampleRate int           `msgpack:"sample_rate" json:"sample_rate" yaml:"sample_rate"`
	DataBytes  int64         `msgpack:"data_bytes" json:"data_bytes" yaml:"data_bytes"`
	Elapsed    time.Duration `msgpack:"elapsed" json:"elapsed" yaml:"elapsed"`
}

// backend is the raw byte store under a Store.
type backend interface {
	get(key []byte) ([]byte, error) // returns ErrNotFound if missing
	set(key, val []byte) error
	delete(keys ...[]byte) error
	scan(prefix []byte, fn func(key, val []byte) error) error
	close() error
}

// Store persists generation records.
type Store struct {
	b   backend
	now func() time.Time
}

func newStore(b backend) *Store {
	return &Store{b: b, now: time.Now}
}

func recordKey(id string) []byte {
	return []byte(recordPrefix + id)
}

// Add stores rec, assigning ID and CreatedAt when they are empty.
func (s *Store) Add(_ context.Context, rec *Record) error {
	if rec.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("history: new id: %w", err)
		}
		rec.ID = id.String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now().UTC()
	}
	data, err := msgpack.Marshal(rec)
	if err != nil {
		return fmt.Errorf("history: encode: %w", err)
	}
	return s.b.set(recordKey(rec.ID), data)
}

// Get returns the record with the given ID.
func (s *Store) Get(_ context.Context, id string) (*Record, error) {
	data, err := s.b.get(recordKey(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	var rec Record
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("history: decode %s: %w", id, err)
	}
	return &rec, nil
}

// List returns up to limit records, newest first. A limit <= 0 returns all.
func (s *Store) List(_ context.Context, limit int) ([]Record, error) {
	recs := []Record{}
	err := s.b.scan([]byte(recordPrefix), func(key, val []byte) error {
		var rec Record
		if err := msgpack.Unmarshal(val, &rec); err != nil {
			return fmt.Errorf("history: decode %s: %w", key, err)
		}
		recs = append(recs, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Reverse(recs)
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// Delete removes the record with the given ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.b.delete(recordKey(id))
}

// Clear removes all records and reports how many were removed.
func (s *Store) Clear(_ context.Context) (int, error) {
	var keys [][]byte
	err := s.b.scan([]byte(recordPrefix), func(key, _ []byte) error {
		keys = append(keys, key)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}
	if err := s.b.delete(keys...); err != nil {
		return 0, err
	}
	return len(keys), nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.b.close()
}
