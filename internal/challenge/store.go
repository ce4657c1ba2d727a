package challenge

import (
	"context"
	"sync"
	"time"
)

// Record is the stored half of a challenge. Only a hash of the code is
// kept; the plain code exists in memory just long enough to be sent.
type Record struct {
	Identity  string    `json:"identity"`
	CodeHash  string    `json:"code_hash"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (r *Record) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// Store keeps at most one record per identity.
//
// Put overwrites any prior record for the identity. Get returns nil, nil
// when there is none. Remove deletes the record only if it is still the
// one identified by rec.CodeHash and reports whether this call deleted
// it, which makes redemption single-winner across processes.
type Store interface {
	Put(ctx context.Context, rec Record, ttl time.Duration) error
	Get(ctx context.Context, identity string) (*Record, error)
	Remove(ctx context.Context, rec Record) (bool, error)
}

// MemoryStore is the single-process Store.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]Record
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, rec Record, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Identity] = rec
	return nil
}

func (s *MemoryStore) Get(_ context.Context, identity string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[identity]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *MemoryStore) Remove(_ context.Context, rec Record) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.records[rec.Identity]
	if !ok || current.CodeHash != rec.CodeHash {
		return false, nil
	}
	delete(s.records, rec.Identity)
	return true, nil
}

// DeleteExpired drops every record past its expiry and returns how many
// were removed.
func (s *MemoryStore) DeleteExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	var n int64
	for identity, rec := range s.records {
		if rec.Expired(now) {
			delete(s.records, identity)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
