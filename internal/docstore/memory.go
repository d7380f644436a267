package docstore

import (
	"context"
	"strconv"
	"sync"
)

// MemoryStore is an in-process Store used by tests and by the API when
// no database is configured. Collections live for the process lifetime.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int
	data   map[string]map[string]Record
}

func NewMemory() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]Record)}
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Create(_ context.Context, collection string, rec Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := strconv.Itoa(s.nextID)
	if s.data[collection] == nil {
		s.data[collection] = make(map[string]Record)
	}
	s.data[collection][id] = cloneRecord(rec)
	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, collection, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.data[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneRecord(rec)
	out["id"] = id
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, collection, id string, partial Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.data[collection][id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range partial {
		rec[k] = v
	}
	return nil
}

func (s *MemoryStore) Query(_ context.Context, collection string, filter Record) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Record
	for id, rec := range s.data[collection] {
		if !matches(rec, filter) {
			continue
		}
		copied := cloneRecord(rec)
		copied["id"] = id
		out = append(out, copied)
	}
	return out, nil
}

func matches(rec, filter Record) bool {
	for k, v := range filter {
		if rec[k] != v {
			return false
		}
	}
	return true
}

func cloneRecord(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}
