package core

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/JonMunkholm/brfss/internal/validation"
)

// Store persists validation reports.
//
// Implementations must return ErrNotFound from Get for unknown ids and must
// hand out copies, so callers can modify what they receive.
type Store interface {
	// Save inserts or replaces the report with res.SubmissionID.
	Save(ctx context.Context, res *validation.ValidationResult) error
	Get(ctx context.Context, id string) (*validation.ValidationResult, error)
	// List returns every report, newest first.
	List(ctx context.Context) ([]*validation.ValidationResult, error)
	// Clear removes every report and returns how many were removed.
	Clear(ctx context.Context) (int, error)
	// DeleteBefore removes reports with a timestamp before cutoff.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int, error)
	Ping(ctx context.Context) error
	Close()
}

// MemoryStore keeps reports in process. Reports are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]memoryEntry
	seq     int64
}

type memoryEntry struct {
	res *validation.ValidationResult
	seq int64
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reports: make(map[string]memoryEntry)}
}

func (m *MemoryStore) Save(_ context.Context, res *validation.ValidationResult) error {
	cp, err := cloneResult(res)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.reports[res.SubmissionID] = memoryEntry{res: cp, seq: m.seq}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*validation.ValidationResult, error) {
	m.mu.RLock()
	e, ok := m.reports[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return cloneResult(e.res)
}

func (m *MemoryStore) List(_ context.Context) ([]*validation.ValidationResult, error) {
	m.mu.RLock()
	entries := make([]memoryEntry, 0, len(m.reports))
	for _, e := range m.reports {
		entries = append(entries, e)
	}
	m.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		ti, tj := entries[i].res.Timestamp, entries[j].res.Timestamp
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return entries[i].seq > entries[j].seq
	})

	out := make([]*validation.ValidationResult, len(entries))
	for i, e := range entries {
		cp, err := cloneResult(e.res)
		if err != nil {
			return nil, err
		}
		out[i] = cp
	}
	return out, nil
}

func (m *MemoryStore) Clear(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.reports)
	m.reports = make(map[string]memoryEntry)
	return n, nil
}

func (m *MemoryStore) DeleteBefore(_ context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.reports {
		if e.res.Timestamp.Before(cutoff) {
			delete(m.reports, id)
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) Close() {}

// cloneResult deep-copies a report through its wire form, which is the
// same shape the PostgreSQL store keeps.
func cloneResult(res *validation.ValidationResult) (*validation.ValidationResult, error) {
	data, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("encode report %s: %w", res.SubmissionID, err)
	}
	var cp validation.ValidationResult
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", res.SubmissionID, err)
	}
	return &cp, nil
}
