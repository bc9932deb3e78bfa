// Package history owns the canonical ordered list of summary records and
// its persisted mirror. The in-memory list is the single source of truth
// for consumers; the key-value store holds a serialized copy that is only
// read authoritatively at startup.
package history

import (
	"encoding/json"
	"log/slog"
	"sync"

	"summary-pad/internal/domain/entity"
	"summary-pad/internal/kvstore"
	"summary-pad/internal/observability/metrics"
)

// DefaultKey is the storage key the history is persisted under.
const DefaultKey = "summary"

// Store is the only writer of persisted history state.
// All mutations go through Persist as a full-replace write: read current
// list, compute new list, persist, swap the in-memory reference.
type Store struct {
	mu      sync.Mutex
	kv      kvstore.Store
	key     string
	logger  *slog.Logger
	records []entity.SummaryRecord
}

// NewStore creates a history store over the given key-value store.
// An empty key falls back to DefaultKey.
func NewStore(kv kvstore.Store, key string, logger *slog.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, key: key, logger: logger}
}

// Load reads the persisted history into memory and returns it.
// A missing key, an unreadable store, or a value that fails to parse all
// yield an empty history. Corruption is recovered locally, never fatal.
func (s *Store) Load() []entity.SummaryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		s.logger.Warn("history store unreadable, starting with empty history",
			slog.String("key", s.key),
			slog.String("error", err.Error()))
		s.records = nil
		return nil
	}
	if !ok || raw == "" {
		s.records = nil
		metrics.UpdateHistoryRecords(0)
		return nil
	}

	var records []entity.SummaryRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.logger.Warn("persisted history failed to parse, starting with empty history",
			slog.String("key", s.key),
			slog.String("error", err.Error()))
		s.records = nil
		metrics.UpdateHistoryRecords(0)
		return nil
	}

	s.records = records
	metrics.UpdateHistoryRecords(len(records))
	return s.copyRecords()
}

// Records returns a copy of the canonical in-memory list.
func (s *Store) Records() []entity.SummaryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyRecords()
}

// Persist serializes the full record sequence, writes it back to the
// storage key replacing any prior value, and swaps the in-memory
// reference in the same logical operation.
func (s *Store) Persist(records []entity.SummaryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if records == nil {
		records = []entity.SummaryRecord{}
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return err
	}
	if err := s.kv.Set(s.key, string(raw)); err != nil {
		return err
	}

	s.records = records
	metrics.UpdateHistoryRecords(len(records))
	return nil
}

func (s *Store) copyRecords() []entity.SummaryRecord {
	if len(s.records) == 0 {
		return nil
	}
	out := make([]entity.SummaryRecord, len(s.records))
	copy(out, s.records)
	return out
}
