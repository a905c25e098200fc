package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bnema/audiobatch/internal/domain"
	"github.com/bnema/audiobatch/internal/port"
)

const fileName = "history.json"

// Store keeps batch history in a single JSON file. It is the fallback for
// hosts where the SQLite database cannot be opened.
type Store struct {
	mu       sync.RWMutex
	path     string
	outcomes map[string]*domain.BatchOutcome
}

func NewStore(dataDir string) (*Store, error) {
	path := filepath.Join(dataDir, fileName)

	store := &Store{
		path:     path,
		outcomes: make(map[string]*domain.BatchOutcome),
	}

	if err := store.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return store, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	if len(data) == 0 {
		return nil
	}

	var list []*domain.BatchOutcome
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}

	for _, o := range list {
		s.outcomes[o.ID] = o
	}

	return nil
}

func (s *Store) save() error {
	tmpPath := s.path + ".tmp"

	list := s.sorted()

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}

	return os.Rename(tmpPath, s.path)
}

// sorted returns the outcomes newest first. Caller holds the lock.
func (s *Store) sorted() []*domain.BatchOutcome {
	list := make([]*domain.BatchOutcome, 0, len(s.outcomes))
	for _, o := range s.outcomes {
		list = append(list, o)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].StartedAt.Equal(list[j].StartedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].StartedAt.After(list[j].StartedAt)
	})
	return list
}

func (s *Store) SaveOutcome(_ context.Context, o *domain.BatchOutcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *o
	cp.Results = append([]domain.FileResult(nil), o.Results...)
	s.outcomes[o.ID] = &cp
	return s.save()
}

func (s *Store) GetOutcome(_ context.Context, id string) (*domain.BatchOutcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.outcomes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	cp := *o
	cp.Results = append([]domain.FileResult{}, o.Results...)
	return &cp, nil
}

func (s *Store) ListOutcomes(_ context.Context, limit int) ([]domain.BatchSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.sorted()
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}

	summaries := make([]domain.BatchSummary, 0, len(list))
	for _, o := range list {
		summaries = append(summaries, o.Summary())
	}
	return summaries, nil
}

func (s *Store) DeleteOutcome(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.outcomes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.outcomes, id)
	return s.save()
}

func (s *Store) Close() error {
	return nil
}

var _ port.HistoryStore = (*Store)(nil)
