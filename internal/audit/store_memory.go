package audit

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type MemoryStore struct {
	mu     sync.Mutex
	logs   []models.AuditLog
	lastID uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Write(_ context.Context, entry *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	entry.ID = s.lastID
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.logs = append(s.logs, *entry)
	return nil
}

func (s *MemoryStore) List(_ context.Context, f Filter) ([]models.AuditLog, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []models.AuditLog{}
	for _, l := range s.logs {
		if f.Action != "" && l.Action != f.Action {
			continue
		}
		if f.Entity != "" && l.Entity != f.Entity {
			continue
		}
		if !f.From.IsZero() && l.CreatedAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !l.CreatedAt.Before(f.To) {
			continue
		}
		matched = append(matched, l)
	}

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	if f.Offset >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}

var _ Store = (*MemoryStore)(nil)
