package service

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"platformapi/internal/cache"
	"platformapi/internal/model"
	"platformapi/internal/repository"
)

// memSettings is an in-memory SettingRepository with real upsert/delete semantics.
type memSettings struct {
	mu      sync.Mutex
	rows    map[string]model.Setting
	finds   int
	findErr error
	clock   time.Time
}

func newMemSettings() *memSettings {
	return &memSettings{rows: map[string]model.Setting{}, clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memSettings) put(key, value string, typ model.SettingType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock = m.clock.Add(time.Second)
	m.rows[key] = model.Setting{ID: "id-" + key, Key: key, Value: value, Type: typ, UpdatedAt: m.clock}
}

func (m *memSettings) findCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.finds
}

func (m *memSettings) FindByKey(_ context.Context, key string) (*model.Setting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finds++
	if m.findErr != nil {
		return nil, m.findErr
	}
	row, ok := m.rows[key]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &row, nil
}

func (m *memSettings) Upsert(_ context.Context, s *model.Setting) (*model.Setting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock = m.clock.Add(time.Second)
	row, ok := m.rows[s.Key]
	if !ok {
		row = model.Setting{ID: s.ID, Key: s.Key}
	}
	row.Value = s.Value
	row.Type = s.Type
	row.UpdatedAt = m.clock
	m.rows[s.Key] = row
	return &row, nil
}

func (m *memSettings) Delete(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[key]; !ok {
		return 0, nil
	}
	delete(m.rows, key)
	return 1, nil
}

func (m *memSettings) List(_ context.Context, pq repository.PageQuery) (*repository.PageResult[model.Setting], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]model.Setting, 0, len(m.rows))
	for _, r := range m.rows {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UpdatedAt.After(all[j].UpdatedAt) })
	total := len(all)
	if pq.Offset >= len(all) {
		return &repository.PageResult[model.Setting]{Items: []model.Setting{}, Total: total}, nil
	}
	all = all[pq.Offset:]
	if len(all) > pq.Limit {
		all = all[:pq.Limit]
	}
	return &repository.PageResult[model.Setting]{Items: all, Total: total}, nil
}

func newTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	c := cache.New()
	t.Cleanup(c.Close)
	return c
}

func newTestSettings(t *testing.T, repo repository.SettingRepository) *settingsService {
	t.Helper()
	return NewSettingsService(repo, newTestCache(t), time.Minute).(*settingsService)
}

// recordingAudit captures audit entries in memory.
type recordingAudit struct {
	mu      sync.Mutex
	entries []AuditEntry
}

func (r *recordingAudit) Record(_ context.Context, e AuditEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

func (r *recordingAudit) events() []model.AuditEventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.AuditEventType, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.EventType)
	}
	return out
}

func (r *recordingAudit) last() AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[len(r.entries)-1]
}
