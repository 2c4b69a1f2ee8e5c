package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/noah-isme/legal-intake-api/internal/models"
)

// memoryStore is a transactional in-memory backing for cases, activities
// and notes. WithTx snapshots state and restores it when fn fails.
type memoryStore struct {
	cases      map[string]models.Case
	activities []models.Activity
	notes      map[string]models.Note

	failAppend error
	seq        int
}

func newMemoryStore(cases ...models.Case) *memoryStore {
	m := &memoryStore{cases: map[string]models.Case{}, notes: map[string]models.Note{}}
	for _, c := range cases {
		m.cases[c.ID] = c
	}
	return m
}

func (m *memoryStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	cases := make(map[string]models.Case, len(m.cases))
	for k, v := range m.cases {
		cases[k] = v
	}
	notes := make(map[string]models.Note, len(m.notes))
	for k, v := range m.notes {
		notes[k] = v
	}
	activities := append([]models.Activity(nil), m.activities...)
	if err := fn(ctx); err != nil {
		m.cases, m.notes, m.activities = cases, notes, activities
		return err
	}
	return nil
}

func (m *memoryStore) FindByID(ctx context.Context, id string) (*models.Case, error) {
	c, ok := m.cases[id]
	if !ok {
		return nil, fmt.Errorf("find case: %w", sql.ErrNoRows)
	}
	return &c, nil
}

func (m *memoryStore) LockByID(ctx context.Context, id string) (*models.Case, error) {
	return m.FindByID(ctx, id)
}

func (m *memoryStore) List(ctx context.Context, filter models.CaseFilter) ([]models.Case, int, error) {
	out := []models.Case{}
	for _, c := range m.cases {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (m *memoryStore) update(id string, fn func(c *models.Case)) error {
	c, ok := m.cases[id]
	if !ok {
		return sql.ErrNoRows
	}
	fn(&c)
	m.cases[id] = c
	return nil
}

func (m *memoryStore) UpdateStatus(ctx context.Context, id string, status models.CaseStatus, actor string, at time.Time) error {
	return m.update(id, func(c *models.Case) { c.Status, c.StatusChangedAt, c.StatusChangedBy = status, at, actor })
}

func (m *memoryStore) MarkDocGenLoaded(ctx context.Context, id string, at time.Time) error {
	return m.update(id, func(c *models.Case) {
		if c.DocGenLoadedAt == nil {
			c.DocGenLoadedAt = &at
		}
	})
}

func (m *memoryStore) RecordDocGeneration(ctx context.Context, id, actor string, at time.Time) error {
	return m.update(id, func(c *models.Case) { c.DocGenCount++; c.LastDocGenAt, c.LastDocGenBy = &at, &actor })
}

func (m *memoryStore) UpdateAssignment(ctx context.Context, id string, attorneyRef *string, at time.Time) error {
	return m.update(id, func(c *models.Case) { c.AssignedAttorneyRef, c.AssignedAt = attorneyRef, &at })
}

func (m *memoryStore) UpdatePriority(ctx context.Context, id string, priority bool, at time.Time) error {
	return m.update(id, func(c *models.Case) { c.IsPriority = priority })
}

func (m *memoryStore) UpdateArchived(ctx context.Context, id string, archived bool, at time.Time) error {
	return m.update(id, func(c *models.Case) { c.IsArchived = archived })
}

func (m *memoryStore) Append(ctx context.Context, activity *models.Activity) error {
	if m.failAppend != nil {
		return m.failAppend
	}
	m.seq++
	activity.ID = fmt.Sprintf("act-%d", m.seq)
	m.activities = append(m.activities, *activity)
	return nil
}

func (m *memoryStore) activitiesOf(caseID string, kind models.ActivityType) []models.Activity {
	var out []models.Activity
	for _, a := range m.activities {
		if a.CaseID == caseID && (kind == "" || a.ActivityType == kind) {
			out = append(out, a)
		}
	}
	return out
}
