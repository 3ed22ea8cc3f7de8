package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/clinic-readiness-api/internal/models"
	appErrors "github.com/noah-isme/clinic-readiness-api/pkg/errors"
)

// MemoryChildRepository keeps child records in process memory. Records are
// stored and returned as deep copies so callers never share state.
type MemoryChildRepository struct {
	mu      sync.RWMutex
	records map[string]models.ChildRecord
	now     func() time.Time
}

// NewMemoryChildRepository constructs an empty in-memory store.
func NewMemoryChildRepository() *MemoryChildRepository {
	return &MemoryChildRepository{
		records: make(map[string]models.ChildRecord),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func cloneRecord(in models.ChildRecord) (models.ChildRecord, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return models.ChildRecord{}, fmt.Errorf("copy child %s: %w", in.ID, err)
	}
	var out models.ChildRecord
	if err := json.Unmarshal(raw, &out); err != nil {
		return models.ChildRecord{}, fmt.Errorf("copy child %s: %w", in.ID, err)
	}
	return out, nil
}

func (r *MemoryChildRepository) sorted(clinicianID string) []models.ChildRecord {
	var out []models.ChildRecord
	for _, rec := range r.records {
		if rec.ClinicianID == clinicianID {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// List returns the roster of a clinician.
func (r *MemoryChildRepository) List(_ context.Context, filter models.ChildFilter) ([]models.ChildSummary, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	var matched []models.ChildSummary
	for _, rec := range r.sorted(filter.ClinicianID) {
		if search != "" && !strings.Contains(strings.ToLower(rec.Name), search) {
			continue
		}
		matched = append(matched, models.ChildSummary{
			ID:          rec.ID,
			ClinicianID: rec.ClinicianID,
			Name:        rec.Name,
			CreatedAt:   rec.CreatedAt,
			UpdatedAt:   rec.UpdatedAt,
		})
	}

	page, size := normalizePage(filter)
	total := len(matched)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

// ListRecords loads every full record of a clinician.
func (r *MemoryChildRepository) ListRecords(_ context.Context, clinicianID string) ([]models.ChildRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.sorted(clinicianID)
	out := make([]models.ChildRecord, 0, len(stored))
	for _, rec := range stored {
		cp, err := cloneRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, nil
}

// FindByID loads a full child record.
func (r *MemoryChildRepository) FindByID(_ context.Context, id string) (*models.ChildRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "child not found")
	}
	cp, err := cloneRecord(rec)
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

// Save stores a copy of the record; the last writer wins.
func (r *MemoryChildRepository) Save(_ context.Context, child *models.ChildRecord) error {
	now := r.now()
	if child.CreatedAt.IsZero() {
		child.CreatedAt = now
	}
	child.UpdatedAt = now

	cp, err := cloneRecord(*child)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.records[child.ID] = cp
	r.mu.Unlock()
	return nil
}

// Delete removes a child record.
func (r *MemoryChildRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "child not found")
	}
	delete(r.records, id)
	return nil
}
