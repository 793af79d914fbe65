package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/TejasDeepLearning/tenant-dashboard-3/model"
)

// Collection names understood by the persistence collaborator.
const (
	CollectionActive   = "active"
	CollectionArchived = "archived"
)

// ErrNotFound signals an archive/restore against an id absent from the
// expected collection. Callers report it as a no-op, not a failure.
var ErrNotFound = errors.New("agreement not found")

// AgreementStore owns the active and archived collections and every
// id/lifecycle transition. Mutating operations are serialized by one
// mutex and persist the affected collections before returning.
type AgreementStore struct {
	mu      sync.Mutex
	persist Persistence

	active   []model.Agreement
	archived []model.Agreement

	lastStamp time.Time
	now       func() time.Time
}

// NewAgreementStore loads both collections. A failed load degrades to an
// empty collection with a warning; it is not fatal.
func NewAgreementStore(persist Persistence) *AgreementStore {
	s := &AgreementStore{
		persist: persist,
		now:     time.Now,
	}

	active, err := persist.Load(CollectionActive)
	if err != nil {
		slog.Warn("failed to load active agreements, starting empty", "error", err)
		active = []model.Agreement{}
	}
	archived, err := persist.Load(CollectionArchived)
	if err != nil {
		slog.Warn("failed to load archived agreements, starting empty", "error", err)
		archived = []model.Agreement{}
	}

	s.active = active
	s.archived = archived
	slog.Info("agreement store loaded", "active", len(active), "archived", len(archived))
	return s
}

// GenerateID produces a timestamp id with millisecond resolution,
// strictly increasing under sequential calls from this process.
func (s *AgreementStore) GenerateID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generateID()
}

// generateID must be called with the lock held.
func (s *AgreementStore) generateID() string {
	t := s.now().Truncate(time.Millisecond)
	if !t.After(s.lastStamp) {
		t = s.lastStamp.Add(time.Millisecond)
	}
	s.lastStamp = t
	return fmt.Sprintf("%s_%03d", t.Format("20060102_150405"), t.Nanosecond()/1e6)
}

// InsertActive assigns id and upload timestamp if absent, appends the
// record to the active collection and persists it.
func (s *AgreementStore) InsertActive(rec model.Agreement) (model.Agreement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = s.generateID()
	}
	if rec.UploadTimestamp == "" {
		rec.UploadTimestamp = s.now().Format(time.RFC3339)
	}

	next := append(cloneRecords(s.active), rec)
	if err := s.persist.Save(CollectionActive, next); err != nil {
		return model.Agreement{}, fmt.Errorf("persist active agreements: %w", err)
	}
	s.active = next
	return rec, nil
}

// Archive moves the record with the given id from active to archived,
// stamping archived_timestamp. The archived collection is persisted
// before the record leaves active so a partial failure never drops it.
func (s *AgreementStore) Archive(id string) (model.Agreement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.active, id)
	if idx < 0 {
		return model.Agreement{}, ErrNotFound
	}

	rec := s.active[idx]
	rec.ArchivedTimestamp = s.now().Format(time.RFC3339)

	nextArchived := append(cloneRecords(s.archived), rec)
	if err := s.persist.Save(CollectionArchived, nextArchived); err != nil {
		return model.Agreement{}, fmt.Errorf("persist archived agreements: %w", err)
	}

	nextActive := removeAt(s.active, idx)
	if err := s.persist.Save(CollectionActive, nextActive); err != nil {
		// Roll the archived collection back so the record is not in both
		if rbErr := s.persist.Save(CollectionArchived, s.archived); rbErr != nil {
			slog.Error("failed to roll back archived collection", "id", id, "error", rbErr)
		}
		return model.Agreement{}, fmt.Errorf("persist active agreements: %w", err)
	}

	s.archived = nextArchived
	s.active = nextActive
	return rec, nil
}

// Restore moves the record with the given id from archived back to
// active, clearing archived_timestamp and stamping restored_timestamp.
// The active collection is persisted before the record leaves archived.
func (s *AgreementStore) Restore(id string) (model.Agreement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.archived, id)
	if idx < 0 {
		return model.Agreement{}, ErrNotFound
	}

	rec := s.archived[idx]
	rec.ArchivedTimestamp = ""
	rec.RestoredTimestamp = s.now().Format(time.RFC3339)

	nextActive := append(cloneRecords(s.active), rec)
	if err := s.persist.Save(CollectionActive, nextActive); err != nil {
		return model.Agreement{}, fmt.Errorf("persist active agreements: %w", err)
	}

	nextArchived := removeAt(s.archived, idx)
	if err := s.persist.Save(CollectionArchived, nextArchived); err != nil {
		if rbErr := s.persist.Save(CollectionActive, s.active); rbErr != nil {
			slog.Error("failed to roll back active collection", "id", id, "error", rbErr)
		}
		return model.Agreement{}, fmt.Errorf("persist archived agreements: %w", err)
	}

	s.active = nextActive
	s.archived = nextArchived
	return rec, nil
}

// ListActive returns the active collection in insertion order.
func (s *AgreementStore) ListActive() []model.Agreement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRecords(s.active)
}

// ListArchived returns the archived collection sorted by
// archived_timestamp descending; records missing the timestamp sort last.
func (s *AgreementStore) ListArchived() []model.Agreement {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := cloneRecords(s.archived)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ArchivedTimestamp > out[j].ArchivedTimestamp
	})
	return out
}

// CountActive returns the number of active agreements.
func (s *AgreementStore) CountActive() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

// CountArchived returns the number of archived agreements.
func (s *AgreementStore) CountArchived() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.archived)
}

func indexByID(records []model.Agreement, id string) int {
	for i := range records {
		if records[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneRecords(records []model.Agreement) []model.Agreement {
	out := make([]model.Agreement, len(records))
	copy(out, records)
	return out
}

func removeAt(records []model.Agreement, idx int) []model.Agreement {
	out := make([]model.Agreement, 0, len(records)-1)
	out = append(out, records[:idx]...)
	return append(out, records[idx+1:]...)
}
