package database

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/omar-mohamud/raagsanplatform/errs"
	"github.com/omar-mohamud/raagsanplatform/models"
)

// seedProjects is the content the fallback store starts with. It is NOT a
// cache of the primary store: it has its own lifecycle, and edits made here
// while the primary store is down are never replayed against it.
func seedProjects() []models.Project {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	return []models.Project{
		{
			ID:        uuid.MustParse("6f1cf9dd-92a4-4f7d-9a5c-0b89c1f2a641"),
			Slug:      "sepow",
			Title:     "Socio-Economic Participation of Women-led Households (SEPOW)",
			Summary:   "Understanding how women-led households navigate displacement, livelihoods, and aspirations in Somalia.",
			HeroImage: "https://res.cloudinary.com/dxcjrsrna/image/upload/raagsan/sepow/hero",
			Status:    models.ProjectPublished,
			Visible:   true,
			Order:     0,
			StartDate: &start,
			EndDate:   &end,
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Now().UTC(),
		},
	}
}

// FallbackStore serves project records when the primary store is
// unreachable. Records live in process memory; when a file path is
// configured, every mutation rewrites the file before returning and reads
// reload from it, so restarts and sibling processes observe the latest edit.
type FallbackStore struct {
	mu     sync.Mutex
	path   string // empty means memory-only
	items  []models.Project
	logger zerolog.Logger
}

// NewFallbackStore builds a store backed by path, or memory-only when path
// is empty. An existing file wins over the seed content.
func NewFallbackStore(path string) *FallbackStore {
	s := &FallbackStore{
		path:   path,
		logger: log.With().Str("component", "fallbackStore").Logger(),
	}
	if path == "" || !s.loadLocked() {
		s.items = seedProjects()
	}
	return s
}

// List returns the current record set as defensive copies, sorted by
// (order asc, createdAt desc).
func (s *FallbackStore) List() []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reloadLocked()

	out := make([]models.Project, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, p.Clone())
	}
	sortProjects(out)
	return out
}

func (s *FallbackStore) FindBySlug(slug string) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reloadLocked()

	for _, p := range s.items {
		if p.Slug == slug {
			return p.Clone(), nil
		}
	}
	return models.Project{}, fmt.Errorf("project %q: %w", slug, errs.ErrNotFound)
}

// Update merges already-filtered metadata fields into the matching record,
// stamps UpdatedAt, persists, and returns the merged copy.
func (s *FallbackStore) Update(id uuid.UUID, fields map[string]any) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reloadLocked()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].ApplyMeta(fields)
			if err := s.persistLocked(); err != nil {
				return models.Project{}, err
			}
			return s.items[i].Clone(), nil
		}
	}
	return models.Project{}, fmt.Errorf("project %s: %w", id, errs.ErrNotFound)
}

// Reorder replaces the set's ordering with the supplied sequence, deriving
// each record's order from its position. Ids not present in the store are
// ignored; records missing from the sequence keep their relative order after
// the listed ones. Total replacement, idempotent.
func (s *FallbackStore) Reorder(ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reloadLocked()

	rank := make(map[uuid.UUID]int, len(ids))
	for i, id := range ids {
		rank[id] = i
	}

	// stable: unlisted records trail in their current relative order
	sort.SliceStable(s.items, func(i, j int) bool {
		ri, iOK := rank[s.items[i].ID]
		rj, jOK := rank[s.items[j].ID]
		if iOK && jOK {
			return ri < rj
		}
		return iOK && !jOK
	})
	now := time.Now().UTC()
	for i := range s.items {
		s.items[i].Order = i
		s.items[i].UpdatedAt = now
	}

	return s.persistLocked()
}

// Insert adds or replaces a record by id. Used by seeding and tests.
func (s *FallbackStore) Insert(p models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reloadLocked()

	for i := range s.items {
		if s.items[i].ID == p.ID {
			s.items[i] = p.Clone()
			return s.persistLocked()
		}
	}
	s.items = append(s.items, p.Clone())
	return s.persistLocked()
}

// reloadLocked refreshes from disk when file-backed so multiple processes
// sharing the file never serve stale state.
func (s *FallbackStore) reloadLocked() {
	if s.path == "" {
		return
	}
	s.loadLocked()
}

func (s *FallbackStore) loadLocked() bool {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("could not read fallback file")
		}
		return false
	}
	var items []models.Project
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("fallback file is corrupt, keeping in-memory state")
		return false
	}
	s.items = items
	return true
}

// persistLocked writes the whole record set synchronously so that a restart
// observes the latest admin-made change. Memory-only stores skip it.
func (s *FallbackStore) persistLocked() error {
	if s.path == "" {
		return nil
	}
	raw, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("could not persist fallback file")
		return err
	}
	return nil
}

func sortProjects(items []models.Project) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
