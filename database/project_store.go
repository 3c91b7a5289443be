package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/omar-mohamud/raagsanplatform/errs"
	"github.com/omar-mohamud/raagsanplatform/models"
)

// ProjectStore is the single read/write surface the rest of the app uses for
// projects. Every operation attempts the primary store first and, on any
// failure except NotFound, retries the same logical operation against the
// fallback store. One call returns records from exactly one store, never a
// mix. Absence is not a connectivity problem, so NotFound never triggers a
// fallback retry.
type ProjectStore struct {
	primary  *ProjectRepo
	fallback *FallbackStore
	logger   zerolog.Logger
}

func NewProjectStore(primary *ProjectRepo, fallback *FallbackStore) *ProjectStore {
	return &ProjectStore{
		primary:  primary,
		fallback: fallback,
		logger:   log.With().Str("component", "projectStore").Logger(),
	}
}

// List returns all projects ordered by (order asc, createdAt desc),
// restricted to visible ones when visibleOnly is set.
func (s *ProjectStore) List(ctx context.Context, visibleOnly bool) ([]models.Project, error) {
	projects, err := s.primary.FindAll(ctx, visibleOnly)
	if err == nil {
		return projects, nil
	}
	s.logger.Warn().Err(err).Msg("primary store list failed, serving fallback data")

	items := s.fallback.List()
	if !visibleOnly {
		return items, nil
	}
	visible := make([]models.Project, 0, len(items))
	for _, p := range items {
		if p.Visible {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

// FindBySlug returns one project by slug from whichever store answered.
func (s *ProjectStore) FindBySlug(ctx context.Context, slug string) (models.Project, error) {
	project, err := s.primary.FindBySlug(ctx, slug)
	if err == nil || errs.IsNotFound(err) {
		return project, err
	}
	s.logger.Warn().Err(err).Str("slug", slug).Msg("primary store lookup failed, trying fallback")

	project, fbErr := s.fallback.FindBySlug(slug)
	if fbErr == nil || errs.IsNotFound(fbErr) {
		return project, fbErr
	}
	return models.Project{}, errs.NewStoreUnavailableError("find project", errors.Join(err, fbErr))
}

// Create inserts a new project, falling back to the local set when the
// primary store is unreachable. A record created only in the fallback set is
// never replayed against the primary store (accepted divergence).
func (s *ProjectStore) Create(ctx context.Context, project *models.Project) error {
	if project.Title == "" {
		return errs.NewMissingRequiredFieldError("title")
	}
	if project.Slug == "" {
		return errs.NewMissingRequiredFieldError("slug")
	}

	err := s.primary.Add(ctx, project)
	if err == nil || !errs.IsConnectionError(err) {
		return err
	}
	s.logger.Warn().Err(err).Str("slug", project.Slug).Msg("primary store create failed, writing to fallback")

	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if fbErr := s.fallback.Insert(*project); fbErr != nil {
		return errs.NewStoreUnavailableError("create project", errors.Join(err, fbErr))
	}
	return nil
}

// UpdateMeta applies a metadata update to one project. Only the fixed
// allow-list of fields survives filtering; a payload with nothing updatable
// is rejected before any store is consulted.
func (s *ProjectStore) UpdateMeta(ctx context.Context, id uuid.UUID, updates map[string]any) (models.Project, error) {
	fields := models.FilterProjectMeta(updates)
	if len(fields) == 0 {
		return models.Project{}, errs.NewNothingToSaveError()
	}

	project, err := s.primary.UpdateMeta(ctx, id, fields)
	if err == nil || errs.IsNotFound(err) {
		return project, err
	}
	s.logger.Warn().Err(err).Str("projectId", id.String()).Msg("primary store update failed, updating fallback")

	project, fbErr := s.fallback.Update(id, fields)
	if fbErr == nil || errs.IsNotFound(fbErr) {
		return project, fbErr
	}
	return models.Project{}, errs.NewStoreUnavailableError("update project", errors.Join(err, fbErr))
}

// Reorder persists a full replacement of the display order: position 0 gets
// order 0, and so on. Calling it twice with the same sequence is a no-op the
// second time.
func (s *ProjectStore) Reorder(ctx context.Context, ids []uuid.UUID) error {
	err := s.primary.Reorder(ctx, ids)
	if err == nil {
		return nil
	}
	s.logger.Warn().Err(err).Msg("primary store reorder failed, reordering fallback")

	if fbErr := s.fallback.Reorder(ids); fbErr != nil {
		return errs.NewStoreUnavailableError("reorder projects", errors.Join(err, fbErr))
	}
	return nil
}

// Delete removes a project by slug. Primary store only: the fallback set is
// seed content, not a deletion target, and deletion is peripheral to the
// admin flows.
func (s *ProjectStore) Delete(ctx context.Context, slug string) error {
	return s.primary.Delete(ctx, slug)
}
