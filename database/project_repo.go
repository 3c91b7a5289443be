package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/omar-mohamud/raagsanplatform/errs"
	"github.com/omar-mohamud/raagsanplatform/models"
)

// metaColumns translates allow-listed update fields to their columns.
var metaColumns = map[string]string{
	"visible":   "visible",
	"status":    "status",
	"order":     "display_order",
	"startDate": "start_date",
	"endDate":   "end_date",
}

// ProjectRepo runs project queries against the primary store. Every method
// acquires the shared connection through the manager first, so a dead store
// fails here and the caller can fall back.
type ProjectRepo struct {
	conns *ConnManager
}

func NewProjectRepo(conns *ConnManager) *ProjectRepo {
	return &ProjectRepo{conns}
}

// FindAll returns projects ordered by (display rank asc, createdAt desc),
// optionally restricted to visible ones.
func (r *ProjectRepo) FindAll(ctx context.Context, visibleOnly bool) ([]models.Project, error) {
	conn, err := r.conns.Connect(ctx)
	if err != nil {
		return nil, err
	}

	q := conn.WithContext(ctx).Order("display_order ASC, created_at DESC")
	if visibleOnly {
		q = q.Where("visible = ?", true)
	}

	var projects []models.Project
	if err := q.Find(&projects).Error; err != nil {
		return nil, r.conns.Observe(err)
	}
	return projects, nil
}

// FindBySlug returns one project by its slug.
func (r *ProjectRepo) FindBySlug(ctx context.Context, slug string) (models.Project, error) {
	conn, err := r.conns.Connect(ctx)
	if err != nil {
		return models.Project{}, err
	}

	var project models.Project
	err = conn.WithContext(ctx).Where("slug = ?", slug).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Project{}, fmt.Errorf("project %q: %w", slug, errs.ErrNotFound)
	}
	if err != nil {
		return models.Project{}, r.conns.Observe(err)
	}
	return project, nil
}

// Add inserts a new project.
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	conn, err := r.conns.Connect(ctx)
	if err != nil {
		return err
	}
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	return r.conns.Observe(conn.WithContext(ctx).Create(project).Error)
}

// UpdateMeta applies already-filtered metadata fields to one project and
// returns the updated record.
func (r *ProjectRepo) UpdateMeta(ctx context.Context, id uuid.UUID, fields map[string]any) (models.Project, error) {
	conn, err := r.conns.Connect(ctx)
	if err != nil {
		return models.Project{}, err
	}

	columns := make(map[string]any, len(fields))
	for field, value := range fields {
		if col, ok := metaColumns[field]; ok {
			columns[col] = value
		}
	}

	res := conn.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Updates(columns)
	if res.Error != nil {
		return models.Project{}, r.conns.Observe(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.Project{}, fmt.Errorf("project %s: %w", id, errs.ErrNotFound)
	}

	var project models.Project
	if err := conn.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		return models.Project{}, r.conns.Observe(err)
	}
	return project, nil
}

// Reorder persists position-derived display ranks for the given sequence.
// Each record's update is issued as an independent write; there is no
// wrapping transaction, so a crash mid-batch can leave a partial sequence
// (accepted, admin write volume is low and reorder is idempotent).
func (r *ProjectRepo) Reorder(ctx context.Context, ids []uuid.UUID) error {
	conn, err := r.conns.Connect(ctx)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			return conn.WithContext(gctx).Model(&models.Project{}).
				Where("id = ?", id).
				Update("display_order", i).Error
		})
	}
	return r.conns.Observe(g.Wait())
}

// Delete removes a project by slug. Deletion is blocked while stories still
// reference the project.
func (r *ProjectRepo) Delete(ctx context.Context, slug string) error {
	conn, err := r.conns.Connect(ctx)
	if err != nil {
		return err
	}

	project, err := r.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}

	var stories int64
	if err := conn.WithContext(ctx).Model(&models.Story{}).
		Where("project_id = ?", project.ID).Count(&stories).Error; err != nil {
		return r.conns.Observe(err)
	}
	if stories > 0 {
		return errs.NewConflictError(fmt.Sprintf("project %q still has %d stories", slug, stories))
	}

	return r.conns.Observe(conn.WithContext(ctx).Delete(&models.Project{}, "id = ?", project.ID).Error)
}
