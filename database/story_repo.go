package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omar-mohamud/raagsanplatform/errs"
	"github.com/omar-mohamud/raagsanplatform/models"
)

// StoryRepo runs story queries against the primary store. Stories have no
// fallback path: when the primary store is down these operations surface
// the connection error directly.
type StoryRepo struct {
	conns *ConnManager
}

func NewStoryRepo(conns *ConnManager) *StoryRepo {
	return &StoryRepo{conns}
}

// FindAllForProject returns a project's stories, newest first.
func (r *StoryRepo) FindAllForProject(ctx context.Context, projectID uuid.UUID) ([]models.Story, error) {
	conn, err := r.conns.Connect(ctx)
	if err != nil {
		return nil, err
	}

	var stories []models.Story
	err = conn.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&stories).Error
	if err != nil {
		return nil, r.conns.Observe(err)
	}
	return stories, nil
}

// FindBySlug returns one story by its slug.
func (r *StoryRepo) FindBySlug(ctx context.Context, slug string) (models.Story, error) {
	conn, err := r.conns.Connect(ctx)
	if err != nil {
		return models.Story{}, err
	}

	var story models.Story
	err = conn.WithContext(ctx).Where("slug = ?", slug).First(&story).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Story{}, fmt.Errorf("story %q: %w", slug, errs.ErrNotFound)
	}
	if err != nil {
		return models.Story{}, r.conns.Observe(err)
	}
	return story, nil
}

// Add inserts a new story.
func (r *StoryRepo) Add(ctx context.Context, story *models.Story) error {
	conn, err := r.conns.Connect(ctx)
	if err != nil {
		return err
	}
	if story.ID == uuid.Nil {
		story.ID = uuid.New()
	}
	return r.conns.Observe(conn.WithContext(ctx).Create(story).Error)
}

// Patch applies the set fields of a story patch and returns the updated
// record.
func (r *StoryRepo) Patch(ctx context.Context, slug string, patch models.StoryPatch) (models.Story, error) {
	conn, err := r.conns.Connect(ctx)
	if err != nil {
		return models.Story{}, err
	}

	changes := patch.Changes()
	if len(changes) == 0 {
		return models.Story{}, errs.NewNothingToSaveError()
	}

	res := conn.WithContext(ctx).Model(&models.Story{}).Where("slug = ?", slug).Updates(changes)
	if res.Error != nil {
		return models.Story{}, r.conns.Observe(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.Story{}, fmt.Errorf("story %q: %w", slug, errs.ErrNotFound)
	}

	var story models.Story
	if err := conn.WithContext(ctx).Where("slug = ?", slug).First(&story).Error; err != nil {
		return models.Story{}, r.conns.Observe(err)
	}
	return story, nil
}

// Delete removes a story by slug.
func (r *StoryRepo) Delete(ctx context.Context, slug string) error {
	conn, err := r.conns.Connect(ctx)
	if err != nil {
		return err
	}

	res := conn.WithContext(ctx).Where("slug = ?", slug).Delete(&models.Story{})
	if res.Error != nil {
		return r.conns.Observe(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("story %q: %w", slug, errs.ErrNotFound)
	}
	return nil
}
