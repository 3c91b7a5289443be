package database

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/omar-mohamud/raagsanplatform/models"
)

// StoryStore fronts story reads and writes. Stories live only in the primary
// store, so connection failures surface directly instead of degrading; the
// project lookup that anchors a story list may still be answered by the
// fallback set, but the story list itself always comes from one store.
type StoryStore struct {
	stories  *StoryRepo
	projects *ProjectStore
	logger   zerolog.Logger
}

func NewStoryStore(stories *StoryRepo, projects *ProjectStore) *StoryStore {
	return &StoryStore{
		stories:  stories,
		projects: projects,
		logger:   log.With().Str("component", "storyStore").Logger(),
	}
}

// ListForProject returns the stories owned by the project with the given
// slug, newest first.
func (s *StoryStore) ListForProject(ctx context.Context, projectSlug string) ([]models.Story, error) {
	project, err := s.projects.FindBySlug(ctx, projectSlug)
	if err != nil {
		return nil, err
	}
	return s.stories.FindAllForProject(ctx, project.ID)
}

// FindBySlug returns one story by its slug.
func (s *StoryStore) FindBySlug(ctx context.Context, slug string) (models.Story, error) {
	return s.stories.FindBySlug(ctx, slug)
}

// Create inserts a story under the project with the given slug.
func (s *StoryStore) Create(ctx context.Context, projectSlug string, story *models.Story) error {
	project, err := s.projects.FindBySlug(ctx, projectSlug)
	if err != nil {
		return err
	}
	story.ProjectID = project.ID
	return s.stories.Add(ctx, story)
}

// Patch applies a partial update to the story with the given slug.
func (s *StoryStore) Patch(ctx context.Context, slug string, patch models.StoryPatch) (models.Story, error) {
	return s.stories.Patch(ctx, slug, patch)
}

// Delete removes the story with the given slug.
func (s *StoryStore) Delete(ctx context.Context, slug string) error {
	return s.stories.Delete(ctx, slug)
}
