package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/omar-mohamud/raagsanplatform/errs"
)

// Stories live only in the primary store: with it unreachable, story
// operations surface the connection error instead of degrading.
func TestStoryStore_PrimaryOnly(t *testing.T) {
	fallback := NewFallbackStore("")
	conns := NewConnManager(ConnOptions{})
	projects := NewProjectStore(NewProjectRepo(conns), fallback)
	stories := NewStoryStore(NewStoryRepo(conns), projects)

	_, err := stories.ListForProject(context.Background(), "sepow")
	require.True(t, errs.IsConnectionError(err))

	_, err = stories.FindBySlug(context.Background(), "some-story")
	require.True(t, errs.IsConnectionError(err))
}

// A missing anchor project is reported as NotFound before the story table is
// ever consulted.
func TestStoryStore_ListForMissingProject(t *testing.T) {
	fallback := NewFallbackStore("")
	conns := NewConnManager(ConnOptions{})
	projects := NewProjectStore(NewProjectRepo(conns), fallback)
	stories := NewStoryStore(NewStoryRepo(conns), projects)

	_, err := stories.ListForProject(context.Background(), "missing-project")
	require.True(t, errs.IsNotFound(err))
}
