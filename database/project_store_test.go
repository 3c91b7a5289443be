package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/omar-mohamud/raagsanplatform/errs"
	"github.com/omar-mohamud/raagsanplatform/models"
)

// offlineStore builds a ProjectStore whose primary is unreachable (no DSN),
// so every operation exercises the fallback path.
func offlineStore() (*ProjectStore, *FallbackStore) {
	fallback := NewFallbackStore("")
	primary := NewProjectRepo(NewConnManager(ConnOptions{}))
	return NewProjectStore(primary, fallback), fallback
}

func TestProjectStore_ListServesFallbackWhenPrimaryIsDown(t *testing.T) {
	store, _ := offlineStore()

	projects, err := store.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, "sepow", projects[0].Slug)
}

func TestProjectStore_ListVisibleFilterAppliesToFallback(t *testing.T) {
	store, fallback := offlineStore()
	hidden := models.Project{ID: uuid.New(), Slug: "hidden", Title: "Hidden", Visible: false}
	require.NoError(t, fallback.Insert(hidden))

	all, err := store.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, all, 2)

	visible, err := store.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	require.Equal(t, "sepow", visible[0].Slug)
}

func TestProjectStore_FindBySlugFallsBack(t *testing.T) {
	store, _ := offlineStore()

	project, err := store.FindBySlug(context.Background(), "sepow")
	require.NoError(t, err)
	require.Equal(t, "sepow", project.Slug)
}

func TestProjectStore_FindBySlugMissingIsNotFoundNotUnavailable(t *testing.T) {
	store, _ := offlineStore()

	_, err := store.FindBySlug(context.Background(), "does-not-exist")
	require.True(t, errs.IsNotFound(err))
	require.False(t, errs.IsStoreUnavailable(err))
}

func TestProjectStore_UpdateMetaFiltersUnknownFields(t *testing.T) {
	store, fallback := offlineStore()
	id := fallback.List()[0].ID

	updated, err := store.UpdateMeta(context.Background(), id, map[string]any{
		"visible": false,
		"title":   "hijacked",
		"slug":    "hijacked",
	})
	require.NoError(t, err)
	require.False(t, updated.Visible)
	require.NotEqual(t, "hijacked", updated.Title)
	require.Equal(t, "sepow", updated.Slug)
}

func TestProjectStore_UpdateMetaNothingUpdatable(t *testing.T) {
	store, _ := offlineStore()

	_, err := store.UpdateMeta(context.Background(), uuid.New(), map[string]any{
		"title": "not allowed",
		"id":    "not allowed",
	})
	require.True(t, errs.IsValidationError(err))
}

func TestProjectStore_UpdateMetaUnknownID(t *testing.T) {
	store, _ := offlineStore()

	_, err := store.UpdateMeta(context.Background(), uuid.New(), map[string]any{"visible": true})
	require.True(t, errs.IsNotFound(err))
}

func TestProjectStore_ReorderFallsBack(t *testing.T) {
	store, fallback := offlineStore()
	a := fallback.List()[0]
	b := models.Project{ID: uuid.New(), Slug: "b", Title: "B", Visible: true, Order: 1}
	require.NoError(t, fallback.Insert(b))

	require.NoError(t, store.Reorder(context.Background(), []uuid.UUID{b.ID, a.ID}))

	projects, err := store.List(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, "b", projects[0].Slug)
	require.Equal(t, 0, projects[0].Order)
	require.Equal(t, "sepow", projects[1].Slug)
	require.Equal(t, 1, projects[1].Order)
}

func TestProjectStore_CreateFallsBackOnConnectionError(t *testing.T) {
	store, fallback := offlineStore()

	project := models.Project{Slug: "new-project", Title: "New Project", Visible: true}
	require.NoError(t, store.Create(context.Background(), &project))
	require.NotEqual(t, uuid.Nil, project.ID)

	stored, err := fallback.FindBySlug("new-project")
	require.NoError(t, err)
	require.Equal(t, project.ID, stored.ID)
}

func TestProjectStore_CreateRequiresTitleAndSlug(t *testing.T) {
	store, fallback := offlineStore()

	err := store.Create(context.Background(), &models.Project{Slug: "no-title"})
	require.True(t, errs.IsValidationError(err))

	err = store.Create(context.Background(), &models.Project{Title: "No Slug"})
	require.True(t, errs.IsValidationError(err))

	// validation happens before any store is touched
	require.Len(t, fallback.List(), 1)
}
