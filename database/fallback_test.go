package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/omar-mohamud/raagsanplatform/errs"
	"github.com/omar-mohamud/raagsanplatform/models"
)

func TestFallbackStore_SeedContent(t *testing.T) {
	store := NewFallbackStore("")

	items := store.List()
	require.Len(t, items, 1)
	require.Equal(t, "sepow", items[0].Slug)
	require.True(t, items[0].Visible)
	require.Equal(t, models.ProjectPublished, items[0].Status)
}

func TestFallbackStore_ListReturnsCopies(t *testing.T) {
	store := NewFallbackStore("")

	items := store.List()
	items[0].Title = "mutated"
	items[0].Visible = false

	again := store.List()
	require.NotEqual(t, "mutated", again[0].Title)
	require.True(t, again[0].Visible)
}

func TestFallbackStore_Update(t *testing.T) {
	store := NewFallbackStore("")
	id := store.List()[0].ID

	before := time.Now().UTC().Add(-time.Second)
	updated, err := store.Update(id, map[string]any{"visible": false, "status": "draft"})
	require.NoError(t, err)
	require.False(t, updated.Visible)
	require.Equal(t, models.ProjectDraft, updated.Status)
	require.True(t, updated.UpdatedAt.After(before))

	// the returned record is a copy, not a handle into the store
	updated.Title = "mutated"
	require.NotEqual(t, "mutated", store.List()[0].Title)
}

func TestFallbackStore_UpdateUnknownID(t *testing.T) {
	store := NewFallbackStore("")

	_, err := store.Update(uuid.New(), map[string]any{"visible": false})
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestFallbackStore_FileDurability(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fallback.json")

	store := NewFallbackStore(path)
	id := store.List()[0].ID
	_, err := store.Update(id, map[string]any{"visible": false})
	require.NoError(t, err)

	// a freshly started process reading the same file observes the change
	reopened := NewFallbackStore(path)
	items := reopened.List()
	require.Len(t, items, 1)
	require.False(t, items[0].Visible)
}

func TestFallbackStore_Reorder(t *testing.T) {
	store := NewFallbackStore("")
	a := store.List()[0]
	b := models.Project{ID: uuid.New(), Slug: "b", Title: "B", Visible: true, Order: 1, CreatedAt: time.Now().UTC()}
	c := models.Project{ID: uuid.New(), Slug: "c", Title: "C", Visible: true, Order: 2, CreatedAt: time.Now().UTC()}
	require.NoError(t, store.Insert(b))
	require.NoError(t, store.Insert(c))

	// [B, A, C] from an initial [A, B, C]
	require.NoError(t, store.Reorder([]uuid.UUID{b.ID, a.ID, c.ID}))

	items := store.List()
	require.Equal(t, []string{"b", "sepow", "c"}, slugsOf(items))
	for i, p := range items {
		require.Equal(t, i, p.Order)
	}
}

func TestFallbackStore_ReorderIdempotent(t *testing.T) {
	store := NewFallbackStore("")
	a := store.List()[0]
	b := models.Project{ID: uuid.New(), Slug: "b", Title: "B", CreatedAt: time.Now().UTC()}
	require.NoError(t, store.Insert(b))

	ids := []uuid.UUID{b.ID, a.ID}
	require.NoError(t, store.Reorder(ids))
	first := slugsOf(store.List())

	require.NoError(t, store.Reorder(ids))
	second := slugsOf(store.List())

	require.Equal(t, first, second)
	for i, p := range store.List() {
		require.Equal(t, i, p.Order)
	}
}

func TestFallbackStore_ReorderIgnoresUnknownIDs(t *testing.T) {
	store := NewFallbackStore("")
	a := store.List()[0]

	require.NoError(t, store.Reorder([]uuid.UUID{uuid.New(), a.ID}))

	items := store.List()
	require.Len(t, items, 1)
	require.Equal(t, "sepow", items[0].Slug)
	require.Equal(t, 0, items[0].Order)
}

func TestFallbackStore_FindBySlug(t *testing.T) {
	store := NewFallbackStore("")

	p, err := store.FindBySlug("sepow")
	require.NoError(t, err)
	require.Equal(t, "sepow", p.Slug)

	_, err = store.FindBySlug("missing")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func slugsOf(items []models.Project) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.Slug)
	}
	return out
}
