package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFilterProjectMeta(t *testing.T) {
	filtered := FilterProjectMeta(map[string]any{
		"visible":   true,
		"status":    "published",
		"order":     float64(3),
		"startDate": "2024-01-15",
		"endDate":   nil,
		"title":     "not allowed",
		"slug":      "not-allowed",
		"id":        "not-allowed",
	})

	require.Len(t, filtered, 5)
	require.NotContains(t, filtered, "title")
	require.NotContains(t, filtered, "slug")
	require.NotContains(t, filtered, "id")
}

func TestFilterProjectMetaEmptyPayload(t *testing.T) {
	require.Empty(t, FilterProjectMeta(map[string]any{"title": "x"}))
	require.Empty(t, FilterProjectMeta(nil))
}

func TestApplyMeta(t *testing.T) {
	p := Project{Title: "Original", Visible: true, Status: ProjectDraft}

	p.ApplyMeta(map[string]any{
		"visible":   false,
		"status":    "published",
		"order":     float64(7),
		"startDate": "2023-06-01T00:00:00Z",
		"endDate":   "2024-02-29",
	})

	require.False(t, p.Visible)
	require.Equal(t, ProjectPublished, p.Status)
	require.Equal(t, 7, p.Order)
	require.Equal(t, "Original", p.Title)

	require.NotNil(t, p.StartDate)
	require.Equal(t, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), p.StartDate.UTC())
	require.NotNil(t, p.EndDate)
	require.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), p.EndDate.UTC())
	require.False(t, p.UpdatedAt.IsZero())
}

func TestApplyMetaClearsDates(t *testing.T) {
	start := time.Now().UTC()
	p := Project{StartDate: &start}

	p.ApplyMeta(map[string]any{"startDate": nil})

	require.Nil(t, p.StartDate)
}

func TestApplyMetaIgnoresWrongTypes(t *testing.T) {
	p := Project{Visible: true, Order: 2}

	p.ApplyMeta(map[string]any{
		"visible":   "yes",
		"order":     "first",
		"startDate": "not-a-date",
	})

	require.True(t, p.Visible)
	require.Equal(t, 2, p.Order)
	require.Nil(t, p.StartDate)
}
