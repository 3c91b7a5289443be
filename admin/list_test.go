package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/omar-mohamud/raagsanplatform/models"
)

// recordingNotifier captures what the portal would render.
type recordingNotifier struct {
	toasts  []string
	errs    []string
	banners []string
}

func (n *recordingNotifier) Toast(msg string)      { n.toasts = append(n.toasts, msg) }
func (n *recordingNotifier) ToastError(msg string) { n.errs = append(n.errs, msg) }
func (n *recordingNotifier) Banner(msg string)     { n.banners = append(n.banners, msg) }

// adminStub fakes the admin endpoints: it serves a fixed list, applies
// PATCHes server-side, and records every reorder it receives.
type adminStub struct {
	t *testing.T

	projects  []models.Project
	failWrite bool

	reorders [][]string
	patches  int
}

func (s *adminStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/projects", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(s.projects)
		case http.MethodPatch:
			s.patches++
			if s.failWrite {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{"error": "database connection failed"})
				return
			}
			var body struct {
				ProjectID string         `json:"projectId"`
				Updates   map[string]any `json:"updates"`
			}
			require.NoError(s.t, json.NewDecoder(r.Body).Decode(&body))
			for i := range s.projects {
				if s.projects[i].ID.String() == body.ProjectID {
					s.projects[i].ApplyMeta(models.FilterProjectMeta(body.Updates))
					json.NewEncoder(w).Encode(s.projects[i])
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "project not found"})
		case http.MethodPut:
			if s.failWrite {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{"error": "database connection failed"})
				return
			}
			var body struct {
				Projects []struct {
					ID string `json:"id"`
				} `json:"projects"`
			}
			require.NoError(s.t, json.NewDecoder(r.Body).Decode(&body))
			ids := make([]string, 0, len(body.Projects))
			for _, p := range body.Projects {
				ids = append(ids, p.ID)
			}
			s.reorders = append(s.reorders, ids)
			json.NewEncoder(w).Encode(map[string]bool{"success": true})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	return mux
}

func threeProjects() []models.Project {
	now := time.Now().UTC()
	return []models.Project{
		{ID: uuid.New(), Slug: "alpha", Title: "Alpha", Visible: true, Order: 0, CreatedAt: now},
		{ID: uuid.New(), Slug: "beta", Title: "Beta", Visible: true, Order: 1, CreatedAt: now},
		{ID: uuid.New(), Slug: "gamma", Title: "Gamma", Visible: false, Order: 2, CreatedAt: now},
	}
}

func newTestList(t *testing.T, stub *adminStub) (*ProjectList, *recordingNotifier) {
	t.Helper()
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)

	notifier := &recordingNotifier{}
	list := NewProjectList(NewClient(srv.URL, "test-token"), notifier)
	require.NoError(t, list.Refresh(context.Background()))
	return list, notifier
}

func listSlugs(list *ProjectList) []string {
	out := []string{}
	for _, p := range list.Projects() {
		out = append(out, p.Slug)
	}
	return out
}

func TestProjectList_MoveDownPersistsNewOrder(t *testing.T) {
	stub := &adminStub{t: t, projects: threeProjects()}
	list, notifier := newTestList(t, stub)
	alpha := stub.projects[0].ID

	require.NoError(t, list.MoveProject(context.Background(), alpha, MoveDown))

	require.Equal(t, []string{"beta", "alpha", "gamma"}, listSlugs(list))
	require.Len(t, stub.reorders, 1)
	require.Equal(t, []string{
		stub.projects[1].ID.String(),
		stub.projects[0].ID.String(),
		stub.projects[2].ID.String(),
	}, stub.reorders[0])
	require.Equal(t, []string{"Project order updated"}, notifier.toasts)
}

func TestProjectList_BoundaryMoveIsSilentNoOp(t *testing.T) {
	stub := &adminStub{t: t, projects: threeProjects()}
	list, notifier := newTestList(t, stub)

	require.NoError(t, list.MoveProject(context.Background(), stub.projects[0].ID, MoveUp))
	require.NoError(t, list.MoveProject(context.Background(), stub.projects[2].ID, MoveDown))

	require.Equal(t, []string{"alpha", "beta", "gamma"}, listSlugs(list))
	require.Empty(t, stub.reorders)
	require.Empty(t, notifier.toasts)
	require.Empty(t, notifier.errs)
}

func TestProjectList_MoveFailureRevertsToConfirmed(t *testing.T) {
	stub := &adminStub{t: t, projects: threeProjects()}
	list, notifier := newTestList(t, stub)
	stub.failWrite = true

	err := list.MoveProject(context.Background(), stub.projects[0].ID, MoveDown)
	require.Error(t, err)

	require.Equal(t, []string{"alpha", "beta", "gamma"}, listSlugs(list))
	require.Len(t, notifier.errs, 1)
	require.Contains(t, notifier.errs[0], "Failed to update order")
}

func TestProjectList_UpdateAdoptsServerRecord(t *testing.T) {
	stub := &adminStub{t: t, projects: threeProjects()}
	list, notifier := newTestList(t, stub)
	gamma := stub.projects[2].ID

	require.NoError(t, list.UpdateProject(context.Background(), gamma, map[string]any{"visible": true}))

	projects := list.Projects()
	require.True(t, projects[2].Visible)
	// updatedAt is computed server-side and must come from the response
	require.Equal(t, stub.projects[2].UpdatedAt.Unix(), projects[2].UpdatedAt.Unix())
	require.Equal(t, []string{"Changes saved successfully"}, notifier.toasts)
}

func TestProjectList_UpdateFailureRevertsToConfirmed(t *testing.T) {
	stub := &adminStub{t: t, projects: threeProjects()}
	list, notifier := newTestList(t, stub)
	stub.failWrite = true

	err := list.UpdateProject(context.Background(), stub.projects[0].ID, map[string]any{"visible": false})
	require.Error(t, err)

	require.True(t, list.Projects()[0].Visible)
	require.Len(t, notifier.errs, 1)
	require.Contains(t, notifier.errs[0], "Failed to save changes")
}

func TestProjectList_UpdateUnknownProject(t *testing.T) {
	stub := &adminStub{t: t, projects: threeProjects()}
	list, _ := newTestList(t, stub)

	require.Error(t, list.UpdateProject(context.Background(), uuid.New(), map[string]any{"visible": false}))
	require.Zero(t, stub.patches)
}

func TestProjectList_RefreshTimeoutShowsDistinctBanner(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(slow.Close)

	notifier := &recordingNotifier{}
	client := NewClient(slow.URL, "test-token", WithTimeout(50*time.Millisecond))
	list := NewProjectList(client, notifier)

	err := list.Refresh(context.Background())
	require.ErrorIs(t, err, ErrTimedOut)
	require.Len(t, notifier.banners, 1)
	require.Contains(t, notifier.banners[0], "timed out")
}

func TestProjectList_RefreshServerErrorGenericBanner(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(down.Close)

	notifier := &recordingNotifier{}
	list := NewProjectList(NewClient(down.URL, "test-token"), notifier)

	require.Error(t, list.Refresh(context.Background()))
	require.Len(t, notifier.banners, 1)
	require.NotContains(t, notifier.banners[0], "timed out")
}
