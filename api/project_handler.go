package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/omar-mohamud/raagsanplatform/database"
	"github.com/omar-mohamud/raagsanplatform/errs"
	"github.com/omar-mohamud/raagsanplatform/models"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  *database.ProjectStore
	stories   *database.StoryStore
}

func newProjectHandler(projects *database.ProjectStore, stories *database.StoryStore) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
		stories:   stories,
	}
}

// listProjects retrieves projects for the public site, ordered by display
// rank then newest first. ?visible=true restricts to visible ones.
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visibleOnly := r.URL.Query().Get("visible") == "true"

		projects, err := h.projects.List(r.Context(), visibleOnly)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "projects", err))
			return
		}

		h.responder.WriteJSON(w, dataResponse{Success: true, Data: projects})
	}
}

// getProject retrieves a specific project by slug
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		project, err := h.projects.FindBySlug(r.Context(), slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		h.responder.WriteJSON(w, dataResponse{Success: true, Data: project})
	}
}

// createProject creates a new project
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var project models.Project
		if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if err := h.projects.Create(r.Context(), &project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, dataResponse{Success: true, Data: project})
	}
}

// deleteProject deletes a project by slug. Blocked while stories still
// reference it.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		if err := h.projects.Delete(r.Context(), slug); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.responder.WriteJSON(w, dataResponse{Success: true})
	}
}

// listProjectStories retrieves the stories owned by a project
func (h projectHandler) listProjectStories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		stories, err := h.stories.ListForProject(r.Context(), slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "stories", err))
			return
		}

		h.responder.WriteJSON(w, dataResponse{Success: true, Data: stories})
	}
}

// createProjectStory creates a story under a project
func (h projectHandler) createProjectStory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		var story models.Story
		if err := json.NewDecoder(r.Body).Decode(&story); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode story request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if story.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		if story.Slug == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("slug"))
			return
		}

		if err := h.stories.Create(r.Context(), slug, &story); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "story", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, dataResponse{Success: true, Data: story})
	}
}
