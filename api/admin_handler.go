package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/omar-mohamud/raagsanplatform/database"
	"github.com/omar-mohamud/raagsanplatform/errs"
)

// adminHandler serves the admin portal's project-management endpoints:
// unfiltered listing, allow-listed metadata updates, and bulk reordering.
type adminHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  *database.ProjectStore
}

func newAdminHandler(projects *database.ProjectStore) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
	}
}

// getAllProjects returns every project, visible or not, in display order.
// The admin UI holds this list as its local ordering state.
func (h adminHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projects.List(r.Context(), false)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "projects", err))
			return
		}

		h.responder.WriteJSON(w, projects)
	}
}

type projectMetaRequest struct {
	ProjectID string         `json:"projectId"`
	Updates   map[string]any `json:"updates"`
}

// updateProject applies an allow-listed metadata update to one project and
// returns the authoritative updated record.
func (h adminHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req projectMetaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project update request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		projectID, err := uuid.Parse(req.ProjectID)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectId"))
			return
		}

		project, err := h.projects.UpdateMeta(r.Context(), projectID, req.Updates)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		if actor, err := ctxGetUserID(r.Context()); err == nil {
			h.logger.Info().Str("actor", actor).Str("projectId", projectID.String()).Msg("project metadata updated")
		}
		h.responder.WriteJSON(w, project)
	}
}

type reorderRequest struct {
	Projects []struct {
		ID uuid.UUID `json:"id"`
	} `json:"projects"`
}

// reorderProjects replaces the display order of all projects with the order
// of the submitted list: position 0 becomes order 0, and so on.
func (h adminHandler) reorderProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reorderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode reorder request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if len(req.Projects) == 0 {
			h.responder.WriteError(w, errs.NewValidationError("projects", "ordered project list is empty"))
			return
		}

		ids := make([]uuid.UUID, 0, len(req.Projects))
		for _, p := range req.Projects {
			if p.ID == uuid.Nil {
				h.responder.WriteError(w, errs.NewValidationError("projects", "every entry needs an id"))
				return
			}
			ids = append(ids, p.ID)
		}

		if err := h.projects.Reorder(r.Context(), ids); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("reorder", "projects", err))
			return
		}

		if actor, err := ctxGetUserID(r.Context()); err == nil {
			h.logger.Info().Str("actor", actor).Int("count", len(ids)).Msg("project order replaced")
		}
		h.responder.WriteJSON(w, map[string]bool{"success": true})
	}
}
