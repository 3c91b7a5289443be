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

type storyHandler struct {
	responder Responder
	logger    zerolog.Logger
	stories   *database.StoryStore
}

func newStoryHandler(stories *database.StoryStore) storyHandler {
	logger := log.With().Str("handlerName", "storyHandler").Logger()

	return storyHandler{
		responder: NewResponder(logger),
		logger:    logger,
		stories:   stories,
	}
}

// getStory retrieves one story by slug
func (h storyHandler) getStory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		story, err := h.stories.FindBySlug(r.Context(), slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "story", err))
			return
		}

		h.responder.WriteJSON(w, dataResponse{Success: true, Data: story})
	}
}

// updateStory applies a partial update to a story. The slug and owning
// project never change through this path.
func (h storyHandler) updateStory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		var patch models.StoryPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode story patch request body")
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		story, err := h.stories.Patch(r.Context(), slug, patch)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "story", err))
			return
		}

		h.responder.WriteJSON(w, dataResponse{Success: true, Data: story})
	}
}

// deleteStory removes a story by slug
func (h storyHandler) deleteStory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		if err := h.stories.Delete(r.Context(), slug); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "story", err))
			return
		}

		h.responder.WriteJSON(w, dataResponse{Success: true})
	}
}
