package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/omar-mohamud/raagsanplatform/database"
)

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	conns       *database.ConnManager
	startupTime time.Time
}

func newHealthHandler(conns *database.ConnManager, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		conns:       conns,
		startupTime: startupTime,
	}
}

// health reports process liveness plus whether the primary store currently
// answers. Reads keep working through the fallback either way, so a "down"
// primary store is informational, not a failure status.
func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		primary := "down"
		if h.conns.Healthy(r.Context()) {
			primary = "up"
		}

		h.responder.WriteJSON(w, map[string]any{
			"status":        "ok",
			"primaryStore":  primary,
			"uptimeSeconds": int(time.Since(h.startupTime).Seconds()),
		})
	}
}
