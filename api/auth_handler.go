package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/omar-mohamud/raagsanplatform/errs"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	tokens    tokenManager
	username  string
	password  string
}

func newAuthHandler(tokens tokenManager, username, password string) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tokens:    tokens,
		username:  username,
		password:  password,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// login exchanges admin credentials for a session token. Failed attempts get
// one generic answer; the response never says which field was wrong.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.password)) == 1
		if !userOK || !passOK {
			h.logger.Warn().Str("username", req.Username).Msg("failed admin login attempt")
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		now := time.Now()
		token, err := h.tokens.CreateToken(req.Username, now)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("could not create session token"))
			return
		}

		h.responder.WriteJSON(w, loginResponse{
			Token:     token,
			ExpiresAt: now.Add(sessionTTL),
		})
	}
}
