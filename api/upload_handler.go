package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/omar-mohamud/raagsanplatform/errs"
	"github.com/omar-mohamud/raagsanplatform/services"
)

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	signer    *services.UploadSigner
}

func newUploadHandler(signer *services.UploadSigner) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		signer:    signer,
	}
}

type signRequest struct {
	Folder       string `json:"folder"`
	UploadPreset string `json:"upload_preset"`
}

type signResponse struct {
	Success bool `json:"success"`
	services.SignedUpload
}

// signUpload returns the signed parameters the browser needs to upload
// directly to the media host.
func (h uploadHandler) signUpload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.signer.Configured() {
			h.responder.WriteError(w, errs.NewInternalError("media host is not configured"))
			return
		}

		var req signRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		signed := h.signer.Sign(req.Folder, req.UploadPreset, time.Now())
		h.responder.WriteJSON(w, signResponse{Success: true, SignedUpload: signed})
	}
}
