package order_evidence_post

import (
	"encoding/json"
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/handlers/rest/response"
	"dispatch/internal/pkg/middlewares/auth"

	"github.com/gorilla/mux"
)

// maxBodyBytes подпись в base64 плюс поля получателя.
const maxBodyBytes = 8 << 20

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, h.log)
		return
	}

	var req dto.EvidenceRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req)
	if err != nil {
		response.BadRequest(w, h.log, "invalid request body")
		return
	}

	proof := entities.DeliveryProof{
		OrderID:           mux.Vars(r)["id"],
		RecipientName:     req.RecipientName,
		RecipientIDNumber: req.RecipientIDNumber,
		Signature:         req.Signature,
		Notes:             req.Notes,
	}

	evidence, err := h.service.FinalizeDelivery(r.Context(), actor, proof)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusCreated, dto.FromEvidence(evidence))
}
