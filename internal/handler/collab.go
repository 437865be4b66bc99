package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Rugbydude80/localops-ai-sub001/internal/domain"
)

// These endpoints expose read and resolve operations over the live
// collaboration state. Connection lifecycle itself belongs to the
// transport gateway that drains each connection's outbound channel.

func (h *Handler) GetPresence(w http.ResponseWriter, r *http.Request) {
	businessID, err := urlParamInt64(r, "businessID")
	if err != nil {
		h.errorResponse(w, r, "invalid business id")
		return
	}
	draftID, err := urlParamInt64(r, "draftID")
	if err != nil {
		h.errorResponse(w, r, "invalid draft id")
		return
	}

	h.successResponse(w, r, "presence fetched", h.collab.Presence(businessID, draftID))
}

func (h *Handler) ListConflicts(w http.ResponseWriter, r *http.Request) {
	businessID, err := urlParamInt64(r, "businessID")
	if err != nil {
		h.errorResponse(w, r, "invalid business id")
		return
	}
	draftID, err := urlParamInt64(r, "draftID")
	if err != nil {
		h.errorResponse(w, r, "invalid draft id")
		return
	}

	h.successResponse(w, r, "conflicts fetched", h.collab.PendingConflicts(businessID, draftID))
}

func (h *Handler) ResolveConflict(w http.ResponseWriter, r *http.Request) {
	businessID, err := urlParamInt64(r, "businessID")
	if err != nil {
		h.errorResponse(w, r, "invalid business id")
		return
	}
	conflictID := chi.URLParam(r, "conflictID")

	req := struct {
		Resolution string `json:"resolution" validate:"required,oneof=accept_edit1 accept_edit2 merge"`
	}{}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	conflict, ok := h.collab.ResolveConflict(businessID, conflictID, domain.ResolutionStrategy(req.Resolution))
	if !ok {
		h.errorResponse(w, r, "conflict not found or already resolved")
		return
	}

	h.publishNotification("conflict_resolved", conflict.BusinessID, conflict.DraftID, map[string]any{
		"conflictID": conflictID,
		"resolution": req.Resolution,
	})
	h.successResponse(w, r, "conflict resolved", conflict)
}
