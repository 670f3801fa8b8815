package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"question_review/internal/api/middleware"
	"question_review/internal/app/service"
	"question_review/internal/common"

	"github.com/go-chi/chi/v5"
)

type FeedbackLogHandler struct {
	logService *service.FeedbackLogService
}

func NewFeedbackLogHandler(ls *service.FeedbackLogService) *FeedbackLogHandler {
	return &FeedbackLogHandler{logService: ls}
}

func (h *FeedbackLogHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)

	r.Get("/", h.list)
	r.Put("/{entryID}", h.update)
	r.Delete("/{entryID}", h.delete)
}

func (h *FeedbackLogHandler) list(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	entries, err := h.logService.List(r.Context(), identity)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, entries)
}

func (h *FeedbackLogHandler) update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	entryID, err := strconv.ParseInt(chi.URLParam(r, "entryID"), 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid entry id")
		return
	}

	var req service.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.logService.Update(r.Context(), identity, entryID, req); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Feedback entry updated")
}

func (h *FeedbackLogHandler) delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	entryID, err := strconv.ParseInt(chi.URLParam(r, "entryID"), 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid entry id")
		return
	}

	if err := h.logService.Delete(r.Context(), identity, entryID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Feedback entry deleted")
}
