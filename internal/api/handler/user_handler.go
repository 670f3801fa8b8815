package handler

import (
	"errors"
	"net/http"

	"question_review/internal/api/middleware"
	"question_review/internal/app/service"
	"question_review/internal/common"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	authService *service.AuthService
}

func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)

	r.Get("/{username}/id", h.getUserID)

	r.Group(func(adminRouter chi.Router) {
		adminRouter.Use(middleware.AdminOnly)
		adminRouter.Get("/", h.listTeachers) // assignment targets
	})
}

func (h *UserHandler) getUserID(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	id, err := h.authService.LookupID(r.Context(), username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, struct {
		UserID int64 `json:"user_id"`
	}{UserID: id})
}

func (h *UserHandler) listTeachers(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.ListTeachers(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}
