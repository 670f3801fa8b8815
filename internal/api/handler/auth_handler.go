package handler

import (
	"encoding/json"
	"net/http"

	"question_review/internal/app/service"
	"question_review/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if _, err := h.authService.Register(r.Context(), req); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), registerErrorMessage(err))
		return
	}
	common.RespondWithMessage(w, http.StatusCreated, "User registered successfully")
}

func registerErrorMessage(err error) string {
	if common.HTTPStatusFromError(err) == http.StatusConflict {
		return "Username already exists"
	}
	return err.Error()
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		status := common.HTTPStatusFromError(err)
		if status == http.StatusUnauthorized {
			// One generic message whether the username or the password was
			// wrong.
			common.RespondWithError(w, status, "Invalid credentials")
			return
		}
		common.RespondWithError(w, status, err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
