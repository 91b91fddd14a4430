package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Parth2500/Jwt-Auth/internal/app/service"
	"github.com/Parth2500/Jwt-Auth/internal/common"

	"github.com/go-chi/chi/v5"
)

const (
	msgRegistered      = "User registered successfully"
	msgRegisterFailed  = "Error registering user"
	msgInvalidLogin    = "Invalid username or password"
	msgLoginFailed     = "Error logging in"
	msgInvalidPayload  = "Invalid request payload"
	maxRequestBodySize = 1 << 20
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

// register answers every store or validation failure with the same 500
// body; the cause is only logged.
func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, msgInvalidPayload+": "+err.Error())
		return
	}

	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		log.Printf("ERROR: register %q: %v", req.Username, err)
		common.RespondWithError(w, http.StatusInternalServerError, msgRegisterFailed)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: msgRegistered, User: user})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, msgInvalidPayload+": "+err.Error())
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			common.RespondWithError(w, http.StatusUnauthorized, msgInvalidLogin)
			return
		}
		log.Printf("ERROR: login %q: %v", req.Username, err)
		common.RespondWithError(w, http.StatusInternalServerError, msgLoginFailed)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	return json.NewDecoder(r.Body).Decode(dst)
}
