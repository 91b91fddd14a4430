package handler

import (
	"log"
	"net/http"

	"github.com/Parth2500/Jwt-Auth/internal/api/middleware"
	"github.com/Parth2500/Jwt-Auth/internal/app/service"
	"github.com/Parth2500/Jwt-Auth/internal/common"
	"github.com/Parth2500/Jwt-Auth/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

const (
	msgUpdated      = "User information updated successfully"
	msgUpdateFailed = "Error updating user information"
)

type UserHandler struct {
	userService *service.UserService
	tokens      middleware.TokenVerifier
}

func NewUserHandler(userService *service.UserService, tokens middleware.TokenVerifier) *UserHandler {
	return &UserHandler{userService: userService, tokens: tokens}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator(h.tokens))
		authed.Put("/update", h.update)
	})
}

func (h *UserHandler) update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var patch model.UserPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, msgInvalidPayload+": "+err.Error())
		return
	}

	user, err := h.userService.Update(r.Context(), claims.UserID, patch)
	if err != nil {
		// Only a vanished account gets its own status; store and
		// validation failures share the generic 500.
		if status := common.HTTPStatusFromError(err); status == http.StatusNotFound {
			common.RespondWithError(w, status, "User not found")
			return
		}
		log.Printf("ERROR: update user %s: %v", claims.UserID, err)
		common.RespondWithError(w, http.StatusInternalServerError, msgUpdateFailed)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: msgUpdated, User: user})
}
