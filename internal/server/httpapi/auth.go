package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/voltdrive/internal/common"
	"github.com/dmitrijs2005/voltdrive/internal/server/models"
	"github.com/dmitrijs2005/voltdrive/internal/server/services"
)

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type registerResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    models.PublicUser `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

type meResponse struct {
	User *models.PublicUser `json:"user"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Registration failed", Error: detail(err)})
		return
	}

	res, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		h.authFailed("register")
		if statusFor(err) == http.StatusBadRequest {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Registration failed", Error: detail(err)})
			return
		}
		h.writeError(w, r, err, "Registration failed")
		return
	}

	h.logger.Info(r.Context(), "user registered", "user_id", res.User.ID)
	writeJSON(w, http.StatusCreated, registerResponse{
		Message: "User registered successfully",
		Token:   res.Token,
		User:    res.User,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err, "Login error")
		return
	}

	res, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.authFailed("login")
		if errors.Is(err, common.ErrorUnauthorized) {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Message: services.InvalidCredentialsMessage})
			return
		}
		h.writeError(w, r, err, "Login error")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: res.Token, User: res.User})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())

	user, err := h.users.Profile(r.Context(), id.UserID)
	if err != nil {
		h.writeError(w, r, err, "Error fetching profile")
		return
	}

	writeJSON(w, http.StatusOK, meResponse{User: user})
}

func (h *Handler) Avatar(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())

	up, err := h.avatars.SetAvatar(r.Context(), id.UserID)
	if err != nil {
		h.writeError(w, r, err, "Error preparing avatar upload")
		return
	}

	writeJSON(w, http.StatusOK, up)
}
