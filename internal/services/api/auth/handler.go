package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/growtweet/growtweet/internal/obs"
	"github.com/growtweet/growtweet/internal/services/api/httpapi"
)

type Handler struct {
	log *zap.Logger
	uc  *Usecase
}

func NewHandler(log *zap.Logger, uc *Usecase) *Handler {
	return &Handler{log: log, uc: uc}
}

// MountPublic registers the unauthenticated session routes.
func (h *Handler) MountPublic(r chi.Router) {
	r.Post("/auth/login", h.login)
}

// MountProtected registers routes that sit behind the identity gate.
func (h *Handler) MountProtected(r chi.Router) {
	r.Post("/auth/logout", h.logout)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpapi.DecodeBody(r, &req); err != nil {
		httpapi.InvalidArgument(w, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpapi.InvalidArgument(w, "email and password are required")
		return
	}

	tok, userID, err := h.uc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httpapi.Unauthenticated(w, "invalid email or password")
			return
		}
		obs.WithTrace(r.Context(), h.log).Error("login failed", zap.Error(err))
		httpapi.Internal(w)
		return
	}

	h.log.Info("auth.login", zap.String("user_id", userID))
	httpapi.WriteJSON(w, http.StatusOK, loginResponse{Token: tok, UserID: userID})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	// The raw token is re-read from the header: logout revokes exactly the
	// credential that authenticated this request.
	raw, _ := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)

	if err := h.uc.Logout(r.Context(), raw); err != nil {
		if errors.Is(err, ErrNotRevocable) {
			httpapi.Unauthenticated(w, "invalid or expired token")
			return
		}
		obs.WithTrace(r.Context(), h.log).Error("logout failed", zap.Error(err))
		httpapi.Internal(w)
		return
	}

	h.log.Info("auth.logout")
	httpapi.WriteJSON(w, http.StatusOK, struct{}{})
}
