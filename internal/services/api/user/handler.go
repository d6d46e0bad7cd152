package user

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/growtweet/growtweet/internal/domain"
	"github.com/growtweet/growtweet/internal/obs"
	"github.com/growtweet/growtweet/internal/services/api/auth"
	"github.com/growtweet/growtweet/internal/services/api/httpapi"
)

type Handler struct {
	log *zap.Logger
	uc  *Usecase
}

func NewHandler(log *zap.Logger, uc *Usecase) *Handler {
	return &Handler{log: log, uc: uc}
}

// MountPublic registers registration, the only public mutating route.
func (h *Handler) MountPublic(r chi.Router) {
	r.Post("/users", h.register)
}

func (h *Handler) MountProtected(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Handle   string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpapi.DecodeBody(r, &req); err != nil {
		httpapi.InvalidArgument(w, "invalid request body")
		return
	}

	rec, err := h.uc.Register(r.Context(), req.Name, req.Handle, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			httpapi.InvalidArgument(w, "name, username, email and a password of at least 8 characters are required")
		case errors.Is(err, domain.ErrConflict):
			httpapi.Conflict(w, "email already registered")
		default:
			obs.WithTrace(r.Context(), h.log).Error("register user", zap.Error(err))
			httpapi.Internal(w)
		}
		return
	}

	h.log.Info("user.registered", zap.String("user_id", rec.ID))
	httpapi.WriteJSON(w, http.StatusCreated, rec)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	out, err := h.uc.List(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		obs.WithTrace(r.Context(), h.log).Error("list users", zap.Error(err))
		httpapi.Internal(w)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromCtx(r.Context())

	rec, err := h.uc.Get(r.Context(), chi.URLParam(r, "id"), actor.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httpapi.NotFound(w, "user not found")
			return
		}
		obs.WithTrace(r.Context(), h.log).Error("get user", zap.Error(err))
		httpapi.Internal(w)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromCtx(r.Context())

	var req updateRequest
	if err := httpapi.DecodeBody(r, &req); err != nil {
		httpapi.InvalidArgument(w, "invalid request body")
		return
	}

	rec, err := h.uc.UpdateProfile(r.Context(), chi.URLParam(r, "id"), actor.UserID, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			httpapi.NotFound(w, "user not found")
		case errors.Is(err, ErrInvalidInput):
			httpapi.InvalidArgument(w, "password must be at least 8 characters")
		default:
			obs.WithTrace(r.Context(), h.log).Error("update user", zap.Error(err))
			httpapi.Internal(w)
		}
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromCtx(r.Context())

	if err := h.uc.Delete(r.Context(), chi.URLParam(r, "id"), actor.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httpapi.NotFound(w, "user not found")
			return
		}
		obs.WithTrace(r.Context(), h.log).Error("delete user", zap.Error(err))
		httpapi.Internal(w)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, struct{}{})
}
