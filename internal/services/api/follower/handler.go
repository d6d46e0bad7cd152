package follower

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

func (h *Handler) Mount(r chi.Router) {
	r.Route("/followers", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Delete("/{id}", h.delete)
	})
}

type createRequest struct {
	UserID     string `json:"userId"`
	FollowerID string `json:"followerId"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.IdentityFromCtx(r.Context())
	if !ok {
		httpapi.Unauthenticated(w, "missing identity")
		return
	}

	var req createRequest
	if err := httpapi.DecodeBody(r, &req); err != nil {
		httpapi.InvalidArgument(w, "invalid request body")
		return
	}
	if req.UserID == "" {
		httpapi.InvalidArgument(w, "userId is required")
		return
	}

	f, err := h.uc.Follow(r.Context(), actor.UserID, req.FollowerID, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, ErrActorMismatch):
			httpapi.Forbidden(w, "cannot follow on behalf of another user")
		case errors.Is(err, ErrSelfFollow):
			httpapi.InvalidArgument(w, "cannot follow yourself")
		case errors.Is(err, ErrUserNotFound):
			httpapi.NotFound(w, "user not found")
		case errors.Is(err, domain.ErrConflict):
			httpapi.Conflict(w, "already following")
		default:
			obs.WithTrace(r.Context(), h.log).Error("create follower", zap.Error(err))
			httpapi.Internal(w)
		}
		return
	}

	httpapi.WriteJSON(w, http.StatusCreated, f)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromCtx(r.Context())

	out, err := h.uc.List(r.Context(), actor.UserID)
	if err != nil {
		obs.WithTrace(r.Context(), h.log).Error("list followers", zap.Error(err))
		httpapi.Internal(w)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromCtx(r.Context())

	if err := h.uc.Unfollow(r.Context(), chi.URLParam(r, "id"), actor.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httpapi.NotFound(w, "follow not found")
			return
		}
		obs.WithTrace(r.Context(), h.log).Error("delete follower", zap.Error(err))
		httpapi.Internal(w)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, struct{}{})
}
