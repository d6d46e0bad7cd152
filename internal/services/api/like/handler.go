package like

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
	r.Route("/likes", func(r chi.Router) {
		r.Post("/", h.create)
		r.Delete("/{id}", h.delete)
	})
}

type createRequest struct {
	UserID  string `json:"userId"`
	TweetID string `json:"tweetId"`
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
	if req.TweetID == "" {
		httpapi.InvalidArgument(w, "tweetId is required")
		return
	}

	l, err := h.uc.Create(r.Context(), actor.UserID, req.UserID, req.TweetID)
	if err != nil {
		switch {
		case errors.Is(err, ErrActorMismatch):
			httpapi.Forbidden(w, "cannot like on behalf of another user")
		case errors.Is(err, ErrTweetNotFound):
			httpapi.NotFound(w, "tweet not found")
		case errors.Is(err, domain.ErrConflict):
			httpapi.Conflict(w, "tweet already liked")
		default:
			obs.WithTrace(r.Context(), h.log).Error("create like", zap.Error(err))
			httpapi.Internal(w)
		}
		return
	}

	httpapi.WriteJSON(w, http.StatusCreated, l)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromCtx(r.Context())

	l, err := h.uc.Delete(r.Context(), chi.URLParam(r, "id"), actor.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httpapi.NotFound(w, "like not found")
			return
		}
		obs.WithTrace(r.Context(), h.log).Error("delete like", zap.Error(err))
		httpapi.Internal(w)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, l)
}
