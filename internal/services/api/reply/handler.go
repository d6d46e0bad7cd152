package reply

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
	r.Route("/replies", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

type createRequest struct {
	UserID  string `json:"userId"`
	TweetID string `json:"tweetId"`
	Content string `json:"content"`
}

type updateRequest struct {
	Content string `json:"content"`
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

	rep, err := h.uc.Create(r.Context(), actor.UserID, req.UserID, req.TweetID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, ErrActorMismatch):
			httpapi.Forbidden(w, "cannot reply on behalf of another user")
		case errors.Is(err, ErrTweetNotFound):
			httpapi.NotFound(w, "tweet not found")
		case errors.Is(err, ErrEmptyContent):
			httpapi.InvalidArgument(w, "content must not be empty")
		default:
			obs.WithTrace(r.Context(), h.log).Error("create reply", zap.Error(err))
			httpapi.Internal(w)
		}
		return
	}

	httpapi.WriteJSON(w, http.StatusCreated, rep)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromCtx(r.Context())

	out, err := h.uc.List(r.Context(), actor.UserID)
	if err != nil {
		obs.WithTrace(r.Context(), h.log).Error("list replies", zap.Error(err))
		httpapi.Internal(w)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromCtx(r.Context())

	out, err := h.uc.Get(r.Context(), chi.URLParam(r, "id"), actor.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httpapi.NotFound(w, "reply not found")
			return
		}
		obs.WithTrace(r.Context(), h.log).Error("get reply", zap.Error(err))
		httpapi.Internal(w)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromCtx(r.Context())

	var req updateRequest
	if err := httpapi.DecodeBody(r, &req); err != nil {
		httpapi.InvalidArgument(w, "invalid request body")
		return
	}

	out, err := h.uc.UpdateContent(r.Context(), chi.URLParam(r, "id"), actor.UserID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			httpapi.NotFound(w, "reply not found")
		case errors.Is(err, ErrEmptyContent):
			httpapi.InvalidArgument(w, "content must not be empty")
		default:
			obs.WithTrace(r.Context(), h.log).Error("update reply", zap.Error(err))
			httpapi.Internal(w)
		}
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromCtx(r.Context())

	if err := h.uc.Delete(r.Context(), chi.URLParam(r, "id"), actor.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httpapi.NotFound(w, "reply not found")
			return
		}
		obs.WithTrace(r.Context(), h.log).Error("delete reply", zap.Error(err))
		httpapi.Internal(w)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, struct{}{})
}
