package tweet

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/growtweet/growtweet/internal/domain"
	domtweet "github.com/growtweet/growtweet/internal/domain/tweet"
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
	r.Route("/tweets", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
	r.Get("/feed", h.feed)
}

type createRequest struct {
	UserID  string `json:"userId"`
	Content string `json:"content"`
	Type    string `json:"type"`
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

	t, err := h.uc.Create(r.Context(), actor.UserID, req.UserID, req.Content, domtweet.Type(req.Type))
	if err != nil {
		switch {
		case errors.Is(err, ErrActorMismatch):
			httpapi.Forbidden(w, "cannot create a tweet for another user")
		case errors.Is(err, ErrEmptyContent):
			httpapi.InvalidArgument(w, "content must not be empty")
		default:
			obs.WithTrace(r.Context(), h.log).Error("create tweet", zap.Error(err))
			httpapi.Internal(w)
		}
		return
	}

	httpapi.WriteJSON(w, http.StatusCreated, t)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromCtx(r.Context())

	typ := domtweet.Type(r.URL.Query().Get("type"))
	if typ != "" && typ != domtweet.TypeTweet && typ != domtweet.TypeReply {
		httpapi.InvalidArgument(w, "unknown tweet type")
		return
	}

	out, err := h.uc.List(r.Context(), actor.UserID, typ)
	if err != nil {
		obs.WithTrace(r.Context(), h.log).Error("list tweets", zap.Error(err))
		httpapi.Internal(w)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) feed(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.IdentityFromCtx(r.Context())

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httpapi.InvalidArgument(w, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	out, err := h.uc.Feed(r.Context(), actor.UserID, limit)
	if err != nil {
		obs.WithTrace(r.Context(), h.log).Error("feed", zap.Error(err))
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
			httpapi.NotFound(w, "tweet not found")
			return
		}
		obs.WithTrace(r.Context(), h.log).Error("get tweet", zap.Error(err))
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
			httpapi.NotFound(w, "tweet not found")
		case errors.Is(err, ErrEmptyContent):
			httpapi.InvalidArgument(w, "content must not be empty")
		default:
			obs.WithTrace(r.Context(), h.log).Error("update tweet", zap.Error(err))
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
			httpapi.NotFound(w, "tweet not found")
			return
		}
		obs.WithTrace(r.Context(), h.log).Error("delete tweet", zap.Error(err))
		httpapi.Internal(w)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, struct{}{})
}
