package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	config "github.com/growtweet/growtweet/internal/config/api"
	domoutbox "github.com/growtweet/growtweet/internal/domain/outbox"
	"github.com/growtweet/growtweet/internal/domain/session"
	pg "github.com/growtweet/growtweet/internal/repository/postgres"
	authsvc "github.com/growtweet/growtweet/internal/services/api/auth"
	followersvc "github.com/growtweet/growtweet/internal/services/api/follower"
	likesvc "github.com/growtweet/growtweet/internal/services/api/like"
	replysvc "github.com/growtweet/growtweet/internal/services/api/reply"
	tweetsvc "github.com/growtweet/growtweet/internal/services/api/tweet"
	usersvc "github.com/growtweet/growtweet/internal/services/api/user"
	"github.com/growtweet/growtweet/internal/token"
)

func buildHTTPServer(
	cfg *config.Config,
	logger *zap.Logger,
	db *pg.DB,
	codec *token.Codec,
	revocations session.RevocationStore,
	outboxRepo domoutbox.Repository,
) *http.Server {
	userRepo := pg.NewUserRepo(db)
	tweetRepo := pg.NewTweetRepo(db)
	likeRepo := pg.NewLikeRepo(db)
	replyRepo := pg.NewReplyRepo(db)
	followerRepo := pg.NewFollowerRepo(db)
	tx := pg.NewTransactor(db, logger)

	authH := authsvc.NewHandler(logger, authsvc.NewUsecase(userRepo, revocations, codec))
	userH := usersvc.NewHandler(logger, usersvc.NewUsecase(userRepo))
	tweetH := tweetsvc.NewHandler(logger, tweetsvc.NewUsecase(tweetRepo, outboxRepo, tx))
	likeH := likesvc.NewHandler(logger, likesvc.NewUsecase(likeRepo, tweetRepo))
	replyH := replysvc.NewHandler(logger, replysvc.NewUsecase(replyRepo, tweetRepo))
	followerH := followersvc.NewHandler(logger, followersvc.NewUsecase(followerRepo, userRepo))

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	// Public surface: registration and login only.
	authH.MountPublic(r)
	userH.MountPublic(r)

	// Everything else passes the identity gate.
	r.Group(func(r chi.Router) {
		r.Use(authsvc.RequireAuth(revocations, codec, logger))
		authH.MountProtected(r)
		userH.MountProtected(r)
		tweetH.Mount(r)
		likeH.Mount(r)
		replyH.Mount(r)
		followerH.Mount(r)
	})

	return &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           otelhttp.NewHandler(r, "http.api"),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
}

func serveHTTP(srv *http.Server, logger *zap.Logger) error {
	logger.Info("http listening", zap.String("addr", srv.Addr))
	return srv.ListenAndServe()
}
