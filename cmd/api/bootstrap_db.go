package main

import (
	"context"

	config "github.com/growtweet/growtweet/internal/config/api"
	pg "github.com/growtweet/growtweet/internal/repository/postgres"
)

func initDB(ctx context.Context, cfg *config.Config) (*pg.DB, error) {
	return pg.New(ctx, cfg.DB)
}
