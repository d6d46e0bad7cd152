package outbox

import (
	"context"
	"time"
)

type Status string

type Kind int

const (
	KindTweetCreated Kind = 1
	KindTweetDeleted Kind = 2
)

// Message is a pending fan-out event written in the same transaction as
// the tweet mutation it describes.
type Message struct {
	IdempotencyKey string
	Kind           Kind
	Data           []byte
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Repository interface {
	Enqueue(ctx context.Context, key string, kind Kind, data []byte) error

	// PickBatch claims up to batch messages that are new or whose previous
	// claim went stale (IN_PROGRESS older than inProgressTTL).
	PickBatch(ctx context.Context, batch int, inProgressTTL time.Duration) ([]Message, error)

	MarkSuccess(ctx context.Context, keys []string) error
}

type KindHandler func(ctx context.Context, data []byte) error

type GlobalHandler func(kind Kind) (KindHandler, error)
