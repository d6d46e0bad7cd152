package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"

	"github.com/growtweet/growtweet/internal/domain/outbox"
	"github.com/growtweet/growtweet/internal/obs/retry"
	kafkax "github.com/growtweet/growtweet/internal/repository/kafka"
)

// TweetEventPayload is what tweet usecases enqueue; the handler decodes it
// and republishes as the external event shape.
type TweetEventPayload struct {
	TweetID string    `json:"tweet_id"`
	UserID  string    `json:"user_id"`
	At      time.Time `json:"at"`
}

var (
	outboxHandlerLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "outbox_handler_latency_seconds",
		Help:    "Latency of outbox handlers (publish, etc.)",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	outboxHandlerErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "outbox_handler_errors_total",
		Help: "Errors in outbox handlers (after retries).",
	}, []string{"kind"})
)

func instrument(kind string, h outbox.KindHandler, pol retry.Policy) outbox.KindHandler {
	tr := otel.Tracer("outbox.handler")
	if pol.Name == "" {
		pol.Name = "outbox_" + kind
	}
	return func(ctx context.Context, data []byte) error {
		ctx, span := tr.Start(ctx, "outbox.handle")
		defer span.End()

		start := time.Now()
		err := retry.Do(ctx, func() error { return h(ctx, data) }, pol)
		outboxHandlerLatency.WithLabelValues(kind).Observe(time.Since(start).Seconds())
		if err != nil {
			span.RecordError(err)
			outboxHandlerErrors.WithLabelValues(kind).Inc()
		}
		return err
	}
}

// MakeGlobalHandler maps outbox kinds to Kafka publishes of tweet events.
func MakeGlobalHandler(pub *kafkax.TweetEvents, pol retry.Policy) outbox.GlobalHandler {
	publish := func(event string) outbox.KindHandler {
		return func(ctx context.Context, data []byte) error {
			var p TweetEventPayload
			if err := json.Unmarshal(data, &p); err != nil {
				return fmt.Errorf("unmarshal tweet event payload: %w", err)
			}
			return pub.Publish(ctx, kafkax.TweetEvent{
				Event:   event,
				TweetID: p.TweetID,
				UserID:  p.UserID,
				At:      p.At,
			})
		}
	}

	return func(kind outbox.Kind) (outbox.KindHandler, error) {
		switch kind {
		case outbox.KindTweetCreated:
			return instrument("tweet_created", publish(kafkax.EventTweetCreated), pol), nil
		case outbox.KindTweetDeleted:
			return instrument("tweet_deleted", publish(kafkax.EventTweetDeleted), pol), nil
		default:
			return nil, fmt.Errorf("unsupported outbox kind: %d", kind)
		}
	}
}
