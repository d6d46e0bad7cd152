package kafka

import (
	"context"
	"encoding/json"
	"time"
)

// TweetEvent is the wire shape consumed by the feed pipeline. The payload
// is JSON; the message key is the tweet id so all events for one tweet
// land in one partition, in order.
type TweetEvent struct {
	Event   string    `json:"event"`
	TweetID string    `json:"tweetId"`
	UserID  string    `json:"userId"`
	At      time.Time `json:"at"`
}

const (
	EventTweetCreated = "tweet.created"
	EventTweetDeleted = "tweet.deleted"
)

type TweetEvents struct {
	p *Producer
}

func NewTweetEvents(p *Producer) *TweetEvents { return &TweetEvents{p: p} }

func (e *TweetEvents) Publish(ctx context.Context, ev TweetEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return e.p.Publish(ctx, []byte(ev.TweetID), value)
}
