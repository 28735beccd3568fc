package notify

import (
	"context"
	"net/url"

	"github.com/oliverisaac/portfolio/lib/pushclient"
	"github.com/oliverisaac/portfolio/types"
	"github.com/pkg/errors"
)

// Relay forwards notifications to a pushable server.
type Relay struct {
	Client *pushclient.Client
}

func (r Relay) Notify(ctx context.Context, msg types.ContactMessage) error {
	err := r.Client.Send(ctx, pushclient.Push{
		Topic: Topic,
		Title: title(msg),
		Body:  summary(msg, 140),
		Icon:  "neutral",
		Link:  "mailto:" + url.PathEscape(msg.Email),
	})
	return errors.Wrap(err, "relaying push notification")
}
