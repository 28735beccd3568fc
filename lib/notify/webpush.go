package notify

import (
	"context"
	"encoding/json"
	errs "errors"
	"fmt"
	"io"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/oliverisaac/portfolio/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type SubscriptionStore interface {
	Subscriptions(ctx context.Context) ([]types.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error
}

// WebPush sends a browser notification to every stored owner subscription.
type WebPush struct {
	Store           SubscriptionStore
	Hostname        string
	VapidPublicKey  string
	VapidPrivateKey string
	HTTPClient      webpush.HTTPClient
}

func (w WebPush) Notify(ctx context.Context, msg types.ContactMessage) error {
	subs, err := w.Store.Subscriptions(ctx)
	if err != nil {
		return errors.Wrap(err, "getting push subscriptions")
	}

	pushPayload, err := json.Marshal(map[string]interface{}{
		"title": title(msg),
		"body":  summary(msg, 140),
		"icon":  fmt.Sprintf("https://%s/static/icon-192.png", w.Hostname),
		"data": map[string]string{
			"url": "mailto:" + msg.Email,
		},
	})
	if err != nil {
		return errors.Wrap(err, "marshalling push payload")
	}

	var ret error
	for _, subData := range subs {
		ret = errs.Join(ret, w.send(ctx, pushPayload, subData))
	}
	return ret
}

func (w WebPush) send(ctx context.Context, payload []byte, subData types.PushSubscription) error {
	log := logrus.WithField("subscription", subData.ID)
	sub := &webpush.Subscription{
		Endpoint: subData.Endpoint,
		Keys: webpush.Keys{
			P256dh: subData.P256DH,
			Auth:   subData.Auth,
		},
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, sub, &webpush.Options{
		HTTPClient:      w.HTTPClient,
		Subscriber:      "https://" + w.Hostname,
		Topic:           Topic,
		VAPIDPublicKey:  w.VapidPublicKey,
		VAPIDPrivateKey: w.VapidPrivateKey,
		TTL:             24 * 3600,
		Urgency:         webpush.UrgencyHigh,
	})
	if err != nil {
		return errors.Wrap(err, "sending push notification")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound {
		log.Info("Subscriber no longer active")
		return errors.Wrap(w.Store.DeleteSubscription(ctx, subData.Endpoint), "deleting subscription")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("Got status code %d from push service: %s", resp.StatusCode, string(body))
	}

	log.Info("Sent push notification to owner")
	return nil
}
