package main

import (
	"encoding/json"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/portfolio/types"
	"github.com/pkg/errors"
)

func saveSubscription(store Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		var sub webpush.Subscription
		if err := c.Bind(&sub); err != nil {
			return badRequest(errors.Wrap(err, "binding subscription"))
		}
		if sub.Endpoint == "" || sub.Keys.P256dh == "" || sub.Keys.Auth == "" {
			return c.JSON(http.StatusUnprocessableEntity, types.ApiResponse[any]{
				Success: false,
				Message: "Subscription must have an endpoint and keys",
			})
		}

		keys, err := json.Marshal(sub.Keys)
		if err != nil {
			return errors.Wrap(err, "marshalling subscription keys")
		}

		pushSubscription := types.PushSubscription{
			Endpoint: sub.Endpoint,
			P256DH:   sub.Keys.P256dh,
			Auth:     sub.Keys.Auth,
			Keys:     string(keys),
		}

		if err := store.SaveSubscription(c.Request().Context(), &pushSubscription); err != nil {
			return err
		}

		return c.JSON(http.StatusOK, types.ApiResponse[any]{Success: true, Message: "subscription saved"})
	}
}

func removeSubscription(store Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		var sub webpush.Subscription
		if err := c.Bind(&sub); err != nil {
			return badRequest(errors.Wrap(err, "binding subscription"))
		}

		if err := store.DeleteSubscription(c.Request().Context(), sub.Endpoint); err != nil {
			return err
		}

		return c.JSON(http.StatusOK, types.ApiResponse[any]{Success: true, Message: "subscription removed"})
	}
}
