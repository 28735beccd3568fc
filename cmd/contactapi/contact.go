package main

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/portfolio/lib/notify"
	"github.com/oliverisaac/portfolio/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	notifyTimeout   = 30 * time.Second
	defaultListSize = 50
	maxListSize     = 200
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var fieldLabels = map[string]string{
	"name":    "Name",
	"email":   "Email",
	"message": "Message",
}

func validateContact(data types.ContactFormData) []types.FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []types.FieldError{{Field: "unknown", Message: err.Error()}}
	}

	ret := make([]types.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		ret = append(ret, types.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return ret
}

func fieldMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Invalid email"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	}
	return label + " is invalid"
}

func submitContact(store Store, notifier notify.Notifier) echo.HandlerFunc {
	return func(c echo.Context) error {
		var data types.ContactFormData
		if err := c.Bind(&data); err != nil {
			return badRequest(errors.Wrap(err, "binding contact form"))
		}
		data.Name = strings.TrimSpace(data.Name)
		data.Email = strings.TrimSpace(data.Email)
		data.Message = strings.TrimSpace(data.Message)

		if fieldErrors := validateContact(data); len(fieldErrors) > 0 {
			logrus.Debugf("Rejected contact message: %v", fieldErrors)
			return c.JSON(http.StatusUnprocessableEntity, types.ApiResponse[any]{
				Success: false,
				Message: "Validation failed",
				Errors:  fieldErrors,
			})
		}

		msg := types.NewContactMessage(data)
		msg.RemoteIP = c.RealIP()
		msg.UserAgent = c.Request().UserAgent()
		if err := store.SaveMessage(c.Request().Context(), &msg); err != nil {
			return err
		}
		logrus.WithField("contact", msg.ID).Infof("Stored contact message from %s", msg.Email)

		go func(msg types.ContactMessage) {
			ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
			defer cancel()
			if err := notifier.Notify(ctx, msg); err != nil {
				logrus.WithField("contact", msg.ID).Error(errors.Wrap(err, "notifying owner"))
			}
		}(msg)

		receipt := msg.Receipt()
		return c.JSON(http.StatusCreated, types.ApiResponse[types.ContactReceipt]{
			Success: true,
			Message: "Message sent!",
			Data:    &receipt,
		})
	}
}

type contactEntry struct {
	types.ContactReceipt
	Message string `json:"message"`
}

func listContacts(store Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit := defaultListSize
		if raw := c.QueryParam("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
			}
			limit = min(n, maxListSize)
		}

		msgs, err := store.RecentMessages(c.Request().Context(), limit)
		if err != nil {
			return err
		}

		entries := make([]contactEntry, 0, len(msgs))
		for _, m := range msgs {
			entries = append(entries, contactEntry{ContactReceipt: m.Receipt(), Message: m.Message})
		}
		return c.JSON(http.StatusOK, types.ApiResponse[[]contactEntry]{Success: true, Data: &entries})
	}
}

func healthHandler(store Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		status := types.HealthStatus{Status: "ok", Timestamp: time.Now().UTC()}
		if err := store.Ping(c.Request().Context()); err != nil {
			logrus.Error(errors.Wrap(err, "pinging database"))
			status.Status = "degraded"
			return c.JSON(http.StatusServiceUnavailable, types.ApiResponse[types.HealthStatus]{
				Success: false,
				Message: "Database unavailable",
				Data:    &status,
			})
		}
		return c.JSON(http.StatusOK, types.ApiResponse[types.HealthStatus]{Success: true, Message: "ok", Data: &status})
	}
}

func badRequest(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
}

// jsonErrorHandler answers every failed request with an ApiResponse body.
func jsonErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(status)
		}
	}

	if status >= http.StatusInternalServerError {
		logrus.Error(err)
	} else {
		logrus.Debug(err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, types.ApiResponse[any]{Success: false, Message: message})
	}
	if err != nil {
		logrus.Error(errors.Wrap(err, "writing error response"))
	}
}
