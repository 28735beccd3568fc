package main

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/portfolio/lib/contactform"
	"github.com/oliverisaac/portfolio/types"
	"github.com/oliverisaac/portfolio/views"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// visitorForm returns the contact form instance tied to the visitor's session.
func visitorForm(c echo.Context, forms *contactform.Registry) (*contactform.Controller, error) {
	sess, err := session.Get(SessionKey, c)
	if sess == nil {
		return nil, errors.Errorf("getting session: %v", err)
	}
	if err != nil {
		logrus.Debug(errors.Wrap(err, "decoding session, starting a new one"))
	}

	formID, _ := sess.Values[SessionFormIDKey].(string)
	if formID == "" {
		formID = uuid.NewString()
		sess.Values[SessionFormIDKey] = formID
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			return nil, errors.Wrap(err, "saving session")
		}
	}

	return forms.Get(formID), nil
}

func contactView(cfg types.Config, form *contactform.Controller) types.ContactFormView {
	v := form.Snapshot()
	v.ClearAfter = cfg.SuccessDisplay
	return v
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

func contactFormHandler(cfg types.Config, forms *contactform.Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		form, err := visitorForm(c, forms)
		if err != nil {
			return err
		}
		return render(c, http.StatusOK, views.ContactForm(contactView(cfg, form)))
	}
}

func submitContactHandler(cfg types.Config, forms *contactform.Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		form, err := visitorForm(c, forms)
		if err != nil {
			return err
		}

		var data types.ContactFormData
		if err := c.Bind(&data); err != nil {
			return errors.Wrap(err, "binding contact form")
		}

		err = form.SetForm(data)
		if err == nil {
			// The submission outlives a visitor who navigates away.
			err = form.Submit(context.WithoutCancel(c.Request().Context()))
		}
		if errors.Is(err, contactform.ErrSubmitting) || errors.Is(err, contactform.ErrSubmitInFlight) {
			logrus.Info("Ignoring contact form submission while another is in flight")
		} else if err != nil {
			return errors.Wrap(err, "submitting contact form")
		}

		if !isHTMX(c) {
			return c.Redirect(http.StatusSeeOther, "/#contact")
		}
		return render(c, http.StatusOK, views.ContactForm(contactView(cfg, form)))
	}
}
