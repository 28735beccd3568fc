package main

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/portfolio/lib/contactform"
	"github.com/oliverisaac/portfolio/types"
	"github.com/oliverisaac/portfolio/views"
	"github.com/sirupsen/logrus"
)

func homePageHandler(cfg types.Config, forms *contactform.Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		pageData := siteContent().WithYear(time.Now().Year())

		form, err := visitorForm(c, forms)
		if err != nil {
			return err
		}
		logrus.Debugf("Rendering homepage with contact form state %s", form.State())

		pageData = pageData.WithContact(contactView(cfg, form))
		return render(c, 200, views.Index(pageData))
	}
}
