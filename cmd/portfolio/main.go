package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/oliverisaac/goli"
	"github.com/oliverisaac/portfolio/lib/contactclient"
	"github.com/oliverisaac/portfolio/lib/contactform"
	"github.com/oliverisaac/portfolio/static"
	"github.com/oliverisaac/portfolio/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func init() {
	goli.InitLogrus(logrus.DebugLevel)
}

const SessionKey = "session"
const SessionFormIDKey = "contact-form-id"

const formTTL = time.Hour

func render(ctx echo.Context, status int, t templ.Component) error {
	ctx.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	ctx.Response().Writer.WriteHeader(status)

	err := t.Render(ctx.Request().Context(), ctx.Response().Writer)
	if err != nil {
		return ctx.String(http.StatusInternalServerError, "failed to render response template")
	}

	return nil
}

func main() {
	err := run()
	if err != nil {
		logrus.Fatal(err)
	}
}

func run() error {
	err := godotenv.Load(".env")
	if err != nil && !os.IsNotExist(err) {
		logrus.Error(errors.Wrap(err, "Failed to load .env"))
	}

	cfg, err := types.ConfigFromEnv()
	if err != nil {
		return errors.Wrap(err, "Loading config from env")
	}

	client := contactclient.New(contactclient.Config{BaseURL: cfg.APIURL})
	forms := newFormRegistry(cfg, client)
	forms.StartSweeper(context.Background(), formTTL/6)

	e := newServer(cfg, forms)
	return e.Start(cfg.ListenAddr)
}

func newFormRegistry(cfg types.Config, submitter contactform.Submitter) *contactform.Registry {
	return contactform.NewRegistry(func() *contactform.Controller {
		return contactform.New(submitter, contactform.WithDisplayDuration(cfg.SuccessDisplay))
	}, formTTL)
}

func newServer(cfg types.Config, forms *contactform.Registry) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.StaticFS("/static", static.FS)

	origErrHandler := e.HTTPErrorHandler
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		logrus.Error(err)
		origErrHandler(err, c)
	}

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		Skipper:           middleware.DefaultSkipper,
		StackSize:         4 << 10, // 4 KB
		DisableStackAll:   false,
		DisablePrintStack: false,
		LogLevel:          log.ERROR,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logrus.Error(errors.Wrap(err, "recovered panic:"))
			for _, l := range strings.Split(string(stack), "\n") {
				logrus.Errorf("stack: %s", strings.ReplaceAll(l, "\t", "  "))
			}
			return nil
		},
		DisableErrorHandler: false,
	}))

	e.Use(middleware.Secure())

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "method=${method}, uri=${uri}, status=${status}\n",
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/healthz"
		},
	}))

	store := sessions.NewCookieStore(cfg.CookieSecret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(formTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	// Pages
	e.GET("/", homePageHandler(cfg, forms))
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// Blocks
	e.GET("/contact", contactFormHandler(cfg, forms))
	e.POST("/contact", submitContactHandler(cfg, forms))

	return e
}
