package main

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/oliverisaac/goli"
	"github.com/oliverisaac/portfolio/lib/contactstore"
	"github.com/oliverisaac/portfolio/lib/notify"
	"github.com/oliverisaac/portfolio/lib/pushclient"
	"github.com/oliverisaac/portfolio/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func init() {
	goli.InitLogrus(logrus.InfoLevel)
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

	cfg, err := types.APIConfigFromEnv()
	if err != nil {
		return errors.Wrap(err, "Loading config from env")
	}

	store, err := contactstore.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	notifier, err := newNotifier(cfg, store)
	if err != nil {
		return err
	}

	e := newServer(cfg, store, notifier)
	return e.Start(cfg.ListenAddr)
}

func newNotifier(cfg types.APIConfig, store *contactstore.Store) (notify.Notifier, error) {
	var notifiers notify.Multi
	if cfg.PushableEndpoint != "" {
		client, err := pushclient.New(cfg.PushableEndpoint, nil)
		if err != nil {
			return nil, err
		}
		logrus.Infof("Relaying contact notifications to %s", client.Endpoint())
		notifiers = append(notifiers, notify.Relay{Client: client})
	}
	if cfg.WebPushEnabled() {
		logrus.Info("Sending contact notifications with web push")
		notifiers = append(notifiers, notify.WebPush{
			Store:           store,
			Hostname:        cfg.Hostname,
			VapidPublicKey:  cfg.VapidPublicKey,
			VapidPrivateKey: cfg.VapidPrivateKey,
		})
	}
	if len(notifiers) == 0 {
		return notify.Nop{}, nil
	}
	return notifiers, nil
}

type Store interface {
	SaveMessage(ctx context.Context, msg *types.ContactMessage) error
	RecentMessages(ctx context.Context, limit int) ([]types.ContactMessage, error)
	SaveSubscription(ctx context.Context, sub *types.PushSubscription) error
	DeleteSubscription(ctx context.Context, endpoint string) error
	Ping(ctx context.Context) error
}

func newServer(cfg types.APIConfig, store Store, notifier notify.Notifier) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = jsonErrorHandler

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
		LogLevel:  log.ERROR,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logrus.Error(errors.Wrap(err, "recovered panic:"))
			for _, l := range strings.Split(string(stack), "\n") {
				logrus.Errorf("stack: %s", strings.ReplaceAll(l, "\t", "  "))
			}
			return nil
		},
	}))

	e.Use(middleware.Secure())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(middleware.BodyLimit("64K"))

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "method=${method}, uri=${uri}, status=${status}\n",
		Skipper: func(c echo.Context) bool {
			return strings.HasSuffix(c.Request().URL.Path, "/health")
		},
	}))

	health := healthHandler(store)
	e.GET("/health", health)

	api := e.Group("/api")
	api.GET("/health", health)
	api.POST("/contact", submitContact(store, notifier))

	if cfg.AdminEnabled() {
		auth := middleware.BasicAuth(adminValidator(cfg))
		api.GET("/contact", listContacts(store), auth)
		api.POST("/push/subscribe", saveSubscription(store), auth)
		api.POST("/push/unsubscribe", removeSubscription(store), auth)
	}

	return e
}
