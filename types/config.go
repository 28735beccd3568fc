package types

import (
	errs "errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/oliverisaac/goli"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// DefaultAPIURL is the contact backend used when PORTFOLIO_API_URL is unset.
// The site always talks to the backend through an absolute base URL.
const DefaultAPIURL = "http://localhost:5000/api"

// Config is the configuration of the portfolio web site.
type Config struct {
	ListenAddr     string
	APIURL         string
	CookieSecret   []byte
	SuccessDisplay time.Duration
}

func ConfigFromEnv() (Config, error) {
	ret := Config{}
	var retErr error
	var err error

	ret.ListenAddr = goli.DefaultEnv("PORTFOLIO_LISTEN_ADDR", ":8080")

	ret.APIURL, err = ParseAPIURL(goli.DefaultEnv("PORTFOLIO_API_URL", DefaultAPIURL))
	if err != nil {
		retErr = errs.Join(retErr, errors.Wrap(err, "parsing PORTFOLIO_API_URL"))
	}

	cookieSecret, ok := os.LookupEnv("PORTFOLIO_COOKIE_STORE_SECRET")
	if !ok || cookieSecret == "" {
		retErr = errs.Join(retErr, fmt.Errorf("You must define env PORTFOLIO_COOKIE_STORE_SECRET"))
	} else {
		ret.CookieSecret = []byte(cookieSecret)
	}

	ret.SuccessDisplay, err = time.ParseDuration(goli.DefaultEnv("PORTFOLIO_SUCCESS_DISPLAY", "5s"))
	if err != nil {
		retErr = errs.Join(retErr, errors.Wrap(err, "parsing PORTFOLIO_SUCCESS_DISPLAY"))
	} else if ret.SuccessDisplay <= 0 {
		retErr = errs.Join(retErr, fmt.Errorf("PORTFOLIO_SUCCESS_DISPLAY must be positive, got %s", ret.SuccessDisplay))
	}

	logrus.Infof("Contact API base URL: %s", ret.APIURL)

	return ret, retErr
}

// ParseAPIURL validates an absolute http(s) base URL and strips any trailing slash.
func ParseAPIURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("base URL %q must be absolute http(s)", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("base URL %q has no host", raw)
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// APIConfig is the configuration of the contact backend.
type APIConfig struct {
	ListenAddr        string
	DBPath            string
	Hostname          string
	AllowedOrigins    []string
	AdminUser         string
	AdminPasswordHash []byte
	PushableEndpoint  string
	VapidPublicKey    string
	VapidPrivateKey   string
}

func APIConfigFromEnv() (APIConfig, error) {
	ret := APIConfig{}
	var retErr error
	var ok bool

	ret.ListenAddr = goli.DefaultEnv("CONTACT_API_LISTEN_ADDR", ":5000")
	ret.Hostname = goli.DefaultEnv("CONTACT_API_HOSTNAME", "localhost")
	ret.AdminUser = goli.DefaultEnv("CONTACT_API_ADMIN_USER", "admin")

	for _, o := range strings.Split(goli.DefaultEnv("CONTACT_API_ALLOWED_ORIGINS", "*"), ",") {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		ret.AllowedOrigins = append(ret.AllowedOrigins, o)
	}

	ret.DBPath, ok = os.LookupEnv("CONTACT_API_DB_PATH")
	if !ok {
		retErr = errs.Join(retErr, fmt.Errorf("You must define env CONTACT_API_DB_PATH"))
	} else if _, err := os.Stat(path.Dir(ret.DBPath)); err != nil {
		retErr = errs.Join(retErr, errors.Wrap(err, "Directory for CONTACT_API_DB_PATH must exist"))
	}

	if hash := os.Getenv("CONTACT_API_ADMIN_PASSWORD_HASH"); hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			retErr = errs.Join(retErr, errors.Wrap(err, "CONTACT_API_ADMIN_PASSWORD_HASH must be a bcrypt hash"))
		} else {
			ret.AdminPasswordHash = []byte(hash)
		}
	} else {
		logrus.Warn("CONTACT_API_ADMIN_PASSWORD_HASH is not set, admin routes are disabled")
	}

	if endpoint := os.Getenv("PUSHABLE_ENDPOINT"); endpoint != "" {
		if _, err := url.Parse(endpoint); err != nil {
			retErr = errs.Join(retErr, errors.Wrap(err, "parsing PUSHABLE_ENDPOINT"))
		} else {
			ret.PushableEndpoint = endpoint
		}
	}

	ret.VapidPublicKey = os.Getenv("VAPID_PUBLIC_KEY")
	ret.VapidPrivateKey = os.Getenv("VAPID_PRIVATE_KEY")
	if (ret.VapidPublicKey == "") != (ret.VapidPrivateKey == "") {
		retErr = errs.Join(retErr, fmt.Errorf("VAPID_PUBLIC_KEY and VAPID_PRIVATE_KEY must be set together"))
	}

	return ret, retErr
}

func (c APIConfig) AdminEnabled() bool {
	return len(c.AdminPasswordHash) > 0
}

func (c APIConfig) WebPushEnabled() bool {
	return c.VapidPublicKey != "" && c.VapidPrivateKey != ""
}
