package main

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oliverisaac/portfolio/types"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func adminValidator(cfg types.APIConfig) middleware.BasicAuthValidator {
	return func(username, password string, c echo.Context) (bool, error) {
		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(cfg.AdminUser)) == 1
		passOK := bcrypt.CompareHashAndPassword(cfg.AdminPasswordHash, []byte(password)) == nil
		if !userOK || !passOK {
			logrus.Warnf("Failed admin login attempt from %s", c.RealIP())
			return false, nil
		}
		return true, nil
	}
}
