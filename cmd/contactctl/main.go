// Command contactctl submits contact messages and checks the contact backend from a terminal.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Debug(err)
		os.Exit(1)
	}
}
