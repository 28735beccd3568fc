package types

import (
	"gorm.io/gorm"
)

// PushSubscription is a browser of the site owner that wants to hear about new contact messages.
type PushSubscription struct {
	gorm.Model
	Endpoint string `gorm:"uniqueIndex"`
	P256DH   string
	Auth     string
	Keys     string
}
