package types

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

type ContactMessage struct {
	gorm.Model
	Name      string
	Email     string `gorm:"index"`
	Message   string
	RemoteIP  string
	UserAgent string
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func NewContactMessage(data ContactFormData) ContactMessage {
	return ContactMessage{
		Name:      data.Name,
		Email:     data.Email,
		Message:   data.Message,
		CreatedAt: time.Now(),
	}
}

func (m ContactMessage) Receipt() ContactReceipt {
	return ContactReceipt{
		ID:        strconv.FormatUint(uint64(m.ID), 10),
		Name:      m.Name,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
	}
}
