// Package notify tells the site owner about new contact messages.
package notify

import (
	"context"
	errs "errors"
	"fmt"
	"unicode/utf8"

	"github.com/oliverisaac/portfolio/types"
)

const Topic = "portfolio-contact"

type Notifier interface {
	Notify(ctx context.Context, msg types.ContactMessage) error
}

type Nop struct{}

func (Nop) Notify(context.Context, types.ContactMessage) error {
	return nil
}

// Multi sends to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, msg types.ContactMessage) error {
	var ret error
	for _, n := range m {
		ret = errs.Join(ret, n.Notify(ctx, msg))
	}
	return ret
}

func title(msg types.ContactMessage) string {
	return fmt.Sprintf("New message from %s", msg.Name)
}

func summary(msg types.ContactMessage, max int) string {
	if utf8.RuneCountInString(msg.Message) <= max {
		return msg.Message
	}
	r := []rune(msg.Message)
	return string(r[:max]) + "…"
}
