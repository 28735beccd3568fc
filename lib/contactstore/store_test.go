package contactstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/oliverisaac/portfolio/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "contact.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestMessages(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, name := range []string{"Ann", "Bob", "Cid"} {
		msg := types.NewContactMessage(types.ContactFormData{Name: name, Email: name + "@x.com", Message: "hi"})
		msg.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, s.SaveMessage(ctx, &msg))
		assert.NotZero(t, msg.ID)
	}

	recent, err := s.RecentMessages(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Cid", recent[0].Name)
	assert.Equal(t, "Bob", recent[1].Name)

	receipt := recent[0].Receipt()
	assert.Equal(t, "Cid@x.com", receipt.Email)
	assert.NotEmpty(t, receipt.ID)
}

func TestSubscriptions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSubscription(ctx, &types.PushSubscription{Endpoint: "https://push/1", Auth: "a"}))
	require.NoError(t, s.SaveSubscription(ctx, &types.PushSubscription{Endpoint: "https://push/2", Auth: "b"}))
	require.NoError(t, s.SaveSubscription(ctx, &types.PushSubscription{Endpoint: "https://push/1", Auth: "c"}))

	subs, err := s.Subscriptions(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	byEndpoint := map[string]string{}
	for _, sub := range subs {
		byEndpoint[sub.Endpoint] = sub.Auth
	}
	assert.Equal(t, "c", byEndpoint["https://push/1"])

	require.NoError(t, s.DeleteSubscription(ctx, "https://push/1"))
	subs, err = s.Subscriptions(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "https://push/2", subs[0].Endpoint)
}
