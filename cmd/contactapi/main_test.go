package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/portfolio/lib/contactclient"
	"github.com/oliverisaac/portfolio/lib/contactstore"
	"github.com/oliverisaac/portfolio/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type chanNotifier chan types.ContactMessage

func (n chanNotifier) Notify(_ context.Context, msg types.ContactMessage) error {
	n <- msg
	return nil
}

type testAPI struct {
	e        *echo.Echo
	store    *contactstore.Store
	notified chanNotifier
}

func newTestAPI(t *testing.T, withAdmin bool) testAPI {
	t.Helper()
	store, err := contactstore.Open(filepath.Join(t.TempDir(), "contact.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cfg := types.APIConfig{AllowedOrigins: []string{"*"}, AdminUser: "admin", Hostname: "example.com"}
	if withAdmin {
		hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
		require.NoError(t, err)
		cfg.AdminPasswordHash = hash
	}

	notified := make(chanNotifier, 10)
	return testAPI{e: newServer(cfg, store, notified), store: store, notified: notified}
}

func (a testAPI) do(t *testing.T, method, path, body string, auth bool) (*httptest.ResponseRecorder, types.ApiResponse[json.RawMessage]) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if auth {
		req.SetBasicAuth("admin", "secret")
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)

	var resp types.ApiResponse[json.RawMessage]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec, resp
}

func TestSubmitContact_Created(t *testing.T) {
	api := newTestAPI(t, false)

	rec, resp := api.do(t, http.MethodPost, "/api/contact", `{"name":" Ann ","email":"ann@x.com","message":"hi"}`, false)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "Message sent!", resp.Message)

	var receipt types.ContactReceipt
	require.NotNil(t, resp.Data)
	require.NoError(t, json.Unmarshal(*resp.Data, &receipt))
	assert.Equal(t, "Ann", receipt.Name)
	assert.NotEmpty(t, receipt.ID)

	msgs, err := api.store.RecentMessages(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi", msgs[0].Message)

	select {
	case msg := <-api.notified:
		assert.Equal(t, "ann@x.com", msg.Email)
	case <-time.After(time.Second):
		t.Fatal("owner was not notified")
	}
}

func TestSubmitContact_Validation(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		errors []types.FieldError
	}{
		{
			name:   "invalid email",
			body:   `{"name":"Ann","email":"not-an-email","message":"hi"}`,
			errors: []types.FieldError{{Field: "email", Message: "Invalid email"}},
		},
		{
			name: "blank fields",
			body: `{"name":"  ","email":"","message":""}`,
			errors: []types.FieldError{
				{Field: "name", Message: "Name is required"},
				{Field: "email", Message: "Email is required"},
				{Field: "message", Message: "Message is required"},
			},
		},
		{
			name:   "too long",
			body:   `{"name":"` + strings.Repeat("a", 101) + `","email":"ann@x.com","message":"hi"}`,
			errors: []types.FieldError{{Field: "name", Message: "Name must be at most 100 characters"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t, false)
			rec, resp := api.do(t, http.MethodPost, "/api/contact", tt.body, false)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.False(t, resp.Success)
			assert.Equal(t, "Validation failed", resp.Message)
			assert.Equal(t, tt.errors, resp.Errors)

			msgs, err := api.store.RecentMessages(context.Background(), 10)
			require.NoError(t, err)
			assert.Empty(t, msgs)
		})
	}
}

func TestSubmitContact_MalformedBody(t *testing.T) {
	api := newTestAPI(t, false)
	rec, resp := api.do(t, http.MethodPost, "/api/contact", `{"name":`, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid request body", resp.Message)
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t, false)
	for _, path := range []string{"/health", "/api/health"} {
		rec, resp := api.do(t, http.MethodGet, path, "", false)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, resp.Success)
	}
}

func TestAdmin(t *testing.T) {
	api := newTestAPI(t, true)
	api.do(t, http.MethodPost, "/api/contact", `{"name":"Ann","email":"ann@x.com","message":"hi"}`, false)

	rec, resp := api.do(t, http.MethodGet, "/api/contact", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, resp.Success)

	rec, resp = api.do(t, http.MethodGet, "/api/contact?limit=5", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []contactEntry
	require.NotNil(t, resp.Data)
	require.NoError(t, json.Unmarshal(*resp.Data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "hi", entries[0].Message)

	rec, _ = api.do(t, http.MethodGet, "/api/contact?limit=zero", "", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	sub := `{"endpoint":"https://push.example.com/1","keys":{"p256dh":"key","auth":"auth"}}`
	rec, _ = api.do(t, http.MethodPost, "/api/push/subscribe", sub, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	subs, err := api.store.Subscriptions(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "auth", subs[0].Auth)

	rec, _ = api.do(t, http.MethodPost, "/api/push/subscribe", `{"endpoint":""}`, true)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = api.do(t, http.MethodPost, "/api/push/unsubscribe", sub, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	subs, err = api.store.Subscriptions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestAdminDisabled(t *testing.T) {
	api := newTestAPI(t, false)
	rec, resp := api.do(t, http.MethodPost, "/api/push/subscribe", `{}`, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, resp.Success)
}

func TestWithContactClient(t *testing.T) {
	api := newTestAPI(t, false)
	srv := httptest.NewServer(api.e)
	defer srv.Close()
	client := contactclient.New(contactclient.Config{BaseURL: srv.URL + "/api"})

	resp, err := client.SubmitContact(context.Background(), types.ContactFormData{Name: "Ann", Email: "ann@x.com", Message: "hi"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "ann@x.com", resp.Data.Email)

	_, err = client.SubmitContact(context.Background(), types.ContactFormData{Name: "Ann", Email: "nope", Message: "hi"})
	apiErr, ok := contactclient.AsApiError(err)
	require.True(t, ok)
	assert.Equal(t, contactclient.KindValidation, apiErr.Kind)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, []types.FieldError{{Field: "email", Message: "Invalid email"}}, apiErr.Errors)

	health, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Data.Status)
}
