package contactclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/oliverisaac/portfolio/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ann = types.ContactFormData{Name: "Ann", Email: "ann@x.com", Message: "hi"}

func newBackend(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestSubmitContact_Request(t *testing.T) {
	var got types.ContactFormData
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/contact", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"success":true}`)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL + "/api"})
	_, err := c.SubmitContact(context.Background(), ann)
	require.NoError(t, err)
	assert.Equal(t, ann, got)
}

func TestSubmitContact_Success(t *testing.T) {
	srv, calls := newBackend(t, http.StatusCreated,
		`{"success":true,"message":"Message sent!","data":{"id":"7","name":"Ann","email":"ann@x.com","createdAt":"2026-01-02T03:04:05Z"}}`)

	resp, err := New(Config{BaseURL: srv.URL}).SubmitContact(context.Background(), ann)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Message sent!", resp.Message)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "7", resp.Data.ID)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestSubmitContact_ValidationError(t *testing.T) {
	srv, _ := newBackend(t, http.StatusUnprocessableEntity,
		`{"success":false,"message":"Validation failed","errors":[{"field":"email","message":"invalid"}]}`)

	_, err := New(Config{BaseURL: srv.URL}).SubmitContact(context.Background(), ann)
	apiErr, ok := AsApiError(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, apiErr.Kind)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "Validation failed", apiErr.Message)
	assert.Contains(t, apiErr.Errors, types.FieldError{Field: "email", Message: "invalid"})
	assert.Equal(t, map[string]string{"email": "invalid"}, apiErr.FieldErrors())
}

func TestSubmitContact_ApplicationError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "server message", status: 500, body: `{"success":false,"message":"Database unavailable"}`, message: "Database unavailable"},
		{name: "fallback message", status: 503, body: `{"success":false}`, message: DefaultErrorMessage},
		{name: "2xx without success", status: 200, body: `{"success":false,"message":"Rejected"}`, message: "Rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newBackend(t, tt.status, tt.body)
			_, err := New(Config{BaseURL: srv.URL}).SubmitContact(context.Background(), ann)
			apiErr, ok := AsApiError(err)
			require.True(t, ok)
			assert.Equal(t, KindApplication, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Empty(t, apiErr.Errors)
		})
	}
}

func TestSubmitContact_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(Config{BaseURL: url}).SubmitContact(context.Background(), ann)
	apiErr, ok := AsApiError(err)
	require.True(t, ok)
	assert.Equal(t, KindTransport, apiErr.Kind)
	assert.Equal(t, 0, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
}

func TestSubmitContact_UnparseableBody(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusBadGateway} {
		srv, _ := newBackend(t, status, `<html>bad gateway</html>`)
		_, err := New(Config{BaseURL: srv.URL}).SubmitContact(context.Background(), ann)
		apiErr, ok := AsApiError(err)
		require.True(t, ok)
		assert.Equal(t, KindTransport, apiErr.Kind)
		assert.Equal(t, 0, apiErr.Status)
		assert.NotEmpty(t, apiErr.Message)
	}
}

func TestSubmitContact_TrailingData(t *testing.T) {
	for _, body := range []string{`{"success":true} trailing`, `{"success":true}{"success":true}`} {
		srv, _ := newBackend(t, http.StatusOK, body)
		resp, err := New(Config{BaseURL: srv.URL}).SubmitContact(context.Background(), ann)
		apiErr, ok := AsApiError(err)
		require.True(t, ok, body)
		assert.Equal(t, KindTransport, apiErr.Kind)
		assert.Equal(t, 0, apiErr.Status)
		assert.False(t, resp.Success)
	}

	srv, _ := newBackend(t, http.StatusOK, "{\"success\":true}\n")
	_, err := New(Config{BaseURL: srv.URL}).SubmitContact(context.Background(), ann)
	assert.NoError(t, err, "trailing whitespace is fine")
}

func TestSubmitContact_CancelledContext(t *testing.T) {
	srv, calls := newBackend(t, http.StatusOK, `{"success":true}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{BaseURL: srv.URL}).SubmitContact(ctx, ann)
	apiErr, ok := AsApiError(err)
	require.True(t, ok)
	assert.Equal(t, KindTransport, apiErr.Kind)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestSubmitContact_Idempotent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv, calls := newBackend(t, http.StatusOK, `{"success":true,"message":"Message sent!"}`)
		c := New(Config{BaseURL: srv.URL})
		first, err1 := c.SubmitContact(context.Background(), ann)
		second, err2 := c.SubmitContact(context.Background(), ann)
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, first, second)
		assert.Equal(t, int32(2), atomic.LoadInt32(calls))
	})

	t.Run("failure", func(t *testing.T) {
		srv, _ := newBackend(t, http.StatusUnprocessableEntity,
			`{"success":false,"message":"Validation failed","errors":[{"field":"name","message":"Name is required"}]}`)
		c := New(Config{BaseURL: srv.URL})
		_, err1 := c.SubmitContact(context.Background(), ann)
		_, err2 := c.SubmitContact(context.Background(), ann)
		assert.Equal(t, err1, err2)
	})
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		_, _ = io.WriteString(w, `{"success":true,"data":{"status":"ok","timestamp":"2026-01-02T03:04:05Z"}}`)
	}))
	defer srv.Close()

	resp, err := New(Config{BaseURL: srv.URL + "/api"}).Health(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "ok", resp.Data.Status)

	srv.Close()
	_, err = New(Config{BaseURL: srv.URL + "/api"}).Health(context.Background())
	apiErr, ok := AsApiError(err)
	require.True(t, ok)
	assert.Equal(t, UnreachableMessage, apiErr.Message)
	assert.Equal(t, 0, apiErr.Status)
}

func TestHealth_Degraded(t *testing.T) {
	srv, _ := newBackend(t, http.StatusServiceUnavailable,
		`{"success":false,"message":"Database unavailable","data":{"status":"degraded","timestamp":"2026-01-02T03:04:05Z"}}`)

	resp, err := New(Config{BaseURL: srv.URL}).Health(context.Background())
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Database unavailable", resp.Message)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "degraded", resp.Data.Status)
}

func TestHealth_UnparseableBody(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, `<html>ok</html>`)
	_, err := New(Config{BaseURL: srv.URL}).Health(context.Background())
	apiErr, ok := AsApiError(err)
	require.True(t, ok)
	assert.Equal(t, KindTransport, apiErr.Kind)
	assert.Equal(t, UnreachableMessage, apiErr.Message)
}

func TestNewTransportError_KeepsApiError(t *testing.T) {
	orig := &ApiError{Kind: KindApplication, Message: "boom", Status: 500}
	assert.Same(t, orig, newTransportError(orig, NetworkErrorMessage))

	assert.Equal(t, NetworkErrorMessage, newTransportError(nil, NetworkErrorMessage).Message)
}
