package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oliverisaac/portfolio/lib/contactclient"
	"github.com/oliverisaac/portfolio/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSubmit(t *testing.T) {
	var got types.ContactFormData
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"success":true,"message":"Message sent!","data":{"id":"3"}}`)
	}))
	defer srv.Close()

	out, _, err := runCmd(t, "submit", "--api-url", srv.URL+"/api/", "--name", "Ann", "--email", "ann@x.com", "-m", "hi")
	require.NoError(t, err)
	assert.Equal(t, "Message sent!\nid: 3\n", out)
	assert.Equal(t, types.ContactFormData{Name: "Ann", Email: "ann@x.com", Message: "hi"}, got)
}

func TestSubmit_ValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"success":false,"message":"Validation failed","errors":[{"field":"email","message":"Invalid email"}]}`)
	}))
	defer srv.Close()

	_, errOut, err := runCmd(t, "submit", "--api-url", srv.URL, "--name", "Ann", "--email", "nope", "-m", "hi")
	require.Error(t, err)
	assert.Contains(t, errOut, "validation error (422): Validation failed")
	assert.Contains(t, errOut, "email: Invalid email")
}

func TestSubmit_MissingFlags(t *testing.T) {
	_, _, err := runCmd(t, "submit", "--name", "Ann")
	assert.Error(t, err)
}

func TestHealth_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, errOut, err := runCmd(t, "health", "--api-url", srv.URL)
	require.Error(t, err)
	assert.Contains(t, errOut, contactclient.UnreachableMessage)
}

func TestHealth_Degraded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"success":false,"message":"Database unavailable","data":{"status":"degraded"}}`)
	}))
	defer srv.Close()

	out, _, err := runCmd(t, "health", "--api-url", srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Database unavailable")
	assert.Equal(t, srv.URL+": degraded\n", out)
}

func TestBadAPIURL(t *testing.T) {
	_, _, err := runCmd(t, "health", "--api-url", "/api")
	assert.Error(t, err)
}
