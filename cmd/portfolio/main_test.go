package main

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/oliverisaac/portfolio/lib/contactclient"
	"github.com/oliverisaac/portfolio/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type site struct {
	srv    *httptest.Server
	client *http.Client
	calls  *int32
}

func newSite(t *testing.T, status int, body string) site {
	t.Helper()
	var calls int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/api/contact", r.URL.Path)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(backend.Close)

	s := newSiteForAPI(t, backend.URL+"/api")
	s.calls = &calls
	return s
}

func newSiteForAPI(t *testing.T, apiURL string) site {
	t.Helper()
	cfg := types.Config{
		APIURL:         apiURL,
		CookieSecret:   []byte("test-secret"),
		SuccessDisplay: 5 * time.Second,
	}
	forms := newFormRegistry(cfg, contactclient.New(contactclient.Config{BaseURL: cfg.APIURL}))
	srv := httptest.NewServer(newServer(cfg, forms))
	t.Cleanup(srv.Close)

	return site{srv: srv, client: newVisitor(t), calls: new(int32)}
}

func newVisitor(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (s site) get(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := s.client.Get(s.srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func (s site) submit(t *testing.T, data types.ContactFormData, htmx bool) *http.Response {
	t.Helper()
	form := url.Values{"name": {data.Name}, "email": {data.Email}, "message": {data.Message}}
	req, err := http.NewRequest(http.MethodPost, s.srv.URL+"/contact", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	resp, err := s.client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

var ann = types.ContactFormData{Name: "Ann", Email: "ann@x.com", Message: "hi"}

func TestHomePage(t *testing.T) {
	s := newSite(t, http.StatusOK, `{"success":true}`)
	status, body := s.get(t, "/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `<section id="projects">`)
	assert.Contains(t, body, `<form id="contact-form"`)
	assert.Equal(t, int32(0), atomic.LoadInt32(s.calls))
}

func TestSubmitContact_Success(t *testing.T) {
	s := newSite(t, http.StatusOK, `{"success":true,"message":"Message sent!"}`)

	resp := s.submit(t, ann, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)

	assert.Contains(t, body, `role="status">Message sent!</div>`)
	assert.Contains(t, body, `name="name" type="text" placeholder="Your Name" value=""`)
	assert.Contains(t, body, `name="email" type="email" placeholder="your.email@example.com" value=""`)
	assert.Contains(t, body, `hx-trigger="load delay:5000ms"`)
	assert.NotContains(t, body, "Ann")
	assert.Equal(t, int32(1), atomic.LoadInt32(s.calls))
}

func TestSubmitContact_ValidationError(t *testing.T) {
	s := newSite(t, http.StatusUnprocessableEntity,
		`{"success":false,"message":"Validation failed","errors":[{"field":"email","message":"Invalid email"}]}`)

	body := readBody(t, s.submit(t, ann, true))

	assert.Contains(t, body, `<p class="field-error" id="email-error">Invalid email</p>`)
	assert.Contains(t, body, `role="alert">Validation failed</div>`)
	assert.NotContains(t, body, contactclient.NetworkErrorMessage)
	assert.Contains(t, body, `value="ann@x.com"`)
}

func TestSubmitContact_RedirectWithoutHTMX(t *testing.T) {
	s := newSite(t, http.StatusOK, `{"success":true,"message":"Message sent!"}`)

	resp := s.submit(t, ann, false)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/#contact", resp.Header.Get("Location"))

	_, body := s.get(t, "/")
	assert.Contains(t, body, "Message sent!")
}

func TestSubmitContact_BackendDown(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	backend.Close()
	s := newSiteForAPI(t, backend.URL+"/api")

	body := readBody(t, s.submit(t, ann, true))
	assert.Contains(t, body, contactclient.NetworkErrorMessage)
	assert.NotContains(t, body, "field-error")
	assert.Contains(t, body, `value="Ann"`)
}

func TestContactFragmentReflectsSession(t *testing.T) {
	s := newSite(t, http.StatusOK, `{"success":true,"message":"Message sent!"}`)
	s.submit(t, ann, true)

	_, body := s.get(t, "/contact")
	assert.Contains(t, body, "Message sent!")

	stranger := site{srv: s.srv, client: newVisitor(t)}
	_, body = stranger.get(t, "/contact")
	assert.NotContains(t, body, "Message sent!", "a new visitor gets a fresh form")
}
