package apiclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fekuna/bao-console/internal/logger"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestDoAttachesSessionCredentials(t *testing.T) {
	var gotHeader, gotCookie, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get(SessionHeader)
		if c, err := r.Cookie(SessionCookie); err == nil {
			gotCookie = c.Value
		}
		gotRequestID = r.Header.Get(RequestIDHeader)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"message":"ok"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, 0, staticToken("abc123"), logger.NewNop())
	var out struct{ Message string }
	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/students", nil, &out))

	assert.Equal(t, "ok", out.Message)
	assert.Equal(t, "abc123", gotHeader)
	assert.Equal(t, "abc123", gotCookie)
	assert.NotEmpty(t, gotRequestID)
}

func TestDoWithoutSessionSendsNoCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get(SessionHeader))
		_, err := r.Cookie(SessionCookie)
		assert.Error(t, err)
	}))
	defer srv.Close()

	c := New(srv.URL, 0, staticToken(""), logger.NewNop())
	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/orders", nil, nil))
}

func TestErrorCarriesServerDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"Product not found"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, 0, nil, logger.NewNop())
	err := c.Do(context.Background(), http.MethodGet, "/products/9", nil, nil)

	require.Error(t, err)
	assert.Equal(t, "Product not found", err.Error())
	assert.True(t, IsNotFound(err))
}

func TestErrorFallsBackToStatusMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	}))
	defer srv.Close()

	c := New(srv.URL, 0, nil, logger.NewNop())
	err := c.Do(context.Background(), http.MethodGet, "/orders", nil, nil)

	require.Error(t, err)
	assert.Equal(t, "HTTP error! status: 502", err.Error())
	assert.Equal(t, http.StatusBadGateway, StatusCode(err))
}

func TestErrorJoinsValidationDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"detail":[{"loc":["body","price"],"msg":"field required"}]}`)
	}))
	defer srv.Close()

	c := New(srv.URL, 0, nil, logger.NewNop())
	err := c.Do(context.Background(), http.MethodPost, "/products", map[string]string{}, nil)

	require.Error(t, err)
	assert.Equal(t, "price: field required", err.Error())
}

func TestDoProtectedShortCircuits(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	c := New(srv.URL, 0, staticToken(""), logger.NewNop())
	err := c.DoProtected(context.Background(), http.MethodGet, "/auth/me", nil, nil)

	assert.True(t, errors.Is(err, ErrNotAuthenticated))
	assert.True(t, IsUnauthorized(err))
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(url, 0, nil, logger.NewNop())
	err := c.Do(context.Background(), http.MethodGet, "/orders", nil, nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		body, _ := io.ReadAll(f)
		assert.Equal(t, "shirt.png", hdr.Filename)
		assert.Equal(t, "PNGDATA", string(body))
		_, _ = io.WriteString(w, `{"url":"/uploads/shirt.png"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, 0, staticToken("tok"), logger.NewNop())
	var out struct {
		URL string `json:"url"`
	}
	require.NoError(t, c.Upload(context.Background(), "/upload-image", "file", "shirt.png", strings.NewReader("PNGDATA"), &out))
	assert.Equal(t, "/uploads/shirt.png", out.URL)
}
