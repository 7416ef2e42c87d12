package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core"
)

type nopLogger struct{}

func (nopLogger) Enable(bool)                        {}
func (nopLogger) Debug(string, ...interface{})       {}
func (nopLogger) Info(string, ...interface{})        {}
func (nopLogger) Warn(string, ...interface{})        {}
func (nopLogger) Error(string, ...interface{})       {}
func (nopLogger) Fatal(msg string, _ ...interface{}) { panic(msg) }

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	conf := core.TestConfig()
	conf.API.BaseURL = srv.URL
	return NewClient(conf, nopLogger{})
}

func TestCoalesceDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"plain string", `{"detail": "Recurso no encontrado"}`, "Recurso no encontrado"},
		{"msg list", `{"detail": [{"msg": "campo requerido"}, {"msg": "valor inválido"}]}`, "campo requerido, valor inválido"},
		{"msg list with blanks", `{"detail": [{"msg": ""}, {"msg": "solo este"}]}`, "solo este"},
		{"unknown object", `{"detail": {"code": 7}}`, `{"code": 7}`},
		{"no envelope", `oops`, "500 Internal Server Error"},
		{"empty detail", `{}`, "500 Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := coalesceDetail([]byte(tt.body), "500 Internal Server Error")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrorEnvelopeRoundTrip(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Publicación no encontrada"}`))
	}))

	err := c.get(context.Background(), "/publicaciones/nope", nil, &struct{}{})
	var apiErr *APIError
	if assert.ErrorAs(t, err, &apiErr) {
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
		assert.Equal(t, "Publicación no encontrada", apiErr.Display())
	}
}

func TestUnauthorizedSentinel(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Not authenticated"}`))
	}))

	_, err := c.Feed(context.Background(), 0, 20)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestBearerHeaderAndPaging(t *testing.T) {
	var gotAuth, gotQuery string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/api/v1/publicaciones", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	c.SetToken("tok-123")

	if _, err := c.Feed(context.Background(), 10, 5); err != nil {
		t.Fatalf("Feed() failed: %v", err)
	}
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "limit=5&skip=10", gotQuery)
}

func TestAuthenticate(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm() failed: %v", err)
		}
		assert.Equal(t, "ana@uni.edu", r.PostFormValue("username"))
		assert.Equal(t, "secret", r.PostFormValue("password"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token": "tok-abc", "token_type": "bearer"}`))
	}))

	tok, err := c.Authenticate(context.Background(), "ana@uni.edu", "secret")
	if err != nil {
		t.Fatalf("Authenticate() failed: %v", err)
	}
	assert.Equal(t, "tok-abc", tok)
}

func TestAuthenticateMissingToken(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token_type": "bearer"}`))
	}))

	_, err := c.Authenticate(context.Background(), "ana@uni.edu", "secret")
	assert.Error(t, err)
}
