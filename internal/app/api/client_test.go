package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwrk-planet/aichat/pkg/errs"
	"github.com/cwrk-planet/aichat/pkg/httputil"
)

func newTestClient(t *testing.T, h http.Handler) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(Options{BaseURL: srv.URL + "/", Timeout: time.Second, HealthTimeout: time.Second})
	require.NoError(t, err)
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Options{BaseURL: "  "})
	assert.Error(t, err)
}

func TestLogin_SendsJSONAndReturnsToken(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, PathLogin, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "rid-1", r.Header.Get(httputil.HeaderRequestID))

		var in CredentialsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, CredentialsRequest{Username: "alice", Password: "secret1"}, in)

		_, _ = w.Write([]byte(`{"access_token":"abc","token_type":"bearer"}`))
	}))

	ctx := httputil.WithRequestID(context.Background(), "rid-1")
	res, err := c.Login(ctx, CredentialsRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, "abc", res.Token())
}

func TestRegister_PostsToRegisterPath(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathRegister, r.URL.Path)
		w.WriteHeader(http.StatusCreated)
	}))

	res, err := c.Register(context.Background(), CredentialsRequest{Username: "bob", Password: "secret1"})
	require.NoError(t, err)
	assert.True(t, res.Created())
	assert.False(t, res.OK())
}

func TestChat_SetsIdentityHeaders(t *testing.T) {
	var gotAuth, gotUser string
	var body map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUser = r.Header.Get(HeaderUsername)
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = w.Write([]byte(`{"response":"42"}`))
	}))

	res, err := c.Chat(context.Background(), ChatRequest{Message: "meaning?", Topic: "Science", Username: "alice", Token: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "alice", gotUser)
	assert.Equal(t, map[string]any{"message": "meaning?", "topic": "Science"}, body)

	reply, err := res.Reply()
	require.NoError(t, err)
	assert.Equal(t, "42", reply)

	_, err = c.Chat(context.Background(), ChatRequest{Message: "x", Topic: "General", Username: "alice"})
	require.NoError(t, err)
	assert.Empty(t, gotAuth, "no token, no Authorization header")
}

func TestPost_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := New(Options{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = c.Login(context.Background(), CredentialsRequest{Username: "a", Password: "b"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, http.StatusGatewayTimeout, errs.ToHTTP(err))
}

func TestPost_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	c, err := New(Options{BaseURL: "http://" + addr, Timeout: time.Second})
	require.NoError(t, err)

	_, err = c.Register(context.Background(), CredentialsRequest{Username: "a", Password: "b"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnection)
	assert.False(t, errors.Is(err, ErrTimeout))
}

func TestHealth(t *testing.T) {
	ok := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, PathHealth, r.URL.Path)
	}))
	assert.True(t, ok.Health(context.Background()))

	down := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	assert.False(t, down.Health(context.Background()))
}

func TestResponseDetail(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"string detail", `{"detail":"Username already registered"}`, "Username already registered"},
		{"list detail", `{"detail":[{"loc":["body","username"],"msg":"field required"}]}`, `[{"loc":["body","username"],"msg":"field required"}]`},
		{"spaced list", `{"detail": [ {"msg": "x"} ]}`, `[{"msg":"x"}]`},
		{"null detail", `{"detail":null}`, `{"detail":null}`},
		{"no detail", `{"error":"nope"}`, `{"error":"nope"}`},
		{"not json", `Internal Server Error`, "Internal Server Error"},
		{"empty", ``, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Response{Status: 400, Body: []byte(c.body)}.Detail())
		})
	}
}

func TestResponseToken(t *testing.T) {
	assert.Equal(t, "t1", Response{Body: []byte(`{"token":"t1","access_token":"t2"}`)}.Token())
	assert.Equal(t, "t2", Response{Body: []byte(`{"token":"","access_token":"t2"}`)}.Token())
	assert.Empty(t, Response{Body: []byte(`ok`)}.Token())
}

func TestResponseReply(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"string", `{"response":"hello"}`, "hello"},
		{"missing", `{}`, NoReply},
		{"number", `{"response":42}`, "42"},
		{"object", `{"response": {"text": "hi"}}`, `{"text":"hi"}`},
		{"null value", `{"response":null}`, "null"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Response{Status: 200, Body: []byte(c.body)}.Reply()
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}

	for _, body := range []string{`<html>`, `null`, `["a"]`, `"text"`, ``} {
		_, err := Response{Status: 200, Body: []byte(body)}.Reply()
		assert.Error(t, err, "body=%q", body)
	}
}
