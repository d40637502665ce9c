package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"locallens/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_AttachesToken(t *testing.T) {
	var gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get(AuthHeader)
		_ = json.NewEncoder(w).Encode(map[string]any{"user": models.User{ID: 1, Username: "alice"}})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	c.SetToken("session-token")

	user, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "session-token", gotToken)
	assert.Equal(t, "alice", user.Username)
}

func TestClient_RegisterStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/register":
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"token": "fresh-token",
				"user":  models.User{ID: 1, Username: "alice"},
			})
		case "/api/auth/user":
			assert.Equal(t, "fresh-token", r.Header.Get(AuthHeader))
			_ = json.NewEncoder(w).Encode(map[string]any{"user": models.User{ID: 1}})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	session, err := c.Register(context.Background(), "alice", "a@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", session.Token)

	_, err = c.CurrentUser(context.Background())
	require.NoError(t, err)
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Invalid credentials", Code: "VALIDATION_ERROR"})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.Login(context.Background(), "a@x.com", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
}

func TestClient_FallbackOnlyOnTransportError(t *testing.T) {
	// A dead server is a transport error, so fallback data is served.
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	c := New(Config{BaseURL: dead.URL, UseFallbackData: true})
	ctx := context.Background()

	categories, err := c.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, len(models.DefaultCategories))

	locations, err := c.Locations(ctx)
	require.NoError(t, err)
	assert.Equal(t, fallbackLocations(), locations)

	posts, err := c.Posts(ctx, PostQuery{})
	require.NoError(t, err)
	assert.NotEmpty(t, posts)
}

func TestClient_NoFallbackWithoutFlag(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	c := New(Config{BaseURL: dead.URL})
	_, err := c.Categories(context.Background())
	assert.Error(t, err)
}

func TestClient_NoFallbackOnHTTPError(t *testing.T) {
	// A 500 reached the server, so fallback must not mask it.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Internal server error", Code: "INTERNAL_ERROR"})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, UseFallbackData: true})
	_, err := c.Posts(context.Background(), PostQuery{})
	require.Error(t, err)

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestClient_PostQueryEncoding(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]models.PostView{})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.Posts(context.Background(), PostQuery{Category: "Lost & Found", Location: "Erode", Sort: "popular"})
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "category=Lost+%26+Found")
	assert.Contains(t, gotQuery, "location=Erode")
	assert.Contains(t, gotQuery, "sort=popular")
}
