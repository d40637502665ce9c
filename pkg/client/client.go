// Package client provides a typed Go client for the LocalLens API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"locallens/internal/models"
)

// AuthHeader is the request header carrying the session token.
const AuthHeader = "x-auth-token"

// Config configures a Client.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	// UseFallbackData serves canned demo content for read endpoints when
	// the server cannot be reached at all. HTTP error statuses are still
	// surfaced as errors.
	UseFallbackData bool
}

// Client is a LocalLens API client.
type Client struct {
	baseURL  string
	http     *http.Client
	fallback bool
	token    string
}

// New creates a Client. A nil HTTPClient gets a 10s-timeout default.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		http:     httpClient,
		fallback: cfg.UseFallbackData,
	}
}

// SetToken attaches a session token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
	Code    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Session is the response to register and login calls.
type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// PostQuery narrows a post listing.
type PostQuery struct {
	Category string
	Location string
	Sort     string
}

// PostInput is the payload for creating or updating a post.
type PostInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Location string `json:"location"`
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(AuthHeader, c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &transportError{err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: apiErr.Error, Code: apiErr.Code}
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// transportError marks a request that never produced an HTTP response.
type transportError struct {
	err error
}

func (e *transportError) Error() string { return fmt.Sprintf("request failed: %v", e.err) }
func (e *transportError) Unwrap() error { return e.err }

func isTransportError(err error) bool {
	_, ok := err.(*transportError)
	return ok
}

// Register creates an account and returns the new session.
func (c *Client) Register(ctx context.Context, username, email, password string) (*Session, error) {
	var session Session
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &session)
	if err != nil {
		return nil, err
	}
	c.token = session.Token
	return &session, nil
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &session)
	if err != nil {
		return nil, err
	}
	c.token = session.Token
	return &session, nil
}

// CurrentUser returns the user behind the attached session token.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var body struct {
		User models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/user", nil, &body); err != nil {
		return nil, err
	}
	return &body.User, nil
}

// Posts lists posts narrowed by the query.
func (c *Client) Posts(ctx context.Context, q PostQuery) ([]models.PostView, error) {
	params := url.Values{}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Location != "" {
		params.Set("location", q.Location)
	}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	path := "/api/posts"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var posts []models.PostView
	if err := c.do(ctx, http.MethodGet, path, nil, &posts); err != nil {
		if c.fallback && isTransportError(err) {
			return fallbackPosts(), nil
		}
		return nil, err
	}
	return posts, nil
}

// Post fetches a single post.
func (c *Client) Post(ctx context.Context, id uint) (*models.PostView, error) {
	var post models.PostView
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/posts/%d", id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost publishes a new post.
func (c *Client) CreatePost(ctx context.Context, in PostInput) (*models.PostView, error) {
	var post models.PostView
	if err := c.do(ctx, http.MethodPost, "/api/posts", in, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost edits a post the caller authored.
func (c *Client) UpdatePost(ctx context.Context, id uint, in PostInput) (*models.PostView, error) {
	var post models.PostView
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/posts/%d", id), in, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes a post the caller authored.
func (c *Client) DeletePost(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/%d", id), nil, nil)
}

// ThankPost flips the caller's thank mark and returns the updated post.
func (c *Client) ThankPost(ctx context.Context, id uint) (*models.PostView, error) {
	var post models.PostView
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/posts/%d/thank", id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Categories lists all categories.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &categories); err != nil {
		if c.fallback && isTransportError(err) {
			return fallbackCategories(), nil
		}
		return nil, err
	}
	return categories, nil
}

// Locations lists the known locations.
func (c *Client) Locations(ctx context.Context) ([]string, error) {
	var locations []string
	if err := c.do(ctx, http.MethodGet, "/api/locations", nil, &locations); err != nil {
		if c.fallback && isTransportError(err) {
			return fallbackLocations(), nil
		}
		return nil, err
	}
	return locations, nil
}
