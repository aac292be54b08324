// Package api is a typed HTTP client for the catalog REST surface.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/vanshika/moviedb/internal/domain"
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Client talks to a catalog server rooted at a base URL.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// New builds a client for baseURL. A nil httpClient means http.DefaultClient.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: u, http: httpClient}, nil
}

func (c *Client) ListActors(ctx context.Context) ([]domain.Actor, error) {
	var out []domain.Actor
	err := c.do(ctx, http.MethodGet, "/actors", nil, &out)
	return out, err
}

func (c *Client) GetActor(ctx context.Context, id string) (domain.Actor, error) {
	var out domain.Actor
	err := c.do(ctx, http.MethodGet, "/actors/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) CreateActor(ctx context.Context, draft domain.ActorDraft) (domain.Actor, error) {
	var out domain.Actor
	err := c.do(ctx, http.MethodPost, "/actors", draft, &out)
	return out, err
}

// UpdateActor sends the whole record; the server keeps only name and bio.
func (c *Client) UpdateActor(ctx context.Context, actor domain.Actor) (domain.Actor, error) {
	var out domain.Actor
	err := c.do(ctx, http.MethodPut, "/actors/"+url.PathEscape(actor.ID), actor, &out)
	return out, err
}

func (c *Client) DeleteActor(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/actors/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListMovies(ctx context.Context) ([]domain.Movie, error) {
	var out []domain.Movie
	err := c.do(ctx, http.MethodGet, "/movies", nil, &out)
	return out, err
}

func (c *Client) GetMovie(ctx context.Context, id string) (domain.Movie, error) {
	var out domain.Movie
	err := c.do(ctx, http.MethodGet, "/movies/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) CreateMovie(ctx context.Context, draft domain.MovieDraft) (domain.Movie, error) {
	var out domain.Movie
	err := c.do(ctx, http.MethodPost, "/movies", draft, &out)
	return out, err
}

// UpdateMovie sends the whole record; the server keeps only title and year.
func (c *Client) UpdateMovie(ctx context.Context, movie domain.Movie) (domain.Movie, error) {
	var out domain.Movie
	err := c.do(ctx, http.MethodPut, "/movies/"+url.PathEscape(movie.ID), movie, &out)
	return out, err
}

func (c *Client) DeleteMovie(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/movies/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	body := io.Reader(http.NoBody)
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// IsNotFound reports whether err is a 404 StatusError.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}
