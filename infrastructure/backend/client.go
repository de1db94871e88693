package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"welcomehome/models"
)

const maxBodyBytes = 4 << 20

// Client calls the inventory backend on behalf of a browser session.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the instrumented default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every backend call. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend url %q must be absolute", baseURL)
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Register submits a new account. The response body is ignored.
func (c *Client) Register(ctx context.Context, r Registration) error {
	return c.do(ctx, "register", http.MethodPost, "", r.Form(), nil, "register")
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	form := url.Values{"username": {username}, "password": {password}}
	if err := c.do(ctx, "login", http.MethodPost, "", form, &out, "login"); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", &TransportError{Op: "login", Err: errors.New("response has no access_token")}
	}
	return out.AccessToken, nil
}

// UserInfo returns the user behind token.
func (c *Client) UserInfo(ctx context.Context, token string) (models.UserInfo, error) {
	if token == "" {
		return models.UserInfo{}, ErrNoToken
	}
	var raw map[string]any
	if err := c.do(ctx, "user info", http.MethodGet, token, nil, &raw, "user-info"); err != nil {
		return models.UserInfo{}, err
	}
	info := models.UserInfo{Extra: raw}
	info.Role, _ = raw["role"].(string)
	info.Username, _ = raw["username"].(string)
	return info, nil
}

// Donate records a donation and returns the backend-assigned item ID.
func (c *Client) Donate(ctx context.Context, token string, d Donation) (string, error) {
	if token == "" {
		return "", ErrNoToken
	}
	form, err := d.Form()
	if err != nil {
		return "", fmt.Errorf("encode donation: %w", err)
	}
	var out struct {
		ItemID Scalar `json:"item_id"`
	}
	if err := c.do(ctx, "donate", http.MethodPost, token, form, &out, "donate"); err != nil {
		return "", err
	}
	return out.ItemID.String(), nil
}

// Item returns the pieces of one item.
func (c *Client) Item(ctx context.Context, token string, itemID int64) ([]Piece, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	var out struct {
		Pieces []Piece `json:"pieces"`
	}
	if err := c.do(ctx, "find item", http.MethodGet, token, nil, &out, "item", strconv.FormatInt(itemID, 10)); err != nil {
		return nil, err
	}
	if out.Pieces == nil {
		out.Pieces = []Piece{}
	}
	return out.Pieces, nil
}

// Order returns the items of one order with their pieces.
func (c *Client) Order(ctx context.Context, token string, orderID int64) ([]OrderItem, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	var out struct {
		Items []OrderItem `json:"items"`
	}
	if err := c.do(ctx, "find order", http.MethodGet, token, nil, &out, "order", strconv.FormatInt(orderID, 10)); err != nil {
		return nil, err
	}
	if out.Items == nil {
		out.Items = []OrderItem{}
	}
	return out.Items, nil
}

func (c *Client) do(ctx context.Context, op, method, token string, form url.Values, out any, path ...string) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path...).String(), body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID(ctx))

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RejectedError{Status: resp.StatusCode, Detail: parseDetail(payload)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
