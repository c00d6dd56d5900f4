package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/netx"
	"github.com/dmitrijs2005/pantrykeeper/internal/pantry"
	"github.com/dmitrijs2005/pantrykeeper/internal/report"
	"github.com/dmitrijs2005/pantrykeeper/internal/timex"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (c *HTTPClient) tokens() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

func (c *HTTPClient) setTokens(p tokenPair) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = p.AccessToken
	c.refreshToken = p.RefreshToken
}

// LoggedIn reports whether the client holds a token pair.
func (c *HTTPClient) LoggedIn() bool {
	at, _ := c.tokens()
	return at != ""
}

func (c *HTTPClient) Register(ctx context.Context, username string, password []byte) error {
	body := map[string]string{"username": username, "password": string(password)}
	return c.do(ctx, http.MethodPost, "/api/auth/register", body, nil, false)
}

func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) error {
	body := map[string]string{"username": username, "password": string(password)}
	var pair tokenPair
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &pair, false); err != nil {
		return err
	}
	c.setTokens(pair)
	return nil
}

// Logout revokes the refresh tokens on the server and forgets the local
// pair even when the server call fails.
func (c *HTTPClient) Logout(ctx context.Context) error {
	if !c.LoggedIn() {
		return nil
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, true)
	c.setTokens(tokenPair{})
	return err
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.Categories(ctx)
	return err
}

func (c *HTTPClient) Categories(ctx context.Context) ([]pantry.Category, error) {
	var out struct {
		Categories []pantry.Category `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &out, false); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

func (c *HTTPClient) ListItems(ctx context.Context, q ListQuery) ([]pantry.Item, error) {
	v := url.Values{}
	if q.Category != "" {
		v.Set("category", string(q.Category))
	}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.SortByExpiration {
		v.Set("sort", "expiration")
	}

	path := "/api/items"
	if len(v) > 0 {
		path += "?" + v.Encode()
	}

	var out struct {
		Items []pantry.Item `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return out.Items, nil
}

type itemEnvelope struct {
	Item pantry.Item `json:"item"`
}

func (c *HTTPClient) AddItem(ctx context.Context, item pantry.Item) (pantry.Item, error) {
	var out itemEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/items", item, &out, true); err != nil {
		return pantry.Item{}, err
	}
	return out.Item, nil
}

func (c *HTTPClient) UpdateItem(ctx context.Context, id string, patch pantry.Patch) (pantry.Item, error) {
	var out itemEnvelope
	if err := c.do(ctx, http.MethodPatch, "/api/items/"+url.PathEscape(id), patch, &out, true); err != nil {
		return pantry.Item{}, err
	}
	return out.Item, nil
}

func (c *HTTPClient) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/items/"+url.PathEscape(id), nil, nil, true)
}

func (c *HTTPClient) Expiring(ctx context.Context, days int) ([]pantry.Item, error) {
	var out struct {
		Items []pantry.Item `json:"items"`
	}
	path := "/api/items/expiring?days=" + strconv.Itoa(days)
	if err := c.do(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// Summary fetches the report as of asOf; a zero date means the server's today.
func (c *HTTPClient) Summary(ctx context.Context, asOf timex.Date) (report.Report, error) {
	path := "/api/summary"
	if !asOf.IsZero() {
		path += "?as_of=" + asOf.String()
	}
	var out report.Report
	if err := c.do(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return report.Report{}, err
	}
	return out, nil
}

// UploadImage sends data straight to object storage through a presigned
// URL, then points the item's ImageURL at it.
func (c *HTTPClient) UploadImage(ctx context.Context, id, contentType string, data []byte) (pantry.Item, error) {
	var up struct {
		UploadURL string `json:"upload_url"`
		URL       string `json:"url"`
	}
	body := map[string]string{"content_type": contentType}
	if err := c.do(ctx, http.MethodPost, "/api/images/presign", body, &up, true); err != nil {
		return pantry.Item{}, err
	}

	if err := netx.UploadToPresignedURL(ctx, c.http, up.UploadURL, contentType, data); err != nil {
		return pantry.Item{}, fmt.Errorf("upload image: %w", err)
	}

	return c.UpdateItem(ctx, id, pantry.Patch{ImageURL: &up.URL})
}

// do sends one JSON request and decodes a 2xx answer into out. With auth
// set it attaches the access token and retries once after a refresh.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any, auth bool) error {
	err := c.send(ctx, method, path, in, out, auth)
	if !auth || !errors.Is(err, ErrUnauthorized) {
		return err
	}

	if rerr := c.refresh(ctx); rerr != nil {
		return err
	}
	return c.send(ctx, method, path, in, out, auth)
}

func (c *HTTPClient) refresh(ctx context.Context) error {
	_, rt := c.tokens()
	if rt == "" {
		return ErrNotLoggedIn
	}

	var pair tokenPair
	body := map[string]string{"refresh_token": rt}
	if err := c.send(ctx, http.MethodPost, "/api/auth/refresh", body, &pair, false); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			c.setTokens(tokenPair{})
		}
		return err
	}
	c.setTokens(pair)
	return nil
}

func (c *HTTPClient) send(ctx context.Context, method, path string, in, out any, auth bool) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		at, _ := c.tokens()
		if at == "" {
			return ErrNotLoggedIn
		}
		req.Header.Set(common.AccessTokenHeaderName, common.BearerPrefix+at)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var body struct {
		Error  string   `json:"error"`
		Fields []string `json:"fields"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		body.Error = strings.TrimSpace(string(raw))
	}
	return &APIError{Status: resp.StatusCode, Message: body.Error, Fields: body.Fields}
}
