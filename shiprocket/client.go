package shiprocket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/shreeflow/shreeflow-backend-go/apperrors"
	"github.com/shreeflow/shreeflow-backend-go/models"
	"golang.org/x/sync/singleflight"
)

const DefaultBaseURL = "https://apiv2.shiprocket.in/v1/external"

// Shiprocket tokens live 10 days; expire ours after 9 to stay safe.
const tokenTTL = 9 * 24 * time.Hour

// TokenStore persists the single carrier integration record. The account
// password is never written through this interface.
type TokenStore interface {
	Load(ctx context.Context) (*models.ShiprocketIntegration, error)
	Save(ctx context.Context, email, token string, expiry time.Time) error
	Invalidate(ctx context.Context) error
}

// Client talks to the Shiprocket API. The token cache is owned by the client
// instead of living in package-level state so callers control its lifecycle.
type Client struct {
	baseURL string
	httpc   *http.Client
	store   TokenStore

	mu     sync.Mutex
	token  string
	expiry time.Time

	sf singleflight.Group
}

func NewClient(baseURL string, store TokenStore) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		store:   store,
	}
}

type loginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// Authenticate logs in with the carrier account and caches the issued bearer
// token in memory and in the integration record. Concurrent callers share a
// single in-flight login.
func (c *Client) Authenticate(ctx context.Context, email, password string) (string, error) {
	v, err, _ := c.sf.Do("authenticate", func() (interface{}, error) {
		body, _ := json.Marshal(map[string]string{"email": email, "password": password})
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpc.Do(req)
		if err != nil {
			return nil, fmt.Errorf("shiprocket login failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, carrierErrorFromResponse("/auth/login", resp)
		}

		var login loginResponse
		if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
			return nil, fmt.Errorf("shiprocket login: decode response: %w", err)
		}
		if login.Token == "" {
			return nil, &apperrors.CarrierError{StatusCode: resp.StatusCode, Message: "login returned no token", Endpoint: "/auth/login"}
		}

		expiry := time.Now().Add(tokenTTL)
		c.mu.Lock()
		c.token = login.Token
		c.expiry = expiry
		c.mu.Unlock()

		if c.store != nil {
			if err := c.store.Save(ctx, email, login.Token, expiry); err != nil {
				return nil, fmt.Errorf("persist shiprocket token: %w", err)
			}
		}
		return login.Token, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// getValidToken returns an unexpired token, checking process memory first and
// the persisted record second. When both are stale it fails with
// ErrTokenExpired; re-authentication needs the password, which is not stored,
// so the failure must reach a human.
func (c *Client) getValidToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.token != "" && time.Now().Before(c.expiry) {
		token := c.token
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	if c.store != nil {
		record, err := c.store.Load(ctx)
		if err == nil && record != nil && record.Token != "" &&
			record.TokenExpiry != nil && time.Now().Before(*record.TokenExpiry) {
			c.mu.Lock()
			c.token = record.Token
			c.expiry = *record.TokenExpiry
			c.mu.Unlock()
			return record.Token, nil
		}
	}

	return "", apperrors.ErrTokenExpired
}

// invalidateToken drops the cached token after the carrier rejected it. This
// is a one-shot invalidation, not a re-login.
func (c *Client) invalidateToken(ctx context.Context) {
	c.mu.Lock()
	c.token = ""
	c.expiry = time.Time{}
	c.mu.Unlock()

	if c.store != nil {
		c.store.Invalidate(ctx)
	}
}

// doRequest is the single helper every carrier call rides through. It
// attaches the bearer token, maps HTTP 401 to ErrTokenExpired and any other
// non-2xx status to a CarrierError carrying the upstream message.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, payload, out interface{}) error {
	token, err := c.getValidToken(ctx)
	if err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("shiprocket request failed (%s): %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.invalidateToken(ctx)
		return apperrors.ErrTokenExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return carrierErrorFromResponse(endpoint, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("shiprocket decode response (%s): %w", endpoint, err)
		}
	}
	return nil
}

func carrierErrorFromResponse(endpoint string, resp *http.Response) error {
	var parsed struct {
		Message string `json:"message"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(data, &parsed); err != nil || parsed.Message == "" {
		parsed.Message = http.StatusText(resp.StatusCode)
	}
	return &apperrors.CarrierError{
		StatusCode: resp.StatusCode,
		Message:    parsed.Message,
		Endpoint:   endpoint,
	}
}
