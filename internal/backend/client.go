package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// Product is the backend's stock view of one product, as returned by the
// barcode lookup. Only the fields the adjustment page needs are decoded.
type Product struct {
	ProID       int     `json:"pro_id"`
	ProductName string  `json:"product_name"`
	Barcode     string  `json:"barcode"`
	Stock       int     `json:"stock"`
	Price       float64 `json:"price"`
}

// LoginResult is a successful session login: the backend's response body plus
// the session cookie it issued, which the auth handler re-emits to the browser.
type LoginResult struct {
	Body          []byte
	SessionCookie *http.Cookie
}

// Client is the gateway's own typed client for the few backend calls it makes
// on its own behalf (barcode lookup, session login) rather than relaying
// verbatim. Idempotent lookups retry with exponential backoff; everything
// else is attempted exactly once.
type Client struct {
	baseURL    string
	cookieName string
	client     *http.Client
	log        *logrus.Logger

	maxAttempts int
	backoffBase time.Duration
}

func NewClient(baseURL, cookieName string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		cookieName: cookieName,
		client: &http.Client{
			Timeout: timeout,
		},
		log:         logger,
		maxAttempts: 3,
		backoffBase: 250 * time.Millisecond,
	}
}

// LookupBarcode resolves a scanned barcode to exactly one product via the
// backend's exact-match query. A 404 means the barcode is unknown.
func (c *Client) LookupBarcode(ctx context.Context, cookie, barcode string) (*Product, error) {
	lookupURL := fmt.Sprintf("%s/products/barcode?code=%s", c.baseURL, url.QueryEscape(barcode))
	c.log.Debugf("BackendClient: Looking up barcode %q", barcode)

	resp, err := c.getWithRetry(ctx, lookupURL, cookie)
	if err != nil {
		return nil, fmt.Errorf("failed to communicate with backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.log.Warnf("BackendClient: Barcode %q not found", barcode)
		return nil, fmt.Errorf("no product with barcode %q", barcode)
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Errorf("BackendClient: Barcode lookup for %q failed with status %d", barcode, resp.StatusCode)
		return nil, fmt.Errorf("backend returned status %d for barcode lookup", resp.StatusCode)
	}

	var product Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		c.log.Errorf("BackendClient: Failed to decode barcode lookup response for %q: %v", barcode, err)
		return nil, fmt.Errorf("failed to decode barcode lookup response: %w", err)
	}

	c.log.Infof("BackendClient: Barcode %q resolved to product %d (%s, stock %d)",
		barcode, product.ProID, product.ProductName, product.Stock)
	return &product, nil
}

// SessionLogin exchanges credentials for a backend-issued session cookie.
// The credentials body is forwarded as-is; the named cookie is pulled out of
// the backend's Set-Cookie headers.
func (c *Client) SessionLogin(ctx context.Context, credentials []byte) (*LoginResult, error) {
	loginURL := c.baseURL + "/auth/session-login"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, loginURL, bytes.NewReader(credentials))
	if err != nil {
		return nil, fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("BackendClient: Login request failed: %v", err)
		return nil, fmt.Errorf("failed to communicate with backend: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read login response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Warnf("BackendClient: Login rejected with status %d", resp.StatusCode)
		return nil, &LoginError{Status: resp.StatusCode, Body: body}
	}

	result := &LoginResult{Body: body}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == c.cookieName {
			result.SessionCookie = cookie
			break
		}
	}
	if result.SessionCookie == nil {
		c.log.Errorf("BackendClient: Login succeeded but no %s cookie was issued", c.cookieName)
		return nil, fmt.Errorf("backend did not issue a %s cookie", c.cookieName)
	}

	c.log.Info("BackendClient: Session login successful")
	return result, nil
}

// LoginError keeps the backend's status and body so the auth handler can relay
// the rejection the same way the forwarder would.
type LoginError struct {
	Status int
	Body   []byte
}

func (e *LoginError) Error() string {
	return fmt.Sprintf("login rejected with status %d", e.Status)
}

// getWithRetry performs a GET with up to maxAttempts tries, doubling the
// backoff between attempts. Only transport errors and 5xx responses retry;
// any other response is returned immediately.
func (c *Client) getWithRetry(ctx context.Context, target, cookie string) (*http.Response, error) {
	var lastErr error
	backoff := c.backoffBase

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, err
		}
		if cookie != "" {
			req.Header.Set("Cookie", cookie)
		}

		resp, err := c.client.Do(req)
		if err == nil && resp.StatusCode < http.StatusInternalServerError {
			return resp, nil
		}
		if err == nil {
			lastErr = fmt.Errorf("backend returned status %d", resp.StatusCode)
			resp.Body.Close()
		} else {
			lastErr = err
		}

		if attempt == c.maxAttempts {
			break
		}
		c.log.Warnf("BackendClient: GET %s attempt %d/%d failed (%v), retrying in %s",
			target, attempt, c.maxAttempts, lastErr, backoff)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, lastErr
}
