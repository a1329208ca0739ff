package forwarder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Route describes one backend endpoint a browser-facing handler forwards to.
type Route struct {
	// Path is the backend resource path relative to the base URL, e.g. "category/".
	Path string
	// Timeout overrides the forwarder default when non-zero.
	Timeout time.Duration
	// Multipart routes pass the inbound Content-Type through unchanged instead
	// of forcing application/json (stock report upload).
	Multipart bool
	// Remap renames top-level JSON body keys before forwarding, for routes
	// where the backend expects different field names than the dashboard sends.
	Remap map[string]string
}

// WithID returns the route with a record id appended to the backend path.
func (r Route) WithID(id string) Route {
	r.Path = strings.TrimSuffix(r.Path, "/") + "/" + id
	return r
}

// Request is the inbound request material a handler hands to the forwarder.
type Request struct {
	Method      string
	Query       string
	Body        io.Reader
	ContentType string
	// Cookie is the raw inbound Cookie header, forwarded verbatim. The
	// forwarder never parses or validates individual cookie values.
	Cookie string
}

// Result is a successful backend response, relayed verbatim to the browser.
type Result struct {
	Status      int
	Body        []byte
	ContentType string
}

// TypeTimeout tags envelopes produced by a forwarding deadline expiring.
const TypeTimeout = "TIMEOUT"

// Envelope is the normalized failure shape every forwarding error collapses
// into, whether the backend answered with an error or was never reached at all.
type Envelope struct {
	Error   string `json:"error"`
	Status  int    `json:"status,omitempty"`
	Details string `json:"details,omitempty"`
	Type    string `json:"type,omitempty"`
}

type Forwarder struct {
	baseURL        string
	client         *http.Client
	defaultTimeout time.Duration
	log            *logrus.Logger
}

// New creates a forwarder against the given backend base URL. The http.Client
// carries no timeout of its own; every call is bounded by the per-route
// deadline applied in Do.
func New(baseURL string, defaultTimeout time.Duration, logger *logrus.Logger) *Forwarder {
	return &Forwarder{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		client:         &http.Client{},
		defaultTimeout: defaultTimeout,
		log:            logger,
	}
}

// Do forwards one request to the backend and returns either the backend's
// response verbatim or a normalized error envelope, never both. The caller
// does not need to distinguish "could not reach the backend" from "backend
// said no": both come back as an Envelope with a status code.
func (f *Forwarder) Do(ctx context.Context, route Route, req Request) (*Result, *Envelope) {
	timeout := route.Timeout
	if timeout <= 0 {
		timeout = f.defaultTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body := req.Body
	if len(route.Remap) > 0 && body != nil {
		raw, err := io.ReadAll(body)
		if err != nil {
			f.log.Errorf("Forwarder: Failed to read inbound body for %s %s: %v", req.Method, route.Path, err)
			return nil, &Envelope{Error: "failed to read request body", Status: http.StatusBadGateway, Details: err.Error()}
		}
		body = bytes.NewReader(remapFields(raw, route.Remap))
	}

	target := f.baseURL + "/" + strings.TrimPrefix(route.Path, "/")
	if req.Query != "" {
		target += "?" + req.Query
	}

	outReq, err := http.NewRequestWithContext(callCtx, req.Method, target, body)
	if err != nil {
		f.log.Errorf("Forwarder: Failed to build backend request for %s: %v", target, err)
		return nil, &Envelope{Error: "failed to build backend request", Status: http.StatusBadGateway, Details: err.Error()}
	}

	if req.Cookie != "" {
		outReq.Header.Set("Cookie", req.Cookie)
	}
	if route.Multipart {
		if req.ContentType != "" {
			outReq.Header.Set("Content-Type", req.ContentType)
		}
	} else {
		outReq.Header.Set("Content-Type", "application/json")
	}

	f.log.Debugf("Forwarder: %s %s (timeout %s)", req.Method, target, timeout)

	resp, err := f.client.Do(outReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			f.log.Warnf("Forwarder: Backend call %s %s timed out after %s", req.Method, target, timeout)
			return nil, &Envelope{
				Error:  fmt.Sprintf("backend did not respond within %s", timeout),
				Status: http.StatusGatewayTimeout,
				Type:   TypeTimeout,
			}
		}
		f.log.Errorf("Forwarder: Failed to reach backend at %s: %v", target, err)
		return nil, &Envelope{
			Error:   "failed to reach backend",
			Status:  http.StatusBadGateway,
			Details: err.Error(),
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		f.log.Errorf("Forwarder: Failed to read backend response from %s: %v", target, err)
		return nil, &Envelope{Error: "failed to read backend response", Status: http.StatusBadGateway, Details: err.Error()}
	}

	if resp.StatusCode < http.StatusBadRequest {
		return &Result{
			Status:      resp.StatusCode,
			Body:        respBody,
			ContentType: resp.Header.Get("Content-Type"),
		}, nil
	}

	env := Normalize(resp.StatusCode, respBody)
	f.log.Warnf("Forwarder: Backend %s %s returned %d: %s", req.Method, target, resp.StatusCode, env.Error)
	return nil, env
}

// Normalize extracts a human-readable message from a backend error body.
// JSON bodies are probed for detail, then message; anything else surfaces as
// raw text in Details so the caller still sees what the backend said.
func Normalize(status int, body []byte) *Envelope {
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(body, &parsed); err == nil {
		for _, key := range []string{"detail", "message"} {
			raw, ok := parsed[key]
			if !ok {
				continue
			}
			var msg string
			if err := json.Unmarshal(raw, &msg); err == nil && msg != "" {
				return &Envelope{Error: msg, Status: status}
			}
		}
		return &Envelope{
			Error:   statusMessage(status),
			Status:  status,
			Details: string(body),
		}
	}
	return &Envelope{
		Error:   statusMessage(status),
		Status:  status,
		Details: strings.TrimSpace(string(body)),
	}
}

func statusMessage(status int) string {
	if text := http.StatusText(status); text != "" {
		return fmt.Sprintf("backend returned %d %s", status, text)
	}
	return fmt.Sprintf("backend returned status %d", status)
}

func remapFields(body []byte, remap map[string]string) []byte {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		// Not a JSON object; forward as-is and let the backend complain.
		return body
	}
	for from, to := range remap {
		if v, ok := fields[from]; ok {
			delete(fields, from)
			fields[to] = v
		}
	}
	out, err := json.Marshal(fields)
	if err != nil {
		return body
	}
	return out
}
