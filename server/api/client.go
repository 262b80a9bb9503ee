package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"golang.org/x/time/rate"
)

func New(cfg Config, httpClient *http.Client) *Client {
	limit := rate.Inf
	if cfg.Every > 0 {
		limit = rate.Every(cfg.Every.Std())
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = math.MaxInt32
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, burst),
	}
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Do performs a single request against the recruitment API. body is encoded as JSON when not nil and
// the response is decoded into out when out is not nil. Every failure is returned as *Error.
func (c *Client) Do(ctx context.Context, method string, path string, body any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &Error{Kind: KindUnreachable, Method: method, Path: path, Err: err}
	}

	var reqBody io.Reader
	if body != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = buf
	}

	rq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		rq.Header.Set("Content-Type", "application/json")
	}
	rq.Header.Set("Accept", "application/json")

	rs, err := c.httpClient.Do(rq)
	if err != nil {
		return &Error{Kind: KindUnreachable, Method: method, Path: path, Err: err}
	}
	defer rs.Body.Close()

	if rs.StatusCode < 200 || rs.StatusCode > 299 {
		data, _ := io.ReadAll(rs.Body)
		slog.DebugContext(ctx, "Request failed", slog.String("method", method), slog.String("path", path), slog.Int("status_code", rs.StatusCode), slog.String("response", string(data)))

		var errBody MessageResponse
		_ = json.Unmarshal(data, &errBody)

		return &Error{
			Kind:       KindStatus,
			Method:     method,
			Path:       path,
			StatusCode: rs.StatusCode,
			Status:     rs.Status,
			Message:    errBody.Message,
		}
	}

	if out == nil {
		return nil
	}

	logBuf := new(bytes.Buffer)
	bodyReader := io.TeeReader(rs.Body, logBuf)

	if err = json.NewDecoder(bodyReader).Decode(out); err != nil {
		slog.DebugContext(ctx, "Failed to decode response", slog.String("path", path), slog.String("response", logBuf.String()), slog.Any("err", err))
		return &Error{Kind: KindMalformed, Method: method, Path: path, StatusCode: rs.StatusCode, Status: rs.Status, Err: err}
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func malformed(method string, path string, field string) error {
	return &Error{Kind: KindMalformed, Method: method, Path: path, Err: errors.New("missing field " + field)}
}
