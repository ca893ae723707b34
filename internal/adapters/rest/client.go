package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
)

const maxResponseBytes = 4 << 20

// Client is the HTTP+JSON client for the API gateway. Every remote
// failure leaves this package as one of the closed domain error kinds:
// AuthError, SubmissionError or TransportError. Callers match on kind,
// never on response fields.
type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Logger         zerolog.Logger
}

func NewClient(baseURL string, httpClient *http.Client, logger zerolog.Logger) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: httpClient,
		Logger:     logger,
	}
}

// do issues one request and decodes the JSON response into out (skipped
// for nil out or 204 responses). The bearer token is attached as-is; an
// empty token sends an unauthenticated request, which the gateway rejects
// with 401 and is normalized to an AuthError.
func (c *Client) do(ctx context.Context, op, method, path, token string, body any, out any) error {
	endpoint, err := c.endpointURL(path)
	if err != nil {
		return err
	}

	var reader io.Reader
	contentType := ""
	if body != nil {
		payload, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return fmt.Errorf("encode %s request: %w", op, marshalErr)
		}
		reader = bytes.NewReader(payload)
		contentType = "application/json"
	}

	return c.doRaw(ctx, op, method, endpoint, token, contentType, reader, out)
}

// doRaw is the non-JSON-body variant used for multipart uploads.
func (c *Client) doRaw(ctx context.Context, op, method, endpoint, token, contentType string, body io.Reader, out any) error {
	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create %s request: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		c.Logger.Debug().Str("op", op).Err(err).Msg("request failed")
		return &domain.TransportError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.Logger.Debug().Str("op", op).Str("method", method).Int("status", resp.StatusCode).Msg("request completed")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return normalizeError(op, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return &domain.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// errorPayload covers the shapes the gateway and the services behind it
// use for error bodies. Normalization happens once here; the rest of the
// client never probes response fields.
type errorPayload struct {
	Message          string `json:"message"`
	Detail           string `json:"detail"`
	Title            string `json:"title"`
	Reason           string `json:"reason"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (p errorPayload) first() string {
	for _, candidate := range []string{p.Message, p.Detail, p.Title, p.Reason, p.Error, p.ErrorDescription} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

func normalizeError(op string, resp *http.Response) error {
	reason := ""
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err == nil && len(data) > 0 {
		var payload errorPayload
		if jsonErr := json.Unmarshal(data, &payload); jsonErr == nil {
			reason = payload.first()
		}
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		if reason == "" {
			reason = fmt.Sprintf("%s: authorization required", op)
		}
		return &domain.AuthError{Reason: reason}
	default:
		if reason == "" {
			return &domain.TransportError{Op: op, Err: fmt.Errorf("status %d", resp.StatusCode)}
		}
		return &domain.SubmissionError{Reason: reason, StatusCode: resp.StatusCode}
	}
}

func (c *Client) endpointURL(path string) (string, error) {
	if c.BaseURL == "" {
		return "", errors.New("api base url is required")
	}

	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	return endpoint.String(), nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}
