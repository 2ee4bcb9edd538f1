package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sainath-666/storefront/internal/log"
)

// maxAttempts is the fixed request budget: three attempts, no backoff.
const maxAttempts = 3

type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned status=%d body=%s", e.Code, e.Body)
}

type Client struct {
	http   *http.Client
	config Config
}

func NewClient(config Config) *Client {
	return &Client{
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		config: config,
	}
}

func (c *Client) Config() Config {
	return c.config
}

// CheckHealth probes the API base URL. Any network failure or non-2xx
// status yields false. No retry.
func (c *Client) CheckHealth(ctx context.Context) bool {
	logger := zerolog.Ctx(ctx).
		With().
		Str(log.KEY_TAG, "Client CheckHealth").
		Str(log.KEY_URL, c.config.BaseUrl).
		Logger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseUrl, nil)
	if err != nil {
		logger.Error().Err(err).Msgf("failed building health request with error=%s", err.Error())
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error().Err(err).Msgf("failed probing api health with error=%s", err.Error())
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
}

// Get issues a GET with the fixed retry budget and returns the raw body.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	return c.Do(ctx, http.MethodGet, url, nil)
}

// Do issues a request, JSON-encoding body when non-nil. Transport errors
// and error statuses are retried up to maxAttempts; exactly one error
// surfaces after the final attempt, carrying the last response status when
// there was one.
func (c *Client) Do(ctx context.Context, method string, url string, body any) ([]byte, error) {
	logger := zerolog.Ctx(ctx).
		With().
		Str(log.KEY_TAG, "Client Do").
		Str("method", method).
		Str(log.KEY_URL, url).
		Logger()

	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			err = fmt.Errorf("failed encoding request body with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		payload = encoded
	}

	requestId := log.RequestIDFromContext(ctx)
	if requestId == "" {
		requestId = uuid.NewString()
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lg := logger.With().Int(log.KEY_ATTEMPT, attempt).Logger()

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			err = fmt.Errorf("failed building request with error=%w", err)
			lg.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set(log.KEY_REQUEST_ID, requestId)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		lg.Trace().Msg("issuing request")
		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("failed issuing request with error=%w", err)
			lg.Warn().Err(lastErr).Msg(lastErr.Error())
			if ctx.Err() != nil {
				break
			}
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed reading response body with error=%w", err)
			lg.Warn().Err(lastErr).Msg(lastErr.Error())
			continue
		}

		if resp.StatusCode >= http.StatusBadRequest {
			lastErr = &StatusError{Code: resp.StatusCode, Body: string(respBody)}
			lg.Warn().Err(lastErr).Msgf("request failed with status=%d", resp.StatusCode)
			continue
		}

		lg.Trace().Msg("request succeeded")
		return respBody, nil
	}

	err := fmt.Errorf("request failed after %d attempts with error=%w", maxAttempts, lastErr)
	logger.Error().Err(err).Msg(err.Error())
	return nil, err
}
