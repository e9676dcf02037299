package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"likestats/pkg/config"
	"likestats/pkg/logger"
	"likestats/pkg/metrics"
)

// Client talks to the upstream API. It is the only component in the service
// that performs network I/O. It classifies transport outcomes into typed
// errors and never retries; retry policy belongs to the query engine.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	bearerToken string
	pageSize    int
	logger      logger.Logger
}

// NewClient creates a new upstream API client. The bearer credential is
// attached to every request; the request timeout bounds each network call.
func NewClient(cfg config.TwitterConfig, pageSize int, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:     baseURL,
		bearerToken: cfg.BearerToken,
		pageSize:    pageSize,
		logger:      log,
	}
}

// ResolveUser resolves a handle to an upstream account.
func (c *Client) ResolveUser(ctx context.Context, handle string) (*User, error) {
	var lookup userLookup
	if err := c.getJSON(ctx, userByUsernameURL(c.baseURL, handle), &lookup); err != nil {
		return nil, err
	}

	// The upstream reports an unknown handle as a 200 with an errors array.
	if lookup.Data.ID == "" {
		if len(lookup.Errors) > 0 {
			c.logger.WarnWithFields("user lookup returned upstream error", map[string]interface{}{
				"handle": handle,
				"title":  lookup.Errors[0].Title,
			})
		}
		return nil, &Error{
			Type:    ErrorTypeNotFound,
			Message: fmt.Sprintf("user %q not found", handle),
			Code:    http.StatusNotFound,
		}
	}

	return &lookup.Data, nil
}

// FetchLikedPage fetches one page of a user's liked posts. A zero cursor
// requests the first page.
func (c *Client) FetchLikedPage(ctx context.Context, userID string, cursor Cursor) (*LikedPage, error) {
	var page LikedPage
	url := likedTweetsURL(c.baseURL, userID, c.pageSize, cursor)
	if err := c.getJSON(ctx, url, &page); err != nil {
		return nil, err
	}

	c.logger.DebugWithFields("liked page fetched", map[string]interface{}{
		"user_id":      userID,
		"result_count": len(page.Data),
		"has_next":     page.Meta.NextToken != "",
	})

	return &page, nil
}

// getJSON performs a GET request and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, url string, target interface{}) error {
	resp, err := c.doRequest(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkResponseStatus(resp); err != nil {
		return err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{
			Type:    ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Code:    resp.StatusCode,
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		c.logger.ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"url":    url,
			"status": resp.StatusCode,
			"error":  err.Error(),
		})
		return &Error{
			Type:    ErrorTypeParsing,
			Message: fmt.Sprintf("failed to parse JSON: %v", err),
			Code:    resp.StatusCode,
		}
	}

	return nil
}

// doRequest performs an authenticated GET request.
func (c *Client) doRequest(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{
			Type:    ErrorTypeUnknown,
			Message: fmt.Sprintf("failed to create request: %v", err),
		}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	metrics.UpstreamRequestDuration.Observe(duration.Seconds())

	if err != nil {
		c.logger.ErrorWithFields("upstream request failed", map[string]interface{}{
			"url":      url,
			"error":    err.Error(),
			"duration": duration,
		})
		// Timeouts and transport failures are one bucket; the engine
		// treats both as transient.
		return nil, &Error{
			Type:    ErrorTypeNetwork,
			Message: fmt.Sprintf("network error: %v", err),
		}
	}

	c.logger.DebugWithFields("upstream request completed", map[string]interface{}{
		"url":      url,
		"status":   resp.StatusCode,
		"duration": duration,
	})

	return resp, nil
}

// checkResponseStatus classifies the HTTP status deterministically.
func (c *Client) checkResponseStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &Error{
			Type:    ErrorTypeAuth,
			Message: "access denied",
			Code:    resp.StatusCode,
		}
	case resp.StatusCode == http.StatusNotFound:
		return &Error{
			Type:    ErrorTypeNotFound,
			Message: "resource not found",
			Code:    resp.StatusCode,
		}
	case resp.StatusCode == http.StatusTooManyRequests:
		c.logger.WarnWithFields("rate limit exceeded", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    resp.Request.URL.String(),
		})
		return &Error{
			Type:    ErrorTypeRateLimit,
			Message: "rate limit exceeded",
			Code:    resp.StatusCode,
		}
	case resp.StatusCode >= 500:
		return &Error{
			Type:    ErrorTypeServer,
			Message: "server error",
			Code:    resp.StatusCode,
		}
	default:
		return &Error{
			Type:    ErrorTypeUnknown,
			Message: fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
			Code:    resp.StatusCode,
		}
	}
}
