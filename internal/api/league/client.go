package league

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

	"github.com/omarshaarawi/leaguehub/internal/config"
	"github.com/omarshaarawi/leaguehub/internal/models"
)

const defaultErrorMessage = "request failed"

// ErrMalformedResponse is returned when a 2xx response body is not valid JSON
// for the expected shape.
var ErrMalformedResponse = errors.New("malformed response body")

// APIError is returned for every non-2xx response. Message is the upstream
// "detail" field, or "request failed" when the body carries none.
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Message returns the text a front end should show for err.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(cfg config.LeagueAPI) *Client {
	return NewClientWithHTTPClient(cfg, &http.Client{Timeout: cfg.Timeout})
}

// NewClientWithHTTPClient lets the caller supply the transport, e.g. an
// instrumented one.
func NewClientWithHTTPClient(cfg config.LeagueAPI, httpClient *http.Client) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultAPIBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Query is an ordered set of query parameters. Unset values are dropped so
// the key never reaches the wire.
type Query struct {
	keys   []string
	values []string
}

func (q *Query) Set(key, value string) {
	if value == "" {
		return
	}
	q.keys = append(q.keys, key)
	q.values = append(q.values, value)
}

// SetInt adds key unless value is zero.
func (q *Query) SetInt(key string, value int) {
	if value == 0 {
		return
	}
	q.Set(key, strconv.Itoa(value))
}

func (q Query) Encode() string {
	var sb strings.Builder
	for i, key := range q.keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(q.values[i]))
	}
	return sb.String()
}

// WithQuery appends the encoded query to path, or returns path unchanged when
// the query is empty.
func WithQuery(path string, q Query) string {
	if encoded := q.Encode(); encoded != "" {
		return path + "?" + encoded
	}
	return path
}

func (c *Client) Get(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrMalformedResponse, path, err)
	}

	return nil
}

func newAPIError(status int, body []byte) *APIError {
	var errResp models.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Detail == "" {
		return &APIError{Message: defaultErrorMessage, StatusCode: status}
	}
	return &APIError{Message: errResp.Detail, StatusCode: status}
}
