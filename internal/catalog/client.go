package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the TMDB v3 API root.
const DefaultBaseURL = "https://api.themoviedb.org/3"

// Client implements Catalog over the TMDB HTTP API.
type Client struct {
	httpClient *http.Client
	config     Config
	limiter    *rate.Limiter
}

// Config holds client configuration.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Option is a function that configures the Client.
type Option func(*Client)

// NewClient creates a new catalog client with the given options.
func NewClient(opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config: Config{
			BaseURL: DefaultBaseURL,
			APIKey:  "demo_key",
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.config.Timeout = timeout
		c.httpClient.Timeout = timeout
	}
}

// WithTransport sets a custom HTTP transport.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = transport
	}
}

// WithBaseURL points the client at a different API root.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.config.BaseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithAPIKey sets the API key sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		if key != "" {
			c.config.APIKey = key
		}
	}
}

// WithRateLimit caps outgoing requests per second. Zero disables limiting.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		burst := int(perSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// Config returns the client configuration.
func (c *Client) Config() Config {
	return c.config
}

// NowPlaying lists movies currently in theaters.
func (c *Client) NowPlaying(ctx context.Context, language string, page int) (*Page[Movie], error) {
	var out Page[Movie]
	params := url.Values{}
	params.Set("page", strconv.Itoa(normalizePage(page)))
	if err := c.get(ctx, "/movie/now_playing", language, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Movie returns the details of a single movie.
func (c *Client) Movie(ctx context.Context, id int64, language string) (*MovieDetails, error) {
	var out MovieDetails
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), language, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Recommendations lists movies related to id.
func (c *Client) Recommendations(ctx context.Context, id int64, language string) (*Page[Movie], error) {
	var out Page[Movie]
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/recommendations", id), language, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search finds movies matching query.
func (c *Client) Search(ctx context.Context, query, language string, page int) (*Page[Movie], error) {
	var out Page[Movie]
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(normalizePage(page)))
	if err := c.get(ctx, "/search/movie", language, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path, language string, params url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
	}

	req, err := c.newRequest(ctx, path, language, params)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, path, language string, params url.Values) (*http.Request, error) {
	u, err := url.Parse(c.config.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}

	q := u.Query()
	for key, values := range params {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	q.Set("api_key", c.config.APIKey)
	if language == "" {
		language = "en"
	}
	q.Set("language", language)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var payload struct {
		StatusMessage string `json:"status_message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		apiErr.Message = payload.StatusMessage
	}
	return apiErr
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

var _ Catalog = (*Client)(nil)
