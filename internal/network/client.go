package network

import (
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	fhttpcookiejar "github.com/bogdanfinn/fhttp/cookiejar"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const RequestIDHeader = "X-Request-Id"

const defaultTimeout = 60 * time.Second

// Doer sends a single HTTP request.
type Doer interface {
	Do(req *fhttp.Request) (*fhttp.Response, error)
}

// Options configures NewClient. Timeout bounds every request made through the
// client; callers can shorten it per request with a context deadline.
type Options struct {
	UserAgent string
	Proxy     string
	Timeout   time.Duration
	Logger    zerolog.Logger
}

type Client struct {
	http      tls_client.HttpClient
	userAgent string
	logger    zerolog.Logger
}

func NewClient(opts Options) (*Client, error) {
	jar, _ := fhttpcookiejar.New(nil)

	client, err := tls_client.NewHttpClient(
		tls_client.NewNoopLogger(),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutMilliseconds(timeoutMillis(opts.Timeout)),
		tls_client.WithCookieJar(jar),
	)
	if err != nil {
		return nil, err
	}
	if opts.Proxy != "" {
		if err := client.SetProxy(opts.Proxy); err != nil {
			return nil, err
		}
	}

	return &Client{
		http:      client,
		userAgent: opts.UserAgent,
		logger:    opts.Logger,
	}, nil
}

// timeoutMillis converts a timeout for tls-client, rounding up so that a
// positive timeout never becomes zero. Zero or less means the 60s default.
func timeoutMillis(timeout time.Duration) int {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	millis := timeout / time.Millisecond
	if timeout%time.Millisecond != 0 {
		millis++
	}
	return int(millis)
}

// Do stamps the request with a user agent and request id and logs the round
// trip at debug level.
func (c *Client) Do(req *fhttp.Request) (*fhttp.Response, error) {
	if req.Header.Get("User-Agent") == "" && c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	requestID := req.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
		req.Header.Set(RequestIDHeader, requestID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	event := c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("request_id", requestID).
		Dur("duration", time.Since(start))
	if err != nil {
		event.Err(err).Msg("request failed")
		return nil, err
	}
	event.Int("status", resp.StatusCode).Msg("request completed")
	return resp, nil
}
