package nis

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mezonai/nemclient/client"
	nemerrors "github.com/mezonai/nemclient/errors"
	"github.com/mezonai/nemclient/jsonx"
	"github.com/mezonai/nemclient/logx"
	"github.com/mezonai/nemclient/monitoring"
	"github.com/mezonai/nemclient/ratelimit"
	"github.com/pkg/errors"
	"github.com/sony/gobreaker"
)

const (
	extendedInfoPath = "/node/extended-info"
	announcePath     = "/transaction/announce"

	// error bodies are small; anything longer is truncated before decoding
	maxErrorBody = 64 << 10
)

type Options struct {
	Timeout time.Duration
	// MaxFailures consecutive transport failures open the breaker
	MaxFailures uint32
	OpenTimeout time.Duration

	// MaxAnnounces per AnnounceWindow; zero disables client side limiting
	MaxAnnounces   int
	AnnounceWindow time.Duration
}

// Client talks to a single NIS node over its HTTP/JSON API.
// It implements client.TimeSource and client.Announcer.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	limiter *ratelimit.RateLimiter
}

var (
	_ client.TimeSource = (*Client)(nil)
	_ client.Announcer  = (*Client)(nil)
)

func NewClient(baseURL string, opts Options) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	maxFailures := opts.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	settings := gobreaker.Settings{
		Name:    "nis-" + baseURL,
		Timeout: opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// a node that answers with a client error is still reachable
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var netErr *nemerrors.NetworkError
			return errors.As(err, &netErr) && netErr.Status < http.StatusInternalServerError
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logx.Warn("NIS", "breaker", name, "changed from", from.String(), "to", to.String())
			monitoring.SetBreakerState(baseURL, int(to))
		},
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: opts.Timeout},
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
	if opts.MaxAnnounces > 0 {
		window := opts.AnnounceWindow
		if window <= 0 {
			window = time.Second
		}
		c.limiter = ratelimit.NewRateLimiter(&ratelimit.RateLimiterConfig{
			MaxRequests: opts.MaxAnnounces,
			WindowSize:  window,
		})
	}

	monitoring.SetBreakerState(baseURL, int(gobreaker.StateClosed))
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) State() gobreaker.State {
	return c.breaker.State()
}

type extendedInfo struct {
	NisInfo struct {
		CurrentTime int32  `json:"currentTime"`
		Application string `json:"application"`
		Version     string `json:"version"`
	} `json:"nisInfo"`
}

// NetworkTime returns the node's current network time in seconds since the nemesis block
func (c *Client) NetworkTime(ctx context.Context) (int32, error) {
	var info extendedInfo
	if err := c.do(ctx, http.MethodGet, extendedInfoPath, nil, &info); err != nil {
		return 0, err
	}
	monitoring.SetNodeTime(info.NisInfo.CurrentTime)
	return info.NisInfo.CurrentTime, nil
}

// Announce posts a signed transaction. A decoded result is returned as-is,
// whatever its code; interpreting the code is left to the caller.
func (c *Client) Announce(ctx context.Context, req client.RequestAnnounce) (client.AnnounceResult, error) {
	body, err := jsonx.Marshal(req)
	if err != nil {
		return client.AnnounceResult{}, errors.Wrap(err, "encode announce request")
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, c.baseURL); err != nil {
			return client.AnnounceResult{}, err
		}
	}

	var result client.AnnounceResult
	if err := c.do(ctx, http.MethodPost, announcePath, body, &result); err != nil {
		return client.AnnounceResult{}, err
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.roundTrip(ctx, method, path, body, out)
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		logx.Warn("NIS", "request to", c.baseURL+path, "rejected by breaker:", err)
		return errors.Wrapf(err, "nis %s unavailable", c.baseURL)
	default:
		return err
	}
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrapf(err, "build %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeNetworkError(resp)
	}
	if err := jsonx.Decode(resp.Body, out); err != nil {
		return errors.Wrapf(err, "decode %s response", path)
	}
	return nil
}

func decodeNetworkError(resp *http.Response) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return nemerrors.NewNetworkError(resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	var netErr nemerrors.NetworkError
	if err := jsonx.Unmarshal(raw, &netErr); err != nil || (netErr.Message == "" && netErr.Err == "") {
		message := strings.TrimSpace(string(raw))
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return nemerrors.NewNetworkError(resp.StatusCode, message)
	}
	if netErr.Status == 0 {
		netErr.Status = resp.StatusCode
	}
	return &netErr
}
