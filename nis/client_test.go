package nis

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mezonai/nemclient/client"
	nemerrors "github.com/mezonai/nemclient/errors"
	"github.com/mezonai/nemclient/jsonx"
	"github.com/mezonai/nemclient/ratelimit"
	"github.com/pkg/errors"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts Options) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	if opts.Timeout == 0 {
		opts.Timeout = 2 * time.Second
	}
	return NewClient(srv.URL+"/", opts)
}

func TestNetworkTime(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, extendedInfoPath, r.URL.Path)
		_, _ = io.WriteString(w, `{"node":{"metaData":{"application":"NIS"}},"nisInfo":{"currentTime":96283401,"application":"NEM Infrastructure Server","version":"0.6.100"}}`)
	}, Options{})

	ts, err := c.NetworkTime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(96283401), ts)
}

func TestAnnounce(t *testing.T) {
	req := client.RequestAnnounce{Data: "0101000001000098", Signature: "aa"}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, announcePath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got client.RequestAnnounce
		assert.NoError(t, jsonx.Decode(r.Body, &got))
		assert.Equal(t, req, got)

		_, _ = io.WriteString(w, `{"innerTransactionHash":{},"code":1,"type":1,"message":"SUCCESS","transactionHash":{"data":"c1786437"}}`)
	}, Options{})

	res, err := c.Announce(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Code)
	assert.Equal(t, "SUCCESS", res.Message)
	assert.Equal(t, "c1786437", res.TransactionHash.Data)
	assert.Empty(t, res.InnerTransactionHash.Data)
}

func TestAnnounceReturnsNonSuccessResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"code":5,"type":1,"message":"FAILURE_INSUFFICIENT_BALANCE"}`)
	}, Options{})

	res, err := c.Announce(context.Background(), client.RequestAnnounce{})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Code)
	assert.Equal(t, nemerrors.MsgFailureInsufficientBalance, res.Message)
}

func TestNetworkErrorBody(t *testing.T) {
	t.Run("json body", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"timeStamp":96283401,"error":"Bad Request","message":"FAILURE_SIGNATURE_NOT_VERIFIABLE","status":400}`)
		}, Options{})

		_, err := c.Announce(context.Background(), client.RequestAnnounce{})
		var netErr *nemerrors.NetworkError
		require.True(t, errors.As(err, &netErr))
		assert.Equal(t, 400, netErr.Status)
		assert.Equal(t, int64(96283401), netErr.TimeStamp)
		assert.Equal(t, nemerrors.MsgFailureSignatureNotVerify, netErr.Message)
	})

	t.Run("plain body", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream down", http.StatusBadGateway)
		}, Options{})

		_, err := c.NetworkTime(context.Background())
		var netErr *nemerrors.NetworkError
		require.True(t, errors.As(err, &netErr))
		assert.Equal(t, http.StatusBadGateway, netErr.Status)
		assert.Equal(t, "upstream down", netErr.Message)
	})

	t.Run("empty body", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}, Options{})

		_, err := c.NetworkTime(context.Background())
		var netErr *nemerrors.NetworkError
		require.True(t, errors.As(err, &netErr))
		assert.Equal(t, http.StatusNotFound, netErr.Status)
		assert.Equal(t, "Not Found", netErr.Message)
	})
}

func TestMalformedResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"nisInfo":`)
	}, Options{})

	_, err := c.NetworkTime(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestBreakerOpensOnServerErrors(t *testing.T) {
	var hits int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}, Options{MaxFailures: 2, OpenTimeout: time.Minute})

	for i := 0; i < 2; i++ {
		_, err := c.NetworkTime(context.Background())
		require.Error(t, err)
		assert.False(t, errors.Is(err, gobreaker.ErrOpenState))
	}
	assert.Equal(t, gobreaker.StateOpen, c.State())

	_, err := c.NetworkTime(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits), "open breaker must not reach the node")
}

func TestClientErrorsKeepBreakerClosed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}, Options{MaxFailures: 1, OpenTimeout: time.Minute})

	for i := 0; i < 3; i++ {
		_, err := c.Announce(context.Background(), client.RequestAnnounce{})
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateClosed, c.State())
}

func TestNoRetry(t *testing.T) {
	var hits int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, Options{MaxFailures: 10})

	_, err := c.Announce(context.Background(), client.RequestAnnounce{})
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"nisInfo":{"currentTime":1}}`)
	}, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.NetworkTime(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestBaseURLTrimmed(t *testing.T) {
	c := NewClient("http://127.0.0.1:7890///", Options{})
	assert.Equal(t, "http://127.0.0.1:7890", c.BaseURL())
}

func TestAnnounceRateLimited(t *testing.T) {
	var hits int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = io.WriteString(w, `{"code":1,"type":1,"message":"SUCCESS"}`)
	}, Options{MaxAnnounces: 1, AnnounceWindow: time.Hour})

	_, err := c.Announce(context.Background(), client.RequestAnnounce{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Announce(ctx, client.RequestAnnounce{})
	var rlErr *ratelimit.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	// the time source is not limited
	c2 := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"nisInfo":{"currentTime":7}}`)
	}, Options{MaxAnnounces: 1, AnnounceWindow: time.Hour})
	for i := 0; i < 3; i++ {
		ts, err := c2.NetworkTime(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int32(7), ts)
	}
}
