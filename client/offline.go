package client

import (
	"context"
	"sync"
	"time"

	"github.com/mezonai/nemclient/network"
)

// LocalClock derives the network time from the local wall clock
type LocalClock struct {
	Now func() time.Time
}

func (c LocalClock) NetworkTime(context.Context) (int32, error) {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return network.TimeStamp(now()), nil
}

// Recorder is an Announcer that keeps signed requests instead of sending them.
// It answers every request with a successful result carrying the computed hashes.
type Recorder struct {
	mu       sync.Mutex
	requests []RequestAnnounce
}

func (r *Recorder) Announce(_ context.Context, req RequestAnnounce) (AnnounceResult, error) {
	outer, inner, err := RequestHashes(req)
	if err != nil {
		return AnnounceResult{}, err
	}

	r.mu.Lock()
	r.requests = append(r.requests, req)
	r.mu.Unlock()

	return AnnounceResult{
		Type:                 1,
		Code:                 1,
		Message:              "SIGNED",
		TransactionHash:      Hash{Data: outer},
		InnerTransactionHash: Hash{Data: inner},
	}, nil
}

// Requests returns the recorded requests in announce order
func (r *Recorder) Requests() []RequestAnnounce {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RequestAnnounce, len(r.requests))
	copy(out, r.requests)
	return out
}

// Last returns the most recent request
func (r *Recorder) Last() (RequestAnnounce, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.requests) == 0 {
		return RequestAnnounce{}, false
	}
	return r.requests[len(r.requests)-1], true
}
