package client

import (
	"context"
)

// TimeSource reports the current network time in seconds since the nemesis block
type TimeSource interface {
	NetworkTime(ctx context.Context) (int32, error)
}

// Announcer submits a signed transaction to a node
type Announcer interface {
	Announce(ctx context.Context, req RequestAnnounce) (AnnounceResult, error)
}
