package client

import (
	"github.com/mezonai/nemclient/fee"
	"github.com/mezonai/nemclient/network"
	"github.com/mezonai/nemclient/version"
)

type Config struct {
	Network network.Network
	// Versions and Fees default to version.Default and fee.Default when nil.
	Versions version.Provider
	Fees     fee.Calculator
}

// RequestAnnounce is the body of POST /transaction/announce
type RequestAnnounce struct {
	Data      string `json:"data"`
	Signature string `json:"signature"`
}

type Hash struct {
	Data string `json:"data,omitempty"`
}

// AnnounceResult is the NIS response to an announce. Code 1 means success.
type AnnounceResult struct {
	Type                 int    `json:"type"`
	Code                 int    `json:"code"`
	Message              string `json:"message"`
	TransactionHash      Hash   `json:"transactionHash"`
	InnerTransactionHash Hash   `json:"innerTransactionHash"`
}
