package errors

import (
	"fmt"

	"github.com/mezonai/nemclient/jsonx"
)

// AnnounceCode is the result code NIS returns for an announced transaction
type AnnounceCode int

const (
	CodeNeutral AnnounceCode = 0
	CodeSuccess AnnounceCode = 1
)

// Result messages NIS commonly reports for rejected transactions
const (
	MsgFailureInsufficientBalance = "FAILURE_INSUFFICIENT_BALANCE"
	MsgFailurePastDeadline        = "FAILURE_PAST_DEADLINE"
	MsgFailureTimestampTooFar     = "FAILURE_TIMESTAMP_TOO_FAR_IN_FUTURE"
	MsgFailureInsufficientFee     = "FAILURE_INSUFFICIENT_FEE"
	MsgFailureSignatureNotVerify  = "FAILURE_SIGNATURE_NOT_VERIFIABLE"
	MsgFailureEntityUnusable      = "FAILURE_ENTITY_UNUSABLE"
)

// NetworkError is the JSON error body NIS returns with a non-2xx status
type NetworkError struct {
	TimeStamp int64  `json:"timeStamp"`
	Err       string `json:"error"`
	Message   string `json:"message"`
	Status    int    `json:"status"`
}

// Error implements the error interface
func (e *NetworkError) Error() string {
	body, err := jsonx.Marshal(e)
	if err != nil {
		return fmt.Sprintf("nis: status %d: %s", e.Status, e.Message)
	}
	return string(body)
}

// NewNetworkError creates a NetworkError for a status without a decodable body
func NewNetworkError(status int, message string) error {
	return &NetworkError{
		Err:     fmt.Sprintf("HTTP %d", status),
		Message: message,
		Status:  status,
	}
}

// AnnounceError reports a transaction NIS accepted over HTTP but rejected by validation
type AnnounceError struct {
	Code    AnnounceCode `json:"code"`
	Message string       `json:"message"`
}

func (e *AnnounceError) Error() string {
	body, err := jsonx.Marshal(e)
	if err != nil {
		return fmt.Sprintf("nis: announce code %d: %s", e.Code, e.Message)
	}
	return string(body)
}

// NewAnnounceError creates an AnnounceError and returns it as error interface
func NewAnnounceError(code AnnounceCode, message string) error {
	return &AnnounceError{
		Code:    code,
		Message: message,
	}
}
