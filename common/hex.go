package common

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidHex = errors.New("common: invalid hex string")

// EncodeToHex encodes bytes to a lowercase hex string
func EncodeToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// DecodeFromHex decodes a hex string to bytes. An optional 0x prefix is accepted.
func DecodeFromHex(hexStr string) ([]byte, error) {
	s := strings.TrimPrefix(strings.TrimPrefix(hexStr, "0x"), "0X")
	if len(s)%2 != 0 {
		return nil, errors.Wrapf(ErrInvalidHex, "odd length %d", len(s))
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidHex, err.Error())
	}
	return b, nil
}

// IsValidHex checks if a string decodes as hex
func IsValidHex(str string) bool {
	_, err := DecodeFromHex(str)
	return err == nil
}
