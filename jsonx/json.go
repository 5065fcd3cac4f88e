package jsonx

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

var jsonx = jsoniter.ConfigCompatibleWithStandardLibrary

func Marshal(v interface{}) ([]byte, error) {
	return jsonx.Marshal(v)
}

// MarshalIndent is used for human readable CLI output
func MarshalIndent(v interface{}) ([]byte, error) {
	return jsonx.MarshalIndent(v, "", "  ")
}

func Unmarshal(data []byte, v interface{}) error {
	return jsonx.Unmarshal(data, v)
}

// Decode reads a single JSON value from r into v
func Decode(r io.Reader, v interface{}) error {
	return jsonx.NewDecoder(r).Decode(v)
}

func NewEncoder(w io.Writer) *jsoniter.Encoder {
	return jsonx.NewEncoder(w)
}
