package common

import (
	"testing"

	"github.com/pkg/errors"
)

func TestEncodeToHex(t *testing.T) {
	got := EncodeToHex([]byte{0x00, 0xAB, 0xff, 0x10})
	if got != "00abff10" {
		t.Fatalf("EncodeToHex() = %q, want %q", got, "00abff10")
	}
	if EncodeToHex(nil) != "" {
		t.Fatalf("EncodeToHex(nil) should be empty")
	}
}

func TestDecodeFromHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{name: "lowercase", input: "00abff10", want: []byte{0x00, 0xab, 0xff, 0x10}},
		{name: "uppercase", input: "00ABFF10", want: []byte{0x00, 0xab, 0xff, 0x10}},
		{name: "prefixed", input: "0x0102", want: []byte{0x01, 0x02}},
		{name: "empty", input: "", want: []byte{}},
		{name: "odd length", input: "abc", wantErr: true},
		{name: "non hex digit", input: "zz", wantErr: true},
		{name: "space", input: "ab cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeFromHex(tt.input)
			if tt.wantErr {
				if errors.Cause(err) != ErrInvalidHex {
					t.Fatalf("DecodeFromHex(%q) error = %v, want ErrInvalidHex", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeFromHex(%q) unexpected error: %v", tt.input, err)
			}
			if string(got) != string(tt.want) {
				t.Fatalf("DecodeFromHex(%q) = %x, want %x", tt.input, got, tt.want)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	in := []byte("nem transaction bytes")
	out, err := DecodeFromHex(EncodeToHex(in))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != string(in) {
		t.Fatalf("round trip mismatch: %q != %q", out, in)
	}
	if !IsValidHex("0a0b") || IsValidHex("0a0") {
		t.Fatal("IsValidHex mismatch")
	}
}
