package signer

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base32"
	"io"

	"filippo.io/edwards25519"
	"github.com/mezonai/nemclient/common"
	"github.com/mezonai/nemclient/network"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

var ErrInvalidKey = errors.New("signer: invalid key")

const (
	KeySize       = 32
	SignatureSize = 64
)

// KeyPair signs NIS1 transactions. NIS keys are Ed25519 with Keccak-512 in place
// of SHA-512, and the private key hex is stored byte-reversed.
type KeyPair struct {
	scalar *edwards25519.Scalar
	prefix []byte
	public []byte
}

// NewKeyPair derives a key pair from a 64 char private key, or 66 chars with a leading 00
func NewKeyPair(privateKeyHex string) (*KeyPair, error) {
	raw, err := common.DecodeFromHex(privateKeyHex)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKey, err.Error())
	}
	if len(raw) == KeySize+1 && raw[0] == 0 {
		raw = raw[1:]
	}
	if len(raw) != KeySize {
		return nil, errors.Wrapf(ErrInvalidKey, "private key is %d bytes", len(raw))
	}

	seed := make([]byte, KeySize)
	for i, b := range raw {
		seed[KeySize-1-i] = b
	}
	h := keccak512(seed)

	s, err := edwards25519.NewScalar().SetBytesWithClamping(h[:32])
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKey, err.Error())
	}
	return &KeyPair{
		scalar: s,
		prefix: h[32:],
		public: new(edwards25519.Point).ScalarBaseMult(s).Bytes(),
	}, nil
}

// Generate creates a fresh key pair and returns it with its private key hex
func Generate(random io.Reader) (*KeyPair, string, error) {
	if random == nil {
		random = rand.Reader
	}
	raw := make([]byte, KeySize)
	if _, err := io.ReadFull(random, raw); err != nil {
		return nil, "", errors.Wrap(err, "read random key")
	}
	privateKey := common.EncodeToHex(raw)
	kp, err := NewKeyPair(privateKey)
	if err != nil {
		return nil, "", err
	}
	return kp, privateKey, nil
}

// PublicKey returns the public key as lowercase hex
func (k *KeyPair) PublicKey() string {
	return common.EncodeToHex(k.public)
}

// Address returns the account address of the key pair on network n
func (k *KeyPair) Address(n network.Network) string {
	return address(k.public, n)
}

// Sign returns the hex R||S signature of data. Signing is deterministic.
func (k *KeyPair) Sign(data []byte) string {
	return common.EncodeToHex(k.SignBytes(data))
}

func (k *KeyPair) SignBytes(data []byte) []byte {
	r, _ := edwards25519.NewScalar().SetUniformBytes(keccak512(k.prefix, data))
	R := new(edwards25519.Point).ScalarBaseMult(r).Bytes()

	h, _ := edwards25519.NewScalar().SetUniformBytes(keccak512(R, k.public, data))
	S := edwards25519.NewScalar().MultiplyAdd(h, k.scalar, r)

	sig := make([]byte, 0, SignatureSize)
	sig = append(sig, R...)
	return append(sig, S.Bytes()...)
}

// Verify reports whether signatureHex is a valid signature of data by publicKeyHex
func Verify(publicKeyHex string, data []byte, signatureHex string) bool {
	pub, err := common.DecodeFromHex(publicKeyHex)
	if err != nil || len(pub) != KeySize {
		return false
	}
	sig, err := common.DecodeFromHex(signatureHex)
	if err != nil || len(sig) != SignatureSize {
		return false
	}

	A, err := new(edwards25519.Point).SetBytes(pub)
	if err != nil {
		return false
	}
	S, err := edwards25519.NewScalar().SetCanonicalBytes(sig[32:])
	if err != nil {
		return false
	}
	h, _ := edwards25519.NewScalar().SetUniformBytes(keccak512(sig[:32], pub, data))

	minusA := new(edwards25519.Point).Negate(A)
	R := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(h, minusA, S)
	return subtle.ConstantTimeCompare(R.Bytes(), sig[:32]) == 1
}

// Address derives the base32 account address of a public key on network n
func Address(publicKeyHex string, n network.Network) (string, error) {
	pub, err := common.DecodeFromHex(publicKeyHex)
	if err != nil {
		return "", errors.Wrap(ErrInvalidKey, err.Error())
	}
	if len(pub) != KeySize {
		return "", errors.Wrapf(ErrInvalidKey, "public key is %d bytes", len(pub))
	}
	return address(pub, n), nil
}

func address(pub []byte, n network.Network) string {
	sha := sha3.NewLegacyKeccak256()
	sha.Write(pub)
	ripe := ripemd160.New()
	ripe.Write(sha.Sum(nil))

	versioned := append([]byte{n.ID}, ripe.Sum(nil)...)
	check := sha3.NewLegacyKeccak256()
	check.Write(versioned)

	return base32.StdEncoding.EncodeToString(append(versioned, check.Sum(nil)[:4]...))
}

func keccak512(parts ...[]byte) []byte {
	h := sha3.NewLegacyKeccak512()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}
