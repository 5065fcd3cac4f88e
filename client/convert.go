package client

import (
	"encoding/binary"

	"github.com/mezonai/nemclient/common"
	"github.com/mezonai/nemclient/transaction"
	"github.com/mezonai/nemclient/wire"
)

// header offsets of the encoded transaction
const (
	typeOffset   = 0
	signerOffset = 16
)

func signerKey(data []byte) []byte {
	return data[signerOffset : signerOffset+32]
}

// Hashes returns the transaction hash of encoded data and, for a multisig wrapper,
// the hash of the inner transaction that cosigners must reference.
func Hashes(data []byte) (outer, inner string) {
	outer = transaction.Hash(data)
	if len(data) < wire.HeaderSize+4 {
		return outer, ""
	}
	if binary.LittleEndian.Uint32(data[typeOffset:]) != transaction.TypeMultisig {
		return outer, ""
	}
	size := binary.LittleEndian.Uint32(data[wire.HeaderSize:])
	body := data[wire.HeaderSize+4:]
	if uint32(len(body)) < size {
		return outer, ""
	}
	return outer, transaction.Hash(body[:size])
}

// RequestHashes decodes the request data and returns its hashes
func RequestHashes(req RequestAnnounce) (outer, inner string, err error) {
	data, err := common.DecodeFromHex(req.Data)
	if err != nil {
		return "", "", err
	}
	outer, inner = Hashes(data)
	return outer, inner, nil
}
