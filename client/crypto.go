package client

import (
	"github.com/mezonai/nemclient/common"
	"github.com/mezonai/nemclient/signer"
	"github.com/mezonai/nemclient/transaction"
	"github.com/mezonai/nemclient/wire"
)

// Prepare encodes tx and signs the bytes with kp. Nothing is sent.
func Prepare(kp *signer.KeyPair, tx transaction.Transaction) (RequestAnnounce, error) {
	data, err := wire.Encode(tx)
	if err != nil {
		return RequestAnnounce{}, err
	}
	return RequestAnnounce{
		Data:      common.EncodeToHex(data),
		Signature: kp.Sign(data),
	}, nil
}

// Verify checks the request signature against the signer key embedded in its data
func Verify(req RequestAnnounce) bool {
	data, err := common.DecodeFromHex(req.Data)
	if err != nil || len(data) < wire.HeaderSize {
		return false
	}
	return signer.Verify(common.EncodeToHex(signerKey(data)), data, req.Signature)
}
