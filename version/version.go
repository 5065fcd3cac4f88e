package version

import (
	"github.com/mezonai/nemclient/network"
	"github.com/mezonai/nemclient/transaction"
	"github.com/pkg/errors"
)

var ErrUnsupportedCombination = errors.New("version: unsupported network/kind combination")

// Provider maps a network and transaction kind to the protocol version tag
type Provider interface {
	Version(n network.Network, k transaction.Kind) (uint32, error)
}

// Table is a static Provider. The tag is the network id in the top byte and the
// entity version in the low byte.
type Table struct {
	networks map[byte]bool
	entities map[transaction.Kind]uint32
}

// NewTable creates the NIS1 version table for the given networks
func NewTable(networks ...network.Network) *Table {
	t := &Table{
		networks: make(map[byte]bool, len(networks)),
		entities: map[transaction.Kind]uint32{
			transaction.KindTransfer:                 1,
			transaction.KindMosaicTransfer:           2,
			transaction.KindImportanceTransfer:       1,
			transaction.KindAggregateModification:    2,
			transaction.KindMultisigSignature:        1,
			transaction.KindMultisig:                 1,
			transaction.KindProvisionNamespace:       1,
			transaction.KindMosaicDefinitionCreation: 1,
			transaction.KindMosaicSupplyChange:       1,
		},
	}
	for _, n := range networks {
		t.networks[n.ID] = true
	}
	return t
}

// Default returns a table for mainnet, testnet and mijin
func Default() *Table {
	return NewTable(network.Mainnet, network.Testnet, network.Mijin)
}

func (t *Table) Version(n network.Network, k transaction.Kind) (uint32, error) {
	if !t.networks[n.ID] {
		return 0, errors.Wrapf(ErrUnsupportedCombination, "network 0x%02x, kind %s", n.ID, k)
	}
	v, ok := t.entities[k]
	if !ok {
		return 0, errors.Wrapf(ErrUnsupportedCombination, "network %s, kind %s", n, k)
	}
	return uint32(n.ID)<<24 | v, nil
}

// Entity extracts the entity version from a version tag
func Entity(v uint32) uint32 {
	return v & 0x00FFFFFF
}

// NetworkID extracts the network id from a version tag
func NetworkID(v uint32) byte {
	return byte(v >> 24)
}
