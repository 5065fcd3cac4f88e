package transaction

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Wire type codes understood by NIS1
const (
	TypeTransfer                      uint32 = 0x0101
	TypeImportanceTransfer            uint32 = 0x0801
	TypeMultisigAggregateModification uint32 = 0x1001
	TypeMultisigSignature             uint32 = 0x1002
	TypeMultisig                      uint32 = 0x1004
	TypeProvisionNamespace            uint32 = 0x2001
	TypeMosaicDefinitionCreation      uint32 = 0x4001
	TypeMosaicSupplyChange            uint32 = 0x4002
)

// Kind distinguishes transaction variants. Transfer and MosaicTransfer share a
// wire type and differ only by version.
type Kind int

const (
	KindTransfer Kind = iota + 1
	KindMosaicTransfer
	KindImportanceTransfer
	KindAggregateModification
	KindMultisigSignature
	KindMultisig
	KindProvisionNamespace
	KindMosaicDefinitionCreation
	KindMosaicSupplyChange
)

// Kinds lists every supported kind
func Kinds() []Kind {
	return []Kind{
		KindTransfer,
		KindMosaicTransfer,
		KindImportanceTransfer,
		KindAggregateModification,
		KindMultisigSignature,
		KindMultisig,
		KindProvisionNamespace,
		KindMosaicDefinitionCreation,
		KindMosaicSupplyChange,
	}
}

// Type returns the wire type code, or 0 for an unknown kind
func (k Kind) Type() uint32 {
	switch k {
	case KindTransfer, KindMosaicTransfer:
		return TypeTransfer
	case KindImportanceTransfer:
		return TypeImportanceTransfer
	case KindAggregateModification:
		return TypeMultisigAggregateModification
	case KindMultisigSignature:
		return TypeMultisigSignature
	case KindMultisig:
		return TypeMultisig
	case KindProvisionNamespace:
		return TypeProvisionNamespace
	case KindMosaicDefinitionCreation:
		return TypeMosaicDefinitionCreation
	case KindMosaicSupplyChange:
		return TypeMosaicSupplyChange
	default:
		return 0
	}
}

// String returns string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindTransfer:
		return "transfer"
	case KindMosaicTransfer:
		return "mosaic_transfer"
	case KindImportanceTransfer:
		return "importance_transfer"
	case KindAggregateModification:
		return "aggregate_modification"
	case KindMultisigSignature:
		return "multisig_signature"
	case KindMultisig:
		return "multisig"
	case KindProvisionNamespace:
		return "provision_namespace"
	case KindMosaicDefinitionCreation:
		return "mosaic_definition_creation"
	case KindMosaicSupplyChange:
		return "mosaic_supply_change"
	default:
		return "unknown"
	}
}

// Common holds the header fields shared by every transaction.
// TimeStamp and Deadline are seconds since the network epoch, Fee is in micro-units.
type Common struct {
	Type      uint32 `json:"type"`
	Version   uint32 `json:"version"`
	TimeStamp int32  `json:"timeStamp"`
	Signer    string `json:"signer"`
	Fee       uint64 `json:"fee"`
	Deadline  int32  `json:"deadline"`
}

func (c *Common) Header() *Common { return c }

// Transaction is implemented only by the variants in this package.
type Transaction interface {
	Header() *Common
	Kind() Kind
	sealed()
}

type Transfer struct {
	Common
	Recipient string   `json:"recipient"`
	Amount    uint64   `json:"amount"`
	Message   *Message `json:"message,omitempty"`
	// Mosaics is non-nil for mosaic transfers (version 2), even when empty.
	Mosaics []Mosaic `json:"mosaics,omitempty"`
}

func (t *Transfer) Kind() Kind {
	if t.Mosaics != nil {
		return KindMosaicTransfer
	}
	return KindTransfer
}

type ImportanceTransfer struct {
	Common
	Mode          ImportanceMode `json:"mode"`
	RemoteAccount string         `json:"remoteAccount"`
}

func (*ImportanceTransfer) Kind() Kind { return KindImportanceTransfer }

type AggregateModification struct {
	Common
	Modifications    []Modification `json:"modifications"`
	MinCosignatories RelativeChange `json:"minCosignatories"`
}

func (*AggregateModification) Kind() Kind { return KindAggregateModification }

// MultisigSignature cosigns the pending inner transaction identified by OtherHash.
type MultisigSignature struct {
	Common
	OtherHash    string `json:"otherHash"`
	OtherAccount string `json:"otherAccount"`
}

func (*MultisigSignature) Kind() Kind { return KindMultisigSignature }

// Multisig wraps a transaction issued on behalf of a multisig account.
// Inner carries the multisig account key as its signer, the wrapper the cosigner key.
type Multisig struct {
	Common
	Inner Transaction `json:"otherTrans"`
}

func (*Multisig) Kind() Kind { return KindMultisig }

type ProvisionNamespace struct {
	Common
	RentalFeeSink string `json:"rentalFeeSink"`
	RentalFee     uint64 `json:"rentalFee"`
	// Parent is nil when a root namespace is provisioned.
	Parent  *string `json:"parent"`
	NewPart string  `json:"newPart"`
}

func (*ProvisionNamespace) Kind() Kind { return KindProvisionNamespace }

type MosaicDefinitionCreation struct {
	Common
	Definition      MosaicDefinition `json:"mosaicDefinition"`
	CreationFeeSink string           `json:"creationFeeSink"`
	CreationFee     uint64           `json:"creationFee"`
}

func (*MosaicDefinitionCreation) Kind() Kind { return KindMosaicDefinitionCreation }

type MosaicSupplyChange struct {
	Common
	MosaicID   MosaicID   `json:"mosaicId"`
	SupplyType SupplyType `json:"supplyType"`
	Delta      uint64     `json:"delta"`
}

func (*MosaicSupplyChange) Kind() Kind { return KindMosaicSupplyChange }

func (*Transfer) sealed()                 {}
func (*ImportanceTransfer) sealed()       {}
func (*AggregateModification) sealed()    {}
func (*MultisigSignature) sealed()        {}
func (*Multisig) sealed()                 {}
func (*ProvisionNamespace) sealed()       {}
func (*MosaicDefinitionCreation) sealed() {}
func (*MosaicSupplyChange) sealed()       {}

// Hash returns the NIS transaction hash of encoded transaction bytes (lowercase hex Keccak-256)
func Hash(data []byte) string {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
