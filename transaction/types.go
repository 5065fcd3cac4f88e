package transaction

import (
	"strconv"
)

type MessageType uint32

const (
	MessagePlain  MessageType = 1
	MessageSecure MessageType = 2
)

// Message is attached to transfers. Secure payloads are expected to be encrypted by the caller.
type Message struct {
	Type    MessageType `json:"type"`
	Payload []byte      `json:"payload"`
}

// PlainMessage wraps text as a plain message
func PlainMessage(text string) *Message {
	return &Message{Type: MessagePlain, Payload: []byte(text)}
}

// Len returns the payload length, 0 for a nil message
func (m *Message) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Payload)
}

// MosaicID is the fully qualified name of a mosaic
type MosaicID struct {
	Namespace string `json:"namespaceId"`
	Name      string `json:"name"`
}

func (id MosaicID) String() string {
	return id.Namespace + ":" + id.Name
}

// Less orders mosaic ids by namespace, then name
func (id MosaicID) Less(other MosaicID) bool {
	if id.Namespace != other.Namespace {
		return id.Namespace < other.Namespace
	}
	return id.Name < other.Name
}

// XemMosaicID is the native currency expressed as a mosaic
var XemMosaicID = MosaicID{Namespace: "nem", Name: "xem"}

// Mosaic is a quantity of a mosaic attached to a transfer. Supply and
// Divisibility describe the mosaic definition and are only used for fee calculation.
type Mosaic struct {
	ID           MosaicID `json:"mosaicId"`
	Quantity     uint64   `json:"quantity"`
	Supply       uint64   `json:"-"`
	Divisibility uint8    `json:"-"`
}

// Property is a name/value pair of a mosaic definition
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type MosaicProperties struct {
	Divisibility  uint8
	InitialSupply uint64
	SupplyMutable bool
	Transferable  bool
}

// List renders the properties in the order NIS expects
func (p MosaicProperties) List() []Property {
	return []Property{
		{Name: "divisibility", Value: strconv.FormatUint(uint64(p.Divisibility), 10)},
		{Name: "initialSupply", Value: strconv.FormatUint(p.InitialSupply, 10)},
		{Name: "supplyMutable", Value: strconv.FormatBool(p.SupplyMutable)},
		{Name: "transferable", Value: strconv.FormatBool(p.Transferable)},
	}
}

type LevyType uint32

const (
	LevyAbsolute   LevyType = 1
	LevyPercentile LevyType = 2
)

type Levy struct {
	Type      LevyType `json:"type"`
	Recipient string   `json:"recipient"`
	MosaicID  MosaicID `json:"mosaicId"`
	Fee       uint64   `json:"fee"`
}

type MosaicDefinition struct {
	Creator     string     `json:"creator"`
	ID          MosaicID   `json:"id"`
	Description string     `json:"description"`
	Properties  []Property `json:"properties"`
	Levy        *Levy      `json:"levy,omitempty"`
}

type SupplyType uint32

const (
	SupplyIncrease SupplyType = 1
	SupplyDecrease SupplyType = 2
)

type ImportanceMode uint32

const (
	ImportanceActivate   ImportanceMode = 1
	ImportanceDeactivate ImportanceMode = 2
)

type ModificationType uint32

const (
	AddCosignatory    ModificationType = 1
	RemoveCosignatory ModificationType = 2
)

type Modification struct {
	Type        ModificationType `json:"modificationType"`
	Cosignatory string           `json:"cosignatoryAccount"`
}

// RelativeChange adjusts the minimum number of cosignatories of a multisig account
type RelativeChange struct {
	RelativeChange int32 `json:"relativeChange"`
}
