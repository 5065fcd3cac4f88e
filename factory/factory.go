package factory

import (
	"math"
	"sort"

	"github.com/mezonai/nemclient/fee"
	"github.com/mezonai/nemclient/network"
	"github.com/mezonai/nemclient/transaction"
	"github.com/mezonai/nemclient/version"
	"github.com/pkg/errors"
)

// ErrAmountOverflow is returned when a mosaic transfer multiplier does not fit the amount field
var ErrAmountOverflow = errors.New("factory: amount overflows 64 bits")

// Base carries the fields every builder needs.
// Signer is the public key hex of the account the transaction is issued for.
type Base struct {
	Signer    string
	TimeStamp int32
	TTL       int32
}

type TransferParams struct {
	Base
	Recipient string
	Amount    uint64
	Message   *transaction.Message
}

type MosaicTransferParams struct {
	Base
	Recipient  string
	Multiplier uint64
	Mosaics    []transaction.Mosaic
	Message    *transaction.Message
}

type AggregateModificationParams struct {
	Base
	Modifications  []transaction.Modification
	RelativeChange int32
}

// ProvisionNamespaceParams provisions NewPart under Parent, or a root namespace when Parent is empty
type ProvisionNamespaceParams struct {
	Base
	Parent  string
	NewPart string
}

type MosaicDefinitionParams struct {
	Base
	ID          transaction.MosaicID
	Description string
	Properties  transaction.MosaicProperties
	Levy        *transaction.Levy
}

type MosaicSupplyParams struct {
	Base
	MosaicID   transaction.MosaicID
	SupplyType transaction.SupplyType
	Delta      uint64
}

type ImportanceTransferParams struct {
	Base
	Mode          transaction.ImportanceMode
	RemoteAccount string
}

// CosignParams cosigns the pending inner transaction OtherHash of multisig account OtherAccount (an address)
type CosignParams struct {
	Base
	OtherHash    string
	OtherAccount string
}

// Factory builds unsigned transactions for one network
type Factory struct {
	network  network.Network
	versions version.Provider
	fees     fee.Calculator
}

func New(n network.Network, versions version.Provider, fees fee.Calculator) *Factory {
	return &Factory{
		network:  n,
		versions: versions,
		fees:     fees,
	}
}

// Network returns the network the factory builds for
func (f *Factory) Network() network.Network {
	return f.network
}

func (f *Factory) common(kind transaction.Kind, b Base, txFee uint64) (transaction.Common, error) {
	v, err := f.versions.Version(f.network, kind)
	if err != nil {
		return transaction.Common{}, errors.Wrapf(err, "build %s", kind)
	}
	return transaction.Common{
		Type:      kind.Type(),
		Version:   v,
		TimeStamp: b.TimeStamp,
		Signer:    b.Signer,
		Fee:       txFee,
		Deadline:  b.TimeStamp + b.TTL,
	}, nil
}

func (f *Factory) Transfer(p TransferParams) (*transaction.Transfer, error) {
	c, err := f.common(transaction.KindTransfer, p.Base, f.fees.TransferFee(p.Amount, payload(p.Message)))
	if err != nil {
		return nil, err
	}
	return &transaction.Transfer{
		Common:    c,
		Recipient: p.Recipient,
		Amount:    p.Amount,
		Message:   p.Message,
	}, nil
}

// MosaicTransfer builds a version 2 transfer. The amount is Multiplier whole units
// and the mosaics are sorted by namespace and name.
func (f *Factory) MosaicTransfer(p MosaicTransferParams) (*transaction.Transfer, error) {
	if p.Multiplier > math.MaxUint64/fee.MicroPerXem {
		return nil, errors.Wrapf(ErrAmountOverflow, "multiplier %d", p.Multiplier)
	}
	mosaics := make([]transaction.Mosaic, len(p.Mosaics))
	copy(mosaics, p.Mosaics)
	sort.SliceStable(mosaics, func(i, j int) bool {
		return mosaics[i].ID.Less(mosaics[j].ID)
	})

	c, err := f.common(transaction.KindMosaicTransfer, p.Base,
		f.fees.MosaicTransferFee(mosaics, p.Multiplier, payload(p.Message)))
	if err != nil {
		return nil, err
	}
	return &transaction.Transfer{
		Common:    c,
		Recipient: p.Recipient,
		Amount:    p.Multiplier * fee.MicroPerXem,
		Message:   p.Message,
		Mosaics:   mosaics,
	}, nil
}

func (f *Factory) AggregateModification(p AggregateModificationParams) (*transaction.AggregateModification, error) {
	c, err := f.common(transaction.KindAggregateModification, p.Base, f.fees.MultisigAccountCreationFee())
	if err != nil {
		return nil, err
	}
	return &transaction.AggregateModification{
		Common:           c,
		Modifications:    p.Modifications,
		MinCosignatories: transaction.RelativeChange{RelativeChange: p.RelativeChange},
	}, nil
}

func (f *Factory) ProvisionNamespace(p ProvisionNamespaceParams) (*transaction.ProvisionNamespace, error) {
	c, err := f.common(transaction.KindProvisionNamespace, p.Base, f.fees.NamespaceProvisionFee())
	if err != nil {
		return nil, err
	}
	tx := &transaction.ProvisionNamespace{
		Common:        c,
		RentalFeeSink: f.network.RentalFeeSink,
		RentalFee:     f.fees.RentalFee(p.Parent, p.NewPart),
		NewPart:       p.NewPart,
	}
	if p.Parent != "" {
		parent := p.Parent
		tx.Parent = &parent
	}
	return tx, nil
}

// MosaicDefinition builds a mosaic definition creation. The signer becomes the mosaic creator.
func (f *Factory) MosaicDefinition(p MosaicDefinitionParams) (*transaction.MosaicDefinitionCreation, error) {
	c, err := f.common(transaction.KindMosaicDefinitionCreation, p.Base, f.fees.MosaicCreationFee())
	if err != nil {
		return nil, err
	}
	return &transaction.MosaicDefinitionCreation{
		Common: c,
		Definition: transaction.MosaicDefinition{
			Creator:     p.Signer,
			ID:          p.ID,
			Description: p.Description,
			Properties:  p.Properties.List(),
			Levy:        p.Levy,
		},
		CreationFeeSink: f.network.CreationFeeSink,
		CreationFee:     f.fees.MosaicRentalFee(),
	}, nil
}

func (f *Factory) MosaicSupply(p MosaicSupplyParams) (*transaction.MosaicSupplyChange, error) {
	c, err := f.common(transaction.KindMosaicSupplyChange, p.Base, f.fees.MosaicSupplyChangeFee())
	if err != nil {
		return nil, err
	}
	return &transaction.MosaicSupplyChange{
		Common:     c,
		MosaicID:   p.MosaicID,
		SupplyType: p.SupplyType,
		Delta:      p.Delta,
	}, nil
}

func (f *Factory) ImportanceTransfer(p ImportanceTransferParams) (*transaction.ImportanceTransfer, error) {
	c, err := f.common(transaction.KindImportanceTransfer, p.Base, f.fees.ImportanceTransferFee())
	if err != nil {
		return nil, err
	}
	return &transaction.ImportanceTransfer{
		Common:        c,
		Mode:          p.Mode,
		RemoteAccount: p.RemoteAccount,
	}, nil
}

func (f *Factory) Cosign(p CosignParams) (*transaction.MultisigSignature, error) {
	c, err := f.common(transaction.KindMultisigSignature, p.Base, f.fees.CosigningFee())
	if err != nil {
		return nil, err
	}
	return &transaction.MultisigSignature{
		Common:       c,
		OtherHash:    p.OtherHash,
		OtherAccount: p.OtherAccount,
	}, nil
}

// Wrap issues inner on behalf of a multisig account. Inner must already carry
// the multisig account key as signer; cosigner signs the wrapper.
func (f *Factory) Wrap(cosigner string, inner transaction.Transaction, timeStamp, ttl int32) (*transaction.Multisig, error) {
	c, err := f.common(transaction.KindMultisig, Base{Signer: cosigner, TimeStamp: timeStamp, TTL: ttl}, f.fees.MultisigTransactionFee())
	if err != nil {
		return nil, err
	}
	return &transaction.Multisig{Common: c, Inner: inner}, nil
}

func payload(m *transaction.Message) []byte {
	if m == nil {
		return nil
	}
	return m.Payload
}
