package wire

import (
	"reflect"
	"strings"

	"github.com/mezonai/nemclient/common"
	"github.com/mezonai/nemclient/transaction"
	"github.com/mezonai/nemclient/version"
	"github.com/pkg/errors"
)

var ErrEncodingInvariant = errors.New("wire: encoding invariant violated")

const (
	keySize     = 32
	hashSize    = 32
	addressSize = 40

	// absentParent marks a root namespace provision
	absentParent uint32 = 0xFFFFFFFF

	// HeaderSize is the length of the common header of every transaction
	HeaderSize = 4 + 4 + 4 + 4 + keySize + 8 + 4
)

// Encode serializes a transaction into the canonical NIS1 binary form that is signed and announced.
func Encode(tx transaction.Transaction) ([]byte, error) {
	w := &writer{}
	if err := encode(w, tx, false); err != nil {
		return nil, err
	}
	return w.bytes(), nil
}

func encode(w *writer, tx transaction.Transaction, nested bool) error {
	if tx == nil || reflect.ValueOf(tx).IsNil() {
		return errors.Wrap(ErrEncodingInvariant, "nil transaction")
	}
	c := tx.Header()
	if c.Type != tx.Kind().Type() {
		return errors.Wrapf(ErrEncodingInvariant, "type 0x%04x does not match %s", c.Type, tx.Kind())
	}
	if err := header(w, c); err != nil {
		return err
	}

	switch t := tx.(type) {
	case *transaction.Transfer:
		return transfer(w, t)
	case *transaction.ImportanceTransfer:
		return importanceTransfer(w, t)
	case *transaction.AggregateModification:
		return aggregateModification(w, t)
	case *transaction.MultisigSignature:
		return multisigSignature(w, t)
	case *transaction.Multisig:
		if nested {
			return errors.Wrap(ErrEncodingInvariant, "multisig wrapper inside multisig wrapper")
		}
		if t.Inner == nil {
			return errors.Wrap(ErrEncodingInvariant, "multisig without inner transaction")
		}
		return w.nested(func(iw *writer) error {
			return encode(iw, t.Inner, true)
		})
	case *transaction.ProvisionNamespace:
		return provisionNamespace(w, t)
	case *transaction.MosaicDefinitionCreation:
		return mosaicDefinitionCreation(w, t)
	case *transaction.MosaicSupplyChange:
		return mosaicSupplyChange(w, t)
	default:
		return errors.Wrapf(ErrEncodingInvariant, "unsupported transaction %T", tx)
	}
}

func header(w *writer, c *transaction.Common) error {
	signer, err := publicKey(c.Signer, "signer")
	if err != nil {
		return err
	}
	w.uint32(c.Type)
	w.uint32(c.Version)
	w.int32(c.TimeStamp)
	w.sized(signer)
	w.uint64(c.Fee)
	w.int32(c.Deadline)
	return nil
}

func transfer(w *writer, t *transaction.Transfer) error {
	recipient, err := address(t.Recipient, "recipient")
	if err != nil {
		return err
	}
	entity := version.Entity(t.Version)
	if t.Mosaics != nil && entity < 2 {
		return errors.Wrapf(ErrEncodingInvariant, "mosaics attached to version %d transfer", entity)
	}

	w.sized(recipient)
	w.uint64(t.Amount)
	if t.Message.Len() == 0 {
		w.uint32(0)
	} else {
		w.uint32(uint32(8 + len(t.Message.Payload)))
		w.uint32(uint32(t.Message.Type))
		w.sized(t.Message.Payload)
	}

	if entity < 2 {
		return nil
	}
	w.uint32(uint32(len(t.Mosaics)))
	for _, m := range t.Mosaics {
		if err := w.nested(func(mw *writer) error {
			if err := mosaicIDField(mw, m.ID); err != nil {
				return err
			}
			mw.uint64(m.Quantity)
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}

func importanceTransfer(w *writer, t *transaction.ImportanceTransfer) error {
	remote, err := publicKey(t.RemoteAccount, "remote account")
	if err != nil {
		return err
	}
	w.uint32(uint32(t.Mode))
	w.sized(remote)
	return nil
}

func aggregateModification(w *writer, t *transaction.AggregateModification) error {
	w.uint32(uint32(len(t.Modifications)))
	for _, m := range t.Modifications {
		key, err := publicKey(m.Cosignatory, "cosignatory")
		if err != nil {
			return err
		}
		w.uint32(4 + 4 + keySize)
		w.uint32(uint32(m.Type))
		w.sized(key)
	}
	w.uint32(4)
	w.int32(t.MinCosignatories.RelativeChange)
	return nil
}

func multisigSignature(w *writer, t *transaction.MultisigSignature) error {
	hash, err := common.DecodeFromHex(t.OtherHash)
	if err != nil || len(hash) != hashSize {
		return errors.Wrapf(ErrEncodingInvariant, "other hash %q", t.OtherHash)
	}
	account, err := address(t.OtherAccount, "other account")
	if err != nil {
		return err
	}
	w.uint32(4 + hashSize)
	w.sized(hash)
	w.sized(account)
	return nil
}

func provisionNamespace(w *writer, t *transaction.ProvisionNamespace) error {
	sink, err := address(t.RentalFeeSink, "rental fee sink")
	if err != nil {
		return err
	}
	if t.NewPart == "" {
		return errors.Wrap(ErrEncodingInvariant, "empty namespace part")
	}
	w.sized(sink)
	w.uint64(t.RentalFee)
	w.string(t.NewPart)
	if t.Parent == nil {
		w.uint32(absentParent)
	} else {
		w.string(*t.Parent)
	}
	return nil
}

func mosaicDefinitionCreation(w *writer, t *transaction.MosaicDefinitionCreation) error {
	sink, err := address(t.CreationFeeSink, "creation fee sink")
	if err != nil {
		return err
	}
	if err := w.nested(func(dw *writer) error {
		return mosaicDefinition(dw, t.Definition)
	}); err != nil {
		return err
	}
	w.sized(sink)
	w.uint64(t.CreationFee)
	return nil
}

func mosaicDefinition(w *writer, d transaction.MosaicDefinition) error {
	creator, err := publicKey(d.Creator, "creator")
	if err != nil {
		return err
	}
	w.sized(creator)
	if err := mosaicIDField(w, d.ID); err != nil {
		return err
	}
	w.string(d.Description)

	w.uint32(uint32(len(d.Properties)))
	for _, p := range d.Properties {
		if err := w.nested(func(pw *writer) error {
			if p.Name == "" {
				return errors.Wrap(ErrEncodingInvariant, "mosaic property without name")
			}
			pw.string(p.Name)
			pw.string(p.Value)
			return nil
		}); err != nil {
			return err
		}
	}

	if d.Levy == nil {
		w.uint32(0)
		return nil
	}
	return w.nested(func(lw *writer) error {
		recipient, err := address(d.Levy.Recipient, "levy recipient")
		if err != nil {
			return err
		}
		lw.uint32(uint32(d.Levy.Type))
		lw.sized(recipient)
		if err := mosaicIDField(lw, d.Levy.MosaicID); err != nil {
			return err
		}
		lw.uint64(d.Levy.Fee)
		return nil
	})
}

func mosaicSupplyChange(w *writer, t *transaction.MosaicSupplyChange) error {
	if err := mosaicIDField(w, t.MosaicID); err != nil {
		return err
	}
	w.uint32(uint32(t.SupplyType))
	w.uint64(t.Delta)
	return nil
}

// mosaicIDField writes [idLen][nsLen][ns][nameLen][name]
func mosaicIDField(w *writer, id transaction.MosaicID) error {
	if id.Namespace == "" || id.Name == "" {
		return errors.Wrapf(ErrEncodingInvariant, "mosaic id %q", id.String())
	}
	return w.nested(func(iw *writer) error {
		iw.string(id.Namespace)
		iw.string(id.Name)
		return nil
	})
}

func publicKey(s, field string) ([]byte, error) {
	key, err := common.DecodeFromHex(s)
	if err != nil {
		return nil, errors.Wrapf(ErrEncodingInvariant, "%s: %v", field, err)
	}
	if len(key) != keySize {
		return nil, errors.Wrapf(ErrEncodingInvariant, "%s: %d byte key", field, len(key))
	}
	return key, nil
}

func address(s, field string) ([]byte, error) {
	a := strings.ToUpper(strings.ReplaceAll(s, "-", ""))
	if len(a) != addressSize {
		return nil, errors.Wrapf(ErrEncodingInvariant, "%s: address %q", field, s)
	}
	return []byte(a), nil
}
