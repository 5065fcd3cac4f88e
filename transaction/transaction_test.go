package transaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindType(t *testing.T) {
	tests := []struct {
		kind Kind
		want uint32
		name string
	}{
		{KindTransfer, 0x0101, "transfer"},
		{KindMosaicTransfer, 0x0101, "mosaic_transfer"},
		{KindImportanceTransfer, 0x0801, "importance_transfer"},
		{KindAggregateModification, 0x1001, "aggregate_modification"},
		{KindMultisigSignature, 0x1002, "multisig_signature"},
		{KindMultisig, 0x1004, "multisig"},
		{KindProvisionNamespace, 0x2001, "provision_namespace"},
		{KindMosaicDefinitionCreation, 0x4001, "mosaic_definition_creation"},
		{KindMosaicSupplyChange, 0x4002, "mosaic_supply_change"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Type())
			assert.Equal(t, tt.name, tt.kind.String())
		})
	}

	assert.Len(t, Kinds(), len(tests))
	assert.Equal(t, uint32(0), Kind(99).Type())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestVariantKinds(t *testing.T) {
	var txs = []struct {
		tx   Transaction
		kind Kind
	}{
		{&Transfer{}, KindTransfer},
		{&Transfer{Mosaics: []Mosaic{}}, KindMosaicTransfer},
		{&ImportanceTransfer{}, KindImportanceTransfer},
		{&AggregateModification{}, KindAggregateModification},
		{&MultisigSignature{}, KindMultisigSignature},
		{&Multisig{}, KindMultisig},
		{&ProvisionNamespace{}, KindProvisionNamespace},
		{&MosaicDefinitionCreation{}, KindMosaicDefinitionCreation},
		{&MosaicSupplyChange{}, KindMosaicSupplyChange},
	}
	for _, tt := range txs {
		assert.Equal(t, tt.kind, tt.tx.Kind())
	}
}

func TestHeaderIsShared(t *testing.T) {
	tx := &Transfer{Common: Common{Fee: 10}}
	tx.Header().Fee = 20
	assert.Equal(t, uint64(20), tx.Fee)
}

func TestHash(t *testing.T) {
	assert.Equal(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", Hash(nil))
	assert.Equal(t, "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45", Hash([]byte("abc")))
}

func TestMosaicProperties(t *testing.T) {
	props := MosaicProperties{Divisibility: 3, InitialSupply: 1_000_000, SupplyMutable: true}.List()
	assert.Equal(t, []Property{
		{Name: "divisibility", Value: "3"},
		{Name: "initialSupply", Value: "1000000"},
		{Name: "supplyMutable", Value: "true"},
		{Name: "transferable", Value: "false"},
	}, props)
}

func TestMosaicIDOrdering(t *testing.T) {
	a := MosaicID{Namespace: "alice", Name: "zeta"}
	b := MosaicID{Namespace: "bob", Name: "alpha"}
	c := MosaicID{Namespace: "bob", Name: "beta"}
	assert.True(t, a.Less(b))
	assert.True(t, b.Less(c))
	assert.False(t, c.Less(b))
	assert.Equal(t, "nem:xem", XemMosaicID.String())
}

func TestMessageLen(t *testing.T) {
	var m *Message
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 5, PlainMessage("hello").Len())
	assert.Equal(t, MessagePlain, PlainMessage("").Type)
}
