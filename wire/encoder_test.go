package wire

import (
	"encoding/binary"
	"encoding/hex"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/mezonai/nemclient/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	signerKey = "fd805215bf86be66843057c8f59328b80109135cb9d043c494c9b316d5c411e9"
	otherKey  = "0b0d8f4c0b9e4a07d6f0a4f8b1a1c6f0a2e0b3c4d5e6f708192a3b4c5d6e7f80"
	recipient = "TAEX4PYFHA3QH4A34KAOBS7R2XL3KOQESVUVMBOC"
	sink      = "TAMESPACEWH4MKFMBCVFERDPOOP4FK7MTDJEYP35"
)

func stamp(kind transaction.Kind, version uint32) transaction.Common {
	return transaction.Common{
		Type:      kind.Type(),
		Version:   version,
		TimeStamp: 1000,
		Signer:    signerKey,
		Fee:       50_000,
		Deadline:  1060,
	}
}

func transferScenario() *transaction.Transfer {
	return &transaction.Transfer{
		Common:    stamp(transaction.KindTransfer, 0x98000001),
		Recipient: recipient,
		Amount:    1_000_000,
	}
}

func TestEncodeTransferScenario(t *testing.T) {
	data, err := Encode(transferScenario())
	require.NoError(t, err)

	want := "0101000001000098e803000020000000" +
		"fd805215bf86be66843057c8f59328b80109135cb9d043c494c9b316d5c411e9" +
		"50c300000000000024040000" +
		"28000000" + hex.EncodeToString([]byte(recipient)) +
		"40420f0000000000" +
		"00000000"
	assert.Equal(t, want, hex.EncodeToString(data))
	assert.Equal(t, "717ab11cc58e6f65af9a3e167f6706531fa9335c13b05719e17f220fab270899", transaction.Hash(data))
}

func TestEncodeTransferMessage(t *testing.T) {
	tx := transferScenario()
	tx.Message = transaction.PlainMessage("hi")

	data, err := Encode(tx)
	require.NoError(t, err)

	tail := data[HeaderSize+4+40+8:]
	assert.Equal(t, "0a000000"+"01000000"+"02000000"+"6869", hex.EncodeToString(tail))

	tx.Message = &transaction.Message{Type: transaction.MessagePlain}
	data, err = Encode(tx)
	require.NoError(t, err)
	assert.Equal(t, "00000000", hex.EncodeToString(data[HeaderSize+4+40+8:]))
}

func TestEncodeMosaicTransfer(t *testing.T) {
	tx := transferScenario()
	tx.Version = 0x98000002
	tx.Mosaics = []transaction.Mosaic{
		{ID: transaction.MosaicID{Namespace: "nem", Name: "xem"}, Quantity: 5},
	}

	data, err := Encode(tx)
	require.NoError(t, err)

	tail := data[HeaderSize+4+40+8+4:]
	want := "01000000" + // count
		"1a000000" + // 4 + idLen(14) + 8
		"0e000000" + "03000000" + "6e656d" + "03000000" + "78656d" +
		"0500000000000000"
	assert.Equal(t, want, hex.EncodeToString(tail))
}

func TestEncodeMosaicTransferWithoutMosaics(t *testing.T) {
	tx := transferScenario()
	tx.Version = 0x98000002
	tx.Mosaics = []transaction.Mosaic{}

	data, err := Encode(tx)
	require.NoError(t, err)
	assert.Equal(t, "00000000", hex.EncodeToString(data[len(data)-4:]))
}

func TestEncodeMultisigNesting(t *testing.T) {
	inner := transferScenario()
	inner.Signer = otherKey
	innerBytes, err := Encode(inner)
	require.NoError(t, err)

	wrapper := &transaction.Multisig{Common: stamp(transaction.KindMultisig, 0x98000001), Inner: inner}
	data, err := Encode(wrapper)
	require.NoError(t, err)

	assert.Equal(t, uint32(len(innerBytes)), binary.LittleEndian.Uint32(data[HeaderSize:]))
	assert.Equal(t, innerBytes, data[HeaderSize+4:])
	assert.Equal(t, "04100000", hex.EncodeToString(data[:4]))
}

func TestEncodeImportanceTransfer(t *testing.T) {
	tx := &transaction.ImportanceTransfer{
		Common:        stamp(transaction.KindImportanceTransfer, 0x98000001),
		Mode:          transaction.ImportanceActivate,
		RemoteAccount: otherKey,
	}
	data, err := Encode(tx)
	require.NoError(t, err)
	assert.Equal(t, "01000000"+"20000000"+otherKey, hex.EncodeToString(data[HeaderSize:]))
}

func TestEncodeAggregateModification(t *testing.T) {
	tx := &transaction.AggregateModification{
		Common: stamp(transaction.KindAggregateModification, 0x98000002),
		Modifications: []transaction.Modification{
			{Type: transaction.AddCosignatory, Cosignatory: otherKey},
		},
		MinCosignatories: transaction.RelativeChange{RelativeChange: -1},
	}
	data, err := Encode(tx)
	require.NoError(t, err)
	want := "01000000" +
		"28000000" + "01000000" + "20000000" + otherKey +
		"04000000" + "ffffffff"
	assert.Equal(t, want, hex.EncodeToString(data[HeaderSize:]))
}

func TestEncodeMultisigSignature(t *testing.T) {
	tx := &transaction.MultisigSignature{
		Common:       stamp(transaction.KindMultisigSignature, 0x98000001),
		OtherHash:    otherKey,
		OtherAccount: recipient,
	}
	data, err := Encode(tx)
	require.NoError(t, err)
	want := "24000000" + "20000000" + otherKey + "28000000" + hex.EncodeToString([]byte(recipient))
	assert.Equal(t, want, hex.EncodeToString(data[HeaderSize:]))
}

func TestEncodeProvisionNamespace(t *testing.T) {
	tx := &transaction.ProvisionNamespace{
		Common:        stamp(transaction.KindProvisionNamespace, 0x98000001),
		RentalFeeSink: sink,
		RentalFee:     100_000_000,
		NewPart:       "abc",
	}
	data, err := Encode(tx)
	require.NoError(t, err)
	prefix := "28000000" + hex.EncodeToString([]byte(sink)) + "00e1f50500000000" + "03000000" + "616263"
	assert.Equal(t, prefix+"ffffffff", hex.EncodeToString(data[HeaderSize:]))

	parent := "xy"
	tx.Parent = &parent
	data, err = Encode(tx)
	require.NoError(t, err)
	assert.Equal(t, prefix+"02000000"+"7879", hex.EncodeToString(data[HeaderSize:]))
}

func TestEncodeMosaicDefinitionCreation(t *testing.T) {
	tx := &transaction.MosaicDefinitionCreation{
		Common: stamp(transaction.KindMosaicDefinitionCreation, 0x98000001),
		Definition: transaction.MosaicDefinition{
			Creator:     signerKey,
			ID:          transaction.MosaicID{Namespace: "a", Name: "b"},
			Description: "d",
			Properties:  []transaction.Property{{Name: "n", Value: "v"}},
		},
		CreationFeeSink: sink,
		CreationFee:     10_000_000,
	}
	data, err := Encode(tx)
	require.NoError(t, err)

	definition := "20000000" + signerKey +
		"0a000000" + "01000000" + "61" + "01000000" + "62" +
		"01000000" + "64" +
		"01000000" + "0a000000" + "01000000" + "6e" + "01000000" + "76" +
		"00000000"
	defLen := make([]byte, 4)
	binary.LittleEndian.PutUint32(defLen, uint32(len(definition)/2))
	want := hex.EncodeToString(defLen) + definition +
		"28000000" + hex.EncodeToString([]byte(sink)) + "8096980000000000"
	assert.Equal(t, want, hex.EncodeToString(data[HeaderSize:]))
}

func TestEncodeMosaicDefinitionLevy(t *testing.T) {
	tx := &transaction.MosaicDefinitionCreation{
		Common: stamp(transaction.KindMosaicDefinitionCreation, 0x98000001),
		Definition: transaction.MosaicDefinition{
			Creator: signerKey,
			ID:      transaction.MosaicID{Namespace: "a", Name: "b"},
			Levy: &transaction.Levy{
				Type:      transaction.LevyAbsolute,
				Recipient: recipient,
				MosaicID:  transaction.MosaicID{Namespace: "nem", Name: "xem"},
				Fee:       7,
			},
		},
		CreationFeeSink: sink,
	}
	data, err := Encode(tx)
	require.NoError(t, err)

	levy := "01000000" + "28000000" + hex.EncodeToString([]byte(recipient)) +
		"0e000000" + "03000000" + "6e656d" + "03000000" + "78656d" +
		"0700000000000000"
	encoded := hex.EncodeToString(data)
	assert.Contains(t, encoded, "4a000000"+levy)
}

func TestEncodeMosaicSupplyChange(t *testing.T) {
	tx := &transaction.MosaicSupplyChange{
		Common:     stamp(transaction.KindMosaicSupplyChange, 0x98000001),
		MosaicID:   transaction.MosaicID{Namespace: "a", Name: "b"},
		SupplyType: transaction.SupplyDecrease,
		Delta:      3,
	}
	data, err := Encode(tx)
	require.NoError(t, err)
	want := "0a000000" + "01000000" + "61" + "01000000" + "62" + "02000000" + "0300000000000000"
	assert.Equal(t, want, hex.EncodeToString(data[HeaderSize:]))
}

func TestEncodeInvariantViolations(t *testing.T) {
	badSigner := transferScenario()
	badSigner.Signer = "abcd"

	noRecipient := transferScenario()
	noRecipient.Recipient = ""

	wrongType := transferScenario()
	wrongType.Type = transaction.TypeMultisig

	mosaicsOnV1 := transferScenario()
	mosaicsOnV1.Mosaics = []transaction.Mosaic{}

	var nilTransfer *transaction.Transfer

	tests := []struct {
		name string
		tx   transaction.Transaction
	}{
		{"nil", nil},
		{"typed nil", nilTransfer},
		{"short signer", badSigner},
		{"empty recipient", noRecipient},
		{"type mismatch", wrongType},
		{"mosaics on version 1", mosaicsOnV1},
		{"multisig without inner", &transaction.Multisig{Common: stamp(transaction.KindMultisig, 0x98000001)}},
		{"nested multisig", &transaction.Multisig{
			Common: stamp(transaction.KindMultisig, 0x98000001),
			Inner: &transaction.Multisig{
				Common: stamp(transaction.KindMultisig, 0x98000001),
				Inner:  transferScenario(),
			},
		}},
		{"short hash", &transaction.MultisigSignature{
			Common:       stamp(transaction.KindMultisigSignature, 0x98000001),
			OtherHash:    "00",
			OtherAccount: recipient,
		}},
		{"empty namespace", &transaction.ProvisionNamespace{
			Common:        stamp(transaction.KindProvisionNamespace, 0x98000001),
			RentalFeeSink: sink,
		}},
		{"empty mosaic id", &transaction.MosaicSupplyChange{
			Common: stamp(transaction.KindMosaicSupplyChange, 0x98000001),
		}},
		{"unnamed mosaic property", &transaction.MosaicDefinitionCreation{
			Common: stamp(transaction.KindMosaicDefinitionCreation, 0x98000001),
			Definition: transaction.MosaicDefinition{
				Creator:    signerKey,
				ID:         transaction.MosaicID{Namespace: "a", Name: "b"},
				Properties: []transaction.Property{{Name: "n", Value: "v"}, {Value: "orphan"}},
			},
			CreationFeeSink: sink,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.tx)
			assert.ErrorIs(t, err, ErrEncodingInvariant)
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(0, 64)

	for i := 0; i < 200; i++ {
		tx := transferScenario()
		f.Fuzz(&tx.TimeStamp)
		f.Fuzz(&tx.Deadline)
		f.Fuzz(&tx.Fee)
		f.Fuzz(&tx.Amount)
		var payload []byte
		f.Fuzz(&payload)
		tx.Message = &transaction.Message{Type: transaction.MessagePlain, Payload: payload}

		first, err := Encode(tx)
		require.NoError(t, err)
		second, err := Encode(tx)
		require.NoError(t, err)
		assert.Equal(t, first, second)

		wrapper := &transaction.Multisig{Common: stamp(transaction.KindMultisig, 0x98000001), Inner: tx}
		wrapped, err := Encode(wrapper)
		require.NoError(t, err)
		assert.Equal(t, first, wrapped[HeaderSize+4:])
	}
}
