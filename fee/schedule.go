package fee

// MicroPerXem is the number of micro-units in one XEM
const MicroPerXem = 1_000_000

// RentalTier prices root namespaces whose name is at most MaxLength bytes long
type RentalTier struct {
	MaxLength int
	Fee       uint64
}

// Schedule holds every constant of a fee schedule. All values are micro-units
// unless the field name says otherwise.
type Schedule struct {
	FeeUnit             uint64 `ini:"fee_unit"`
	TransferStepXem     uint64 `ini:"transfer_step_xem"`
	MaxTransferUnits    uint64 `ini:"max_transfer_units"`
	MessageChunkBytes   uint64 `ini:"message_chunk_bytes"`
	SmallBusinessSupply uint64 `ini:"small_business_supply"`
	MaxXemSupply        uint64 `ini:"max_xem_supply"`

	MultisigAggregateModification uint64 `ini:"multisig_aggregate_modification"`
	MultisigWrapper               uint64 `ini:"multisig_wrapper"`
	Cosigning                     uint64 `ini:"cosigning"`
	ImportanceTransfer            uint64 `ini:"importance_transfer"`
	NamespaceProvision            uint64 `ini:"namespace_provision"`
	MosaicCreation                uint64 `ini:"mosaic_creation"`
	MosaicSupplyChange            uint64 `ini:"mosaic_supply_change"`

	RootNamespaceRental uint64 `ini:"root_namespace_rental"`
	SubNamespaceRental  uint64 `ini:"sub_namespace_rental"`
	MosaicRental        uint64 `ini:"mosaic_rental"`

	// RootRentalTiers is checked in order before RootNamespaceRental applies.
	RootRentalTiers []RentalTier `ini:"-"`
}

// DefaultSchedule returns the NIS1 fee schedule in force since the fee fork
func DefaultSchedule() Schedule {
	return Schedule{
		FeeUnit:             50_000,
		TransferStepXem:     10_000,
		MaxTransferUnits:    25,
		MessageChunkBytes:   32,
		SmallBusinessSupply: 10_000,
		MaxXemSupply:        8_999_999_999,

		MultisigAggregateModification: 500_000,
		MultisigWrapper:               150_000,
		Cosigning:                     150_000,
		ImportanceTransfer:            150_000,
		NamespaceProvision:            150_000,
		MosaicCreation:                150_000,
		MosaicSupplyChange:            150_000,

		RootNamespaceRental: 100 * MicroPerXem,
		SubNamespaceRental:  10 * MicroPerXem,
		MosaicRental:        10 * MicroPerXem,
	}
}
