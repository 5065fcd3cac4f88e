package fee

import (
	"github.com/holiman/uint256"
	"github.com/mezonai/nemclient/transaction"
)

// Calculator computes transaction fees in micro-units
type Calculator interface {
	TransferFee(amount uint64, message []byte) uint64
	MosaicTransferFee(mosaics []transaction.Mosaic, multiplier uint64, message []byte) uint64
	MultisigAccountCreationFee() uint64
	MultisigTransactionFee() uint64
	CosigningFee() uint64
	ImportanceTransferFee() uint64
	NamespaceProvisionFee() uint64
	MosaicCreationFee() uint64
	MosaicRentalFee() uint64
	MosaicSupplyChangeFee() uint64
	RentalFee(parent, namespace string) uint64
}

// maxMosaicQuantity bounds supply * 10^divisibility for any mosaic
const maxMosaicQuantity = 9_000_000_000_000_000

// supplyThresholds[k-1] is the smallest integer r with 0.8*ln(r) >= k, i.e. ceil(e^(1.25k)).
var supplyThresholds = [...]uint64{
	4, 13, 43, 149, 519, 1809, 6311, 22027, 76880, 268338,
	936590, 3269018, 11409992, 39824785, 139002156, 485165196,
	1693392924, 5910522064, 20629749058, 72004899338, 251321793305,
	877199251319, 3061726229132, 10686474581525, 37299461295719,
	130187912050633, 454400461972589, 1586013452313431, 5535730883721925,
}

// ScheduleCalculator implements Calculator on top of a Schedule
type ScheduleCalculator struct {
	s Schedule
}

// NewCalculator creates a calculator for the given schedule
func NewCalculator(s Schedule) *ScheduleCalculator {
	return &ScheduleCalculator{s: s}
}

// Default creates a calculator for DefaultSchedule
func Default() *ScheduleCalculator {
	return NewCalculator(DefaultSchedule())
}

// Schedule returns a copy of the schedule in use
func (c *ScheduleCalculator) Schedule() Schedule {
	return c.s
}

func (c *ScheduleCalculator) TransferFee(amount uint64, message []byte) uint64 {
	units := amount / MicroPerXem / c.step()
	return c.s.FeeUnit*c.clampUnits(units) + c.messageFee(message)
}

func (c *ScheduleCalculator) MosaicTransferFee(mosaics []transaction.Mosaic, multiplier uint64, message []byte) uint64 {
	var total uint64
	for _, m := range mosaics {
		total += c.s.FeeUnit * c.mosaicUnits(m, multiplier)
	}
	return total + c.messageFee(message)
}

func (c *ScheduleCalculator) MultisigAccountCreationFee() uint64 {
	return c.s.MultisigAggregateModification
}

func (c *ScheduleCalculator) MultisigTransactionFee() uint64 {
	return c.s.MultisigWrapper
}

func (c *ScheduleCalculator) CosigningFee() uint64 {
	return c.s.Cosigning
}

func (c *ScheduleCalculator) ImportanceTransferFee() uint64 {
	return c.s.ImportanceTransfer
}

func (c *ScheduleCalculator) NamespaceProvisionFee() uint64 {
	return c.s.NamespaceProvision
}

func (c *ScheduleCalculator) MosaicCreationFee() uint64 {
	return c.s.MosaicCreation
}

func (c *ScheduleCalculator) MosaicRentalFee() uint64 {
	return c.s.MosaicRental
}

func (c *ScheduleCalculator) MosaicSupplyChangeFee() uint64 {
	return c.s.MosaicSupplyChange
}

// RentalFee prices a namespace. An empty parent means a root namespace.
func (c *ScheduleCalculator) RentalFee(parent, namespace string) uint64 {
	if parent != "" {
		return c.s.SubNamespaceRental
	}
	for _, tier := range c.s.RootRentalTiers {
		if len(namespace) <= tier.MaxLength {
			return tier.Fee
		}
	}
	return c.s.RootNamespaceRental
}

func (c *ScheduleCalculator) messageFee(message []byte) uint64 {
	if len(message) == 0 {
		return 0
	}
	chunk := c.s.MessageChunkBytes
	if chunk == 0 {
		chunk = 32
	}
	return c.s.FeeUnit * (uint64(len(message))/chunk + 1)
}

func (c *ScheduleCalculator) step() uint64 {
	if c.s.TransferStepXem == 0 {
		return 1
	}
	return c.s.TransferStepXem
}

func (c *ScheduleCalculator) clampUnits(units uint64) uint64 {
	if units < 1 {
		return 1
	}
	if c.s.MaxTransferUnits > 0 && units > c.s.MaxTransferUnits {
		return c.s.MaxTransferUnits
	}
	return units
}

// mosaicUnits returns the fee units for one attached mosaic. The xem equivalent
// is computed in 256 bits since supply and quantities reach 9e15.
func (c *ScheduleCalculator) mosaicUnits(m transaction.Mosaic, multiplier uint64) uint64 {
	if m.Divisibility == 0 && m.Supply <= c.s.SmallBusinessSupply {
		return 1
	}
	if m.Supply == 0 {
		return 1
	}

	totalQuantity := new(uint256.Int).Mul(
		uint256.NewInt(m.Supply),
		new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(m.Divisibility))),
	)

	numerator := new(uint256.Int).Mul(uint256.NewInt(c.s.MaxXemSupply), uint256.NewInt(m.Quantity))
	numerator.Mul(numerator, uint256.NewInt(multiplier))

	xemEquivalent := new(uint256.Int).Div(numerator, totalQuantity)

	var units uint64
	steps := new(uint256.Int).Div(xemEquivalent, uint256.NewInt(c.step()))
	if steps.IsUint64() {
		units = c.clampUnits(steps.Uint64())
	} else {
		units = c.clampUnits(^uint64(0))
	}

	var adjustment uint64
	if totalQuantity.IsUint64() && totalQuantity.Uint64() <= maxMosaicQuantity {
		adjustment = supplyAdjustment(maxMosaicQuantity / totalQuantity.Uint64())
	}
	if units <= adjustment {
		return 1
	}
	return units - adjustment
}

// supplyAdjustment returns floor(0.8 * ln(ratio)) for ratio >= 1, and 0 otherwise
func supplyAdjustment(ratio uint64) uint64 {
	var k uint64
	for _, threshold := range supplyThresholds {
		if ratio < threshold {
			break
		}
		k++
	}
	return k
}
