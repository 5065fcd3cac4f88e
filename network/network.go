package network

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

var ErrUnknownNetwork = errors.New("network: unknown network")

// Network identifies a NIS1 network and the sink accounts that collect rental fees.
type Network struct {
	Name            string
	ID              byte
	RentalFeeSink   string
	CreationFeeSink string
}

var (
	Mainnet = Network{
		Name:            "mainnet",
		ID:              0x68,
		RentalFeeSink:   "NAMESPACEWH4MKFMBCVFERDPOOP4FK7MTBXDPZZA",
		CreationFeeSink: "NBMOSAICOD4F54EE5CDMR23CCBGOAM2XSIUX6TRS",
	}
	Testnet = Network{
		Name:            "testnet",
		ID:              0x98,
		RentalFeeSink:   "TAMESPACEWH4MKFMBCVFERDPOOP4FK7MTDJEYP35",
		CreationFeeSink: "TBMOSAICOD4F54EE5CDMR23CCBGOAM2XSJBR5OLC",
	}
	Mijin = Network{
		Name:            "mijin",
		ID:              0x60,
		RentalFeeSink:   "MAMESPACEWH4MKFMBCVFERDPOOP4FK7MTCZTG5E7",
		CreationFeeSink: "MBMOSAICOD4F54EE5CDMR23CCBGOAM2XSKYHTOJD",
	}
)

var known = []Network{Mainnet, Testnet, Mijin}

// ByName resolves a network by its case-insensitive name
func ByName(name string) (Network, error) {
	for _, n := range known {
		if strings.EqualFold(n.Name, name) {
			return n, nil
		}
	}
	return Network{}, errors.Wrapf(ErrUnknownNetwork, "%q", name)
}

// ByID resolves a network by its version byte
func ByID(id byte) (Network, error) {
	for _, n := range known {
		if n.ID == id {
			return n, nil
		}
	}
	return Network{}, errors.Wrapf(ErrUnknownNetwork, "id 0x%02x", id)
}

func (n Network) String() string {
	return n.Name
}

// Epoch is the NEM nemesis block time. Transaction timestamps count seconds from it.
var Epoch = time.Date(2015, time.March, 29, 0, 6, 25, 0, time.UTC)

// TimeStamp converts a wall clock time to seconds since Epoch
func TimeStamp(t time.Time) int32 {
	return int32(t.Sub(Epoch) / time.Second)
}

// ToTime converts a network timestamp back to wall clock time
func ToTime(ts int32) time.Time {
	return Epoch.Add(time.Duration(ts) * time.Second)
}
