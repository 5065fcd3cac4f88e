package network

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	n, err := ByName("TestNet")
	require.NoError(t, err)
	assert.Equal(t, Testnet, n)

	n, err = ByName("mainnet")
	require.NoError(t, err)
	assert.Equal(t, byte(0x68), n.ID)

	_, err = ByName("devnet")
	assert.Equal(t, ErrUnknownNetwork, errors.Cause(err))
	assert.Contains(t, err.Error(), `"devnet"`)
}

func TestByID(t *testing.T) {
	n, err := ByID(0x60)
	require.NoError(t, err)
	assert.Equal(t, "mijin", n.Name)

	_, err = ByID(0x01)
	assert.ErrorIs(t, err, ErrUnknownNetwork)
}

func TestTimeStamp(t *testing.T) {
	assert.Equal(t, int32(0), TimeStamp(Epoch))
	assert.Equal(t, int32(1000), TimeStamp(Epoch.Add(1000*time.Second+500*time.Millisecond)))
	assert.Equal(t, Epoch.Add(60*time.Second), ToTime(60))
}

func TestSinksMatchNetworkPrefix(t *testing.T) {
	for _, n := range []Network{Mainnet, Testnet, Mijin} {
		assert.Len(t, n.RentalFeeSink, 40, n.Name)
		assert.Len(t, n.CreationFeeSink, 40, n.Name)
		assert.Equal(t, n.RentalFeeSink[0], n.CreationFeeSink[0], n.Name)
	}
}
