package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelClusterSendRecv(t *testing.T) {
	transports := NewChannelCluster(3)
	require.Len(t, transports, 3)
	assert.Equal(t, 0, transports[0].Rank())
	assert.Equal(t, 3, transports[0].Size())

	require.NoError(t, transports[0].Send(2, []byte("down")))
	payload, err := transports[2].Recv(0)
	require.NoError(t, err)
	assert.Equal(t, []byte("down"), payload)

	require.NoError(t, transports[2].Send(0, []byte("up")))
	payload, err = transports[0].Recv(2)
	require.NoError(t, err)
	assert.Equal(t, []byte("up"), payload)
}

func TestChannelClusterPayloadIsCopied(t *testing.T) {
	transports := NewChannelCluster(2)
	payload := []byte("stable")
	require.NoError(t, transports[0].Send(1, payload))
	payload[0] = 'X'

	received, err := transports[1].Recv(0)
	require.NoError(t, err)
	assert.Equal(t, []byte("stable"), received)
}

func TestChannelClusterBroadcast(t *testing.T) {
	transports := NewChannelCluster(4)
	payload := []byte("problem data")
	require.NoError(t, transports[0].Broadcast(payload))

	for rank := 1; rank < 4; rank++ {
		received, err := transports[rank].RecvBroadcast()
		require.NoError(t, err)
		assert.Equal(t, payload, received)
	}
}

func TestChannelClusterRankChecks(t *testing.T) {
	transports := NewChannelCluster(2)

	assert.Error(t, transports[0].Send(0, nil))
	assert.Error(t, transports[0].Send(5, nil))
	_, err := transports[1].Recv(1)
	assert.Error(t, err)
	assert.Error(t, transports[1].Broadcast(nil))
	_, err = transports[0].RecvBroadcast()
	assert.Error(t, err)
}

func TestLengthFrameRoundTrip(t *testing.T) {
	n, err := parseLengthFrame(lengthFrame(123456))
	require.NoError(t, err)
	assert.Equal(t, 123456, n)

	_, err = parseLengthFrame([]byte{1, 2, 3})
	assert.Error(t, err)
}
