package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPortA = 18534
	testPortB = 18535
)

func TestUDPLoopbackRoundTrip(t *testing.T) {
	a, err := NewUDPTransport(testPortA, "127.0.0.1", testPortB)
	require.NoError(t, err)
	defer a.Close()

	b, err := NewUDPTransport(testPortB, "127.0.0.1", testPortA)
	require.NoError(t, err)
	defer b.Close()

	n, err := a.SendBytes([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	var buf [64]byte
	var got int
	for i := 0; i < 50; i++ {
		got, err = b.RecvBytes(buf[:])
		require.NoError(t, err)
		if got > 0 {
			break
		}
		time.Sleep(2 * time.Millisecond)
	}
	require.Equal(t, 5, got)
	assert.Equal(t, "hello", string(buf[:got]))
}

func TestUDPRecvBytesNoDataReturnsZero(t *testing.T) {
	tr, err := NewUDPTransport(testPortA+2, "127.0.0.1", testPortA+3)
	require.NoError(t, err)
	defer tr.Close()

	var buf [16]byte
	n, err := tr.RecvBytes(buf[:])
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
