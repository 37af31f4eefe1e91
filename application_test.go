package fcap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanikai/fcap/internal/packet"
)

func TestApplicationAddGetKeyDelegatesToOutPkt(t *testing.T) {
	app := &Application{}
	app.InitInstance()

	require.NoError(t, app.AddKey(packet.KeyA, packet.U8, []byte{5}))

	out := make([]byte, 1)
	typ, err := app.GetKey(packet.KeyA, out)
	require.NoError(t, err)
	assert.Equal(t, packet.U8, typ)
	assert.EqualValues(t, 5, out[0])
}

func TestInitInstanceClearsBothBuffers(t *testing.T) {
	app := &Application{}
	app.InitInstance()
	require.NoError(t, app.AddKey(packet.KeyA, packet.U8, []byte{1}))

	app.InitInstance()
	assert.Equal(t, 0, app.outPkt.NumKeys())
	assert.Equal(t, 0, app.inPkt.NumKeys())
}
