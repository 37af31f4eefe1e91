package fcap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanikai/fcap/internal/middleware"
	"github.com/lanikai/fcap/internal/packet"
	"github.com/lanikai/fcap/internal/transport"
)

// memTransport is an in-memory, loopback-free fake satisfying
// transport.Transport: SendBytes appends to out, RecvBytes drains a
// queue fed by the test via deliver.
type memTransport struct {
	out     [][]byte
	queue   [][]byte
	sendErr error
}

func (m *memTransport) SendBytes(buf []byte) (int, error) {
	if m.sendErr != nil {
		return 0, m.sendErr
	}
	cp := make([]byte, len(buf))
	copy(cp, buf)
	m.out = append(m.out, cp)
	return len(buf), nil
}

func (m *memTransport) RecvBytes(buf []byte) (int, error) {
	if len(m.queue) == 0 {
		return 0, nil
	}
	next := m.queue[0]
	m.queue = m.queue[1:]
	return copy(buf, next), nil
}

func (m *memTransport) deliver(pkt *packet.Packet) {
	buf := make([]byte, packet.MTU)
	n, err := pkt.Encode(buf)
	if err != nil {
		panic(err)
	}
	m.queue = append(m.queue, buf[:n])
}

func TestSendRequestSendsAndResetsOutPkt(t *testing.T) {
	app := &Application{}
	app.InitInstance()
	require.NoError(t, app.AddKey(packet.KeyA, packet.U8, []byte{7}))

	tr := &memTransport{}
	require.NoError(t, app.SendRequest(tr))

	require.Len(t, tr.out, 1)

	var sent packet.Packet
	require.NoError(t, sent.Decode(tr.out[0]))
	v, err := sent.GetU8(packet.KeyA)
	require.NoError(t, err)
	assert.EqualValues(t, 7, v)

	// out_pkt must be reset: a fresh packet has no keys.
	assert.Equal(t, 0, app.outPkt.NumKeys())
}

func TestSendRequestAbortedByMiddleware(t *testing.T) {
	app := &Application{
		Middleware: middleware.Chain{abortingMiddleware{}},
	}
	app.InitInstance()

	tr := &memTransport{}
	err := app.SendRequest(tr)
	assert.ErrorIs(t, err, ErrAborted)
	assert.Empty(t, tr.out)
}

type abortingMiddleware struct{ middleware.Base }

func (abortingMiddleware) OnRequest(ev *middleware.Event, res *packet.Packet) middleware.Code {
	return middleware.Abort
}

func TestPollInvokesRequestHandlerAndSendsRespond(t *testing.T) {
	var gotMessageID uint8
	app := &Application{
		OnRequest: func(app *Application, ev *middleware.Event, res *packet.Packet) middleware.Code {
			gotMessageID = ev.Pkt.MessageID()
			require.NoError(t, res.AddU8(packet.KeyB, 99))
			return middleware.Respond
		},
	}
	app.InitInstance()

	tr := &memTransport{}
	var req packet.Packet
	req.Init()
	req.SetMessageID(42)
	require.NoError(t, req.AddU8(packet.KeyA, 1))
	tr.deliver(&req)
	app.Transports = []transport.Transport{tr}

	require.NoError(t, app.Poll())
	assert.EqualValues(t, 42, gotMessageID)

	require.Len(t, tr.out, 1)
	var resp packet.Packet
	require.NoError(t, resp.Decode(tr.out[0]))
	assert.Equal(t, packet.Response, resp.Type())
	assert.EqualValues(t, 42, resp.MessageID())

	v, err := resp.GetU8(packet.KeyB)
	require.NoError(t, err)
	assert.EqualValues(t, 99, v)
}

func TestPollNoDataIsNoop(t *testing.T) {
	app := &Application{}
	app.InitInstance()
	tr := &memTransport{}
	app.Transports = []transport.Transport{tr}

	require.NoError(t, app.Poll())
	assert.Empty(t, tr.out)
}

func TestPollAbortedByResponseHandler(t *testing.T) {
	var ran bool
	app := &Application{
		OnResponse: func(app *Application, ev *middleware.Event) middleware.Code {
			ran = true
			return middleware.Abort
		},
	}
	app.InitInstance()

	tr := &memTransport{}
	var resp packet.Packet
	resp.Init()
	resp.SetType(packet.Response)
	resp.SetMessageID(7)
	tr.deliver(&resp)
	app.Transports = []transport.Transport{tr}

	err := app.Poll()
	assert.ErrorIs(t, err, ErrAborted)
	assert.True(t, ran, "response handler must have run before aborting")
}

func TestBroadcastRequestSendsOnEveryTransport(t *testing.T) {
	var ranCount int
	app := &Application{
		Middleware: middleware.Chain{countingMiddleware{count: &ranCount}},
	}
	app.InitInstance()
	require.NoError(t, app.AddKey(packet.KeyA, packet.U8, []byte{9}))

	a := &memTransport{}
	b := &memTransport{}
	c := &memTransport{}
	app.Transports = []transport.Transport{a, b, c}

	require.NoError(t, app.BroadcastRequest())

	// The middleware chain runs exactly once for the whole broadcast, not
	// once per transport.
	assert.Equal(t, 1, ranCount)

	for _, tr := range []*memTransport{a, b, c} {
		require.Len(t, tr.out, 1)
		var sent packet.Packet
		require.NoError(t, sent.Decode(tr.out[0]))
		v, err := sent.GetU8(packet.KeyA)
		require.NoError(t, err)
		assert.EqualValues(t, 9, v)
	}

	// out_pkt must be reset, same "use it or lose it" contract as SendRequest.
	assert.Equal(t, 0, app.outPkt.NumKeys())
}

type countingMiddleware struct {
	middleware.Base
	count *int
}

func (c countingMiddleware) OnRequest(ev *middleware.Event, res *packet.Packet) middleware.Code {
	*c.count++
	return middleware.Continue
}

func TestBroadcastRequestShortCircuitsOnTransportFailure(t *testing.T) {
	app := &Application{}
	app.InitInstance()
	require.NoError(t, app.AddKey(packet.KeyA, packet.U8, []byte{9}))

	ok := &memTransport{}
	failing := &memTransport{sendErr: errors.New("boom")}
	neverReached := &memTransport{}
	app.Transports = []transport.Transport{ok, failing, neverReached}

	err := app.BroadcastRequest()
	assert.Error(t, err)

	assert.Len(t, ok.out, 1, "transports before the failing one must still receive the packet")
	assert.Empty(t, neverReached.out, "transports after the failing one must be skipped")
}

func TestBroadcastRequestAbortedByMiddleware(t *testing.T) {
	app := &Application{
		Middleware: middleware.Chain{abortingMiddleware{}},
	}
	app.InitInstance()

	tr := &memTransport{}
	app.Transports = []transport.Transport{tr}

	err := app.BroadcastRequest()
	assert.ErrorIs(t, err, ErrAborted)
	assert.Empty(t, tr.out)
}
