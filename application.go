// Package fcap implements the Field Capture Protocol: a fixed-MTU,
// middleware-driven request/response exchange for constrained devices. It
// composes the lower-level internal/packet codec, internal/transport
// datagram abstraction, and internal/middleware handler chain into the
// Application object and poll/dispatch loop described by the protocol.
package fcap

import (
	"github.com/lanikai/fcap/internal/middleware"
	"github.com/lanikai/fcap/internal/packet"
	"github.com/lanikai/fcap/internal/transport"
)

// RequestHandler is invoked when a fully-processed inbound request reaches
// the user, i.e. the request middleware chain returned Continue. It may
// fill res and return Respond to have the dispatcher send it back, or
// return Continue/Abort.
type RequestHandler func(app *Application, ev *middleware.Event, res *packet.Packet) middleware.Code

// ResponseHandler is invoked when a fully-processed inbound response reaches
// the user. There is no correlation table: matching message_id back to an
// outstanding request is the handler's responsibility. Abort surfaces as an
// error from Poll; Respond is meaningless for a response and is treated as
// Continue.
type ResponseHandler func(app *Application, ev *middleware.Event) middleware.Code

// Application aggregates the pieces a running FCAP endpoint needs: its
// transports, its middleware chain, and the two packet buffers shared
// across a dispatch tick. It is the Go analogue of the reference
// implementation's statically-declared FApp struct; here the arrays are
// simply slices populated at construction time instead of compile-time
// fixed-size C arrays, since Go has no equivalent static-allocation
// requirement worth fighting the language for.
type Application struct {
	Transports []transport.Transport
	Middleware middleware.Chain

	// OnRequest and OnResponse are the user callbacks invoked once a
	// packet has cleared its middleware chain. Either may be left nil; a
	// nil RequestHandler is treated as Continue (no response), and a nil
	// ResponseHandler is simply skipped.
	OnRequest  RequestHandler
	OnResponse ResponseHandler

	outPkt packet.Packet
	inPkt  packet.Packet
}

// InitInstance resets both packet buffers to a known-clean state. Call it
// once before first use; the dispatch loop re-initializes inPkt and outPkt
// itself at the appropriate points thereafter.
func (app *Application) InitInstance() {
	app.outPkt.Init()
	app.inPkt.Init()
}

// AddKey appends a KTV entry to the outbound packet under construction. It
// is a thin convenience delegating to the codec, mirroring
// fcap_app_add_key_* from the reference implementation.
func (app *Application) AddKey(key packet.Key, typ packet.Type, value []byte) error {
	return app.outPkt.AddKey(key, typ, value)
}

// GetKey reads a KTV entry back out of the outbound packet under
// construction (useful when a middleware wants to inspect what's already
// been queued).
func (app *Application) GetKey(key packet.Key, out []byte) (packet.Type, error) {
	return app.outPkt.GetKey(key, out)
}

// OutPacket returns the outbound packet under construction, for callers
// that want the typed Add*/Get* helpers directly.
func (app *Application) OutPacket() *packet.Packet {
	return &app.outPkt
}
