package fcap

import (
	"github.com/pkg/errors"

	"github.com/lanikai/fcap/internal/logging"
	"github.com/lanikai/fcap/internal/middleware"
	"github.com/lanikai/fcap/internal/packet"
	"github.com/lanikai/fcap/internal/transport"
)

var log = logging.DefaultLogger.WithTag("fcap")

// SendRequest runs the outbound request path against a single transport:
// the request middleware chain (forward), then the wire send, then an
// unconditional reset of the outbound buffer. Per the "use it or lose it"
// contract, the caller must rebuild out_pkt (via AddKey) before the next
// call.
func (app *Application) SendRequest(t transport.Transport) error {
	ev := &middleware.Event{Transport: t, Pkt: &app.outPkt, Outbound: true}

	code := app.Middleware.DispatchRequest(ev, nil)
	defer app.outPkt.Init()

	switch code {
	case middleware.Abort:
		return ErrAborted
	case middleware.Respond:
		// A middleware fully handled the request locally; nothing goes
		// out over the wire.
		return nil
	}

	buf := make([]byte, packet.MTU)
	n, err := app.outPkt.Encode(buf)
	if err != nil {
		return errors.Wrap(err, "fcap: encode outbound request")
	}
	if _, err := t.SendBytes(buf[:n]); err != nil {
		return errors.Wrap(err, "fcap: send outbound request")
	}
	return nil
}

// BroadcastRequest runs the request middleware chain once, then sends the
// resulting packet to every registered transport. It supplements
// SendRequest with the reference implementation's earlier fan-out
// behavior (fcap_send_all); it is not part of §4.5's canonical
// single-transport path, but serves the same "send this request everywhere"
// use case a fleet of identical peripherals would want.
func (app *Application) BroadcastRequest() error {
	ev := &middleware.Event{Pkt: &app.outPkt, Outbound: true}

	code := app.Middleware.DispatchRequest(ev, nil)
	defer app.outPkt.Init()

	if code == middleware.Abort {
		return ErrAborted
	}
	if code == middleware.Respond {
		return nil
	}

	buf := make([]byte, packet.MTU)
	n, err := app.outPkt.Encode(buf)
	if err != nil {
		return errors.Wrap(err, "fcap: encode broadcast request")
	}

	for _, t := range app.Transports {
		if _, err := t.SendBytes(buf[:n]); err != nil {
			return errors.Wrap(err, "fcap: broadcast send")
		}
	}
	return nil
}

// Poll runs one dispatch tick: for every registered transport, it checks
// for a waiting datagram and, if present, decodes, classifies, and drives it
// through the middleware chain and the matching user handler.
func (app *Application) Poll() error {
	for _, t := range app.Transports {
		if err := app.pollOne(t); err != nil {
			return err
		}
	}
	return nil
}

func (app *Application) pollOne(t transport.Transport) error {
	app.inPkt.Init()

	buf := make([]byte, packet.MTU)
	n, err := t.RecvBytes(buf)
	if err != nil {
		return errors.Wrap(err, "fcap: recv")
	}
	if n == 0 {
		return nil
	}

	if err := app.inPkt.Decode(buf[:n]); err != nil {
		return errors.Wrap(err, "fcap: decode inbound packet")
	}
	log.Debug("recv %d bytes\n%s", n, app.inPkt.String())

	ev := &middleware.Event{Transport: t, Pkt: &app.inPkt, Outbound: false}

	switch app.inPkt.Type() {
	case packet.Request:
		return app.handleRequest(t, ev)
	case packet.Response:
		return app.handleResponse(ev)
	}
	return nil
}

func (app *Application) handleRequest(t transport.Transport, ev *middleware.Event) error {
	code := app.Middleware.DispatchRequest(ev, &app.outPkt)

	if code == middleware.Continue {
		if app.OnRequest != nil {
			// Reset happens immediately before the handler runs, not
			// after, so the handler's own writes to out_pkt are never
			// the thing that gets thrown away.
			app.outPkt.Init()
			code = app.OnRequest(app, ev, &app.outPkt)
		}
	}

	switch code {
	case middleware.Abort:
		return ErrAborted
	case middleware.Respond:
		app.outPkt.SetMessageID(app.inPkt.MessageID())
		app.outPkt.SetType(packet.Response)

		outEv := &middleware.Event{Transport: t, Pkt: &app.outPkt, Outbound: true}
		if app.Middleware.DispatchResponse(outEv) == middleware.Abort {
			return ErrAborted
		}

		buf := make([]byte, packet.MTU)
		n, err := app.outPkt.Encode(buf)
		if err != nil {
			return errors.Wrap(err, "fcap: encode response")
		}
		if _, err := t.SendBytes(buf[:n]); err != nil {
			return errors.Wrap(err, "fcap: send response")
		}
	}

	return nil
}

func (app *Application) handleResponse(ev *middleware.Event) error {
	code := app.Middleware.DispatchResponse(ev)

	if code == middleware.Continue && app.OnResponse != nil {
		code = app.OnResponse(app, ev)
	}

	// Respond is meaningless once a response has already cleared the user
	// handler; only Abort is a distinguishable outcome here (§6).
	if code == middleware.Abort {
		return ErrAborted
	}
	return nil
}
