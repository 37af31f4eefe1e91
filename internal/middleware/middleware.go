// Package middleware implements FCAP's ordered, direction-aware handler
// chain (component C3): a list of optional request/response hooks that the
// dispatcher walks forward for outbound traffic and in reverse for inbound
// traffic, mirroring the classic onion model.
package middleware

import (
	"github.com/lanikai/fcap/internal/packet"
	"github.com/lanikai/fcap/internal/transport"
)

// Code is a middleware handler's short-circuit verdict.
type Code int

const (
	// Abort drops the packet; the dispatcher surfaces an error.
	Abort Code = -1
	// Continue proceeds to the next handler, or the user callback if none
	// remain.
	Continue Code = 0
	// Respond is meaningful only for request handlers: the handler has
	// filled the response packet itself and wants the dispatcher to emit
	// it immediately, skipping any remaining request middleware and the
	// user callback.
	Respond Code = 1
)

// Event describes one packet in flight through the chain: which transport
// it arrived on or is leaving by, the packet itself, and the direction of
// travel. Outbound traverses the chain forward; inbound traverses it in
// reverse.
type Event struct {
	Transport transport.Transport
	Pkt       *packet.Packet
	Outbound  bool
}

// Middleware is the handler pair a chain member implements. Either hook may
// be left at its zero-value meaning via Base (below) if a middleware only
// cares about one direction.
type Middleware interface {
	// OnRequest runs for request packets, in both directions. res is the
	// response packet to fill when returning Respond; it is only used on
	// the inbound (server) side.
	OnRequest(ev *Event, res *packet.Packet) Code

	// OnResponse runs for response packets, in both directions.
	OnResponse(ev *Event) Code
}

// Base gives every Middleware a Continue-everything default so concrete
// types can embed it and override only the hook they actually need; the
// reference implementation's "either handler optional" contract made
// explicit as Go embedding instead of nil function pointers.
type Base struct{}

// OnRequest is the no-op default: always Continue.
func (Base) OnRequest(ev *Event, res *packet.Packet) Code { return Continue }

// OnResponse is the no-op default: always Continue.
func (Base) OnResponse(ev *Event) Code { return Continue }

// Chain is an ordered list of middleware, traversed by the dispatcher.
type Chain []Middleware

// DispatchRequest walks the chain for a request packet: forward [0..N) for
// outbound, reverse [N-1..0] for inbound. It stops at the first non-Continue
// code and returns it.
func (c Chain) DispatchRequest(ev *Event, res *packet.Packet) Code {
	if ev.Outbound {
		for i := 0; i < len(c); i++ {
			if code := c[i].OnRequest(ev, res); code != Continue {
				return code
			}
		}
		return Continue
	}

	for i := len(c) - 1; i >= 0; i-- {
		if code := c[i].OnRequest(ev, res); code != Continue {
			return code
		}
	}
	return Continue
}

// DispatchResponse walks the chain for a response packet using the same
// direction rule as DispatchRequest. Respond is meaningless for a response
// (there is nothing left to respond to); callers treat it as Continue.
func (c Chain) DispatchResponse(ev *Event) Code {
	if ev.Outbound {
		for i := 0; i < len(c); i++ {
			if code := c[i].OnResponse(ev); code != Continue {
				return code
			}
		}
		return Continue
	}

	for i := len(c) - 1; i >= 0; i-- {
		if code := c[i].OnResponse(ev); code != Continue {
			return code
		}
	}
	return Continue
}
