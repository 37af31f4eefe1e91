package transport

import (
	"net"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// DefaultPort is FCAP's well-known UDP port: 1024 + 'F'+'C'+'A'+'P'.
const DefaultPort = 1434

// UDPTransport is the reference Transport: a single UDP socket bound to a
// local port, talking to one fixed peer address. It is grounded on
// fcap_udp_t from the reference implementation, which likewise pairs one
// bound socket with one destination sockaddr rather than a connected
// 4-tuple; RecvBytes accepts datagrams from anyone, SendBytes always goes
// to the configured peer.
type UDPTransport struct {
	conn *net.UDPConn
	peer *net.UDPAddr
}

// NewUDPTransport opens a UDP socket on listenPort (0 picks an ephemeral
// port) and configures it to send to peerHost:peerPort. It mirrors
// fcap_udp_setup_channel's two-step setup: bind a local socket, resolve the
// remote address.
func NewUDPTransport(listenPort int, peerHost string, peerPort int) (*UDPTransport, error) {
	localAddr := &net.UDPAddr{Port: listenPort}
	conn, err := net.ListenUDP("udp", localAddr)
	if err != nil {
		return nil, errors.Wrap(err, "fcap: udp listen")
	}

	if err := setReuseAddr(conn); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "fcap: udp set reuseaddr")
	}

	peer, err := net.ResolveUDPAddr("udp", net.JoinHostPort(peerHost, strconv.Itoa(peerPort)))
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "fcap: resolve peer address")
	}

	return &UDPTransport{conn: conn, peer: peer}, nil
}

// SendBytes sends buf as one datagram to the configured peer, matching
// fcap_udp_send_bytes's single sendto call.
func (t *UDPTransport) SendBytes(buf []byte) (int, error) {
	n, err := t.conn.WriteToUDP(buf, t.peer)
	if err != nil {
		return n, errors.Wrap(err, "fcap: udp send")
	}
	return n, nil
}

// RecvBytes polls for one waiting datagram without blocking. It sets an
// already-elapsed read deadline before every read, the same trick the
// reference agent's connection loop uses, just with a deadline in the past
// instead of a short future one, since FCAP's dispatcher itself owns the
// polling cadence (C5) and only wants to know "is anything here right now".
// A timeout is not an error: it means no datagram is ready, so RecvBytes
// returns 0, nil.
func (t *UDPTransport) RecvBytes(buf []byte) (int, error) {
	if err := t.conn.SetReadDeadline(time.Now()); err != nil {
		return 0, errors.Wrap(err, "fcap: udp set read deadline")
	}

	n, _, err := t.conn.ReadFromUDP(buf)
	if err != nil {
		if nerr, ok := err.(net.Error); ok && nerr.Timeout() {
			return 0, nil
		}
		return 0, errors.Wrap(err, "fcap: udp recv")
	}
	return n, nil
}

// Close releases the underlying socket, matching fcap_udp_cleanup.
func (t *UDPTransport) Close() error {
	return t.conn.Close()
}
