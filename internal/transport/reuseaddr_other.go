// +build !linux,!darwin,!freebsd

package transport

import "net"

// setReuseAddr is a no-op on platforms without golang.org/x/sys/unix socket
// option support wired up here; the socket still works, it just won't
// rebind instantly after a crash.
func setReuseAddr(conn *net.UDPConn) error {
	return nil
}
