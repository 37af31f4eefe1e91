// +build linux darwin freebsd

package transport

import (
	"net"

	"golang.org/x/sys/unix"
)

// setReuseAddr sets SO_REUSEADDR on the listening socket so a crashed and
// quickly-restarted fcapd doesn't have to wait out the kernel's TIME_WAIT
// hold on the port. net.ListenUDP has no portable way to express this, so
// it's reached through the raw syscall conn, the same escape hatch the
// v4l2 capture device uses for ioctls it can't get at any other way.
func setReuseAddr(conn *net.UDPConn) error {
	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}

	var setErr error
	err = raw.Control(func(fd uintptr) {
		setErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}
	return setErr
}
