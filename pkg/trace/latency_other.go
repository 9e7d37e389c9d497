//go:build !linux

package trace

import (
	"net"
	"time"
)

func roundTrip(conn net.Conn) (time.Duration, bool) {
	return 0, false
}
