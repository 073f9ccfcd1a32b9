package storage

import (
	"fmt"
	"net"
)

// dynamicPortLow and dynamicPortHigh bound the IANA dynamic/private port
// range — a reserved high range, away from any service's standard default,
// matching §4.1's port allocation policy.
const (
	dynamicPortLow  = 49152
	dynamicPortHigh = 65535
)

// AllocatePort picks an unused loopback TCP port in the dynamic range. It is
// called once, at `work init` time; the chosen port is then persisted in
// config.yml and never reassigned silently afterward.
func AllocatePort() (int, error) {
	for port := dynamicPortLow; port <= dynamicPortHigh; port++ {
		if portFree(port) {
			return port, nil
		}
	}
	return 0, fmt.Errorf("no free port available in %d-%d", dynamicPortLow, dynamicPortHigh)
}

// Reallocate picks a fresh free port, distinct from the work's current one.
// It does not write the new port to config.yml, and no `maintenance`
// subcommand exposes it.
func Reallocate(current int) (int, error) {
	for port := dynamicPortLow; port <= dynamicPortHigh; port++ {
		if port == current {
			continue
		}
		if portFree(port) {
			return port, nil
		}
	}
	return 0, fmt.Errorf("no free port available in %d-%d besides %d", dynamicPortLow, dynamicPortHigh, current)
}

func portFree(port int) bool {
	l, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return false
	}
	_ = l.Close()
	return true
}
