package utils

import (
	"fmt"
	"net"
	"time"
)

// PingServer checks that the HTTP listener is accepting TCP connections.
// Used by the healthcheck binary so a wedged listener fails the container
// health probe even when the database is fine.
func PingServer(host, port string, timeout time.Duration) error {
	address := net.JoinHostPort(host, port)
	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()
	return nil
}
