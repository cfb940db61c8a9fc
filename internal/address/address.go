package address

import (
	"fmt"
	"net"
	"strconv"
)

const DefaultHost = "0.0.0.0"

// Normalize validates the address and fills the host in, if only the port is presented.
func Normalize(addr string) (string, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("bad address: %w", err)
	}

	if _, err = strconv.ParseUint(port, 10, 16); err != nil {
		return "", fmt.Errorf("invalid port: %s", port)
	}

	if len(host) == 0 {
		host = DefaultHost
	}

	return net.JoinHostPort(host, port), nil
}
