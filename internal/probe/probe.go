// Package probe queries simulation servers directly over the Source Engine
// Query (A2S) protocol. It is an optional enrichment step: embed-derived
// records stay authoritative, the probe only fills in live player counts.
package probe

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/woozymasta/a2s/pkg/a2s"

	"github.com/hangarlabs/simwatch/internal/config"
)

// Result carries the live values a probe can contribute to a status record.
type Result struct {
	Name       string
	Map        string
	Players    int
	MaxPlayers int
}

// Query connects to the given "host:port" address (as parsed from the
// Server-IP / Port embed field) and requests A2S_INFO.
func Query(address string, options config.Probe) (*Result, error) {
	host, portStr, err := net.SplitHostPort(strings.TrimSpace(address))
	if err != nil {
		return nil, fmt.Errorf("invalid server address %q: %w", address, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid server port %q", portStr)
	}

	client, err := a2s.New(host, port)
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Close() }()

	client.BufferSize = options.BufferSize
	client.Timeout = options.Timeout

	info, err := client.GetInfo()
	if err != nil {
		return nil, err
	}

	return &Result{
		Name:       info.Name,
		Map:        info.Map,
		Players:    int(info.Players),
		MaxPlayers: int(info.MaxPlayers),
	}, nil
}
