package printsvc

import (
	"net"
	"net/url"
	"strconv"
	"strings"
)

// ParseProxy reads a "host:port" proxy string, splitting on the first colon.
// It reports false for an empty or malformed value.
func ParseProxy(value string) (*url.URL, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, false
	}
	c := strings.IndexByte(trimmed, ':')
	if c <= 0 {
		return nil, false
	}
	port, err := strconv.Atoi(trimmed[c+1:])
	if err != nil || port < 0 || port > 65535 {
		return nil, false
	}
	host := trimmed[:c]
	return &url.URL{Scheme: "http", Host: net.JoinHostPort(host, strconv.Itoa(port))}, true
}
