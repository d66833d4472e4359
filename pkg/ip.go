package pkg

import (
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ReadUserIP returns the client IP, honoring the proxy headers first.
// Only the first address of a X-Forwarded-For chain is used. The headers are
// set by the client unless a proxy overwrites them, use ReadRemoteIP when the
// service is exposed directly.
func ReadUserIP(r *http.Request) (string, error) {
	ipAddr := strings.TrimSpace(r.Header.Get("X-Real-Ip"))
	if ipAddr == "" {
		forwarded := r.Header.Get("X-Forwarded-For")
		ipAddr = strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if ipAddr == "" {
		return ReadRemoteIP(r)
	}
	return parseIP(ipAddr)
}

// ReadRemoteIP returns the IP of the connection peer, ignoring any headers.
func ReadRemoteIP(r *http.Request) (string, error) {
	return parseIP(r.RemoteAddr)
}

func parseIP(ipAddr string) (string, error) {
	if host, _, err := net.SplitHostPort(ipAddr); err == nil {
		ipAddr = host
	}

	if net.ParseIP(ipAddr) == nil {
		return "", fmt.Errorf("ip addr %s is invalid", ipAddr)
	}

	return ipAddr, nil
}
