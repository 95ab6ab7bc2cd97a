package pkg

import (
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ReadUserIP returns the requester address without the port. Proxy headers
// take precedence over the connection address; unparseable header values
// are ignored.
func ReadUserIP(r *http.Request) (string, error) {
	if ip := parseIP(r.Header.Get("X-Real-Ip")); ip != "" {
		return ip, nil
	}

	// X-Forwarded-For: client, proxy1, proxy2
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if ip := parseIP(strings.Split(forwarded, ",")[0]); ip != "" {
			return ip, nil
		}
	}

	if ip := parseIP(r.RemoteAddr); ip != "" {
		return ip, nil
	}
	return "", fmt.Errorf("ip addr %s is invalid", r.RemoteAddr)
}

// RemoteHost is RemoteAddr with the port stripped, when there is one.
func RemoteHost(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func parseIP(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(raw); err == nil {
		raw = host
	}
	ip := net.ParseIP(raw)
	if ip == nil {
		return ""
	}
	return ip.String()
}
