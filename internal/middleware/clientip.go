package middleware

import (
	"net"
	"net/http"
)

// ClientIP returns the remote host of the request without the port
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
