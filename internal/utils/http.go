package utils

import (
	"net"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-service-template/models"
)

// ClientIP returns the best-effort originating address of r.
//
// Lookup order:
//  1. the first non-empty entry of the X-Forwarded-For chain;
//  2. the X-Real-IP header;
//  3. the host part of the transport peer address (r.RemoteAddr).
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get(models.HeaderForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if ip := strings.TrimSpace(r.Header.Get(models.HeaderRealIP)); ip != "" {
		return ip
	}

	return peerHost(r.RemoteAddr)
}

func peerHost(remoteAddr string) string {
	if remoteAddr == "" {
		return ""
	}
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
