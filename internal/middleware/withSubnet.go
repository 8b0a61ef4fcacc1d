package middleware

import (
	"net"
	"net/http"
)

// WithSubnet lets through only requests whose X-Real-IP lies in the trusted
// CIDR. An empty or malformed CIDR closes the route entirely.
func WithSubnet(cidr string) func(next http.Handler) http.Handler {
	_, trusted, err := net.ParseCIDR(cidr)
	if err != nil {
		trusted = nil
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := net.ParseIP(r.Header.Get("X-Real-IP"))

			if trusted == nil || ip == nil || !trusted.Contains(ip) {
				w.WriteHeader(http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
