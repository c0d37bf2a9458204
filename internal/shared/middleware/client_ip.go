package middleware

import (
	"net"
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextClientIP is the gin context key holding the caller's address.
const ContextClientIP = "client_ip"

// ClientIP resolves the caller's address once per request.
// Priority: first X-Forwarded-For entry, X-Real-IP, then the socket address.
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextClientIP, extractClientIP(c))
		c.Next()
	}
}

// GetClientIP returns the address set by ClientIP, or gin's own guess.
func GetClientIP(c *gin.Context) string {
	if ip := c.GetString(ContextClientIP); ip != "" {
		return ip
	}
	return c.ClientIP()
}

func extractClientIP(c *gin.Context) string {
	// Format: "client, proxy1, proxy2"
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if addr, ok := parseAddr(first); ok {
			return addr
		}
	}

	if addr, ok := parseAddr(c.GetHeader("X-Real-IP")); ok {
		return addr
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		host = c.Request.RemoteAddr
	}
	if addr, ok := parseAddr(host); ok {
		return addr
	}
	return "127.0.0.1"
}

func parseAddr(raw string) (string, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	return addr.Unmap().String(), true
}

// IsPrivateIP reports loopback and RFC 1918 / RFC 4193 addresses.
func IsPrivateIP(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	return addr.IsPrivate() || addr.IsLoopback()
}
