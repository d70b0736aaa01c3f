package middleware

import (
	"net"

	"github.com/labstack/echo/v4"
)

// ClientIP picks how c.RealIP() resolves the caller. Without trusted proxies
// forwarding headers are ignored and the socket address is used; otherwise
// X-Forwarded-For is honored only for hops inside the given ranges.
func ClientIP(trustedProxies []*net.IPNet) echo.IPExtractor {
	if len(trustedProxies) == 0 {
		return echo.ExtractIPDirect()
	}
	options := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, ipNet := range trustedProxies {
		options = append(options, echo.TrustIPRange(ipNet))
	}
	return echo.ExtractIPFromXFFHeader(options...)
}
