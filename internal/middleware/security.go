// Package middleware holds the HTTP middleware applied around the movie
// routes: security headers, Host allowlisting, response caching and rate
// limiting. Everything here is transport plumbing; none of it contains
// business logic.
package middleware

import (
	"net"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ramink/movie-catalog/internal/errs"
)

// SecurityHeaders sets conservative browser headers on every response and
// hides the server identity.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("X-XSS-Protection", "1; mode=block")
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			return next(c)
		}
	}
}

// AllowedHosts rejects requests whose Host header is not in the allowlist.
// A list containing "*" disables the check. Ports are ignored when matching.
func AllowedHosts(hosts []string) echo.MiddlewareFunc {
	allowAll := len(hosts) == 0
	allowed := make(map[string]struct{}, len(hosts))
	for _, h := range hosts {
		if h == "*" {
			allowAll = true
		}
		allowed[strings.ToLower(h)] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if allowAll {
				return next(c)
			}
			host := c.Request().Host
			if h, _, err := net.SplitHostPort(host); err == nil {
				host = h
			}
			if _, ok := allowed[strings.ToLower(host)]; !ok {
				return &errs.BadRequestError{Message: "invalid host header"}
			}
			return next(c)
		}
	}
}
