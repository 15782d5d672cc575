package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type OriginPolicy string

const (
	// OriginPolicyStrict rejects requests that carry no Origin header.
	OriginPolicyStrict OriginPolicy = "strict"
	// OriginPolicyPermissive lets same-origin and non-browser clients through.
	OriginPolicyPermissive OriginPolicy = "permissive"
)

const (
	CORSAllowMethods = "POST, GET, OPTIONS, PATCH, DELETE"
	CORSAllowHeaders = "Content-Type, Authorization, X-TRPC, X-API-Key"
	CORSMaxAge       = "86400"
)

var DefaultLocalOrigins = []string{
	"http://localhost:3001",
	"http://localhost:5173",
	"http://127.0.0.1:3001",
	"http://127.0.0.1:5173",
}

func ParseOriginPolicy(s string) (OriginPolicy, error) {
	switch OriginPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", OriginPolicyStrict:
		return OriginPolicyStrict, nil
	case OriginPolicyPermissive:
		return OriginPolicyPermissive, nil
	default:
		return "", fmt.Errorf("unknown origin policy %q", s)
	}
}

// OriginGate decides whether a declared origin may call the API. Matching is
// exact and case-sensitive. The gate is immutable after construction.
type OriginGate struct {
	allowed map[string]struct{}
	policy  OriginPolicy
}

func NewOriginGate(origins []string, policy OriginPolicy) (*OriginGate, error) {
	if policy != OriginPolicyStrict && policy != OriginPolicyPermissive {
		return nil, fmt.Errorf("unknown origin policy %q", policy)
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		if origin == "" {
			continue
		}
		allowed[origin] = struct{}{}
	}
	if len(allowed) == 0 {
		return nil, fmt.Errorf("origin allow-list is empty")
	}

	return &OriginGate{allowed: allowed, policy: policy}, nil
}

func (g *OriginGate) Policy() OriginPolicy {
	return g.policy
}

// IsAllowed reports whether origin may proceed. An empty origin means the
// header was absent and is decided by the policy alone.
func (g *OriginGate) IsAllowed(origin string) bool {
	if origin == "" {
		return g.policy == OriginPolicyPermissive
	}
	_, ok := g.allowed[origin]
	return ok
}

// Headers computes the CORS header set for a request. The origin is echoed
// only when it is present and allowed.
func (g *OriginGate) Headers(origin string) map[string]string {
	headers := map[string]string{
		fiber.HeaderAccessControlAllowMethods: CORSAllowMethods,
		fiber.HeaderAccessControlAllowHeaders: CORSAllowHeaders,
		fiber.HeaderAccessControlMaxAge:       CORSMaxAge,
		fiber.HeaderVary:                      fiber.HeaderOrigin,
	}
	if origin != "" && g.IsAllowed(origin) {
		headers[fiber.HeaderAccessControlAllowOrigin] = origin
		headers[fiber.HeaderAccessControlAllowCredentials] = "true"
	}
	return headers
}

// SplitOrigins parses a comma separated origin list.
func SplitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
