package middleware

import (
	"crypto/subtle"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/prophesy-fun/prophesy_api/shared"
)

const (
	StagePreflight = "preflight"
	StageOrigin    = "origin"
	StageAPIKey    = "api_key"
	StageRate      = "rate"

	OutcomeAdmitted = "admitted"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Observer receives one event per admission decision.
type Observer interface {
	ObserveAdmission(stage, outcome string)
}

type AdmissionConfig struct {
	Gate    *OriginGate
	APIKey  string
	Limiter Limiter
	// Verifier is optional. Without it every caller is anonymous.
	Verifier TokenVerifier
	Observer Observer
}

// Admission runs the ordered checks every request passes before reaching a
// route handler: origin, API key, identity, rate. CORS headers are set first
// so every terminal response carries them.
type Admission struct {
	cfg AdmissionConfig
}

func NewAdmission(cfg AdmissionConfig) *Admission {
	return &Admission{cfg: cfg}
}

// Handlers returns the pipeline in execution order.
func (a *Admission) Handlers() []fiber.Handler {
	return []fiber.Handler{
		a.Gate(),
		ResolveIdentity(a.cfg.Verifier),
		a.RateLimit(),
	}
}

// Gate applies CORS headers, answers preflights, then enforces origin and
// API key.
func (a *Admission) Gate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		for key, value := range a.cfg.Gate.Headers(origin) {
			c.Set(key, value)
		}

		if c.Method() == fiber.MethodOptions {
			a.observe(StagePreflight, OutcomeAdmitted)
			c.Status(fiber.StatusNoContent)
			return nil
		}

		if !a.cfg.Gate.IsAllowed(origin) {
			a.observe(StageOrigin, OutcomeRejected)
			logrus.WithFields(logrus.Fields{
				"origin": origin,
				"path":   c.Path(),
			}).Debug("Origin rejected")
			return shared.NewForbiddenError(nil, "Origin not allowed")
		}
		a.observe(StageOrigin, OutcomeAdmitted)

		if a.cfg.APIKey != "" {
			provided := c.Get(shared.HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(a.cfg.APIKey)) != 1 {
				a.observe(StageAPIKey, OutcomeRejected)
				return shared.NewForbiddenError(nil, "Invalid API key")
			}
			a.observe(StageAPIKey, OutcomeAdmitted)
		}

		return c.Next()
	}
}

// RateLimit counts mutating requests against the caller's identity. Reads
// are not limited. A failing limiter backend lets the request through.
func (a *Admission) RateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if a.cfg.Limiter == nil || !isMutating(c.Method()) {
			return c.Next()
		}

		identity := IdentityFrom(c)
		limited, err := a.cfg.Limiter.Limited(c.UserContext(), identity)
		if err != nil {
			a.observe(StageRate, OutcomeError)
			logrus.WithFields(logrus.Fields{
				"identity": identity,
				"error":    err,
			}).Warn("Rate limiter unavailable, admitting request")
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(a.cfg.Limiter.Max()))
		if limited {
			a.observe(StageRate, OutcomeRejected)
			return shared.NewRateLimitedError("Rate limit exceeded. Please try again later.")
		}
		a.observe(StageRate, OutcomeAdmitted)
		return c.Next()
	}
}

func (a *Admission) observe(stage, outcome string) {
	if a.cfg.Observer != nil {
		a.cfg.Observer.ObserveAdmission(stage, outcome)
	}
}

func isMutating(method string) bool {
	switch method {
	case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		return true
	}
	return false
}
