package services

import (
	"os"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/prophesy-fun/prophesy_api/middleware"
)

// AdmissionService assembles the request admission pipeline from the
// origin policy, the frontend API key, the token verifier and the rate
// limiter.
type AdmissionService struct {
	context.DefaultService

	gate   *middleware.OriginGate
	apiKey string

	admission *middleware.Admission
}

const ADMISSION_SVC = "admission_svc"

func (svc AdmissionService) Id() string {
	return ADMISSION_SVC
}

func (svc *AdmissionService) Configure(ctx *context.Context) error {
	policy, err := middleware.ParseOriginPolicy(os.Getenv("ORIGIN_POLICY"))
	if err != nil {
		return err
	}

	origins := middleware.SplitOrigins(os.Getenv("ALLOWED_ORIGINS"))
	if local, ok := os.LookupEnv("LOCAL_ORIGINS"); ok {
		origins = append(origins, middleware.SplitOrigins(local)...)
	} else {
		origins = append(origins, middleware.DefaultLocalOrigins...)
	}

	svc.gate, err = middleware.NewOriginGate(origins, policy)
	if err != nil {
		return err
	}

	svc.apiKey = os.Getenv("FRONTEND_API_KEY")
	if svc.apiKey == "" {
		log.Warn("FRONTEND_API_KEY not set, API key check disabled")
	}

	log.WithFields(log.Fields{
		"policy":  policy,
		"origins": len(origins),
	}).Info("Admission configured")
	return svc.DefaultService.Configure(ctx)
}

func (svc *AdmissionService) Start() error {
	return nil
}

// Handlers builds the pipeline on first use so every dependency has
// started by the time it is resolved.
func (svc *AdmissionService) Handlers() []fiber.Handler {
	if svc.admission == nil {
		svc.admission = middleware.NewAdmission(svc.config())
	}
	return svc.admission.Handlers()
}

func (svc *AdmissionService) config() middleware.AdmissionConfig {
	cfg := middleware.AdmissionConfig{
		Gate:   svc.gate,
		APIKey: svc.apiKey,
	}

	if rateSvc, ok := svc.Service(RATE_LIMIT_SVC).(*RateLimitService); ok {
		cfg.Limiter = rateSvc.Limiter()
	}
	if jwtSvc, ok := svc.Service(JWT_SVC).(*JWTService); ok {
		cfg.Verifier = jwtSvc
	}
	if monitoringSvc, ok := svc.Service(MONITORING_SVC).(*MonitoringService); ok {
		cfg.Observer = monitoringSvc
	}
	return cfg
}

func (svc *AdmissionService) Gate() *middleware.OriginGate {
	return svc.gate
}
