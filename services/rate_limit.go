package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/prophesy-fun/prophesy_api/middleware"
)

const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"

	defaultRateLimitWindow = 15 * time.Minute
	defaultRateLimitMax    = 100
	rateLimitJanitorPeriod = time.Minute
)

// RateLimitService owns the limiter shared by the admission pipeline. The
// memory store is per process; the redis store is shared across replicas.
type RateLimitService struct {
	context.DefaultService

	window time.Duration
	max    int
	store  string

	limiter middleware.Limiter
	memory  *middleware.SlidingWindowLimiter
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *context.Context) error {
	var err error
	if svc.window, err = parseWindow(os.Getenv("RATE_LIMIT_WINDOW")); err != nil {
		return err
	}

	svc.max = defaultRateLimitMax
	if v := os.Getenv("RATE_LIMIT_MAX"); v != "" {
		if svc.max, err = strconv.Atoi(v); err != nil || svc.max <= 0 {
			return fmt.Errorf("invalid RATE_LIMIT_MAX %q", v)
		}
	}

	svc.store = strings.ToLower(getEnv("RATE_LIMIT_STORE", RateLimitStoreMemory))
	if svc.store != RateLimitStoreMemory && svc.store != RateLimitStoreRedis {
		return fmt.Errorf("unsupported RATE_LIMIT_STORE %q", svc.store)
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	if svc.store == RateLimitStoreRedis {
		redisSvc, ok := svc.Service(REDIS_SVC).(*RedisService)
		if ok && redisSvc.Enabled() {
			limiter, err := middleware.NewRedisWindowLimiter(redisSvc.GetClient(), svc.window, svc.max, nil)
			if err != nil {
				return err
			}
			svc.limiter = limiter
			log.WithFields(log.Fields{"window": svc.window, "max": svc.max}).Info("Using redis rate limiter")
			return nil
		}
		log.Warn("RATE_LIMIT_STORE=redis but redis is disabled, falling back to memory")
	}

	memory, err := middleware.NewSlidingWindowLimiter(svc.window, svc.max,
		middleware.WithJanitor(rateLimitJanitorPeriod))
	if err != nil {
		return err
	}
	svc.memory = memory
	svc.limiter = memory

	if monitoringSvc, ok := svc.Service(MONITORING_SVC).(*MonitoringService); ok {
		err := monitoringSvc.RegisterGaugeFunc("rate_limit_tracked_identities",
			"Identities holding timestamps in the in-memory rate limiter",
			func() float64 { return float64(memory.Tracked()) })
		if err != nil {
			log.WithError(err).Warn("Failed to register rate limit gauge")
		}
	}

	log.WithFields(log.Fields{"window": svc.window, "max": svc.max}).Info("Using in-memory rate limiter")
	return nil
}

func (svc *RateLimitService) Shutdown() {
	if svc.memory != nil {
		svc.memory.Close()
	}
}

func (svc *RateLimitService) Limiter() middleware.Limiter {
	return svc.limiter
}

// parseWindow accepts a Go duration ("15m") or a bare millisecond count.
func parseWindow(v string) (time.Duration, error) {
	if v == "" {
		return defaultRateLimitWindow, nil
	}
	if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
		if ms <= 0 {
			return 0, fmt.Errorf("invalid RATE_LIMIT_WINDOW %q", v)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid RATE_LIMIT_WINDOW %q", v)
	}
	return d, nil
}
