package services

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prophesy-fun/prophesy_api/shared"
)

func TestObserveAdmission(t *testing.T) {
	svc := &MonitoringService{register: newRegistry()}

	before := testutil.ToFloat64(admissionOutcomesTotal.WithLabelValues("origin", "rejected"))
	svc.ObserveAdmission("origin", "rejected")
	svc.ObserveAdmission("origin", "rejected")
	after := testutil.ToFloat64(admissionOutcomesTotal.WithLabelValues("origin", "rejected"))

	assert.Equal(t, before+2, after)
}

func TestRegisterGaugeFunc(t *testing.T) {
	svc := &MonitoringService{register: newRegistry()}

	value := 3.0
	require.NoError(t, svc.RegisterGaugeFunc("test_tracked", "test gauge", func() float64 { return value }))
	require.NoError(t, svc.RegisterGaugeFunc("test_tracked", "test gauge", func() float64 { return 0 }))

	families, err := svc.Registry().Gather()
	require.NoError(t, err)
	var found bool
	for _, family := range families {
		if family.GetName() == "test_tracked" {
			found = true
			assert.Equal(t, 3.0, family.GetMetric()[0].GetGauge().GetValue())
		}
	}
	assert.True(t, found)
}

func TestMonitoringMiddleware_RecordsErrorStatus(t *testing.T) {
	svc := &MonitoringService{register: newRegistry()}
	app := fiber.New(fiber.Config{ErrorHandler: shared.ErrorHandler})
	app.Use(MonitoringMiddleware(svc))
	app.Get("/conflict", func(c *fiber.Ctx) error {
		return shared.NewConflictError(errors.New("dup"), "Record already exists")
	})

	before := requestsWithStatus(t, svc, "409")
	resp, err := app.Test(newGet("/conflict"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, before+1, requestsWithStatus(t, svc, "409"))
}

func TestMonitoringMiddleware_LabelsMatchedRoute(t *testing.T) {
	svc := &MonitoringService{register: newRegistry()}
	app := fiber.New(fiber.Config{ErrorHandler: shared.ErrorHandler})
	app.Use(MonitoringMiddleware(svc))
	app.Get("/users/:userId", func(c *fiber.Ctx) error {
		return c.SendString(c.Params("userId"))
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/users/:userId", "GET", "200"))
	for _, id := range []string{"a", "b"} {
		resp, err := app.Test(newGet("/users/" + id))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/users/:userId", "GET", "200")))
}

func requestsWithStatus(t *testing.T, svc *MonitoringService, status string) float64 {
	t.Helper()
	families, err := svc.Registry().Gather()
	require.NoError(t, err)

	var total float64
	for _, family := range families {
		if family.GetName() != "http_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "status" && label.GetValue() == status {
					total += metric.GetCounter().GetValue()
				}
			}
		}
	}
	return total
}
