package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleActivityMetricsRejectsBadDate(t *testing.T) {
	app := fiber.New()
	app.Get("/metrics/activity", HandleActivityMetrics)

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics/activity?date=yesterday", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp.Body), "YYYY-MM-DD")
}
