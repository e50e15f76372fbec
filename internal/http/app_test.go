package handlers_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"wardrobe/internal/http/handlers"
	applog "wardrobe/internal/log"
)

// Internal errors reach the caller as a generic envelope; the cause only goes to the log.
func TestErrorHandlerHidesInternals(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	applog.SetLogger(zap.New(core))
	t.Cleanup(func() { applog.SetLogger(nil) })

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())
	app.Get("/err", func(c *fiber.Ctx) error {
		return errors.New("db timeout: secret trace")
	})
	app.Get("/gone", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusGone, "gone")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/err", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Internal server error")
	assert.NotContains(t, string(body), "secret")

	entries := logs.FilterMessage("server.error").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["error"], "secret trace")
	assert.NotEmpty(t, entries[0].ContextMap()["req_id"])

	resp, err = app.Test(httptest.NewRequest("GET", "/gone", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusGone, resp.StatusCode)
}

func TestAccessLogAndAudit(t *testing.T) {
	a := newTestApp(t)

	a.do(t, "PATCH", "/api/v1/cart/"+aliceCart, alice, mutation("add", "tee-001", "tee-001-s"))

	access := a.logs.FilterMessage("http.access").All()
	require.Len(t, access, 1)
	ctx := access[0].ContextMap()
	assert.Equal(t, "PATCH", ctx["method"])
	assert.Equal(t, "/api/v1/cart/"+aliceCart, ctx["path"])
	assert.EqualValues(t, 200, ctx["status"])
	assert.Equal(t, alice, ctx["user_id"])
	assert.NotEmpty(t, ctx["req_id"])

	audit := a.logs.FilterMessage("cart.mutate").All()
	require.Len(t, audit, 1)
	assert.Equal(t, "audit", audit[0].ContextMap()["kind"])
}

func TestUnknownRouteIsEnvelope404(t *testing.T) {
	a := newTestApp(t)
	code, env := a.do(t, "GET", "/api/v1/orders", "", nil)
	assert.Equal(t, 404, code)
	assert.Equal(t, "Not found", env.Message)
}

func TestAvailabilityRateLimit(t *testing.T) {
	a := newTestApp(t)

	last := 0
	for i := 0; i < 16; i++ {
		resp, err := a.app.Test(httptest.NewRequest("GET", "/api/v1/product/tee-001/availability?size=S", nil))
		require.NoError(t, err)
		last = resp.StatusCode
	}
	assert.Equal(t, fiber.StatusTooManyRequests, last)
	assert.Equal(t, 1, a.logs.FilterMessage("rate.availability.hit").Len())
}

func TestBodyLimit(t *testing.T) {
	a := newTestApp(t)

	big := `{"name":"` + strings.Repeat("x", 8<<10) + `"}`
	req := httptest.NewRequest("POST", "/api/v1/category", strings.NewReader(big))
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.app.Test(req)
	// app.Test surfaces fasthttp's limit error instead of a response
	if err != nil {
		assert.Contains(t, err.Error(), "body size exceeds")
		return
	}
	assert.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestDocsPage(t *testing.T) {
	a := newTestApp(t)

	resp, err := a.app.Test(httptest.NewRequest("GET", "/docs", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	s := string(body)
	assert.Contains(t, s, "/api/v1/cart/:id")
	assert.Contains(t, s, "/api/v1/product/:id/availability")
	assert.Contains(t, s, handlers.UserHeader)
}

func TestHealthz(t *testing.T) {
	a := newTestApp(t)
	code, env := a.do(t, "GET", "/healthz", "", nil)
	assert.Equal(t, 200, code)
	assert.JSONEq(t, `{"ok":true}`, string(env.Data))
}
