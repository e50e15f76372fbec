package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"wardrobe/internal/cache"
	"wardrobe/internal/config"
	"wardrobe/internal/http/handlers"
	applog "wardrobe/internal/log"
	"wardrobe/internal/repos"
)

const (
	alice     = "u-alice"
	aliceCart = "cart-u-alice"
)

type testApp struct {
	app  *fiber.App
	db   *sqlx.DB
	logs *observer.ObservedLogs
}

// newTestApp serves the full route table over a seeded in-memory database and
// captures every log entry.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	applog.SetLogger(zap.New(core))
	t.Cleanup(func() { applog.SetLogger(nil) })

	db, err := repos.OpenDB("sqlite", ":memory:", true)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{
		Origins:   []string{"http://localhost:5173"},
		BodyLimit: 4 << 10,
	}
	app := handlers.NewApp(cfg, handlers.NewDeps(db, cache.Nop{}))
	return &testApp{app: app, db: db, logs: logs}
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Status  int             `json:"status"`
	Message string          `json:"message"`
}

// do sends a JSON request as user (empty for anonymous) and decodes the envelope.
func (a *testApp) do(t *testing.T, method, path, user string, body any) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set(handlers.UserHeader, user)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	require.Equal(t, resp.StatusCode, env.Status, "envelope status mirrors HTTP status")
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}
