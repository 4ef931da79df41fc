package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/talmor/cartwise/internal/auth"
	"github.com/talmor/cartwise/internal/database"
	"github.com/talmor/cartwise/internal/guard"
	"github.com/talmor/cartwise/internal/model"
	"github.com/talmor/cartwise/internal/store"
	ws "github.com/talmor/cartwise/internal/websocket"
)

type testEnv struct {
	users    *store.UserStore
	sessions *store.SessionStore
	lists    *store.ListStore
	history  *store.HistoryStore
	hub      *ws.Hub
	logger   *slog.Logger
	user     *model.User
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env := &testEnv{
		users:    store.NewUserStore(db),
		sessions: store.NewSessionStore(db),
		lists:    store.NewListStore(db),
		history:  store.NewHistoryStore(db),
		hub:      ws.NewHub(logger),
		logger:   logger,
	}

	env.user, err = env.users.Create("shopper@example.com", "Shopper", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return env
}

func (e *testEnv) listHandler() *ListHandler {
	return NewListHandler(e.lists, e.history, guard.NewAddLimiter(), e.hub, e.logger)
}

// jsonRequest builds an authenticated request with a JSON body and optional
// path values.
func (e *testEnv) jsonRequest(t *testing.T, method, target, token string, body any, pathValues map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req = req.WithContext(auth.WithAuth(req.Context(), auth.AuthContext{
		UserID:       e.user.ID,
		SessionToken: token,
	}))
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	return req
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}
