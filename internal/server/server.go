package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/talmor/cartwise/internal/guard"
	"github.com/talmor/cartwise/internal/handler"
	"github.com/talmor/cartwise/internal/middleware"
	"github.com/talmor/cartwise/internal/store"
	ws "github.com/talmor/cartwise/internal/websocket"
)

type Server struct {
	db           *sql.DB
	hub          *ws.Hub
	authH        *handler.AuthHandler
	listH        *handler.ListHandler
	parseH       *handler.ParseHandler
	historyH     *handler.HistoryHandler
	sessionStore *store.SessionStore
	rateLimiter  *middleware.RateLimiter
	addLimiter   *guard.AddLimiter
	logger       *slog.Logger
}

func New(db *sql.DB, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	sessionStore := store.NewSessionStore(db)
	listStore := store.NewListStore(db)
	historyStore := store.NewHistoryStore(db)

	addLimiter := guard.NewAddLimiter()

	return &Server{
		db:           db,
		hub:          hub,
		authH:        handler.NewAuthHandler(userStore, sessionStore, logger.With("component", "auth")),
		listH:        handler.NewListHandler(listStore, historyStore, addLimiter, hub, logger.With("component", "list")),
		parseH:       handler.NewParseHandler(logger.With("component", "parse")),
		historyH:     handler.NewHistoryHandler(historyStore, logger.With("component", "history")),
		sessionStore: sessionStore,
		rateLimiter:  middleware.NewRateLimiter(),
		addLimiter:   addLimiter,
		logger:       logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// AddLimiter returns the item-add limiter for cleanup tasks.
func (s *Server) AddLimiter() *guard.AddLimiter {
	return s.addLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /api/register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /api/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/logout", s.authH.Logout)

	// List API routes
	mux.HandleFunc("POST /api/lists", s.listH.CreateList)
	mux.HandleFunc("GET /api/lists", s.listH.ListLists)
	mux.HandleFunc("GET /api/lists/{list_id}", s.listH.GetList)
	mux.HandleFunc("PUT /api/lists/{list_id}", s.listH.RenameList)
	mux.HandleFunc("DELETE /api/lists/{list_id}", s.listH.DeleteList)
	mux.HandleFunc("GET /api/lists/{list_id}/grouped", s.listH.GroupedItems)
	mux.HandleFunc("POST /api/lists/{list_id}/complete", s.listH.CompleteShopping)

	// Item API routes
	mux.HandleFunc("POST /api/lists/{list_id}/items", s.listH.CreateItem)
	mux.HandleFunc("PUT /api/lists/{list_id}/items/{id}", s.listH.UpdateItem)
	mux.HandleFunc("DELETE /api/lists/{list_id}/items/{id}", s.listH.DeleteItem)
	mux.HandleFunc("POST /api/lists/{list_id}/items/{id}/check", s.listH.ToggleChecked)
	mux.HandleFunc("POST /api/lists/{list_id}/clear-checked", s.listH.ClearChecked)

	// Free-text parsing routes
	mux.HandleFunc("POST /api/parse/voice", s.parseH.Voice)
	mux.HandleFunc("POST /api/parse/ocr", s.parseH.OCR)
	mux.HandleFunc("POST /api/parse/text", s.parseH.Text)

	// History and insights routes
	mux.HandleFunc("GET /api/history", s.historyH.List)
	mux.HandleFunc("GET /api/history/{id}", s.historyH.Get)
	mux.HandleFunc("DELETE /api/history/{id}", s.historyH.Delete)
	mux.HandleFunc("GET /api/insights", s.historyH.Insights)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))
}
