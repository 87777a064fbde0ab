package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/pantry/internal/database"
	"github.com/dukerupert/pantry/internal/handler"
	"github.com/dukerupert/pantry/internal/middleware"
	"github.com/dukerupert/pantry/internal/pantry"
	ws "github.com/dukerupert/pantry/internal/websocket"
)

type Options struct {
	// WriteRateLimit caps mutating requests per client IP per minute.
	// Zero disables it.
	WriteRateLimit int
	// AllowedOrigins restricts websocket origins. Empty allows any.
	AllowedOrigins []string
}

type Server struct {
	db          *sql.DB
	hub         *ws.Hub
	inventoryH  *handler.InventoryHandler
	rateLimiter *middleware.RateLimiter
	origins     []string
	logger      *slog.Logger
}

func New(db *sql.DB, svc *pantry.Service, hub *ws.Hub, opts Options, logger *slog.Logger) *Server {
	return &Server{
		db:          db,
		hub:         hub,
		inventoryH:  handler.NewInventoryHandler(svc, logger.With("component", "inventory")),
		rateLimiter: middleware.NewRateLimiter(opts.WriteRateLimit, time.Minute),
		origins:     opts.AllowedOrigins,
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.origins))

	// Containers
	mux.HandleFunc("GET /api/containers", s.inventoryH.ListContainers)
	mux.HandleFunc("POST /api/containers", s.inventoryH.CreateContainer)
	mux.HandleFunc("PUT /api/containers/{name}", s.inventoryH.RenameContainer)
	mux.HandleFunc("DELETE /api/containers/{name}", s.inventoryH.DeleteContainer)
	mux.HandleFunc("POST /api/containers/{name}/refresh", s.inventoryH.Refresh)
	mux.HandleFunc("GET /api/containers/{name}/report", s.inventoryH.Report)

	// Items
	mux.HandleFunc("GET /api/containers/{name}/items", s.inventoryH.ListItems)
	mux.HandleFunc("POST /api/containers/{name}/items", s.inventoryH.CreateItem)
	mux.HandleFunc("DELETE /api/containers/{name}/items", s.inventoryH.EmptyContainer)
	mux.HandleFunc("PUT /api/containers/{name}/items/{item}/quantity", s.inventoryH.UpdateQuantity)
	mux.HandleFunc("PUT /api/containers/{name}/items/{item}/food-group", s.inventoryH.UpdateFoodGroup)
	mux.HandleFunc("PUT /api/containers/{name}/items/{item}/note", s.inventoryH.UpdateNote)
	mux.HandleFunc("DELETE /api/containers/{name}/items/{item}", s.inventoryH.DeleteItem)
	mux.HandleFunc("GET /api/items", s.inventoryH.AllItems)

	// Lookups
	mux.HandleFunc("GET /api/food-groups", s.inventoryH.FoodGroups)
	mux.HandleFunc("GET /api/food-groups/suggest", s.inventoryH.SuggestFoodGroup)
	mux.HandleFunc("GET /api/tips", s.inventoryH.StorageTip)

	var h http.Handler = mux
	h = middleware.LimitWrites(s.rateLimiter)(h)
	h = middleware.RequestLogger(s.logger.With("component", "http"))(h)
	h = middleware.Recover(s.logger)(h)
	return h
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]any{"status": "ok", "clients": s.hub.ClientCount()}
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Error("health check: database unreachable", "error", err)
		status = http.StatusServiceUnavailable
		body["status"] = "unavailable"
	} else if v, err := database.Version(s.db); err == nil {
		body["schema_version"] = v
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
