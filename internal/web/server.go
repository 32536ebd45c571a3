package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/gorilla/mux"

	"github.com/digitalsoupteam/rwa-platform-sub000/internal/logger"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/pool"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/service"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/state"
	"github.com/digitalsoupteam/rwa-platform-sub000/internal/types"
)

var webLogger = logger.GetForComponent("web_server")

// WebServer exposes the read surface of hosted pools: reserve snapshots,
// tranche schedules, flags and the two quote functions. Read-only by design;
// value movement happens through the pool engine, never over HTTP.
type WebServer struct {
	router *mux.Router
	port   string
	svc    *service.Service
}

// NewWebServer creates a new web server instance
func NewWebServer(port string, svc *service.Service) *WebServer {
	if port == "" {
		port = "8080"
	}

	server := &WebServer{
		router: mux.NewRouter(),
		port:   port,
		svc:    svc,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all HTTP routes
func (ws *WebServer) setupRoutes() {
	// Health endpoint (direct route)
	ws.router.HandleFunc("/health", ws.handleHealth).Methods("GET")

	// API endpoints
	api := ws.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", ws.handleHealth).Methods("GET")
	api.HandleFunc("/pools", ws.handleGetPools).Methods("GET")
	api.HandleFunc("/pools/{id}", ws.handleGetPool).Methods("GET")
	api.HandleFunc("/pools/{id}/tranches", ws.handleGetTranches).Methods("GET")
	api.HandleFunc("/pools/{id}/quote/mint", ws.handleQuoteMint).Methods("GET")
	api.HandleFunc("/pools/{id}/quote/burn", ws.handleQuoteBurn).Methods("GET")
	api.HandleFunc("/pools/{id}/receipts", ws.handleGetPoolReceipts).Methods("GET")
	api.HandleFunc("/pools/{id}/snapshots/latest", ws.handleGetLatestSnapshot).Methods("GET")
	api.HandleFunc("/receipts", ws.handleGetReceipts).Methods("GET")

	// Add CORS middleware
	ws.router.Use(ws.corsMiddleware)
	ws.router.Use(ws.loggingMiddleware)
}

// Start starts the web server
func (ws *WebServer) Start() error {
	webLogger.Info().Str("port", ws.port).Msg("Starting web server")

	server := &http.Server{
		Addr:         ":" + ws.port,
		Handler:      ws.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server.ListenAndServe()
}

// handleHealth returns server health status
func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbHealthy := true
	if err := state.TestDBConnection(); err != nil {
		dbHealthy = false
	}

	status := "OK"
	statusCode := http.StatusOK
	if !dbHealthy {
		status = "DEGRADED"
		statusCode = http.StatusServiceUnavailable
	}

	response := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"component": map[string]interface{}{
			"name":    "rwa-pool-settlement-engine",
			"version": "1.0.0",
		},
		"pool_status": map[string]interface{}{
			"database_healthy": dbHealthy,
			"pools_hosted":     len(ws.svc.Pools()),
		},
	}

	ws.writeJSONResponse(w, statusCode, response)
}

// handleGetPools returns snapshots of all hosted pools
func (ws *WebServer) handleGetPools(w http.ResponseWriter, r *http.Request) {
	pools := ws.svc.Pools()
	snapshots := make([]types.PoolSnapshot, 0, len(pools))
	for _, pl := range pools {
		snapshots = append(snapshots, pl.Snapshot())
	}

	response := map[string]interface{}{
		"pools": snapshots,
		"count": len(snapshots),
	}

	ws.writeJSONResponse(w, http.StatusOK, response)
}

// handleGetPool returns a specific pool snapshot by ID
func (ws *WebServer) handleGetPool(w http.ResponseWriter, r *http.Request) {
	pl, ok := ws.lookupPool(w, r)
	if !ok {
		return
	}
	ws.writeJSONResponse(w, http.StatusOK, pl.Snapshot())
}

// handleGetTranches returns both tranche schedules of a pool
func (ws *WebServer) handleGetTranches(w http.ResponseWriter, r *http.Request) {
	pl, ok := ws.lookupPool(w, r)
	if !ok {
		return
	}

	response := map[string]interface{}{
		"outgoing": pl.OutgoingTranches(),
		"incoming": pl.IncomingTranches(),
	}

	ws.writeJSONResponse(w, http.StatusOK, response)
}

// handleQuoteMint prices a mint without side effects
func (ws *WebServer) handleQuoteMint(w http.ResponseWriter, r *http.Request) {
	pl, ok := ws.lookupPool(w, r)
	if !ok {
		return
	}

	rwaAmount, ok := parseAmountParam(r, "rwa_amount")
	if !ok {
		ws.writeErrorResponse(w, http.StatusBadRequest, "Invalid or missing rwa_amount")
		return
	}
	allowPartial := r.URL.Query().Get("allow_partial") == "true"

	quote, err := pl.QuoteMint(rwaAmount, allowPartial)
	if err != nil {
		ws.writeErrorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ws.writeJSONResponse(w, http.StatusOK, quote)
}

// handleQuoteBurn prices a burn without side effects
func (ws *WebServer) handleQuoteBurn(w http.ResponseWriter, r *http.Request) {
	pl, ok := ws.lookupPool(w, r)
	if !ok {
		return
	}

	rwaAmount, ok := parseAmountParam(r, "rwa_amount")
	if !ok {
		ws.writeErrorResponse(w, http.StatusBadRequest, "Invalid or missing rwa_amount")
		return
	}

	quote, err := pl.QuoteBurn(rwaAmount)
	if err != nil {
		ws.writeErrorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ws.writeJSONResponse(w, http.StatusOK, quote)
}

// handleGetReceipts returns recent operation receipts across all pools
func (ws *WebServer) handleGetReceipts(w http.ResponseWriter, r *http.Request) {
	receipts, err := state.ListRecentReceipts(parseLimit(r))
	if err != nil {
		webLogger.Error().Err(err).Msg("Failed to get recent receipts")
		ws.writeErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve receipts")
		return
	}

	response := map[string]interface{}{
		"receipts": receipts,
		"count":    len(receipts),
	}

	ws.writeJSONResponse(w, http.StatusOK, response)
}

// handleGetPoolReceipts returns recent operation receipts for one pool
func (ws *WebServer) handleGetPoolReceipts(w http.ResponseWriter, r *http.Request) {
	pl, ok := ws.lookupPool(w, r)
	if !ok {
		return
	}

	receipts, err := state.ListPoolReceipts(pl.ID(), parseLimit(r))
	if err != nil {
		webLogger.Error().Err(err).Str("poolId", string(pl.ID())).Msg("Failed to get pool receipts")
		ws.writeErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve receipts")
		return
	}

	response := map[string]interface{}{
		"receipts": receipts,
		"count":    len(receipts),
	}

	ws.writeJSONResponse(w, http.StatusOK, response)
}

// handleGetLatestSnapshot returns the newest persisted snapshot of a pool,
// as opposed to the live view the other endpoints serve.
func (ws *WebServer) handleGetLatestSnapshot(w http.ResponseWriter, r *http.Request) {
	pl, ok := ws.lookupPool(w, r)
	if !ok {
		return
	}

	snapshot, err := state.LatestPoolSnapshot(pl.ID())
	if err != nil {
		webLogger.Error().Err(err).Str("poolId", string(pl.ID())).Msg("Failed to load latest snapshot")
		ws.writeErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve snapshot")
		return
	}
	if snapshot == nil {
		ws.writeErrorResponse(w, http.StatusNotFound, "No persisted snapshot for pool")
		return
	}

	ws.writeJSONResponse(w, http.StatusOK, snapshot)
}

func (ws *WebServer) lookupPool(w http.ResponseWriter, r *http.Request) (*pool.Pool, bool) {
	vars := mux.Vars(r)
	pl, ok := ws.svc.Pool(types.PoolID(vars["id"]))
	if !ok {
		ws.writeErrorResponse(w, http.StatusNotFound, "Pool not found")
		return nil, false
	}
	return pl, true
}

func parseAmountParam(r *http.Request, key string) (sdkmath.Int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return sdkmath.ZeroInt(), false
	}
	v, ok := sdkmath.NewIntFromString(raw)
	if !ok || !v.IsPositive() {
		return sdkmath.ZeroInt(), false
	}
	return v, true
}

func parseLimit(r *http.Request) int {
	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 && parsedLimit <= 100 {
			limit = parsedLimit
		}
	}
	return limit
}

// writeJSONResponse writes a JSON response
func (ws *WebServer) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		webLogger.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeErrorResponse writes an error response
func (ws *WebServer) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	response := map[string]interface{}{
		"error":     true,
		"message":   message,
		"timestamp": time.Now().UTC(),
	}

	ws.writeJSONResponse(w, statusCode, response)
}

// corsMiddleware adds CORS headers
func (ws *WebServer) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests
func (ws *WebServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create a response writer wrapper to capture status code
		wrapper := &responseWriterWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		duration := time.Since(start)

		webLogger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote_addr", r.RemoteAddr).
			Int("status", wrapper.statusCode).
			Dur("duration", duration).
			Msg("HTTP request")
	})
}

// responseWriterWrapper wraps http.ResponseWriter to capture status code
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
