package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sedes-ce/sedesgo/internal/config"
	"github.com/sedes-ce/sedesgo/internal/database"
	"github.com/sedes-ce/sedesgo/internal/middleware"
	"github.com/sedes-ce/sedesgo/internal/pdfextract"
	"github.com/sedes-ce/sedesgo/internal/photos"
	"github.com/sedes-ce/sedesgo/internal/relatorio"
	"github.com/sedes-ce/sedesgo/internal/storage/remote"
	"github.com/sedes-ce/sedesgo/internal/websocket"
)

// Deps bundles everything the HTTP layer needs
type Deps struct {
	Config    *config.Config
	DB        *database.DB
	Service   *relatorio.Service
	Remote    *remote.Store
	Extractor *pdfextract.Extractor
	Uploader  *photos.Uploader
	Hub       *websocket.Hub
	Logger    *zap.Logger
}

// Router wraps the mux router and the service dependencies
type Router struct {
	*mux.Router
	deps Deps
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(deps Deps) *Router {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	r := &Router{
		Router: mux.NewRouter(),
		deps:   deps,
	}

	// Health check and metrics
	r.HandleFunc("/health", r.healthCheck).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Dashboard event stream
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		websocket.ServeWs(deps.Hub, w, req)
	})

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")
	auth.HandleFunc("/register", r.register).Methods("POST")

	// API routes (protected)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth(deps.Config.JWTSecret))

	api.HandleFunc("/atendimentos", r.createAtendimento).Methods("POST")
	api.HandleFunc("/atendimentos", r.getRelatorioData).Methods("GET")

	api.HandleFunc("/relatorios-consolidados", r.listRelatoriosConsolidados).Methods("GET")
	api.HandleFunc("/relatorios-consolidados", r.saveRelatorioConsolidado).Methods("POST")
	api.HandleFunc("/relatorios-consolidados/{id}/pdf", r.downloadRelatorioPDF).Methods("GET")

	api.HandleFunc("/importar-pdf", r.importPDF).Methods("POST")
	api.HandleFunc("/unidades", r.listUnidades).Methods("GET")

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
