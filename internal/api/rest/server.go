package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Server represents the REST API server
type Server struct {
	server *http.Server
}

// NewRouter builds the API routes
func NewRouter(handler *Handler, scrape *ScrapeHandler) *mux.Router {
	router := mux.NewRouter()

	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/lineups", handler.GetLineups).Methods("GET")
	api.HandleFunc("/injuries", handler.GetInjuries).Methods("GET")
	api.HandleFunc("/news", handler.GetNews).Methods("GET")
	api.HandleFunc("/odds", handler.GetOdds).Methods("GET")
	api.HandleFunc("/teams", handler.GetTeams).Methods("GET")

	api.HandleFunc("/runs", handler.GetRuns).Methods("GET")
	api.HandleFunc("/runs/{runID}", handler.GetRun).Methods("GET")

	api.HandleFunc("/scrape/{source}", scrape.HandleScrape).Methods("POST", "OPTIONS")

	return router
}

// NewServer creates a new REST API server
func NewServer(port string, handler *Handler, scrape *ScrapeHandler) *Server {
	return &Server{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%s", port),
			Handler:           NewRouter(handler, scrape),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
