// Package api exposes the most recent render outputs over HTTP so a
// reviewer can eyeball the produced PNG/SVG without copying files around.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"
)

// Server represents the output-preview server
type Server struct {
	router    *mux.Router
	outputDir string
}

// NewServer creates a new preview server instance serving files from
// outputDir
func NewServer(outputDir string) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		outputDir: outputDir,
	}
	s.routes()
	return s
}

// routes sets up the API routes
func (s *Server) routes() {
	s.router.HandleFunc("/api/v1/health", s.healthCheck).Methods("GET")
	s.router.HandleFunc("/api/v1/outputs", s.listOutputs).Methods("GET")
	s.router.PathPrefix("/outputs/").Handler(
		http.StripPrefix("/outputs/", http.FileServer(http.Dir(s.outputDir)))).Methods("GET")
}

// Handler returns the root HTTP handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the preview server
func (s *Server) Start(addr string) error {
	log.Printf("Serving render outputs from %s on %s", s.outputDir, addr)
	return http.ListenAndServe(addr, s.router)
}

// healthCheck handles the health check endpoint
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	}); err != nil {
		log.Printf("Failed to encode health check response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

// listOutputs reports the files currently present in the output directory
func (s *Server) listOutputs(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.outputDir)
	if err != nil {
		log.Printf("Failed to list output directory: %v", err)
		http.Error(w, "failed to list outputs", http.StatusInternalServerError)
		return
	}

	type output struct {
		Name string `json:"name"`
		Size int64  `json:"size"`
		URL  string `json:"url"`
	}
	outputs := []output{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		outputs = append(outputs, output{
			Name: entry.Name(),
			Size: info.Size(),
			URL:  "/outputs/" + filepath.ToSlash(entry.Name()),
		})
	}

	if err := json.NewEncoder(w).Encode(outputs); err != nil {
		log.Printf("Failed to encode outputs response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}
