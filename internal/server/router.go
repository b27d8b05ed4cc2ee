package server

import "net/http"

// NewRouter wires HTTP routes to the server's handlers.
func NewRouter(s *Server) (http.Handler, error) {
	mux := http.NewServeMux()
	mux.HandleFunc("/verify", s.handleVerify)
	mux.HandleFunc("/upload", s.handleUpload)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/artifacts/", s.handleArtifactDownload)
	ui, err := newUIHandler()
	if err != nil {
		return nil, err
	}
	mux.Handle("/", ui)
	return mux, nil
}
