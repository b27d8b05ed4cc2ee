package server

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"example.com/fitsgate/internal/advice"
	"example.com/fitsgate/internal/common"
	"example.com/fitsgate/internal/report"
	"example.com/fitsgate/internal/verify"
)

// Server coordinates HTTP handlers and manages temporary artifacts
// produced by verification requests.
type Server struct {
	artifacts   *ArtifactStore
	workDir     string
	uploadsDir  string
	advice      *advice.Store
	lang        report.Language
	concurrency int
	maxUploadMB int
	sem         chan struct{}
}

// Artifact represents a file generated or stored by the daemon.
type Artifact struct {
	ID          string
	Path        string
	Name        string
	ContentType string
	Size        int64
	Kind        string
	Sha256      string
}

// ArtifactRef is the public representation returned in API responses.
type ArtifactRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"contentType,omitempty"`
	Size        int64  `json:"size,omitempty"`
	Kind        string `json:"kind,omitempty"`
	Sha256      string `json:"sha256,omitempty"`
}

// ArtifactStore keeps track of generated artifacts for later download.
type ArtifactStore struct {
	mu      sync.RWMutex
	entries map[string]Artifact
}

// NewServer constructs a Server rooted at a temporary workspace
// directory.
func NewServer(opts Options) (*Server, error) {
	opts, lang, store, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	storageDir := opts.StorageDir
	if storageDir == "" {
		storageDir = os.TempDir()
	}
	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		return nil, err
	}
	workDir, err := os.MkdirTemp(storageDir, "fitsd-")
	if err != nil {
		return nil, err
	}
	uploadsDir := filepath.Join(workDir, "uploads")
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		os.RemoveAll(workDir)
		return nil, err
	}
	s := &Server{
		artifacts:   &ArtifactStore{entries: make(map[string]Artifact)},
		workDir:     workDir,
		uploadsDir:  uploadsDir,
		advice:      store,
		lang:        lang,
		concurrency: opts.Concurrency,
		maxUploadMB: opts.MaxUploadMB,
		sem:         make(chan struct{}, opts.Concurrency),
	}
	return s, nil
}

// Close removes any temporary state associated with the server.
func (s *Server) Close() error {
	if s == nil || s.workDir == "" {
		return nil
	}
	return os.RemoveAll(s.workDir)
}

func (s *Server) tempPath(pattern string) (string, error) {
	f, err := os.CreateTemp(s.workDir, pattern)
	if err != nil {
		return "", err
	}
	name := f.Name()
	f.Close()
	return name, nil
}

func (s *Server) addArtifact(path, displayName, contentType, kind, sha string) (Artifact, error) {
	if path == "" {
		return Artifact{}, errors.New("empty path")
	}
	info, err := os.Stat(path)
	if err != nil {
		return Artifact{}, err
	}
	id := randomID()
	art := Artifact{
		ID:          id,
		Path:        path,
		Name:        displayName,
		ContentType: contentType,
		Size:        info.Size(),
		Kind:        kind,
		Sha256:      sha,
	}
	if art.Name == "" {
		art.Name = filepath.Base(path)
	}
	if art.ContentType == "" {
		art.ContentType = guessContentType(art.Name)
	}
	s.artifacts.mu.Lock()
	s.artifacts.entries[id] = art
	s.artifacts.mu.Unlock()
	return art, nil
}

func (s *Server) getArtifact(id string) (Artifact, bool) {
	s.artifacts.mu.RLock()
	art, ok := s.artifacts.entries[id]
	s.artifacts.mu.RUnlock()
	return art, ok
}

func (s *Server) resolvePath(token string) (string, error) {
	if token == "" {
		return "", errors.New("empty input path")
	}
	if art, ok := s.getArtifact(token); ok {
		return art.Path, nil
	}
	abs := token
	if !filepath.IsAbs(token) {
		abs = filepath.Clean(token)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", err
	}
	return abs, nil
}

// verifyRequest is the body of POST /verify. Inputs may be plain
// paths or artifact IDs returned by /upload.
type verifyRequest struct {
	Inputs  []string      `json:"inputs"`
	Options VerifyOptions `json:"options"`
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	stream := r.URL.Query().Get("stream") == "true"
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid json: %v", err), http.StatusBadRequest)
		return
	}
	if len(req.Inputs) == 0 {
		http.Error(w, "inputs required", http.StatusBadRequest)
		return
	}
	opts, err := req.Options.apply()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var paths []string
	for _, in := range req.Inputs {
		resolved, err := s.resolvePath(in)
		if err != nil {
			http.Error(w, fmt.Sprintf("input resolve %s: %v", in, err), http.StatusBadRequest)
			return
		}
		paths = append(paths, resolved)
	}

	s.sem <- struct{}{}
	defer func() { <-s.sem }()

	if stream {
		s.verifyStream(w, paths, opts)
		return
	}

	sink := &verify.CollectSink{}
	ctx := verify.NewContext(opts, sink)
	ctx.SetAdvice(s.advice)
	files := make([]report.FileResult, 0, len(paths))
	for _, path := range paths {
		res := ctx.VerifyFile(path)
		fr := report.FileResult{Result: res}
		if sum, _, err := common.Sha256OfFile(path); err == nil {
			fr.Sha256 = sum
		}
		files = append(files, fr)
	}
	rep := report.BuildAcceptance(files, sink.Messages)

	arts, err := s.saveReportArtifacts(rep, sink.Messages)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	resp := struct {
		Acceptance report.Acceptance `json:"acceptance"`
		Findings   int               `json:"findings"`
		Artifacts  []ArtifactRef     `json:"artifacts"`
	}{
		Acceptance: rep,
		Findings:   len(sink.Messages),
		Artifacts:  arts,
	}
	writeJSON(w, http.StatusOK, resp)
}

// verifyStream pushes every diagnostic as one NDJSON record and closes
// with an acceptance summary record.
func (s *Server) verifyStream(w http.ResponseWriter, paths []string, opts verify.Options) {
	writer := NewNDJSONWriter(w)
	w.Header().Set("Content-Type", "application/x-ndjson")

	var collected []verify.Message
	sink := &verify.CallbackSink{Fn: func(m verify.Message) {
		collected = append(collected, m)
		_ = writer.WriteMessage(m)
	}}
	ctx := verify.NewContext(opts, sink)
	ctx.SetAdvice(s.advice)

	files := make([]report.FileResult, 0, len(paths))
	for _, path := range paths {
		res := ctx.VerifyFile(path)
		fr := report.FileResult{Result: res}
		if sum, _, err := common.Sha256OfFile(path); err == nil {
			fr.Sha256 = sum
		}
		files = append(files, fr)
	}
	rep := report.BuildAcceptance(files, collected)

	arts, err := s.saveReportArtifacts(rep, collected)
	if err != nil {
		_ = writer.WriteObject(map[string]any{"type": "error", "error": err.Error()})
		return
	}
	summary := struct {
		Type       string            `json:"type"`
		Acceptance report.Acceptance `json:"acceptance"`
		Artifacts  []ArtifactRef     `json:"artifacts"`
		Findings   int               `json:"findings"`
	}{
		Type:       "acceptance",
		Acceptance: rep,
		Artifacts:  arts,
		Findings:   len(collected),
	}
	_ = writer.WriteObject(summary)
}

func (s *Server) saveReportArtifacts(rep report.Acceptance, findings []verify.Message) ([]ArtifactRef, error) {
	diagPath, err := s.tempPath("findings-*.ndjson")
	if err != nil {
		return nil, fmt.Errorf("findings temp: %w", err)
	}
	if err := report.WriteFindingsNDJSON(diagPath, findings); err != nil {
		return nil, fmt.Errorf("write findings: %w", err)
	}
	accPath, err := s.tempPath("acceptance-*.json")
	if err != nil {
		return nil, fmt.Errorf("acceptance temp: %w", err)
	}
	if err := report.SaveAcceptanceJSON(rep, accPath); err != nil {
		return nil, fmt.Errorf("write acceptance: %w", err)
	}
	pdfPath, err := s.tempPath("acceptance-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("acceptance pdf temp: %w", err)
	}
	if err := report.SaveAcceptancePDF(rep, pdfPath, report.PDFOptions{Lang: s.lang, MaxFindings: 200}); err != nil {
		return nil, fmt.Errorf("write acceptance pdf: %w", err)
	}
	diagArt, err := s.addArtifact(diagPath, "findings.ndjson", "application/x-ndjson", "findings", "")
	if err != nil {
		return nil, fmt.Errorf("register findings: %w", err)
	}
	accArt, err := s.addArtifact(accPath, "acceptance_report.json", "application/json", "acceptance", "")
	if err != nil {
		return nil, fmt.Errorf("register acceptance: %w", err)
	}
	pdfArt, err := s.addArtifact(pdfPath, "acceptance_report.pdf", "application/pdf", "acceptance", "")
	if err != nil {
		return nil, fmt.Errorf("register acceptance pdf: %w", err)
	}
	return []ArtifactRef{toRef(diagArt), toRef(accArt), toRef(pdfArt)}, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": verify.Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleArtifactDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/artifacts/")
	if id == "" {
		writeJSON(w, http.StatusOK, s.listArtifacts())
		return
	}
	art, ok := s.getArtifact(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	f, err := os.Open(art.Path)
	if err != nil {
		http.Error(w, fmt.Sprintf("open artifact: %v", err), http.StatusInternalServerError)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		http.Error(w, fmt.Sprintf("stat artifact: %v", err), http.StatusInternalServerError)
		return
	}
	if art.ContentType != "" {
		w.Header().Set("Content-Type", art.ContentType)
	}
	w.Header().Set("Content-Length", fmt.Sprintf("%d", info.Size()))
	disposition := fmt.Sprintf("attachment; filename=\"%s\"", art.Name)
	w.Header().Set("Content-Disposition", disposition)
	io.Copy(w, f)
}

func toRef(art Artifact) ArtifactRef {
	return ArtifactRef{
		ID:          art.ID,
		Name:        art.Name,
		ContentType: art.ContentType,
		Size:        art.Size,
		Kind:        art.Kind,
		Sha256:      art.Sha256,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func guessContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	case ".ndjson":
		return "application/x-ndjson"
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	case ".fits", ".fit", ".fts":
		return "application/fits"
	default:
		return "application/octet-stream"
	}
}

func randomID() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		now := time.Now().UTC()
		return fmt.Sprintf("%d%06d", now.UnixNano(), os.Getpid())
	}
	return hex.EncodeToString(b[:])
}

func (s *Server) listArtifacts() []ArtifactRef {
	s.artifacts.mu.RLock()
	refs := make([]ArtifactRef, 0, len(s.artifacts.entries))
	for _, art := range s.artifacts.entries {
		refs = append(refs, toRef(art))
	}
	s.artifacts.mu.RUnlock()
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs
}
