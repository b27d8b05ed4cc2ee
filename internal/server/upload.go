package server

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"example.com/fitsgate/internal/common"
)

// fitsExtensions lists the file suffixes accepted for verification
// uploads. Anything else is refused before it touches the work dir.
var fitsExtensions = map[string]bool{
	".fits": true,
	".fit":  true,
	".fts":  true,
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	limit := int64(s.maxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		http.Error(w, fmt.Sprintf("parse multipart: %v", err), http.StatusBadRequest)
		return
	}
	if r.MultipartForm == nil {
		http.Error(w, "no files provided", http.StatusBadRequest)
		return
	}
	var refs []ArtifactRef
	for _, files := range r.MultipartForm.File {
		for _, fh := range files {
			ref, err := s.saveFITSUpload(fh)
			if err != nil {
				http.Error(w, fmt.Sprintf("save upload %s: %v", fh.Filename, err), http.StatusBadRequest)
				return
			}
			refs = append(refs, ref)
		}
	}
	if len(refs) == 0 {
		http.Error(w, "no files uploaded", http.StatusBadRequest)
		return
	}
	resp := struct {
		Files []ArtifactRef `json:"files"`
	}{Files: refs}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) saveFITSUpload(fh *multipart.FileHeader) (ArtifactRef, error) {
	if fh == nil {
		return ArtifactRef{}, fmt.Errorf("nil file header")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !fitsExtensions[ext] {
		return ArtifactRef{}, fmt.Errorf("unsupported file type %q", ext)
	}
	src, err := fh.Open()
	if err != nil {
		return ArtifactRef{}, err
	}
	defer src.Close()
	dest, err := os.CreateTemp(s.uploadsDir, "upload-*"+ext)
	if err != nil {
		return ArtifactRef{}, err
	}
	sum := common.NewHasher()
	if _, err := io.Copy(io.MultiWriter(dest, sum), src); err != nil {
		dest.Close()
		os.Remove(dest.Name())
		return ArtifactRef{}, err
	}
	dest.Close()
	art, err := s.addArtifact(dest.Name(), fh.Filename, guessContentType(fh.Filename), "upload", sum.Sum())
	if err != nil {
		return ArtifactRef{}, err
	}
	return toRef(art), nil
}
