package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/KrUtHi96/sidebyside/internal/compare"
	"github.com/KrUtHi96/sidebyside/internal/extract"
	"github.com/KrUtHi96/sidebyside/internal/pdfsource"
	"github.com/KrUtHi96/sidebyside/internal/report"
	"github.com/KrUtHi96/sidebyside/internal/store"
)

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	// Limit total request size: two documents plus form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, 2*s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	baseData, err := s.readUpload(r, "base")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	comparedData, err := s.readUpload(r, "compared")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	for side, data := range map[string][]byte{"base": baseData, "compared": comparedData} {
		if err := pdfsource.Validate(data); err != nil {
			jsonError(w, fmt.Sprintf("%s document is not a readable PDF", side), http.StatusUnprocessableEntity)
			return
		}
	}

	opts := s.cfg.ExtractOptions()
	ctx := r.Context()

	// The two pipelines share nothing; run them side by side.
	var (
		wg               sync.WaitGroup
		baseDoc, compDoc *extract.Document
		baseErr, compErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		baseDoc, baseErr = pdfsource.Extract(ctx, baseData, extract.SideBase, opts, s.log)
	}()
	go func() {
		defer wg.Done()
		compDoc, compErr = pdfsource.Extract(ctx, comparedData, extract.SideCompared, opts, s.log)
	}()
	wg.Wait()

	if baseErr != nil {
		jsonError(w, "failed to extract base document: "+baseErr.Error(), http.StatusUnprocessableEntity)
		return
	}
	if compErr != nil {
		jsonError(w, "failed to extract compared document: "+compErr.Error(), http.StatusUnprocessableEntity)
		return
	}

	result := compare.Compare(baseDoc, compDoc)

	basePath, err := s.parkUpload(baseData, "base")
	if err != nil {
		jsonError(w, "failed to persist upload", http.StatusInternalServerError)
		return
	}
	comparedPath, err := s.parkUpload(comparedData, "compared")
	if err != nil {
		os.Remove(basePath)
		jsonError(w, "failed to persist upload", http.StatusInternalServerError)
		return
	}

	id := s.store.Save(result, basePath, comparedPath)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"id":         id,
		"result_url": fmt.Sprintf("/api/compare/%s", id),
		"export_url": fmt.Sprintf("/api/compare/%s/export", id),
		"sections":   len(result.Sections),
		"rows":       len(result.Rows),
	})
}

func (s *Server) handleGetComparison(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "resultID")
	stored, state := s.store.GetState(id)
	if stored == nil {
		s.respondAbsent(w, state)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stored.Result)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "resultID")
	stored, state := s.store.GetState(id)
	if stored == nil {
		s.respondAbsent(w, state)
		return
	}

	granularity, ok := compare.ParseGranularity(r.URL.Query().Get("granularity"))
	if !ok {
		jsonError(w, "granularity must be word, sentence or paragraph", http.StatusBadRequest)
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "pdf":
		data, err := report.PDF(stored.Result, granularity)
		if err != nil {
			jsonError(w, "failed to render report", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="comparison-%s.pdf"`, id))
		w.Write(data)
	case "html":
		data, err := report.HTML(stored.Result, granularity)
		if err != nil {
			jsonError(w, "failed to render report", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(data)
	case "markdown", "md":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write(report.Markdown(stored.Result, granularity))
	default:
		jsonError(w, "format must be pdf, html or markdown", http.StatusBadRequest)
	}
}

func (s *Server) respondAbsent(w http.ResponseWriter, state store.State) {
	if state == store.StateExpired {
		jsonError(w, "comparison has expired", http.StatusGone)
		return
	}
	jsonError(w, "comparison not found", http.StatusNotFound)
}

func (s *Server) readUpload(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("%s file is required", field)
	}
	defer file.Close()
	return s.readLimited(file, field)
}

func (s *Server) readLimited(file multipart.File, field string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s file", field)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("%s file exceeds max size (%d bytes)", field, s.cfg.MaxUploadBytes)
	}
	return data, nil
}

// parkUpload writes an uploaded document to the temp dir so the viewer can
// fetch the original pages; the store removes it on eviction.
func (s *Server) parkUpload(data []byte, side string) (string, error) {
	f, err := os.CreateTemp(s.cfg.TempDir, "sidebyside-"+side+"-*.pdf")
	if err != nil {
		return "", err
	}
	path := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
