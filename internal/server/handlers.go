package server

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/arden-renewables/sitescope/internal/geometry"
	"github.com/arden-renewables/sitescope/internal/ingest"
	"github.com/arden-renewables/sitescope/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"constraints": s.catalog.All(),
	})
}

// handleUploadBoundary accepts a multipart upload under the "file"
// field, parses it, unions multi-feature files into one boundary, and
// stores the result as the project's canonical boundary.
func (s *Server) handleUploadBoundary(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		respondError(w, http.StatusBadRequest, "expected multipart form with a file field")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close() //nolint:errcheck

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unreadable upload")
		return
	}

	fc, err := ingest.Parse(header.Filename, data)
	if err != nil {
		switch {
		case ingest.IsUnsupportedFormat(err):
			respondError(w, http.StatusUnsupportedMediaType, "unsupported file format")
		case ingest.IsParseErr(err):
			respondError(w, http.StatusUnprocessableEntity, "no valid geometry found in file")
		default:
			respondError(w, http.StatusBadRequest, "file could not be parsed")
		}
		return
	}

	boundary := fc.Features[0]
	if len(fc.Features) > 1 {
		boundary, err = geometry.Union(fc.Features)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, "uploaded features cannot form a single boundary")
			return
		}
	}
	if boundary.Name == "" {
		boundary.Name = projectID
	}

	if err := s.store.SaveBoundary(r.Context(), projectID, boundary); err != nil {
		zap.L().Error("server: save boundary", zap.String("project_id", projectID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "boundary could not be saved")
		return
	}

	bbox, err := geometry.BoundingBox(geometry.FeatureCollection{Features: []geometry.Feature{boundary}})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "boundary bounding box failed")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"project_id":    projectID,
		"feature_count": len(fc.Features),
		"bbox":          bbox,
		"boundary":      boundary,
	})
}

func (s *Server) handleGetBoundary(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	boundary, err := s.store.FetchProjectBoundary(r.Context(), projectID)
	if err != nil {
		zap.L().Error("server: fetch boundary", zap.String("project_id", projectID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "boundary lookup failed")
		return
	}
	if boundary == nil {
		respondError(w, http.StatusNotFound, "no boundary uploaded for this project")
		return
	}
	respondJSON(w, http.StatusOK, boundary)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	result, err := s.runner.Run(r.Context(), projectID)
	if err != nil {
		if store.IsNoBoundary(err) {
			respondError(w, http.StatusNotFound, "no boundary uploaded for this project")
			return
		}
		zap.L().Error("server: analysis run failed", zap.String("project_id", projectID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "analysis failed")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	snap, err := s.store.LatestSnapshot(r.Context(), projectID)
	if err != nil {
		zap.L().Error("server: fetch snapshot", zap.String("project_id", projectID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "snapshot lookup failed")
		return
	}
	if snap == nil {
		respondError(w, http.StatusNotFound, "no analysis snapshot for this project")
		return
	}
	respondJSON(w, http.StatusOK, snap)
}
