package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/salesflow/salesflow/internal/crm"
	"github.com/salesflow/salesflow/internal/importer"
	"github.com/salesflow/salesflow/internal/logging"
	"github.com/salesflow/salesflow/internal/schema"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

// entityInfo is the JSON shape of one importable entity type, used by the
// upload UI to render import guidelines.
type entityInfo struct {
	Type     crm.EntityType `json:"type"`
	Label    string         `json:"label"`
	Required []string       `json:"required"`
	Optional []string       `json:"optional"`
}

func (s *Server) handleListEntities(w http.ResponseWriter, r *http.Request) {
	defs := schema.All()
	infos := make([]entityInfo, 0, len(defs))
	for _, def := range defs {
		infos = append(infos, entityInfo{
			Type:     def.Type,
			Label:    def.Label,
			Required: def.RequiredColumns(),
			Optional: def.OptionalColumns(),
		})
	}
	writeJSON(w, r, infos)
}

func (s *Server) handleDownloadTemplate(w http.ResponseWriter, r *http.Request) {
	entity, err := crm.ParseEntityType(chi.URLParam(r, "entityType"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}

	body, err := schema.Template(entity)
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", schema.TemplateFileName(entity)))
	w.Write([]byte(body))
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	s.runImport(w, r, false)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	s.runImport(w, r, true)
}

// runImport executes one job synchronously and responds with its summary.
// Parse failures are part of the pipeline's result model, so they come
// back as 200 with total == 0; only request-level problems are HTTP
// errors.
func (s *Server) runImport(w http.ResponseWriter, r *http.Request, preview bool) {
	ctx := r.Context()

	entity, err := crm.ParseEntityType(chi.URLParam(r, "entityType"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)
	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, r, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	// The dedicated /preview route and a preview=1 form value are
	// equivalent ways to request a dry run.
	if r.FormValue("preview") == "1" {
		preview = true
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	source, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "read upload: "+err.Error())
		return
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		if errors.Is(err, importer.ErrTooManyImports) {
			w.Header().Set("Retry-After", "10")
			writeError(w, r, http.StatusTooManyRequests, err.Error())
			return
		}
		writeError(w, r, http.StatusServiceUnavailable, err.Error())
		return
	}
	defer s.limiter.Release()

	logger := logging.FromContext(ctx)
	job := importer.NewJob(entity, source)
	logger.Info("import started",
		"job_id", job.ID,
		"entity", entity,
		"file", header.Filename,
		"bytes", len(source),
		"preview", preview,
	)

	var result *importer.Result
	if preview {
		result, err = s.pipeline.Validate(ctx, job)
	} else {
		result, err = s.pipeline.Run(ctx, job)
	}
	if err != nil {
		// Only context cancellation reaches here.
		writeError(w, r, http.StatusServiceUnavailable, "import cancelled: "+err.Error())
		return
	}

	writeJSON(w, r, result)
}

// writeJSON encodes v and writes it with a 200 status.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode failed", "error", err)
	}
}

// writeError writes a JSON error response and logs it.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	logging.FromContext(r.Context()).Warn("request failed", "status", status, "error", message)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":%q}`, message)
}
