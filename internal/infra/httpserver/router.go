package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appanalyses "github.com/lexbharat/lexbharat/internal/application/analyses"
	appchat "github.com/lexbharat/lexbharat/internal/application/chatflow"
	appdocs "github.com/lexbharat/lexbharat/internal/application/documents"
	domanalysis "github.com/lexbharat/lexbharat/internal/domain/analysis"
	domchat "github.com/lexbharat/lexbharat/internal/domain/chat"
	domdoc "github.com/lexbharat/lexbharat/internal/domain/document"
	"github.com/lexbharat/lexbharat/internal/middleware"
)

// maxUploadBytes caps the multipart body; legal PDFs are rarely above a
// few megabytes.
const maxUploadBytes = 25 << 20

type Router struct {
	docsSvc     *appdocs.Service
	analysesSvc *appanalyses.Service
	chatSvc     *appchat.Service
}

func NewRouter(docsSvc *appdocs.Service, analysesSvc *appanalyses.Service, chatSvc *appchat.Service, health http.HandlerFunc) http.Handler {
	r := &Router{docsSvc: docsSvc, analysesSvc: analysesSvc, chatSvc: chatSvc}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	mux.Use(middleware.LoggingMiddleware)

	if health != nil {
		mux.Get("/health", health)
	}
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/documents", r.wrap(r.handleUpload))
		rt.Get("/documents", r.wrap(r.handleListAnalyses))
		rt.Get("/documents/*", r.wrap(r.handleAnalysisStatus))
		rt.Get("/storage/buckets", r.wrap(r.handleListBuckets))
		rt.Get("/storage/check", r.wrap(r.handleStorageCheck))
		rt.With(middleware.RateLimitMiddleware(10, 1)).
			Post("/chat", r.wrap(r.handleChat))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap maps domain errors to HTTP status codes in one place
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		switch {
		case errors.Is(err, domdoc.ErrInvalidInput), errors.Is(err, domchat.ErrEmptyPrompt):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domanalysis.ErrNotFound):
			writeError(w, http.StatusNotFound, "no analysis data available")
		case errors.Is(err, domchat.ErrUpstream):
			writeError(w, http.StatusBadGateway, "failed to process request")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
	}
}

// POST /v1/documents
// multipart form, field "pdfFile"; responds {"documentId": "<key>"}
func (r *Router) handleUpload(w http.ResponseWriter, req *http.Request) error {
	req.Body = http.MaxBytesReader(w, req.Body, maxUploadBytes)
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		return domdoc.ErrInvalidInput
	}
	file, header, err := req.FormFile("pdfFile")
	if err != nil {
		return domdoc.ErrInvalidInput
	}
	defer file.Close()

	res, err := r.docsSvc.Upload(req.Context(), appdocs.UploadCommand{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, res)
}

// GET /v1/documents/{id...}/analysis
// Document ids contain slashes (they are object keys), so the route uses a
// wildcard and strips the trailing /analysis segment by hand. The id is
// read from the decoded URL path rather than the chi wildcard param, which
// can hold a still-escaped value when the request path needed escaping.
func (r *Router) handleAnalysisStatus(w http.ResponseWriter, req *http.Request) error {
	id, ok := analysisDocID(strings.TrimPrefix(req.URL.Path, "/v1/documents/"))
	if !ok {
		http.NotFound(w, req)
		return nil
	}

	status, err := r.analysesSvc.Get(req.Context(), domanalysis.DocumentID(id))
	if errors.Is(err, domanalysis.ErrIncomplete) {
		return writeJSON(w, http.StatusAccepted, map[string]any{
			"status":  "processing",
			"missing": status.Missing,
		})
	}
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, status.Record)
}

// GET /v1/documents?page=&page_size=
func (r *Router) handleListAnalyses(w http.ResponseWriter, req *http.Request) error {
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	list, err := r.analysesSvc.List(req.Context(), page, size)
	if err != nil {
		return err
	}
	if list == nil {
		// an empty page must encode as [], not null
		list = []*domanalysis.Record{}
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"count":     len(list),
		"documents": list,
	})
}

// POST /v1/chat
// Body: {"message": "..."}; responds {"response": "..."}
func (r *Router) handleChat(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return domchat.ErrEmptyPrompt
	}

	text, err := r.chatSvc.Ask(req.Context(), body.Message)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]string{"response": text})
}

// GET /v1/storage/buckets
func (r *Router) handleListBuckets(w http.ResponseWriter, req *http.Request) error {
	buckets, err := r.docsSvc.Buckets(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"total_buckets":     len(buckets),
		"available_buckets": buckets,
	})
}

// GET /v1/storage/check
func (r *Router) handleStorageCheck(w http.ResponseWriter, req *http.Request) error {
	if err := r.docsSvc.CheckStorage(req.Context()); err != nil {
		return writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"success": false,
			"message": err.Error(),
		})
	}
	return writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// analysisDocID extracts the document id from a "<id>/analysis" wildcard.
func analysisDocID(wildcard string) (string, bool) {
	const suffix = "/analysis"
	if !strings.HasSuffix(wildcard, suffix) {
		return "", false
	}
	id := strings.TrimSuffix(wildcard, suffix)
	if id == "" {
		return "", false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
