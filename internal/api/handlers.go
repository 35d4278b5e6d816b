package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"aidetect/internal/detect"
	deterr "aidetect/internal/errors"
	"aidetect/internal/storage"
	"aidetect/internal/version"
)

// analyzeRequest is the POST /api/analyze body. Code is a pointer so a
// request that omits the field entirely can be rejected while an empty
// string is still a valid input.
type analyzeRequest struct {
	Code     *string `json:"code"`
	Language string  `json:"language,omitempty"`
	Filename string  `json:"filename,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, deterr.New(deterr.OversizedInput, "request body exceeds upload limit", err))
			return
		}
		WriteError(w, deterr.New(deterr.InvalidRequest, "malformed JSON body", err))
		return
	}
	if req.Code == nil {
		WriteError(w, deterr.New(deterr.InvalidRequest, "missing required field: code", nil))
		return
	}
	if int64(len(*req.Code)) > s.cfg.Analysis.MaxFileBytes {
		WriteError(w, deterr.New(deterr.OversizedInput, "source text exceeds analysis limit", nil).
			WithDetails(map[string]int64{"limit_bytes": s.cfg.Analysis.MaxFileBytes}))
		return
	}

	res, err := s.engine.Analyze(r.Context(), detect.Request{
		Code:     *req.Code,
		Language: req.Language,
		Filename: req.Filename,
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type batchRequest struct {
	Files []analyzeRequest `json:"files"`
}

type batchResponse struct {
	Results []*detect.AnalysisResult `json:"results"`
}

func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)

	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, deterr.New(deterr.OversizedInput, "request body exceeds upload limit", err))
			return
		}
		WriteError(w, deterr.New(deterr.InvalidRequest, "malformed JSON body", err))
		return
	}
	if len(req.Files) == 0 {
		WriteError(w, deterr.New(deterr.InvalidRequest, "files list is empty", nil))
		return
	}

	reqs := make([]detect.Request, len(req.Files))
	for i, f := range req.Files {
		if f.Code == nil {
			WriteError(w, deterr.New(deterr.InvalidRequest, "missing required field: code", nil).
				WithDetails(map[string]int{"index": i}))
			return
		}
		if int64(len(*f.Code)) > s.cfg.Analysis.MaxFileBytes {
			WriteError(w, deterr.New(deterr.OversizedInput, "source text exceeds analysis limit", nil).
				WithDetails(map[string]int{"index": i}))
			return
		}
		reqs[i] = detect.Request{Code: *f.Code, Language: f.Language, Filename: f.Filename}
	}

	results, err := s.engine.AnalyzeMany(r.Context(), reqs)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batchResponse{Results: results})
}

type historyResponse struct {
	Records []storage.Record `json:"records"`
	Total   int              `json:"total"`
	Page    int              `json:"page"`
	PerPage int              `json:"per_page"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusOK, historyResponse{Records: []storage.Record{}, Page: 1, PerPage: 50})
		return
	}

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 50)

	records, total, err := s.store.ListAnalyses(r.Context(), page, perPage)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{
		Records: records,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusOK, &storage.Stats{
			ByLanguage:    map[string]int{},
			AnalysesByDay: map[string]int{},
		})
		return
	}

	stats, err := s.store.GetStats(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
