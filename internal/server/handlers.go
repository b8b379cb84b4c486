package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkgscope/frontier/pkg/cache"
	apperrors "github.com/pkgscope/frontier/pkg/errors"
	"github.com/pkgscope/frontier/pkg/frontier"
	"github.com/pkgscope/frontier/pkg/httputil"
	"github.com/pkgscope/frontier/pkg/observability"
	"github.com/pkgscope/frontier/pkg/pkggraph"
	"github.com/pkgscope/frontier/pkg/store"
)

// analyzeRequest is the JSON body for POST /v1/analyze.
type analyzeRequest struct {
	// Graph is the dependency graph in the interchange format produced by
	// `frontier parse`.
	Graph json.RawMessage `json:"graph"`

	// PackageID is the case-sensitive substring identifying the target
	// package. It must match exactly one node ID in the graph.
	PackageID string `json:"package_id"`

	// Skip lists substrings whose matching packages are pruned from the
	// traversal together with everything reachable only through them.
	Skip []string `json:"skip,omitempty"`
}

// analyzeResponse is the JSON body returned by POST /v1/analyze.
type analyzeResponse struct {
	ID     string           `json:"id"`
	Cached bool             `json:"cached"`
	Report *frontier.Report `json:"report"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if err := apperrors.ValidatePackageName(req.PackageID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if len(req.Graph) == 0 {
		httputil.WriteError(w, apperrors.New(apperrors.ErrCodeInvalidGraph, "request is missing the graph"))
		return
	}

	g, err := pkggraph.ReadJSON(bytes.NewReader(req.Graph))
	if err != nil {
		httputil.WriteError(w, apperrors.Wrap(apperrors.ErrCodeInvalidGraph, err, "invalid dependency graph"))
		return
	}

	graphHash := cache.Hash(req.Graph)
	key := cache.ReportKey(graphHash, req.PackageID, req.Skip)

	if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "report")
		var rec store.Record
		if err := json.Unmarshal(data, &rec); err == nil {
			httputil.WriteJSON(w, http.StatusOK, analyzeResponse{ID: rec.ID, Cached: true, Report: rec.Report})
			return
		}
		// Corrupt cache entries fall through to recompute.
		s.log.Warn("discarding corrupt cache entry", "key", key)
	}
	observability.Cache().OnCacheMiss(ctx, "report")

	target, err := frontier.ResolveTarget(g, req.PackageID)
	if err != nil {
		s.writeTargetError(w, err)
		return
	}

	start := time.Now()
	observability.Analysis().OnResolveStart(ctx, req.PackageID)
	report, err := frontier.Resolve(g, target, frontier.SkipPredicate(req.Skip), frontier.Options{})
	if err != nil {
		observability.Analysis().OnResolveComplete(ctx, req.PackageID, 0, time.Since(start), err)
		httputil.WriteError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "analysis failed"))
		return
	}
	observability.Analysis().OnResolveComplete(ctx, req.PackageID, report.Crossings(), time.Since(start), nil)

	rec := store.Record{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		PackageID: req.PackageID,
		Skips:     req.Skip,
		GraphHash: graphHash,
		Report:    report,
	}
	if err := s.store.Save(ctx, rec); err != nil {
		// Archival is best effort; the analysis already succeeded.
		s.log.Error("archiving report failed", "id", rec.ID, "err", err)
	}
	if data, err := json.Marshal(rec); err == nil {
		if err := s.cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			s.log.Warn("caching report failed", "key", key, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "report", len(data))
		}
	}

	httputil.WriteJSON(w, http.StatusOK, analyzeResponse{ID: rec.ID, Report: report})
}

// writeTargetError maps a target resolution failure onto the API error
// shape, attaching the full candidate list when the substring was
// ambiguous.
func (s *Server) writeTargetError(w http.ResponseWriter, err error) {
	var ambiguous *frontier.AmbiguousTargetError
	if !errors.As(err, &ambiguous) {
		httputil.WriteError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "target resolution failed"))
		return
	}

	code := apperrors.ErrCodeAmbiguousTarget
	if len(ambiguous.Matches) == 0 {
		code = apperrors.ErrCodeTargetNotFound
	}
	httputil.WriteErrorDetails(w, apperrors.New(code, "%s", ambiguous.Error()), map[string]any{
		"substring":  ambiguous.Substring,
		"candidates": ambiguous.Matches,
	})
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httputil.WriteError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid limit: %q", raw))
			return
		}
		limit = n
	}

	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "listing reports failed"))
		return
	}
	if recs == nil {
		recs = []store.Record{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"reports": recs})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		httputil.WriteError(w, apperrors.New(apperrors.ErrCodeReportNotFound, "no report with ID %s", id))
		return
	}
	if err != nil {
		httputil.WriteError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "loading report failed"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}
