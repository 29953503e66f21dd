package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/JonMunkholm/customerlookup/internal/assistant"
	"github.com/JonMunkholm/customerlookup/internal/core"
	"github.com/JonMunkholm/customerlookup/internal/logging"
	webmw "github.com/JonMunkholm/customerlookup/internal/web/middleware"
	"github.com/JonMunkholm/customerlookup/internal/web/templates"
)

var errBodyTooLarge = errors.New("request body too large")

// statusPageRecent is how many audit rows the status page shows.
const statusPageRecent = 10

// handleCustomerLookup is the assistant webhook. It detects the caller
// format, runs the lookup and answers in the caller's format. Every lookup
// outcome, including failures, is a 200 with a message the assistant can
// speak; only malformed requests get an HTTP error.
func (s *Server) handleCustomerLookup(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.Lookup.MaxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.respondError(w, r, fmt.Errorf("%w: limit %d bytes", errBodyTooLarge, maxErr.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		s.respondError(w, r, fmt.Errorf("%w: %w", assistant.ErrInvalidBody, err), http.StatusBadRequest)
		return
	}

	req, err := assistant.Detect(body)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r, req.Kind)
	out, err := s.service.Lookup(ctx, req.SearchValue)
	if err != nil {
		// Logged with its support code; the caller still gets a spoken reply.
		logError(r, err, http.StatusOK)
	}

	if err := assistant.Render(w, req, assistant.ReplyFor(out, err)); err != nil {
		logging.FromContext(r.Context()).Warn("write lookup reply", "error", err, "caller", req.Kind)
	}
}

// healthResponse is the body of GET /healthz.
type healthResponse struct {
	Status  string             `json:"status"`
	Source  string             `json:"source"`
	Audit   bool               `json:"audit"`
	Limiter core.LimiterStatus `json:"limiter"`
	Time    time.Time          `json:"time"`
}

// handleHealth reports liveness. It does not fetch the sheet.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Source:  s.service.SourceDescription(),
		Audit:   s.service.AuditEnabled(),
		Limiter: s.service.LimiterStatus(),
		Time:    time.Now().UTC(),
	})
}

// recentResponse is the body of GET /api/lookups/recent.
type recentResponse struct {
	Entries []core.LookupEntry `json:"entries"`
	Count   int                `json:"count"`
}

func (s *Server) handleRecentLookups(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", core.DefaultHistoryLimit)

	entries, err := s.service.RecentLookups(r.Context(), limit)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, core.ErrAuditDisabled) {
			status = http.StatusNotFound
		}
		s.respondError(w, r, err, status)
		return
	}

	if entries == nil {
		entries = []core.LookupEntry{}
	}
	writeJSON(w, http.StatusOK, recentResponse{Entries: entries, Count: len(entries)})
}

// handleStatusPage renders the operator landing page.
func (s *Server) handleStatusPage(w http.ResponseWriter, r *http.Request) {
	params := templates.StatusParams{
		Source:       s.service.SourceDescription(),
		Limiter:      s.service.LimiterStatus(),
		AuditEnabled: s.service.AuditEnabled(),
		Now:          time.Now(),
	}

	// Audit rows name customers, so they are shown only to operators.
	params.ShowRecent = params.AuditEnabled && webmw.HasValidAPIKey(r, &s.cfg.Security)
	if params.ShowRecent {
		recent, err := s.service.RecentLookups(r.Context(), statusPageRecent)
		if err != nil {
			params.RecentError = core.FormatUserError(err)
			logError(r, err, http.StatusOK)
		}
		params.Recent = recent
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.StatusPage(params).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Warn("render status page", "error", err)
	}
}
