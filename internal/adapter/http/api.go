package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/parks-data-service/internal/catalog"
	"github.com/couchcryptid/parks-data-service/internal/pipeline"
)

const (
	maxPages      = 100
	reloadTimeout = 25 * time.Second
)

type facetsResponse struct {
	Version uint64                 `json:"version"`
	Facets  []catalog.FilterOption `json:"facets"`
}

type statsResponse struct {
	Meta  catalog.Meta  `json:"meta"`
	Stats catalog.Stats `json:"stats"`
}

type reloadResponse struct {
	Version uint64         `json:"version"`
	Status  catalog.Status `json:"status"`
	Parks   int            `json:"parks"`
}

// handleParks returns the visible slice after revealing the requested number
// of pages. The whole request is answered from one catalog snapshot.
func (s *Server) handleParks(w http.ResponseWriter, r *http.Request) {
	s.metrics.APIQueries.WithLabelValues("parks").Inc()

	pages := 1
	if raw := r.URL.Query().Get("pages"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "pages must be a positive integer")
			return
		}
		pages = min(n, maxPages)
	}

	session := catalog.NewSession(s.service.Current(), catalog.PageSize)
	session.SetSearch(r.URL.Query().Get("q"))
	session.SetFacet(r.URL.Query().Get("facet"))

	view := session.View()
	for range pages - 1 {
		if !view.HasMore {
			break
		}
		view = session.More()
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handlePark(w http.ResponseWriter, r *http.Request) {
	s.metrics.APIQueries.WithLabelValues("park").Inc()

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "park id must be an integer")
		return
	}
	park, ok := s.service.Current().Park(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("park %d not found", id))
		return
	}
	writeJSON(w, http.StatusOK, park)
}

func (s *Server) handleFacets(w http.ResponseWriter, _ *http.Request) {
	s.metrics.APIQueries.WithLabelValues("facets").Inc()

	cat := s.service.Current()
	writeJSON(w, http.StatusOK, facetsResponse{Version: cat.Version(), Facets: cat.Facets()})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.metrics.APIQueries.WithLabelValues("stats").Inc()

	cat := s.service.Current()
	writeJSON(w, http.StatusOK, statsResponse{Meta: cat.Meta(), Stats: cat.Stats()})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	s.metrics.APIQueries.WithLabelValues("export").Inc()

	q := catalog.Query{Search: r.URL.Query().Get("q"), Facet: r.URL.Query().Get("facet")}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", catalog.ExportFilename))

	if err := s.service.Current().Export(w, q); err != nil {
		// Headers are already sent; the truncated body is all we can do.
		s.logger.Warn("export write failed", "error", err)
	}
}

// handleReload runs a load outside the request's cancellation so a client
// disconnect does not abort it.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	s.metrics.APIQueries.WithLabelValues("reload").Inc()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), reloadTimeout)
	defer cancel()

	cat, err := s.service.Load(ctx)
	switch {
	case errors.Is(err, pipeline.ErrSuperseded):
		writeError(w, http.StatusConflict, "reload superseded by a newer request")
		return
	case err != nil:
		s.logger.Error("reload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "reload failed")
		return
	}
	writeJSON(w, http.StatusOK, reloadResponse{Version: cat.Version(), Status: cat.Status(), Parks: cat.Len()})
}
