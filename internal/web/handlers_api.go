package web

import (
	"context"
	"net/http"
	"time"

	"github.com/JonMunkholm/stockview/internal/stock"
)

// StockPageResponse is one page of the filtered stock list.
type StockPageResponse struct {
	Items    []stock.Record `json:"items"`
	Page     int            `json:"page"`
	Pages    int            `json:"pages"`
	Total    int            `json:"total"`
	PageSize int            `json:"pageSize"`
}

// handleAPIStock serves GET /api/stock?search=&from=&to=&page=.
// Every call reads the data source afresh; no session is involved.
func (s *Server) handleAPIStock(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, err := stock.ParseDate(q.Get("from"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	to, err := stock.ParseDate(q.Get("to"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	criteria := stock.Criteria{Search: q.Get("search"), ExpiryFrom: from, ExpiryTo: to}
	page, err := s.service.Query(r.Context(), criteria, parseIntParam(r, "page", 1))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	items := page.Items
	if items == nil {
		items = []stock.Record{}
	}
	writeJSON(w, http.StatusOK, StockPageResponse{
		Items:    items,
		Page:     page.Number,
		Pages:    page.Count,
		Total:    page.Total,
		PageSize: stock.PageSize,
	})
}

// handleHealth reports whether the data source answers.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.service.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "unavailable",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.service.Sessions().Len(),
		"exports":  s.service.ExportStatus(),
	})
}
