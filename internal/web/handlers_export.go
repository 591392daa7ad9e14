package web

import (
	"fmt"
	"net/http"

	"github.com/JonMunkholm/stockview/internal/core"
	"github.com/JonMunkholm/stockview/internal/export"
)

// download sets the attachment headers when the first byte is written, so
// a failed export can still answer with an error.
type download struct {
	w           http.ResponseWriter
	filename    string
	contentType string
	started     bool
}

func (d *download) Write(p []byte) (int, error) {
	if !d.started {
		d.started = true
		h := d.w.Header()
		h.Set("Content-Type", d.contentType)
		h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.filename))
		h.Set("Cache-Control", "no-store")
		d.w.WriteHeader(http.StatusOK)
	}
	return d.w.Write(p)
}

// handleExport streams the session's filtered records as a document.
// A second export while one is running answers 409.
func (s *Server) handleExport(format core.ExportFormat) http.HandlerFunc {
	filename, contentType := export.SpreadsheetFilename, export.SpreadsheetContentType
	if format == core.ExportPDF {
		filename, contentType = export.PDFFilename, export.PDFContentType
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sid, _ := sessionFrom(r.Context())

		d := &download{w: w, filename: filename, contentType: contentType}
		if err := s.service.Export(r.Context(), sid, format, d); err != nil {
			if d.started {
				// Headers are gone; the client sees a truncated file.
				return
			}
			s.respondError(w, r, err)
		}
	}
}
