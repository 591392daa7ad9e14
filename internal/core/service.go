package core

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/JonMunkholm/stockview/internal/config"
	"github.com/JonMunkholm/stockview/internal/export"
	"github.com/JonMunkholm/stockview/internal/logging"
	"github.com/JonMunkholm/stockview/internal/source"
	"github.com/JonMunkholm/stockview/internal/stock"
)

// ExportFormat selects the document an export produces.
type ExportFormat string

const (
	ExportSpreadsheet ExportFormat = "xlsx"
	ExportPDF         ExportFormat = "pdf"
)

// Service provides the business logic behind the stock page.
type Service struct {
	src      source.Source
	sessions *Sessions
	renders  *RenderLimiter
	timeout  time.Duration
	now      func() time.Time
}

// NewService creates a Service reading from src.
func NewService(src source.Source, cfg *config.Config) *Service {
	return &Service{
		src:      src,
		sessions: NewSessions(cfg.Session.MaxSessions, cfg.Session.TTL),
		renders:  NewRenderLimiter(cfg.Export.MaxConcurrent, cfg.Export.MaxWait),
		timeout:  cfg.Source.Timeout,
		now:      time.Now,
	}
}

// Sessions exposes the session store.
func (s *Service) Sessions() *Sessions {
	return s.sessions
}

// Open starts a new page session and loads the record set into it. A failed
// load still creates the session; its view carries the load error.
func (s *Service) Open(ctx context.Context) (string, error) {
	st := NewViewState()
	id := s.sessions.Create(st)

	ctx = logging.ContextWithSession(ctx, id)
	return id, s.load(ctx, st)
}

// Session returns the state for id.
func (s *Service) Session(id string) (*ViewState, error) {
	st, ok := s.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return st, nil
}

// Reload fetches the record set again. On success the criteria, page, edit
// session and edited markers are reset; on failure the last known records
// stay in place.
func (s *Service) Reload(ctx context.Context, sid string) error {
	st, err := s.Session(sid)
	if err != nil {
		return err
	}
	return s.load(ctx, st)
}

func (s *Service) load(ctx context.Context, st *ViewState) error {
	records, err := s.fetch(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("failed to load stock", "error", err)
		st.loadFailed(err)
		return err
	}
	st.load(records)
	logging.FromContext(ctx).Debug("stock loaded", "records", len(records))
	return nil
}

// fetch reads every record and drops duplicate ids.
func (s *Service) fetch(ctx context.Context) ([]stock.Record, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	records, err := s.src.FetchAll(ctx)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	records, dropped := stock.Dedupe(records)
	if len(dropped) > 0 {
		logging.FromContext(ctx).Warn("dropped stock records with duplicate ids",
			"count", len(dropped),
			"ids", dropped,
		)
	}
	return records, nil
}

// SaveEdit applies the submitted field values to the open edit of id and
// sends the result to the data source. The edit stays open when the update
// fails.
func (s *Service) SaveEdit(ctx context.Context, sid string, id stock.ID, changes map[stock.Field]string) error {
	st, err := s.Session(sid)
	if err != nil {
		return err
	}

	payload, send, err := st.beginSave(id, changes, s.now())
	if err != nil {
		return err
	}
	if !send {
		logging.FromContext(ctx).Debug("save skipped, no changes", "id", id)
		return nil
	}

	callCtx, cancel := s.withTimeout(ctx)
	err = s.src.Update(callCtx, id, payload)
	cancel()

	logger := logging.FromContext(ctx).With("id", id)
	if err != nil {
		logger.Error("stock update failed", "error", err)
	} else {
		logger.Info("stock item updated")
	}
	return st.finishSave(id, payload, err, s.now())
}

// Delete removes id at the data source and, on success, from the session.
// The browser asks for confirmation before calling this.
func (s *Service) Delete(ctx context.Context, sid string, id stock.ID) error {
	st, err := s.Session(sid)
	if err != nil {
		return err
	}

	if err := st.beginDelete(id); err != nil {
		return err
	}

	callCtx, cancel := s.withTimeout(ctx)
	err = s.src.Delete(callCtx, id)
	cancel()

	logger := logging.FromContext(ctx).With("id", id)
	if err != nil {
		logger.Error("stock delete failed", "error", err)
	} else {
		logger.Info("stock item deleted")
	}
	return st.finishDelete(id, err)
}

// Export renders the session's filtered records in the given format and
// writes the finished document to w. Nothing is written to w on failure.
// Only one export per session runs at a time.
func (s *Service) Export(ctx context.Context, sid string, format ExportFormat, w io.Writer) error {
	st, err := s.Session(sid)
	if err != nil {
		return err
	}

	records, criteria, err := st.beginExport()
	if err != nil {
		return err
	}
	defer st.endExport()

	if err := s.renders.Acquire(ctx); err != nil {
		logging.FromContext(ctx).Warn("export not started", "format", format, "error", err)
		st.Post(NoticeFor(err))
		return err
	}
	defer s.renders.Release()

	start := time.Now()
	var buf bytes.Buffer
	switch format {
	case ExportSpreadsheet:
		err = export.WriteSpreadsheet(&buf, records)
	case ExportPDF:
		err = export.WritePDF(&buf, records, criteria)
	default:
		err = fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		logging.FromContext(ctx).Error("export failed", "format", format, "error", err)
		st.Post(NoticeFor(err))
		return err
	}

	logging.FromContext(ctx).Info("export complete",
		"format", format,
		"records", len(records),
		"bytes", buf.Len(),
		"duration", time.Since(start),
	)
	_, err = buf.WriteTo(w)
	return err
}

// ExportStatus reports render slot usage.
func (s *Service) ExportStatus() RenderLimiterStatus {
	return s.renders.Status()
}

// WaitForExports blocks until running exports finish or ctx ends.
func (s *Service) WaitForExports(ctx context.Context) error {
	return s.renders.WaitForDrain(ctx)
}

// Query answers a stateless read: it fetches the record set, filters it and
// returns the requested page.
func (s *Service) Query(ctx context.Context, c stock.Criteria, page int) (stock.Page, error) {
	records, err := s.fetch(ctx)
	if err != nil {
		return stock.Page{}, err
	}
	return stock.Paginate(stock.Filter(records, c), page), nil
}

// Ping reports whether the data source is reachable. Sources without a
// health check are assumed healthy.
func (s *Service) Ping(ctx context.Context) error {
	p, ok := s.src.(source.Pinger)
	if !ok {
		return nil
	}
	return p.Ping(ctx)
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
