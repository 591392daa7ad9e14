package core

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/JonMunkholm/stockview/internal/stock"
)

// ViewState is everything one open stock page knows: the loaded records, the
// current criteria and page, the edit session and the edited markers.
//
// The exported methods are the transitions a user can trigger without
// touching the data source. Transitions that fail post an error notice and
// return the error.
type ViewState struct {
	mu sync.Mutex

	records []stock.Record
	loaded  bool
	loadErr *Notice

	criteria stock.Criteria
	page     int

	edit   *stock.EditSession
	edited map[stock.ID]time.Time

	busy      map[stock.ID]struct{}
	exporting bool

	notice *Notice
}

// NewViewState returns an empty, unloaded state on page one.
func NewViewState() *ViewState {
	return &ViewState{
		page:   1,
		edited: make(map[stock.ID]time.Time),
		busy:   make(map[stock.ID]struct{}),
	}
}

// SetSearch replaces the search text and returns to page one.
func (s *ViewState) SetSearch(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.criteria.Search = text
	s.page = 1
}

// SetExpiryRange replaces both expiry bounds from date input text and
// returns to page one. Blank text clears a bound. On a parse error the
// criteria are left unchanged.
func (s *ViewState) SetExpiryRange(from, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lo, err := stock.ParseDate(from)
	if err != nil {
		return s.failLocked(err)
	}
	hi, err := stock.ParseDate(to)
	if err != nil {
		return s.failLocked(err)
	}

	s.criteria.ExpiryFrom = lo
	s.criteria.ExpiryTo = hi
	s.page = 1
	return nil
}

// PrevPage moves back one page; it does nothing on page one.
func (s *ViewState) PrevPage() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.page > 1 {
		s.page--
	}
}

// NextPage moves forward one page; it does nothing on the last page.
func (s *ViewState) NextPage() {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := stock.PageCount(len(stock.Filter(s.records, s.criteria)))
	if s.page < count {
		s.page++
	}
}

// BeginEdit opens an edit session on id. Calling it again for the row
// already in edit mode keeps the working copy; calling it for another row
// discards the current session.
func (s *ViewState) BeginEdit(id stock.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := stock.IndexOf(s.records, id)
	if i < 0 {
		return s.failLocked(ErrRecordNotFound)
	}
	if s.edit != nil && s.edit.ID == id {
		return nil
	}
	s.edit = stock.NewEditSession(s.records[i])
	return nil
}

// ChangeField updates one field of the working copy.
func (s *ViewState) ChangeField(id stock.ID, field stock.Field, value string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.edit == nil || s.edit.ID != id {
		return s.failLocked(ErrNotEditing)
	}
	if err := s.edit.Change(field, value, now); err != nil {
		return s.failLocked(err)
	}
	return nil
}

// CancelEdit discards the edit session, if any.
func (s *ViewState) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.edit = nil
}

// View returns a snapshot for rendering and consumes the pending notice.
func (s *ViewState) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := stock.Filter(s.records, s.criteria)
	s.page = stock.ClampPage(s.page, len(filtered))

	v := View{
		Criteria:  s.criteria,
		Page:      stock.Paginate(filtered, s.page),
		Filtered:  filtered,
		Loaded:    s.loaded,
		LoadError: s.loadErr,
		Edited:    maps.Clone(s.edited),
		Busy:      make(map[stock.ID]bool, len(s.busy)),
		Exporting: s.exporting,
		Notice:    s.notice,
	}
	if s.edit != nil {
		e := *s.edit
		v.Edit = &e
	}
	for id := range s.busy {
		v.Busy[id] = true
	}
	s.notice = nil
	return v
}

// Criteria returns the current filter criteria.
func (s *ViewState) Criteria() stock.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.criteria
}

// Post queues a notice for the next render.
func (s *ViewState) Post(n *Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notice = n
}

func (s *ViewState) failLocked(err error) error {
	s.notice = NoticeFor(err)
	return err
}

// load installs a freshly fetched record set. Everything derived from the
// previous set is discarded along with it.
func (s *ViewState) load(records []stock.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = records
	s.loaded = true
	s.loadErr = nil
	s.criteria = stock.Criteria{}
	s.page = 1
	s.edit = nil
	s.edited = make(map[stock.ID]time.Time)
}

// loadFailed keeps the last known records and reports err.
func (s *ViewState) loadFailed(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadErr = NoticeFor(err)
	s.notice = s.loadErr
}

// beginSave applies the submitted field values to the open edit session and
// marks the row in flight. When nothing differs from the snapshot the edit
// is closed and send is false: there is nothing to write.
func (s *ViewState) beginSave(id stock.ID, changes map[stock.Field]string, now time.Time) (p stock.Payload, send bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.edit == nil || s.edit.ID != id {
		return stock.Payload{}, false, s.failLocked(ErrNotEditing)
	}
	if _, ok := s.busy[id]; ok {
		return stock.Payload{}, false, s.failLocked(ErrRowBusy)
	}
	for _, f := range stock.EditableFields {
		v, ok := changes[f]
		if !ok || v == s.edit.Working.Get(f) {
			continue
		}
		if err := s.edit.Change(f, v, now); err != nil {
			return stock.Payload{}, false, s.failLocked(err)
		}
	}

	if !s.edit.Dirty() {
		s.edit = nil
		s.notice = successNotice("No changes to save")
		return stock.Payload{}, false, nil
	}

	p, err = s.edit.Payload()
	if err != nil {
		return stock.Payload{}, false, s.failLocked(err)
	}
	s.busy[id] = struct{}{}
	return p, true, nil
}

// finishSave records the outcome of an update call. A failed update keeps
// the edit session so the user can retry.
func (s *ViewState) finishSave(id stock.ID, p stock.Payload, err error, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.busy, id)
	if err != nil {
		return s.failLocked(&UpdateError{ID: id, Err: err})
	}

	if i := stock.IndexOf(s.records, id); i >= 0 {
		s.records[i] = p.Apply(s.records[i])
	}
	s.edited[id] = now
	if s.edit != nil && s.edit.ID == id {
		s.edit = nil
	}
	s.notice = successNotice("Stock item updated successfully")
	return nil
}

// beginDelete marks id in flight.
func (s *ViewState) beginDelete(id stock.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stock.IndexOf(s.records, id) < 0 {
		return s.failLocked(ErrRecordNotFound)
	}
	if _, ok := s.busy[id]; ok {
		return s.failLocked(ErrRowBusy)
	}
	s.busy[id] = struct{}{}
	return nil
}

// finishDelete records the outcome of a delete call. Only success removes
// the record.
func (s *ViewState) finishDelete(id stock.ID, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.busy, id)
	if err != nil {
		return s.failLocked(&DeleteError{ID: id, Err: err})
	}

	s.records = slices.DeleteFunc(s.records, func(r stock.Record) bool { return r.ID == id })
	if s.edit != nil && s.edit.ID == id {
		s.edit = nil
	}
	s.notice = successNotice("Stock item deleted successfully")
	return nil
}

// beginExport marks the session exporting and returns the filtered records
// and criteria to render.
func (s *ViewState) beginExport() ([]stock.Record, stock.Criteria, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.exporting {
		return nil, stock.Criteria{}, s.failLocked(ErrExportBusy)
	}
	s.exporting = true
	return stock.Filter(s.records, s.criteria), s.criteria, nil
}

func (s *ViewState) endExport() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.exporting = false
}
