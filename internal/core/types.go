package core

import (
	"time"

	"github.com/JonMunkholm/stockview/internal/stock"
)

// NoticeKind distinguishes success confirmations from failures.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a one-shot message shown on the next render of the page.
type Notice struct {
	Kind    NoticeKind
	Message string
	Action  string
	Code    string
}

func successNotice(msg string) *Notice {
	return &Notice{Kind: NoticeSuccess, Message: msg}
}

// NoticeFor maps err to an error notice.
func NoticeFor(err error) *Notice {
	m := MapError(err)
	return &Notice{Kind: NoticeError, Message: m.Message, Action: m.Action, Code: m.Code}
}

// View is a consistent snapshot of a session for rendering. It shares no
// mutable memory with the session it came from.
type View struct {
	Criteria  stock.Criteria
	Page      stock.Page
	Filtered  []stock.Record // every record matching Criteria, in display order
	Loaded    bool           // a fetch has succeeded at least once
	LoadError *Notice        // the last fetch failed
	Edit      *stock.EditSession
	Edited    map[stock.ID]time.Time
	Busy      map[stock.ID]bool
	Exporting bool
	Notice    *Notice
}

// Editing reports whether id is the row in edit mode.
func (v View) Editing(id stock.ID) bool {
	return v.Edit != nil && v.Edit.ID == id
}

// WasEdited reports whether id was saved during this session.
func (v View) WasEdited(id stock.ID) bool {
	_, ok := v.Edited[id]
	return ok
}
