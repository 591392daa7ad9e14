// Package core provides the business logic behind the stock details page.
//
// This package owns the per-browser view state and every transition on it,
// independent of any UI or transport layer. It can be driven by the web
// handlers or by tests without modification.
//
// # Architecture
//
// The package is organized around three concepts:
//
//   - ViewState: the record set, filter criteria, page number, edit session,
//     edited markers and pending notice of one page session. Every field is
//     read and written under the state's mutex.
//   - Sessions: a bounded, expiring store of view states keyed by a random id
//     handed to the browser as a cookie.
//   - Service: the entry point for operations that reach the data source
//     (load, reload, save, delete) and for exports.
//
// # Concurrency
//
// Calls to the data source never hold the state lock. Before a save or
// delete the row is marked in flight and a second request for the same row
// fails with [ErrRowBusy] until the first completes. Exports use a single
// busy flag per session and fail with [ErrExportBusy]. Across sessions a
// [RenderLimiter] caps how many documents are rendered at once.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// The mapped message is posted as the session's notice and shown once on the
// next render:
//
//   - SRC001: loading stock data failed
//   - UPD001, DEL001: an update or delete was rejected
//   - VAL001, VAL002: a date or number in the edit form did not parse
//   - BUSY001, BUSY002, BUSY003: an operation is already in flight
//   - SES001, REC001, EDT001: stale session, record or edit
package core
