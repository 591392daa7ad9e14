package core

import (
	"errors"
	"fmt"

	"github.com/JonMunkholm/stockview/internal/stock"
)

var (
	// ErrSessionNotFound is returned for an unknown or expired session id.
	ErrSessionNotFound = errors.New("view session not found")

	// ErrRecordNotFound is returned when the id is not in the loaded set.
	ErrRecordNotFound = errors.New("stock record not found")

	// ErrNotEditing is returned when saving or changing a row that has no
	// open edit session.
	ErrNotEditing = errors.New("record is not being edited")

	// ErrRowBusy is returned while a save or delete for the row is in flight.
	ErrRowBusy = errors.New("row busy: a save or delete is already in progress")

	// ErrExportBusy is returned while the session is already exporting.
	ErrExportBusy = errors.New("export busy: an export is already in progress")
)

// TransportError reports a failed fetch of the record set.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("load stock: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpdateError reports an update the data source did not accept.
type UpdateError struct {
	ID  stock.ID
	Err error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("update stock item %s: %v", e.ID, e.Err)
}

func (e *UpdateError) Unwrap() error { return e.Err }

// DeleteError reports a delete the data source did not accept.
type DeleteError struct {
	ID  stock.ID
	Err error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("delete stock item %s: %v", e.ID, e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }
