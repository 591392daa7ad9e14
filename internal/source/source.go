// Package source defines the contract between the stock page and whatever
// system owns the stock records. Implementations live in sub-packages:
// restapi talks to the stock HTTP service, pgstore reads its table directly.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/stockview/internal/stock"
)

// Source fetches and mutates stock records.
type Source interface {
	// FetchAll returns every stock record.
	FetchAll(ctx context.Context) ([]stock.Record, error)

	// Update overwrites the payload fields of record id.
	Update(ctx context.Context, id stock.ID, payload stock.Payload) error

	// Delete removes record id. Only an OK status counts as success.
	Delete(ctx context.Context, id stock.ID) error
}

// Pinger is implemented by sources that can report their own health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ErrNotFound is returned when the source has no record with the given id.
var ErrNotFound = errors.New("stock record not found at source")

// StatusError reports a response whose status is not the one the operation
// treats as success.
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: unexpected status %d %s", e.Op, e.Status, http.StatusText(e.Status))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Is lets errors.Is(err, ErrNotFound) match a 404.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}
