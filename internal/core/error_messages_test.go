package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/JonMunkholm/stockview/internal/source"
	"github.com/JonMunkholm/stockview/internal/stock"
)

func TestMapError(t *testing.T) {
	_, errNumber := stock.ParseAmount("12,5")
	_, errDate := stock.ParseDate("31/12/2025")

	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "transport error",
			err:         &TransportError{Err: errors.New("dial tcp: connection refused")},
			wantCode:    "SRC001",
			wantMessage: "Error fetching data",
		},
		{
			name:        "update error wrapping status",
			err:         &UpdateError{ID: "7", Err: &source.StatusError{Op: "update", Status: 500}},
			wantCode:    "UPD001",
			wantMessage: "Error updating stock item",
		},
		{
			name:        "update error wins over its timeout cause",
			err:         &UpdateError{ID: "7", Err: context.DeadlineExceeded},
			wantCode:    "UPD001",
			wantMessage: "Error updating stock item",
		},
		{
			name:        "delete error",
			err:         &DeleteError{ID: "2", Err: errors.New("status 409")},
			wantCode:    "DEL001",
			wantMessage: "Error deleting stock item",
		},
		{
			name:        "wrapped invalid number",
			err:         fmt.Errorf("mrp: %w", errNumber),
			wantCode:    "VAL002",
			wantMessage: "Invalid number",
		},
		{
			name:        "wrapped invalid date",
			err:         fmt.Errorf("expiry date: %w", errDate),
			wantCode:    "VAL001",
			wantMessage: "Invalid date",
		},
		{
			name:        "row busy",
			err:         fmt.Errorf("save: %w", ErrRowBusy),
			wantCode:    "BUSY001",
			wantMessage: "This item is already being saved or deleted",
		},
		{
			name:        "export busy",
			err:         ErrExportBusy,
			wantCode:    "BUSY002",
			wantMessage: "An export is already in progress",
		},
		{
			name:        "render slots exhausted",
			err:         ErrTooManyExports,
			wantCode:    "BUSY003",
			wantMessage: "The server is preparing too many exports",
		},
		{
			name:        "session not found",
			err:         ErrSessionNotFound,
			wantCode:    "SES001",
			wantMessage: "Your page session has expired",
		},
		{
			name:        "record not found",
			err:         ErrRecordNotFound,
			wantCode:    "REC001",
			wantMessage: "Stock item no longer exists",
		},
		{
			name:        "plain deadline",
			err:         errors.New("Get \"http://x/stock\": context deadline exceeded"),
			wantCode:    "REQ002",
			wantMessage: "Request timed out",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("RATE LIMIT exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}
