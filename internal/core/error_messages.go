package core

// error_messages.go maps technical errors to user-facing notices.
//
// # Error Codes Reference
//
// When users encounter errors, they can quote the error code to support staff
// for faster diagnosis.
//
// # Data Source Errors (SRC, UPD, DEL)
//
//	SRC001 - Error fetching data: the stock list could not be loaded
//	         Action: Check that the stock service is reachable, then reload
//	         Matches: *TransportError
//
//	UPD001 - Error updating stock item: the update was rejected or failed
//	         Action: Your changes are kept. Please try saving again later
//	         Matches: *UpdateError
//
//	DEL001 - Error deleting stock item: the delete was rejected or failed
//	         Action: Please try again later
//	         Matches: *DeleteError
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Invalid date in the edit form or expiry filter
//	         Action: Use the YYYY-MM-DD format
//	         Matches: stock.ErrInvalidDate, "invalid date"
//
//	VAL002 - Invalid number in a price or quantity field
//	         Action: Enter a plain decimal such as 12.50
//	         Matches: stock.ErrInvalidNumber, "invalid number"
//
// # Conflicts (BUSY, SES, REC, EDT)
//
//	BUSY001 - Row busy: a save or delete for the row is in flight
//	BUSY002 - Export busy: an export is already being prepared
//	BUSY003 - Server busy: every export render slot is taken
//	SES001  - Session expired: the page session is unknown
//	REC001  - Record not found: the id is no longer in the list
//	EDT001  - Not editing: the row has no open edit
//
// # Request Errors (REQ, RATE)
//
//	REQ001  - Request cancelled: "context canceled"
//	REQ002  - Request timed out: "context deadline exceeded"
//	RATE001 - Too many requests: "rate limit"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// # Matching
//
// Sentinel and typed errors are matched with errors.Is and errors.As first,
// so wrapping never hides them. Anything left is matched case-insensitively
// against the pattern table; the first match wins.

import (
	"errors"
	"strings"

	"github.com/JonMunkholm/stockview/internal/stock"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgFetch = UserMessage{
		Message: "Error fetching data",
		Action:  "Check that the stock service is reachable, then reload",
		Code:    "SRC001",
	}
	msgUpdate = UserMessage{
		Message: "Error updating stock item",
		Action:  "Your changes are kept. Please try saving again later",
		Code:    "UPD001",
	}
	msgDelete = UserMessage{
		Message: "Error deleting stock item",
		Action:  "Please try again later",
		Code:    "DEL001",
	}
	msgInvalidDate = UserMessage{
		Message: "Invalid date",
		Action:  "Use the YYYY-MM-DD format",
		Code:    "VAL001",
	}
	msgInvalidNumber = UserMessage{
		Message: "Invalid number",
		Action:  "Enter prices and quantities as plain decimals such as 12.50",
		Code:    "VAL002",
	}
)

// sentinelMessages is checked with errors.Is, in order.
var sentinelMessages = []struct {
	err error
	msg UserMessage
}{
	{ErrRowBusy, UserMessage{
		Message: "This item is already being saved or deleted",
		Action:  "Wait for the current request to finish",
		Code:    "BUSY001",
	}},
	{ErrExportBusy, UserMessage{
		Message: "An export is already in progress",
		Action:  "Wait for the download to finish",
		Code:    "BUSY002",
	}},
	{ErrTooManyExports, UserMessage{
		Message: "The server is preparing too many exports",
		Action:  "Try the download again in a moment",
		Code:    "BUSY003",
	}},
	{ErrSessionNotFound, UserMessage{
		Message: "Your page session has expired",
		Action:  "Reload the page to start a new session",
		Code:    "SES001",
	}},
	{ErrRecordNotFound, UserMessage{
		Message: "Stock item no longer exists",
		Action:  "Reload to refresh the list",
		Code:    "REC001",
	}},
	{ErrNotEditing, UserMessage{
		Message: "That item is not being edited",
		Action:  "Click Edit on the row first",
		Code:    "EDT001",
	}},
	{stock.ErrInvalidDate, msgInvalidDate},
	{stock.ErrInvalidNumber, msgInvalidNumber},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (case-insensitive) to user messages
// for errors that carry no sentinel.
var errorPatterns = []errorPattern{
	{pattern: "invalid date", msg: msgInvalidDate},
	{pattern: "invalid number", msg: msgInvalidNumber},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "The stock service may be slow. Please try again",
			Code:    "REQ002",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000). Support staff
// should check the application logs for the technical error.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
// Example:
//
//	err := &UpdateError{ID: "7", Err: errors.New("status 500")}
//	msg := MapError(err)
//	// msg.Code == "UPD001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.err) {
			return sm.msg
		}
	}

	var (
		te *TransportError
		ue *UpdateError
		de *DeleteError
	)
	switch {
	case errors.As(err, &te):
		return msgFetch
	case errors.As(err, &ue):
		return msgUpdate
	case errors.As(err, &de):
		return msgDelete
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}
