// Package stock holds the stock record model and the pure functions that
// filter, sort and paginate a record set. Nothing in this package performs
// I/O; the web and core layers feed it records and render what it returns.
package stock

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar format used for display, exports and the
// update payload.
const DateLayout = "2006-01-02"

// Placeholder is rendered for any field the source did not supply.
const Placeholder = "0"

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidNumber = errors.New("invalid number")
)

// ID identifies a record. The API may send it as a string or a number.
type ID string

// UnmarshalJSON accepts both `"12"` and `12`.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("stock id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON always writes a JSON string. Numeric ids are decoded to their
// text, so "12" and 12 from the source both come back as "12".
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

func (id ID) String() string { return string(id) }

// Date is a calendar date that may be absent.
type Date struct {
	Time  time.Time
	Valid bool
}

var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate parses the formats the stock API and the browser date inputs
// produce. An empty string yields an invalid Date and no error.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t, Valid: true}, nil
		}
	}
	return Date{}, fmt.Errorf("%w %q", ErrInvalidDate, s)
}

// MustDate is ParseDate for literals in tests and fixtures.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf wraps a time value.
func DateOf(t time.Time) Date {
	return Date{Time: t, Valid: true}
}

// Day returns the calendar day in the date's own location.
func (d Date) Day() (year int, month time.Month, day int) {
	return d.Time.Date()
}

// CompareDay compares the calendar days of d and o, each read in its own
// location, ignoring the time of day.
func (d Date) CompareDay(o Date) int {
	y1, m1, d1 := d.Day()
	y2, m2, d2 := o.Day()
	return cmp.Or(cmp.Compare(y1, y2), cmp.Compare(m1, m2), cmp.Compare(d1, d2))
}

// StartOfDay returns midnight at the beginning of the date.
func (d Date) StartOfDay() time.Time {
	y, m, dd := d.Day()
	return time.Date(y, m, dd, 0, 0, 0, 0, d.Time.Location())
}

// String formats the date as YYYY-MM-DD, or "" when absent.
func (d Date) String() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(DateLayout)
}

// UnmarshalJSON treats null, non-strings and unparseable text as an
// absent date.
func (d *Date) UnmarshalJSON(b []byte) error {
	*d = Date{}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	if parsed, err := ParseDate(s); err == nil {
		*d = parsed
	}
	return nil
}

// MarshalJSON writes YYYY-MM-DD or null.
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// Record is one stock entry as served by the stock API.
type Record struct {
	ID            ID     `json:"id"`
	MedicineName  string `json:"medicinename"`
	Dosage        string `json:"dosage"`
	BrandName     string `json:"brandname"`
	PurchasePrice Amount `json:"purchaseprice"`
	MRP           Amount `json:"mrp"`
	TotalQty      Amount `json:"totalqty"`
	PurchaseDate  Date   `json:"purchasedate"`
	ExpiryDate    Date   `json:"expirydate"`
	Time          string `json:"time,omitempty"`
}

// Row returns the eight display cells shared by the table and both
// exports, with absent values replaced by Placeholder.
func (r Record) Row() []string {
	return []string{
		orPlaceholder(r.PurchaseDate.String()),
		orPlaceholder(r.MedicineName),
		orPlaceholder(r.Dosage),
		orPlaceholder(r.BrandName),
		r.PurchasePrice.Text(),
		r.MRP.Text(),
		r.TotalQty.Text(),
		orPlaceholder(r.ExpiryDate.String()),
	}
}

// Amount is a price or quantity sent either as a decimal string or a JSON
// number. Null and "" decode as absent.
type Amount struct {
	decimal.NullDecimal
}

// ParseAmount parses user input. Blank input is an absent amount.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w %q", ErrInvalidNumber, s)
	}
	return AmountOf(d), nil
}

// AmountOf wraps a decimal value.
func AmountOf(d decimal.Decimal) Amount {
	return Amount{decimal.NullDecimal{Decimal: d, Valid: true}}
}

// UnmarshalJSON accepts "12.50", 12.5, null and "".
func (a *Amount) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte(`""`)) {
		*a = Amount{}
		return nil
	}
	return a.NullDecimal.UnmarshalJSON(b)
}

// Text renders the amount for display; zero and absent both show "0".
func (a Amount) Text() string {
	if !a.Valid || a.Decimal.IsZero() {
		return Placeholder
	}
	return a.Decimal.String()
}

// Input renders the amount for an edit field; absent is blank.
func (a Amount) Input() string {
	if !a.Valid {
		return ""
	}
	return a.Decimal.String()
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

// Dedupe drops records whose id was already seen, keeping the first.
// It returns the kept records and the ids that were dropped.
func Dedupe(records []Record) ([]Record, []ID) {
	seen := make(map[ID]struct{}, len(records))
	out := make([]Record, 0, len(records))
	var dropped []ID
	for _, r := range records {
		if _, ok := seen[r.ID]; ok {
			dropped = append(dropped, r.ID)
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out, dropped
}

// IndexOf returns the position of id in records, or -1.
func IndexOf(records []Record, id ID) int {
	for i := range records {
		if records[i].ID == id {
			return i
		}
	}
	return -1
}
