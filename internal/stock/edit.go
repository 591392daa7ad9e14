package stock

import (
	"fmt"
	"time"
)

// Field names an editable column. The values double as form input names.
type Field string

const (
	FieldBrandName     Field = "brandname"
	FieldPurchasePrice Field = "purchaseprice"
	FieldMRP           Field = "mrp"
	FieldTotalQty      Field = "totalqty"
	FieldExpiryDate    Field = "expirydate"
)

// EditableFields lists the fields an edit session exposes, in table order.
var EditableFields = []Field{FieldBrandName, FieldPurchasePrice, FieldMRP, FieldTotalQty, FieldExpiryDate}

// Fields is the text of the editable fields as the user typed them.
// PurchaseDate is not editable but travels with the update payload.
type Fields struct {
	BrandName     string
	PurchasePrice string
	MRP           string
	TotalQty      string
	ExpiryDate    string
	PurchaseDate  string
}

// FieldsOf snapshots a record's editable fields as input text.
func FieldsOf(r Record) Fields {
	return Fields{
		BrandName:     r.BrandName,
		PurchasePrice: r.PurchasePrice.Input(),
		MRP:           r.MRP.Input(),
		TotalQty:      r.TotalQty.Input(),
		ExpiryDate:    r.ExpiryDate.String(),
		PurchaseDate:  r.PurchaseDate.String(),
	}
}

// Get returns the text of one editable field.
func (f Fields) Get(field Field) string {
	switch field {
	case FieldBrandName:
		return f.BrandName
	case FieldPurchasePrice:
		return f.PurchasePrice
	case FieldMRP:
		return f.MRP
	case FieldTotalQty:
		return f.TotalQty
	case FieldExpiryDate:
		return f.ExpiryDate
	}
	return ""
}

// Set replaces the text of one editable field.
func (f *Fields) Set(field Field, value string) error {
	switch field {
	case FieldBrandName:
		f.BrandName = value
	case FieldPurchasePrice:
		f.PurchasePrice = value
	case FieldMRP:
		f.MRP = value
	case FieldTotalQty:
		f.TotalQty = value
	case FieldExpiryDate:
		f.ExpiryDate = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// Payload is the body of an update call. Dates marshal as YYYY-MM-DD.
// Time carries the record's timestamp in its normalized form; Apply leaves
// the local copy's time alone.
type Payload struct {
	BrandName     string `json:"brandname"`
	PurchasePrice Amount `json:"purchaseprice"`
	MRP           Amount `json:"mrp"`
	TotalQty      Amount `json:"totalqty"`
	PurchaseDate  Date   `json:"purchasedate"`
	ExpiryDate    Date   `json:"expirydate"`
	Time          string `json:"time,omitempty"`
}

// Payload parses the working text into an update payload. Numbers must be
// decimals and dates must be calendar dates; blank means absent.
func (f Fields) Payload() (Payload, error) {
	var (
		p   Payload
		err error
	)
	p.BrandName = f.BrandName
	if p.PurchasePrice, err = ParseAmount(f.PurchasePrice); err != nil {
		return Payload{}, fmt.Errorf("purchase price: %w", err)
	}
	if p.MRP, err = ParseAmount(f.MRP); err != nil {
		return Payload{}, fmt.Errorf("mrp: %w", err)
	}
	if p.TotalQty, err = ParseAmount(f.TotalQty); err != nil {
		return Payload{}, fmt.Errorf("total qty: %w", err)
	}
	if p.PurchaseDate, err = ParseDate(f.PurchaseDate); err != nil {
		return Payload{}, fmt.Errorf("purchase date: %w", err)
	}
	if p.ExpiryDate, err = ParseDate(f.ExpiryDate); err != nil {
		return Payload{}, fmt.Errorf("expiry date: %w", err)
	}
	return p, nil
}

// Apply overwrites the payload's fields on r and leaves every other field
// as it was.
func (p Payload) Apply(r Record) Record {
	r.BrandName = p.BrandName
	r.PurchasePrice = p.PurchasePrice
	r.MRP = p.MRP
	r.TotalQty = p.TotalQty
	r.PurchaseDate = p.PurchaseDate
	r.ExpiryDate = p.ExpiryDate
	return r
}

// EditSession is the in-progress edit of a single record.
type EditSession struct {
	ID       ID
	Working  Fields
	Original Fields
	Time     string // the record's time field, normalized when parseable
	LastEdit time.Time
}

// NewEditSession snapshots r as both the working and the original copy.
func NewEditSession(r Record) *EditSession {
	f := FieldsOf(r)
	return &EditSession{
		ID:       r.ID,
		Working:  f,
		Original: f,
		Time:     normalizeTime(r.Time),
	}
}

// Change updates one working field and stamps the edit time.
func (e *EditSession) Change(field Field, value string, now time.Time) error {
	if err := e.Working.Set(field, value); err != nil {
		return err
	}
	e.LastEdit = now
	return nil
}

// Dirty reports whether the working copy differs from the snapshot.
func (e *EditSession) Dirty() bool {
	return e.Working != e.Original
}

// Payload parses the working copy and stamps it with the session's time.
func (e *EditSession) Payload() (Payload, error) {
	p, err := e.Working.Payload()
	if err != nil {
		return Payload{}, err
	}
	p.Time = e.Time
	return p, nil
}

func normalizeTime(s string) string {
	for _, layout := range dateLayouts[1:] {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02 15:04:05")
		}
	}
	return s
}
