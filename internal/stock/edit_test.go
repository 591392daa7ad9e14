package stock

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func editable() Record {
	return Record{
		ID:            "9",
		MedicineName:  "Amoxicillin",
		Dosage:        "250mg",
		BrandName:     "Mox",
		PurchasePrice: AmountOf(decimal.RequireFromString("40.25")),
		MRP:           AmountOf(decimal.RequireFromString("55")),
		TotalQty:      AmountOf(decimal.NewFromInt(12)),
		PurchaseDate:  MustDate("2024-01-15"),
		ExpiryDate:    MustDate("2026-01-31"),
		Time:          "2024-01-15T09:30:00Z",
	}
}

func TestNewEditSession_Snapshots(t *testing.T) {
	e := NewEditSession(editable())

	if e.Working != e.Original {
		t.Error("working and original copies should start equal")
	}
	if e.Working.ExpiryDate != "2026-01-31" {
		t.Errorf("ExpiryDate = %q, want %q", e.Working.ExpiryDate, "2026-01-31")
	}
	if e.Time != "2024-01-15 09:30:00" {
		t.Errorf("Time = %q, want %q", e.Time, "2024-01-15 09:30:00")
	}
	if e.Dirty() {
		t.Error("new session should not be dirty")
	}
}

func TestEditSession_Change(t *testing.T) {
	e := NewEditSession(editable())
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	if err := e.Change(FieldMRP, "60", now); err != nil {
		t.Fatalf("Change() error = %v", err)
	}

	if e.Working.MRP != "60" {
		t.Errorf("Working.MRP = %q, want %q", e.Working.MRP, "60")
	}
	if e.Original.MRP != "55" {
		t.Errorf("Original.MRP = %q, want unchanged %q", e.Original.MRP, "55")
	}
	if !e.LastEdit.Equal(now) {
		t.Errorf("LastEdit = %v, want %v", e.LastEdit, now)
	}
	if !e.Dirty() {
		t.Error("session should be dirty after a change")
	}
	if err := e.Change(Field("dosage"), "1g", now); err == nil {
		t.Error("Change() on a non-editable field should fail")
	}
}

func TestEditSession_Payload(t *testing.T) {
	e := NewEditSession(editable())
	if err := e.Change(FieldTotalQty, "20", time.Now()); err != nil {
		t.Fatal(err)
	}

	p, err := e.Payload()
	if err != nil {
		t.Fatalf("Payload() error = %v", err)
	}
	if p.Time != "2024-01-15 09:30:00" {
		t.Errorf("Time = %q, want %q", p.Time, "2024-01-15 09:30:00")
	}
	if p.TotalQty.Input() != "20" {
		t.Errorf("TotalQty = %q, want %q", p.TotalQty.Input(), "20")
	}

	e.Working.MRP = "abc"
	if _, err := e.Payload(); err == nil {
		t.Error("Payload() should reject a non-numeric MRP")
	}
}

func TestFields_Payload(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Fields)
		wantErr bool
	}{
		{name: "unchanged", mutate: func(*Fields) {}},
		{name: "blank values are absent", mutate: func(f *Fields) { f.MRP = ""; f.ExpiryDate = "" }},
		{name: "timestamp expiry is normalized", mutate: func(f *Fields) { f.ExpiryDate = "2027-03-04T00:00:00Z" }},
		{name: "bad number", mutate: func(f *Fields) { f.TotalQty = "twelve" }, wantErr: true},
		{name: "bad date", mutate: func(f *Fields) { f.ExpiryDate = "31/01/2026" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := FieldsOf(editable())
			tt.mutate(&f)
			_, err := f.Payload()
			if (err != nil) != tt.wantErr {
				t.Errorf("Payload() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPayload_MarshalsCalendarDates(t *testing.T) {
	f := FieldsOf(editable())
	f.ExpiryDate = "2027-03-04T10:00:00Z"

	p, err := f.Payload()
	if err != nil {
		t.Fatalf("Payload() error = %v", err)
	}
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if out["expirydate"] != "2027-03-04" {
		t.Errorf("expirydate = %v, want 2027-03-04", out["expirydate"])
	}
	if out["purchasedate"] != "2024-01-15" {
		t.Errorf("purchasedate = %v, want 2024-01-15", out["purchasedate"])
	}
}

func TestPayload_ApplyKeepsOtherFields(t *testing.T) {
	orig := editable()
	f := FieldsOf(orig)
	f.BrandName = "Moxikind"
	f.TotalQty = "8"
	p, err := f.Payload()
	if err != nil {
		t.Fatalf("Payload() error = %v", err)
	}

	got := p.Apply(orig)

	if got.BrandName != "Moxikind" {
		t.Errorf("BrandName = %q, want %q", got.BrandName, "Moxikind")
	}
	if got.TotalQty.Text() != "8" {
		t.Errorf("TotalQty = %q, want %q", got.TotalQty.Text(), "8")
	}
	if got.MedicineName != orig.MedicineName || got.Dosage != orig.Dosage || got.Time != orig.Time || got.ID != orig.ID {
		t.Errorf("non-payload fields changed: %+v", got)
	}
	if !got.MRP.Decimal.Equal(orig.MRP.Decimal) {
		t.Errorf("MRP = %s, want %s", got.MRP.Decimal, orig.MRP.Decimal)
	}
}
