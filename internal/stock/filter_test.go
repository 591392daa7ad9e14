package stock

import (
	"fmt"
	"testing"
)

func rec(id, name, expiry string) Record {
	r := Record{ID: ID(id), MedicineName: name}
	if expiry != "" {
		r.ExpiryDate = MustDate(expiry)
	}
	return r
}

func ids(records []Record) []ID {
	out := make([]ID, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func sameIDs(got, want []ID) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestFilter_SearchScenario(t *testing.T) {
	records := []Record{
		rec("1", "Paracetamol", "2024-01-10"),
		rec("2", "Ibuprofen", "2023-06-01"),
	}

	got := Filter(records, Criteria{Search: "ibu"})

	if want := []ID{"2"}; !sameIDs(ids(got), want) {
		t.Errorf("Filter() ids = %v, want %v", ids(got), want)
	}
}

func TestFilter(t *testing.T) {
	records := []Record{
		rec("a", "Amoxicillin", "2025-03-01"),
		rec("b", "Paracetamol 500", "2024-12-31"),
		rec("c", "", "2024-01-01"),
		rec("d", "PARACETAMOL syrup", "2025-01-01"),
		rec("e", "Cetirizine", ""),
		rec("f", "Azithromycin", "2024-12-31"),
	}

	tests := []struct {
		name     string
		criteria Criteria
		want     []ID
	}{
		{
			name: "empty criteria keeps named records sorted by expiry",
			want: []ID{"b", "f", "d", "a", "e"},
		},
		{
			name:     "search is case insensitive",
			criteria: Criteria{Search: "paracetamol"},
			want:     []ID{"b", "d"},
		},
		{
			name:     "from bound is inclusive from start of day",
			criteria: Criteria{ExpiryFrom: MustDate("2025-01-01")},
			want:     []ID{"d", "a"},
		},
		{
			name:     "to bound is inclusive until end of day",
			criteria: Criteria{ExpiryTo: MustDate("2024-12-31")},
			want:     []ID{"b", "f"},
		},
		{
			name:     "both bounds",
			criteria: Criteria{ExpiryFrom: MustDate("2024-12-31"), ExpiryTo: MustDate("2025-01-01")},
			want:     []ID{"b", "f", "d"},
		},
		{
			name:     "from after to is empty",
			criteria: Criteria{ExpiryFrom: MustDate("2025-06-01"), ExpiryTo: MustDate("2025-01-01")},
			want:     []ID{},
		},
		{
			name:     "search with no match",
			criteria: Criteria{Search: "insulin"},
			want:     []ID{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, tt.criteria)
			if !sameIDs(ids(got), tt.want) {
				t.Errorf("Filter() ids = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestFilter_TimestampExpiryWithinEndOfDay(t *testing.T) {
	records := []Record{rec("1", "Insulin", "2024-05-10T23:59:00Z")}

	got := Filter(records, Criteria{ExpiryTo: MustDate("2024-05-10")})
	if len(got) != 1 {
		t.Fatalf("Filter() returned %d records, want 1", len(got))
	}
}

func TestFilter_OffsetExpiryMatchesShownDay(t *testing.T) {
	records := []Record{
		rec("1", "Insulin", "2024-01-10T00:00:00+05:30"),
		rec("2", "Heparin", "2024-01-10T23:30:00-08:00"),
		rec("3", "Aspirin", "2024-01-11T01:00:00+05:30"),
	}
	day := MustDate("2024-01-10")

	got := Filter(records, Criteria{ExpiryFrom: day, ExpiryTo: day})
	if !sameIDs(ids(got), []ID{"1", "2"}) {
		t.Errorf("Filter() ids = %v, want [1 2]", ids(got))
	}
	for _, r := range got {
		if r.ExpiryDate.String() != "2024-01-10" {
			t.Errorf("record %s shows %s, outside the range", r.ID, r.ExpiryDate)
		}
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	records := []Record{
		rec("1", "Zinc", "2026-01-01"),
		rec("2", "Aspirin", "2024-01-01"),
	}
	before := ids(records)

	_ = Filter(records, Criteria{})

	if !sameIDs(ids(records), before) {
		t.Errorf("input order changed to %v, want %v", ids(records), before)
	}
}

func TestFilter_Properties(t *testing.T) {
	var records []Record
	for i := 0; i < 200; i++ {
		name := fmt.Sprintf("Med-%d", i%7)
		if i%11 == 0 {
			name = ""
		}
		expiry := ""
		if i%5 != 0 {
			expiry = fmt.Sprintf("2024-%02d-%02d", 1+i%12, 1+i%28)
		}
		records = append(records, rec(fmt.Sprint(i), name, expiry))
	}
	c := Criteria{Search: "med-3", ExpiryFrom: MustDate("2024-03-01"), ExpiryTo: MustDate("2024-10-15")}

	got := Filter(records, c)

	seen := make(map[ID]int)
	for _, r := range got {
		if !c.Match(r) {
			t.Errorf("record %s in result does not match criteria", r.ID)
		}
		seen[r.ID]++
	}
	for _, r := range records {
		n := seen[r.ID]
		if c.Match(r) && n != 1 {
			t.Errorf("matching record %s appears %d times, want 1", r.ID, n)
		}
		if !c.Match(r) && n != 0 {
			t.Errorf("non-matching record %s appears %d times", r.ID, n)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i].ExpiryDate.Time.Before(got[i-1].ExpiryDate.Time) {
			t.Fatalf("result not sorted at %d: %s before %s", i, got[i-1].ExpiryDate, got[i].ExpiryDate)
		}
	}
}

func TestFilter_StableForEqualExpiry(t *testing.T) {
	records := []Record{
		rec("3", "Med", "2024-01-01"),
		rec("1", "Med", "2024-01-01"),
		rec("2", "Med", "2024-01-01"),
	}

	got := Filter(records, Criteria{})

	if want := []ID{"3", "1", "2"}; !sameIDs(ids(got), want) {
		t.Errorf("Filter() ids = %v, want %v", ids(got), want)
	}
}
