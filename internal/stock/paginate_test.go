package stock

import (
	"fmt"
	"testing"
)

func makeRecords(n int) []Record {
	out := make([]Record, n)
	for i := range out {
		out[i] = Record{ID: ID(fmt.Sprint(i)), MedicineName: "Med"}
	}
	return out
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 1},
		{1, 1},
		{25, 1},
		{26, 2},
		{30, 2},
		{50, 2},
		{51, 3},
	}

	for _, tt := range tests {
		if got := PageCount(tt.n); got != tt.want {
			t.Errorf("PageCount(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestPaginate_ThirtyRecords(t *testing.T) {
	records := makeRecords(30)

	p1 := Paginate(records, 1)
	p2 := Paginate(records, 2)

	if p1.Count != 2 {
		t.Errorf("Count = %d, want 2", p1.Count)
	}
	if len(p1.Items) != 25 {
		t.Errorf("page 1 has %d items, want 25", len(p1.Items))
	}
	if len(p2.Items) != 5 {
		t.Errorf("page 2 has %d items, want 5", len(p2.Items))
	}
	if p1.HasPrev() || !p1.HasNext() {
		t.Errorf("page 1 HasPrev=%v HasNext=%v, want false/true", p1.HasPrev(), p1.HasNext())
	}
	if !p2.HasPrev() || p2.HasNext() {
		t.Errorf("page 2 HasPrev=%v HasNext=%v, want true/false", p2.HasPrev(), p2.HasNext())
	}
}

func TestPaginate_OutOfRange(t *testing.T) {
	records := makeRecords(30)

	for _, n := range []int{-1, 0, 3, 100} {
		if p := Paginate(records, n); !p.Empty() {
			t.Errorf("Paginate(%d) returned %d items, want 0", n, len(p.Items))
		}
	}
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate(nil, 1)

	if !p.Empty() {
		t.Errorf("Empty() = false, want true")
	}
	if p.Count != 1 {
		t.Errorf("Count = %d, want 1", p.Count)
	}
	if p.HasNext() || p.HasPrev() {
		t.Errorf("empty set should not navigate")
	}
}

func TestPaginate_ReconstructsInput(t *testing.T) {
	for _, n := range []int{0, 1, 24, 25, 26, 99, 100, 101} {
		records := makeRecords(n)
		var joined []Record
		for page := 1; page <= PageCount(n); page++ {
			joined = append(joined, Paginate(records, page).Items...)
		}
		if !sameIDs(ids(joined), ids(records)) {
			t.Errorf("n=%d: concatenated pages differ from input", n)
		}
	}
}

func TestPaginate_ItemsCannotGrowIntoNextPage(t *testing.T) {
	records := makeRecords(30)
	p1 := Paginate(records, 1)

	_ = append(p1.Items, Record{ID: "x"})

	if records[25].ID == "x" {
		t.Error("appending to page items overwrote the next page")
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		page, n, want int
	}{
		{0, 30, 1},
		{1, 30, 1},
		{2, 30, 2},
		{3, 30, 2},
		{5, 0, 1},
	}

	for _, tt := range tests {
		if got := ClampPage(tt.page, tt.n); got != tt.want {
			t.Errorf("ClampPage(%d, %d) = %d, want %d", tt.page, tt.n, got, tt.want)
		}
	}
}
