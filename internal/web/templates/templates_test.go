package templates

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/stockview/internal/core"
	"github.com/JonMunkholm/stockview/internal/stock"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	if err := c.Render(context.Background(), &sb); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return sb.String()
}

func record(id, name string) stock.Record {
	price, _ := stock.ParseAmount("12.50")
	return stock.Record{
		ID:            stock.ID(id),
		MedicineName:  name,
		Dosage:        "500mg",
		BrandName:     "Acme",
		PurchasePrice: price,
		PurchaseDate:  stock.MustDate("2025-01-10"),
		ExpiryDate:    stock.MustDate("2026-06-30"),
	}
}

func viewOf(records ...stock.Record) core.View {
	return core.View{
		Page:     stock.Paginate(records, 1),
		Filtered: records,
		Loaded:   true,
		Edited:   map[stock.ID]time.Time{},
		Busy:     map[stock.ID]bool{},
	}
}

func TestStockPage_Rows(t *testing.T) {
	out := render(t, StockPage(viewOf(record("1", "Paracetamol"), record("2", "Ibuprofen"))))

	for _, want := range []string{
		`<link rel="stylesheet" href="/static/stock.css">`,
		`id="row-1"`,
		`id="row-2"`,
		"<td>Paracetamol</td>",
		"<td>12.5</td>",
		"<td>2026-06-30</td>",
		`action="/stock/1/edit"`,
		`action="/stock/2/delete"`,
		`data-confirm="Are you sure you want to delete this item?"`,
		"Page 1 of 1",
		`href="/stock/export.xlsx"`,
		`href="/stock/export.pdf"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(out, "No search results found") {
		t.Error("page with rows shows the empty message")
	}
	if strings.Contains(out, editFormID) {
		t.Error("edit form rendered without an edit session")
	}
}

func TestStockPage_MissingValuesShowPlaceholder(t *testing.T) {
	r := stock.Record{ID: "7", MedicineName: "Cetirizine"}
	out := render(t, StockPage(viewOf(r)))

	// Dosage, brand, three amounts and both dates.
	if got := strings.Count(out, "<td>0</td>"); got != 7 {
		t.Errorf("placeholder cells = %d, want 7", got)
	}
}

func TestStockPage_Empty(t *testing.T) {
	out := render(t, StockPage(viewOf()))

	if !strings.Contains(out, "No search results found") {
		t.Error("empty page missing the no results message")
	}
	if strings.Contains(out, "<table") {
		t.Error("empty page renders a table")
	}
	if !strings.Contains(out, "Page 1 of 1") {
		t.Error("empty page should still report one page")
	}
}

func TestStockPage_EditRow(t *testing.T) {
	r := record("1", "Paracetamol")
	v := viewOf(r, record("2", "Ibuprofen"))
	v.Edit = stock.NewEditSession(r)
	v.Edit.Working.BrandName = `Acme "Plus"`

	out := render(t, StockPage(v))

	for _, want := range []string{
		`<form method="post" id="edit-form" action="/stock/1/save"></form>`,
		`name="brandname" form="edit-form" value="Acme &#34;Plus&#34;"`,
		`type="date" name="expirydate" form="edit-form" value="2026-06-30"`,
		`action="/stock/1/cancel"`,
		`action="/stock/2/edit"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(out, `action="/stock/1/edit"`) {
		t.Error("row in edit mode still offers Edit")
	}
}

func TestStockPage_Markers(t *testing.T) {
	v := viewOf(record("1", "Paracetamol"), record("2", "Ibuprofen"))
	v.Edited[stock.ID("1")] = time.Now()
	v.Busy[stock.ID("2")] = true

	out := render(t, StockPage(v))

	if strings.Count(out, `<span class="edited">Edited</span>`) != 1 {
		t.Error("want exactly one Edited badge")
	}
	if !strings.Contains(out, `<tr id="row-2" class="busy">`) {
		t.Error("busy row not marked")
	}
	if !strings.Contains(out, `class="delete" disabled`) {
		t.Error("busy row delete button not disabled")
	}
}

func TestStockPage_Notices(t *testing.T) {
	v := viewOf()
	v.Notice = core.NoticeFor(core.ErrExportBusy)
	v.LoadError = core.NoticeFor(&core.TransportError{Err: context.DeadlineExceeded})
	v.Exporting = true

	out := render(t, StockPage(v))

	for _, want := range []string{
		`class="notice notice-error" role="alert"`,
		"BUSY002",
		`<p class="load-error">Error fetching data</p>`,
		`aria-disabled="true"`,
		"Downloading",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestStockPage_EscapesSearch(t *testing.T) {
	v := viewOf()
	v.Criteria = stock.Criteria{Search: `<script>`, ExpiryFrom: stock.MustDate("2025-01-01")}

	out := render(t, StockPage(v))

	if strings.Contains(out, `value="<script>"`) {
		t.Error("search text not escaped")
	}
	if !strings.Contains(out, `name="from" value="2025-01-01"`) {
		t.Error("expiry bound not kept in the form")
	}
}

func TestRowAnchor(t *testing.T) {
	tests := []struct {
		id   stock.ID
		want string
	}{
		{"42", "row-42"},
		{"a b", "row-a%20b"},
		{"x/y", "row-x%2Fy"},
	}
	for _, tt := range tests {
		if got := RowAnchor(tt.id); got != tt.want {
			t.Errorf("RowAnchor(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestErrorPage(t *testing.T) {
	out := render(t, ErrorPage("Session expired", "Reload the page", "SES001"))

	for _, want := range []string{"Session expired", "Reload the page", "<code>SES001</code>", `href="/"`} {
		if !strings.Contains(out, want) {
			t.Errorf("error page missing %q", want)
		}
	}

	out = render(t, ErrorPage("Boom", "", ""))
	if strings.Contains(out, "error-code") || strings.Contains(out, "error-action") {
		t.Error("empty action and code should be omitted")
	}
}
