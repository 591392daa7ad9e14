// Package templates renders the HTML pages of the stock admin. The *.templ
// sources are compiled with `templ generate`.
package templates

import (
	"net/url"

	"github.com/JonMunkholm/stockview/internal/stock"
)

// TableColumns are the headings of the eight data columns.
var TableColumns = []string{
	"Purchase Date",
	"Medicine Name",
	"Dosage",
	"Brand Name",
	"Purchase Price",
	"MRP",
	"Total Qty",
	"Expiry Date",
}

// editFormID ties the inputs of the row in edit mode to the form that saves
// them; a form cannot wrap a table row.
const editFormID = "edit-form"

// RowAnchor is the element id of a record's table row.
func RowAnchor(id stock.ID) string {
	return "row-" + url.PathEscape(id.String())
}

func rowAction(id stock.ID, action string) string {
	return "/stock/" + url.PathEscape(id.String()) + "/" + action
}
