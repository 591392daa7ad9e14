package web

// handlers_common.go contains shared helpers used across handlers.

import (
	"net/http"
	"strconv"

	"github.com/JonMunkholm/stockview/internal/stock"
	"github.com/JonMunkholm/stockview/internal/web/templates"
)

// parseIntParam parses a positive integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// backToPage finishes a page action with a redirect to the page, so a
// browser refresh never repeats the POST.
func backToPage(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/stock", http.StatusSeeOther)
}

// backToRow is backToPage anchored on one table row.
func backToRow(w http.ResponseWriter, r *http.Request, id stock.ID) {
	http.Redirect(w, r, "/stock#"+templates.RowAnchor(id), http.StatusSeeOther)
}

// editChanges collects the submitted values of the editable fields. Fields
// missing from the form are left out so they keep their working value.
func editChanges(r *http.Request) (map[stock.Field]string, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	changes := make(map[stock.Field]string, len(stock.EditableFields))
	for _, f := range stock.EditableFields {
		if vals, ok := r.PostForm[string(f)]; ok && len(vals) > 0 {
			changes[f] = vals[0]
		}
	}
	return changes, nil
}
