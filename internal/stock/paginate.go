package stock

// PageSize is the number of records shown per page and per PDF page.
const PageSize = 25

// Page is one slice of a filtered record set.
type Page struct {
	Items  []Record
	Number int // 1-based
	Count  int // total pages, never less than 1
	Total  int // records across all pages
}

// Empty reports whether the page has nothing to show.
func (p Page) Empty() bool { return len(p.Items) == 0 }

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool { return p.Number < p.Count }

// PageCount returns ceil(n/PageSize), with a minimum of one page.
func PageCount(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}

// Paginate returns page number of records. Pages outside [1, PageCount]
// have no items; the returned slice aliases records.
func Paginate(records []Record, number int) Page {
	p := Page{
		Number: number,
		Count:  PageCount(len(records)),
		Total:  len(records),
	}
	if number < 1 || number > p.Count {
		return p
	}
	start := (number - 1) * PageSize
	if start >= len(records) {
		return p
	}
	end := min(start+PageSize, len(records))
	p.Items = records[start:end:end]
	return p
}

// ClampPage keeps a page number within [1, PageCount(n)].
func ClampPage(number, n int) int {
	return max(1, min(number, PageCount(n)))
}
