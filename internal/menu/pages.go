package menu

import "strconv"

// PageSet is the ordered list of page image URLs for one menu book:
// optional cover, body pages in order, optional back cover. It is computed
// once per record and treated as immutable by its consumers.
type PageSet []string

// BuildPageSet assembles the page list from a book record. Empty cover or
// back URLs are skipped rather than producing blank pages.
func BuildPageSet(book Book) PageSet {
	pages := make(PageSet, 0, len(book.Pages)+2)
	if book.CoverURL != "" {
		pages = append(pages, book.CoverURL)
	}
	pages = append(pages, book.Pages...)
	if book.BackURL != "" {
		pages = append(pages, book.BackURL)
	}
	return pages
}

// Label returns the dock button label for a page index. The first page is
// always labeled "Cover"; the rest are numbered from 1.
func (p PageSet) Label(index int) string {
	if index == 0 {
		return "Cover"
	}
	return strconv.Itoa(index + 1)
}
