// Package fetch loads source pages, either with a plain HTTP GET or through a
// headless Chrome session for pages that render or paginate with JavaScript.
package fetch

import "context"

// UserAgent is sent by both the HTTP client and the browser
const UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Fetcher returns the markup of a static page
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// PageFunc receives each rendered page of a browser visit, numbered from 0. It
// returns the CSS selectors to click, in order, before the next page is
// captured. Returning no selectors ends the visit.
type PageFunc func(page int, html string) ([]string, error)

// Navigator drives a browser through one or more rendered pages
type Navigator interface {
	Visit(ctx context.Context, url string, fn PageFunc) error
}
