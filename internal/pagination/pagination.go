package pagination

import (
	"net/url"
	"strconv"

	"github.com/phrazzld/tasks-api/internal/config"
)

// Fallback values used when no configuration is supplied.
const (
	DefaultPerPage    = 10
	DefaultMaxPerPage = 100
	DefaultOnEachSide = 3
)

// PageParam is the query parameter carrying the 1-based page number.
const PageParam = "page"

// Config bounds page sizes and shapes the navigation window.
type Config struct {
	DefaultPerPage int
	MaxPerPage     int
	OnEachSide     int
}

// DefaultConfig returns the stock paging configuration.
func DefaultConfig() Config {
	return Config{
		DefaultPerPage: DefaultPerPage,
		MaxPerPage:     DefaultMaxPerPage,
		OnEachSide:     DefaultOnEachSide,
	}
}

// NewConfig builds a Config from the api section of the application config.
// Zero or negative values fall back to the defaults.
func NewConfig(cfg config.APIConfig) Config {
	c := Config{
		DefaultPerPage: cfg.DefaultPerPage,
		MaxPerPage:     cfg.MaxPerPage,
		OnEachSide:     cfg.OnEachSide,
	}
	if c.MaxPerPage < 1 {
		c.MaxPerPage = DefaultMaxPerPage
	}
	if c.DefaultPerPage < 1 {
		c.DefaultPerPage = DefaultPerPage
	}
	if c.DefaultPerPage > c.MaxPerPage {
		c.DefaultPerPage = c.MaxPerPage
	}
	if c.OnEachSide < 0 {
		c.OnEachSide = 0
	}
	return c
}

// ClampPerPage bounds n into [1, MaxPerPage].
func (c Config) ClampPerPage(n int) int {
	switch {
	case n < 1:
		return 1
	case n > c.MaxPerPage:
		return c.MaxPerPage
	default:
		return n
	}
}

// LastPage returns max(1, ceil(total/perPage)).
func LastPage(total int64, perPage int) int {
	if perPage < 1 || total <= 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// Page is one slice of a larger result set, as returned by a store, plus
// the request context needed to build navigation URLs.
type Page[T any] struct {
	Items       []T
	Total       int64
	CurrentPage int
	PerPage     int
	// Path is the absolute URL of the list endpoint without a query string.
	Path string
	// Query holds the request's query parameters; page is overwritten per link.
	Query url.Values
}

// Link is a single entry in the meta.links navigation array.
type Link struct {
	URL    *string `json:"url"`
	Label  string  `json:"label"`
	Page   *int    `json:"page"`
	Active bool    `json:"active"`
}

// Links holds the first/last/prev/next navigation URLs.
type Links struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

// Meta describes the position of a page within the full result set.
type Meta struct {
	CurrentPage int    `json:"current_page"`
	From        *int64 `json:"from"`
	LastPage    int    `json:"last_page"`
	Links       []Link `json:"links"`
	Path        string `json:"path"`
	PerPage     int    `json:"per_page"`
	To          *int64 `json:"to"`
	Total       int64  `json:"total"`
}

// Envelope is the paginated collection payload.
type Envelope[T any] struct {
	Data  []T   `json:"data"`
	Links Links `json:"links"`
	Meta  Meta  `json:"meta"`
}

// pageURL renders the URL of page n, keeping every other query parameter.
func pageURL(path string, query url.Values, n int) string {
	q := make(url.Values, len(query)+1)
	for k, v := range query {
		q[k] = append([]string(nil), v...)
	}
	q.Set(PageParam, strconv.Itoa(n))
	return path + "?" + q.Encode()
}
